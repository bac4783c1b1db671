package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks storage-level uniqueness violations.
	ErrConflict = errors.New("conflict")
	// ErrConfiguration marks operator faults (bad key material, missing env).
	ErrConfiguration = errors.New("configuration error")
)

// ValidationError carries every violated constraint from one validation pass.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

func NewValidation(fields []string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// NotFoundError marks an unresolvable reference (category/service slug).
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func NewNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// AbuseKind distinguishes the abuse-guard rejections without leaking the
// distinction to clients.
type AbuseKind string

const (
	AbuseOrigin      AbuseKind = "origin"
	AbuseRateLimited AbuseKind = "rate_limited"
)

type AbuseError struct {
	Kind AbuseKind
}

func (e *AbuseError) Error() string { return "request rejected: " + string(e.Kind) }

// ConfigurationError wraps operator faults; its detail must never reach a
// client response.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return e.Msg }

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

func NewConfiguration(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

// ConflictError marks a uniqueness violation surfaced by the storage layer,
// e.g. a concurrently committed idempotency key.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

func NewConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

// StorageError wraps any other database failure so handlers can map it to a
// generic 500 without echoing driver detail.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage error: " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

func NewStorage(err error) *StorageError { return &StorageError{Err: err} }
