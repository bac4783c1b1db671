package observability

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Metrics is a small in-process counter set exposed in Prometheus text
// format. Single-instance, best-effort, no external client.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int64
}

func NewMetrics() *Metrics {
	return &Metrics{counters: make(map[string]int64)}
}

const (
	SubmissionsReceived   = "lead_submissions_received_total"
	SubmissionsAccepted   = "lead_submissions_accepted_total"
	SubmissionsDuplicate  = "lead_submissions_duplicate_total"
	SubmissionsReplayed   = "lead_submissions_replayed_total"
	ValidationFailures    = "lead_validation_failures_total"
	HoneypotCatches       = "lead_honeypot_catches_total"
	RateLimitedRequests   = "lead_rate_limited_total"
	OriginBlockedRequests = "lead_origin_blocked_total"
	OutboxPublished       = "outbox_events_published_total"
	OutboxFailures        = "outbox_publish_failures_total"
)

func (m *Metrics) Inc(name string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.counters[name]++
	m.mu.Unlock()
}

func (m *Metrics) Get(name string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

// Render emits the counters in Prometheus exposition format.
func (m *Metrics) Render() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.counters))
	for name := range m.counters {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "# TYPE %s counter\n%s %d\n", name, name, m.counters[name])
	}
	return b.String()
}
