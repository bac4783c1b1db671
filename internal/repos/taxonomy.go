package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/davincidevllc/continue-leads/internal/pkg/logger"
	"github.com/davincidevllc/continue-leads/internal/types"
)

// TaxonomyRepo reads the reference tables owned by the admin/catalog side.
// Intake never writes them.
type TaxonomyRepo interface {
	GetCategoryBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Category, error)
	GetServiceBySlug(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID, slug string) (*types.Service, error)
	GetSiteByDomain(ctx context.Context, tx *gorm.DB, domain string) (*types.Site, error)
	GetActiveMetroSlug(ctx context.Context, tx *gorm.DB) (*string, error)
}

type taxonomyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaxonomyRepo(db *gorm.DB, baseLog *logger.Logger) TaxonomyRepo {
	return &taxonomyRepo{db: db, log: baseLog.With("repo", "TaxonomyRepo")}
}

func (r *taxonomyRepo) GetCategoryBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if slug == "" {
		return nil, nil
	}
	var category types.Category
	err := transaction.WithContext(ctx).
		Where("slug = ?", slug).
		Limit(1).
		Find(&category).Error
	if err != nil {
		return nil, err
	}
	if category.ID == uuid.Nil {
		return nil, nil
	}
	return &category, nil
}

func (r *taxonomyRepo) GetServiceBySlug(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID, slug string) (*types.Service, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if categoryID == uuid.Nil || slug == "" {
		return nil, nil
	}
	var service types.Service
	err := transaction.WithContext(ctx).
		Where("slug = ? AND category_id = ?", slug, categoryID).
		Limit(1).
		Find(&service).Error
	if err != nil {
		return nil, err
	}
	if service.ID == uuid.Nil {
		return nil, nil
	}
	return &service, nil
}

func (r *taxonomyRepo) GetSiteByDomain(ctx context.Context, tx *gorm.DB, domain string) (*types.Site, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if domain == "" {
		return nil, nil
	}
	var site types.Site
	err := transaction.WithContext(ctx).
		Where("domain = ?", domain).
		Limit(1).
		Find(&site).Error
	if err != nil {
		return nil, err
	}
	if site.ID == uuid.Nil {
		return nil, nil
	}
	return &site, nil
}

func (r *taxonomyRepo) GetActiveMetroSlug(ctx context.Context, tx *gorm.DB) (*string, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var metro types.Metro
	err := transaction.WithContext(ctx).
		Where("is_active = ?", true).
		Order("slug ASC").
		Limit(1).
		Find(&metro).Error
	if err != nil {
		return nil, err
	}
	if metro.ID == uuid.Nil {
		return nil, nil
	}
	return &metro.Slug, nil
}
