package repository

import (
	"context"

	"callsync-backend/internal/tenant/domain"

	"gorm.io/gorm"
)

// TenantRegistry lists the tenant identifiers the sync pipeline should
// poll for
type TenantRegistry interface {
	ListTenantIDs(ctx context.Context) ([]string, error)
}

// gormTenantRegistry implements TenantRegistry on Postgres
type gormTenantRegistry struct {
	db *gorm.DB
}

// NewTenantRegistry creates a new instance of gormTenantRegistry
func NewTenantRegistry(db *gorm.DB) TenantRegistry {
	return &gormTenantRegistry{
		db: db,
	}
}

// ListTenantIDs returns every distinct non-empty tenant id
func (r *gormTenantRegistry) ListTenantIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&domain.Tenant{}).
		Where("tenant_id <> ''").
		Distinct().
		Pluck("tenant_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
