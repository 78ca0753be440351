package repository

import (
	"context"
	"time"

	"github.com/Prashant-2024/Rental-App/internal/model"
	"github.com/Prashant-2024/Rental-App/prometheus"
	"gorm.io/gorm"
)

// GetTenant returns the tenant with its favorites
func (r *Repository) GetTenant(ctx context.Context, cognitoID string) (*model.Tenant, error) {
	defer prometheus.TrackDBOperation("tenant_get")(time.Now())

	return r.loadTenant(r.db.WithContext(ctx), cognitoID, true)
}

// CreateTenant inserts t. A duplicate cognito id yields ErrConflict.
func (r *Repository) CreateTenant(ctx context.Context, t *model.Tenant) error {
	defer prometheus.TrackDBOperation("tenant_create")(time.Now())

	if err := r.db.WithContext(ctx).Omit("Favorites").Create(t).Error; err != nil {
		return translate(err, "tenant", t.CognitoID)
	}
	if t.Favorites == nil {
		t.Favorites = []model.Property{}
	}
	return nil
}

// UpdateTenant applies u and returns the stored record after the update
func (r *Repository) UpdateTenant(ctx context.Context, cognitoID string, u ProfileUpdate) (*model.Tenant, error) {
	defer prometheus.TrackDBOperation("tenant_update")(time.Now())

	var updated *model.Tenant
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tenant, err := r.loadTenant(tx, cognitoID, false)
		if err != nil {
			return err
		}

		if err := tx.Model(tenant).Updates(model.Tenant{
			Name:        u.Name,
			Email:       u.Email,
			PhoneNumber: u.PhoneNumber,
		}).Error; err != nil {
			return translate(err, "tenant", cognitoID)
		}

		updated, err = r.loadTenant(tx, cognitoID, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *Repository) loadTenant(db *gorm.DB, cognitoID string, withFavorites bool) (*model.Tenant, error) {
	if withFavorites {
		db = db.Preload("Favorites", func(db *gorm.DB) *gorm.DB {
			return db.Order("properties.id")
		})
	}

	var tenant model.Tenant
	if err := db.Where("cognito_id = ?", cognitoID).First(&tenant).Error; err != nil {
		return nil, translate(err, "tenant", cognitoID)
	}
	if withFavorites && tenant.Favorites == nil {
		tenant.Favorites = []model.Property{}
	}
	return &tenant, nil
}
