package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Prashant-2024/Rental-App/internal/model"
	"github.com/Prashant-2024/Rental-App/prometheus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AddFavorite connects propertyID to the tenant's favorites and returns
// the tenant with its updated favorites. A property already present
// yields ErrConflict and nothing is written.
func (r *Repository) AddFavorite(ctx context.Context, cognitoID string, propertyID uint) (*model.Tenant, error) {
	defer prometheus.TrackDBOperation("favorite_add")(time.Now())

	var updated *model.Tenant
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tenant, err := r.loadTenant(tx, cognitoID, true)
		if err != nil {
			return err
		}

		for _, fav := range tenant.Favorites {
			if fav.ID == propertyID {
				return fmt.Errorf("property %d is already a favorite of tenant %s: %w", propertyID, cognitoID, ErrConflict)
			}
		}

		var property model.Property
		if err := tx.Select("id").First(&property, propertyID).Error; err != nil {
			return translate(err, "property", propertyID)
		}

		// The primary key on (tenant_id, property_id) settles concurrent adds
		// of the same pair: only one insert affects a row.
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.Favorite{TenantID: tenant.ID, PropertyID: propertyID})
		if res.Error != nil {
			return translate(res.Error, "favorite", propertyID)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("property %d is already a favorite of tenant %s: %w", propertyID, cognitoID, ErrConflict)
		}

		updated, err = r.loadTenant(tx, cognitoID, true)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveFavorite disconnects propertyID from the tenant's favorites.
// Removing a property that is not a favorite is not an error.
func (r *Repository) RemoveFavorite(ctx context.Context, cognitoID string, propertyID uint) (*model.Tenant, error) {
	defer prometheus.TrackDBOperation("favorite_remove")(time.Now())

	var updated *model.Tenant
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tenant, err := r.loadTenant(tx, cognitoID, false)
		if err != nil {
			return err
		}

		if err := tx.Where("tenant_id = ? AND property_id = ?", tenant.ID, propertyID).
			Delete(&model.Favorite{}).Error; err != nil {
			return err
		}

		updated, err = r.loadTenant(tx, cognitoID, true)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
