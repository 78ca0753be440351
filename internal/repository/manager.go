package repository

import (
	"context"
	"time"

	"github.com/Prashant-2024/Rental-App/internal/model"
	"github.com/Prashant-2024/Rental-App/prometheus"
	"gorm.io/gorm"
)

// GetManager returns the manager with the given cognito id
func (r *Repository) GetManager(ctx context.Context, cognitoID string) (*model.Manager, error) {
	defer prometheus.TrackDBOperation("manager_get")(time.Now())

	return r.loadManager(r.db.WithContext(ctx), cognitoID)
}

// CreateManager inserts m. A duplicate cognito id yields ErrConflict.
func (r *Repository) CreateManager(ctx context.Context, m *model.Manager) error {
	defer prometheus.TrackDBOperation("manager_create")(time.Now())

	return translate(r.db.WithContext(ctx).Create(m).Error, "manager", m.CognitoID)
}

// UpdateManager applies u and returns the stored record after the update
func (r *Repository) UpdateManager(ctx context.Context, cognitoID string, u ProfileUpdate) (*model.Manager, error) {
	defer prometheus.TrackDBOperation("manager_update")(time.Now())

	var updated *model.Manager
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		manager, err := r.loadManager(tx, cognitoID)
		if err != nil {
			return err
		}

		if err := tx.Model(manager).Updates(model.Manager{
			Name:        u.Name,
			Email:       u.Email,
			PhoneNumber: u.PhoneNumber,
		}).Error; err != nil {
			return translate(err, "manager", cognitoID)
		}

		updated, err = r.loadManager(tx, cognitoID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *Repository) loadManager(db *gorm.DB, cognitoID string) (*model.Manager, error) {
	var manager model.Manager
	if err := db.Where("cognito_id = ?", cognitoID).First(&manager).Error; err != nil {
		return nil, translate(err, "manager", cognitoID)
	}
	return &manager, nil
}
