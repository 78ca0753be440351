package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Prashant-2024/Rental-App/internal/geo"
	"github.com/Prashant-2024/Rental-App/internal/model"
	"github.com/Prashant-2024/Rental-App/prometheus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// CurrentResidences returns every property the tenant holds a lease on,
// ordered by id, each with its location coordinates resolved. Any lease
// counts as current.
func (r *Repository) CurrentResidences(ctx context.Context, cognitoID string) ([]model.Property, error) {
	defer prometheus.TrackDBOperation("residences_list")(time.Now())

	leased := r.db.Model(&model.Lease{}).
		Select("property_id").
		Where("tenant_cognito_id = ?", cognitoID)

	return r.listWithCoordinates(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN (?)", leased)
	})
}

// ManagedProperties returns the properties listed by a manager, each
// with its location coordinates resolved.
func (r *Repository) ManagedProperties(ctx context.Context, managerCognitoID string) ([]model.Property, error) {
	defer prometheus.TrackDBOperation("managed_properties_list")(time.Now())

	return r.listWithCoordinates(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("manager_cognito_id = ?", managerCognitoID)
	})
}

// CreateProperty inserts p together with its location
func (r *Repository) CreateProperty(ctx context.Context, p *model.Property) error {
	defer prometheus.TrackDBOperation("property_create")(time.Now())

	return translate(r.db.WithContext(ctx).Create(p).Error, "property", p.Name)
}

// CreateLease inserts l
func (r *Repository) CreateLease(ctx context.Context, l *model.Lease) error {
	defer prometheus.TrackDBOperation("lease_create")(time.Now())

	return translate(r.db.WithContext(ctx).Create(l).Error, "lease", l.PropertyID)
}

// LocationCoordinates reads the stored point of a location as WKT and
// converts it. It gives up after the configured lookup timeout.
func (r *Repository) LocationCoordinates(ctx context.Context, locationID uint) (geo.Coordinates, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.LookupTimeout)
	defer cancel()

	var rows []struct {
		Coordinates string
	}
	err := r.db.WithContext(ctx).
		Raw(fmt.Sprintf("SELECT %s AS coordinates FROM locations WHERE id = ?", r.pointExpr), locationID).
		Scan(&rows).Error
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return geo.Coordinates{}, fmt.Errorf("location %d: lookup timed out after %s: %w", locationID, r.opts.LookupTimeout, ctx.Err())
		}
		return geo.Coordinates{}, fmt.Errorf("location %d: %w", locationID, err)
	}

	text := ""
	if len(rows) > 0 {
		text = rows[0].Coordinates
	}

	c, err := geo.ParsePoint(text)
	if err != nil {
		return geo.Coordinates{}, fmt.Errorf("location %d: %w", locationID, err)
	}
	return c, nil
}

func (r *Repository) listWithCoordinates(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]model.Property, error) {
	var properties []model.Property
	if err := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("Location").
		Order("id").
		Find(&properties).Error; err != nil {
		return nil, err
	}

	if err := r.resolveCoordinates(ctx, properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// resolveCoordinates looks up every location concurrently and fills
// Location.Position in place. Each goroutine writes only its own index.
// On error the slice must be discarded.
func (r *Repository) resolveCoordinates(ctx context.Context, properties []model.Property) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.LookupConcurrency)

	for i := range properties {
		i := i
		g.Go(func() error {
			loc := properties[i].Location
			if loc == nil {
				prometheus.RecordLocationLookupFailure()
				return fmt.Errorf("property %d: %w", properties[i].ID, geo.ErrUnknownLocation)
			}

			c, err := r.LocationCoordinates(gctx, loc.ID)
			if err != nil {
				prometheus.RecordLocationLookupFailure()
				return fmt.Errorf("property %d: %w", properties[i].ID, err)
			}
			loc.Position = &c
			return nil
		})
	}

	return g.Wait()
}
