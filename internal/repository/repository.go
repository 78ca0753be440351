// Package repository is the data-access layer of the rental service.
// Every method takes the request context and returns sentinel errors
// that handlers map onto HTTP status codes.
package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write would duplicate an existing entity or relation
	ErrConflict = errors.New("conflict")
)

// Options bounds the geometry lookups done per listed property
type Options struct {
	LookupTimeout     time.Duration
	LookupConcurrency int
}

// DefaultOptions are used for zero fields of Options
var DefaultOptions = Options{
	LookupTimeout:     5 * time.Second,
	LookupConcurrency: 8,
}

// Repository wraps the injected gorm handle
type Repository struct {
	db        *gorm.DB
	opts      Options
	pointExpr string
}

// New returns a repository over db
func New(db *gorm.DB, opts Options) *Repository {
	if opts.LookupTimeout <= 0 {
		opts.LookupTimeout = DefaultOptions.LookupTimeout
	}
	if opts.LookupConcurrency < 1 {
		opts.LookupConcurrency = DefaultOptions.LookupConcurrency
	}

	// PostGIS stores a binary geometry; other dialects keep the WKT text
	pointExpr := "coordinates"
	if db.Dialector.Name() == "postgres" {
		pointExpr = "ST_AsText(coordinates)"
	}

	return &Repository{db: db, opts: opts, pointExpr: pointExpr}
}

// ProfileUpdate carries the mutable profile fields of a tenant or
// manager. Empty fields are left unchanged.
type ProfileUpdate struct {
	Name        string
	Email       string
	PhoneNumber string
}

func translate(err error, entity string, key interface{}) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s %v: %w", entity, key, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s %v already exists: %w", entity, key, ErrConflict)
	default:
		return err
	}
}
