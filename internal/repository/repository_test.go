package repository

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Prashant-2024/Rental-App/internal/geo"
	"github.com/Prashant-2024/Rental-App/internal/model"
	"github.com/Prashant-2024/Rental-App/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(filepath.Join(t.TempDir(), "rental.db")), logger.Silent)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })
	return db
}

func setupTestRepo(t *testing.T) (*Repository, *gorm.DB) {
	db := setupTestDB(t)
	return New(db, Options{LookupTimeout: 2 * time.Second, LookupConcurrency: 4}), db
}

func createTenant(t *testing.T, repo *Repository, cognitoID string) *model.Tenant {
	t.Helper()
	tenant := &model.Tenant{CognitoID: cognitoID, Name: "Tenant " + cognitoID, Email: cognitoID + "@example.com"}
	require.NoError(t, repo.CreateTenant(context.Background(), tenant))
	return tenant
}

func createProperty(t *testing.T, repo *Repository, name string, lon, lat float64) *model.Property {
	t.Helper()
	p := &model.Property{
		Name:             name,
		PricePerMonth:    1200,
		PropertyType:     model.PropertyTypeApartment,
		ManagerCognitoID: "manager-1",
		Location: &model.Location{
			Address:     "1 Main St",
			City:        "Montreal",
			Country:     "Canada",
			Coordinates: model.Point{Longitude: lon, Latitude: lat},
		},
	}
	require.NoError(t, repo.CreateProperty(context.Background(), p))
	require.NotZero(t, p.LocationID)
	return p
}

func favoriteCount(t *testing.T, db *gorm.DB, tenantID, propertyID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.Favorite{}).
		Where("tenant_id = ? AND property_id = ?", tenantID, propertyID).
		Count(&n).Error)
	return n
}

func TestTenant_CreateAndGet(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	created := createTenant(t, repo, "tenant-1")
	assert.NotZero(t, created.ID)

	fetched, err := repo.GetTenant(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "tenant-1@example.com", fetched.Email)
	assert.NotNil(t, fetched.Favorites)
	assert.Empty(t, fetched.Favorites)
}

func TestTenant_GetMissing(t *testing.T) {
	repo, _ := setupTestRepo(t)

	tenant, err := repo.GetTenant(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, tenant)
}

func TestTenant_CreateDuplicate(t *testing.T) {
	repo, _ := setupTestRepo(t)
	createTenant(t, repo, "tenant-1")

	err := repo.CreateTenant(context.Background(), &model.Tenant{CognitoID: "tenant-1", Name: "Again", Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestTenant_Update(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()
	createTenant(t, repo, "tenant-1")

	updated, err := repo.UpdateTenant(ctx, "tenant-1", ProfileUpdate{Name: "Renamed", PhoneNumber: "+1 555 0100"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "+1 555 0100", updated.PhoneNumber)
	assert.Equal(t, "tenant-1@example.com", updated.Email)

	fetched, err := repo.GetTenant(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", fetched.Name)
}

func TestTenant_UpdateMissing(t *testing.T) {
	repo, _ := setupTestRepo(t)

	_, err := repo.UpdateTenant(context.Background(), "nobody", ProfileUpdate{Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_CRUD(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	m := &model.Manager{CognitoID: "manager-1", Name: "Manager", Email: "m@example.com"}
	require.NoError(t, repo.CreateManager(ctx, m))
	assert.ErrorIs(t, repo.CreateManager(ctx, &model.Manager{CognitoID: "manager-1", Name: "Dup", Email: "d@example.com"}), ErrConflict)

	updated, err := repo.UpdateManager(ctx, "manager-1", ProfileUpdate{Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "Manager", updated.Name)

	_, err = repo.GetManager(ctx, "manager-2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFavorite_AddTwice(t *testing.T) {
	repo, db := setupTestRepo(t)
	ctx := context.Background()
	tenant := createTenant(t, repo, "tenant-1")
	p := createProperty(t, repo, "Loft", -73.5, 45.5)

	updated, err := repo.AddFavorite(ctx, "tenant-1", p.ID)
	require.NoError(t, err)
	require.Len(t, updated.Favorites, 1)
	assert.Equal(t, p.ID, updated.Favorites[0].ID)

	_, err = repo.AddFavorite(ctx, "tenant-1", p.ID)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, int64(1), favoriteCount(t, db, tenant.ID, p.ID))
}

func TestFavorite_AddConcurrent(t *testing.T) {
	repo, db := setupTestRepo(t)
	tenant := createTenant(t, repo, "tenant-1")
	p := createProperty(t, repo, "Loft", -73.5, 45.5)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		added     int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AddFavorite(context.Background(), "tenant-1", p.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				added++
			case assert.ErrorIs(t, err, ErrConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, added)
	assert.Equal(t, workers-1, conflicts)
	assert.Equal(t, int64(1), favoriteCount(t, db, tenant.ID, p.ID))
}

func TestFavorite_AddUnknownTargets(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()
	createTenant(t, repo, "tenant-1")
	p := createProperty(t, repo, "Loft", -73.5, 45.5)

	_, err := repo.AddFavorite(ctx, "tenant-1", p.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.AddFavorite(ctx, "nobody", p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFavorite_Remove(t *testing.T) {
	repo, db := setupTestRepo(t)
	ctx := context.Background()
	tenant := createTenant(t, repo, "tenant-1")
	kept := createProperty(t, repo, "Kept", -73.5, 45.5)
	dropped := createProperty(t, repo, "Dropped", -73.6, 45.6)

	_, err := repo.AddFavorite(ctx, "tenant-1", kept.ID)
	require.NoError(t, err)
	_, err = repo.AddFavorite(ctx, "tenant-1", dropped.ID)
	require.NoError(t, err)

	updated, err := repo.RemoveFavorite(ctx, "tenant-1", dropped.ID)
	require.NoError(t, err)
	require.Len(t, updated.Favorites, 1)
	assert.Equal(t, kept.ID, updated.Favorites[0].ID)
	assert.Zero(t, favoriteCount(t, db, tenant.ID, dropped.ID))
}

func TestFavorite_RemoveAbsentIsNoop(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()
	createTenant(t, repo, "tenant-1")
	kept := createProperty(t, repo, "Kept", -73.5, 45.5)
	other := createProperty(t, repo, "Other", -73.6, 45.6)

	_, err := repo.AddFavorite(ctx, "tenant-1", kept.ID)
	require.NoError(t, err)

	updated, err := repo.RemoveFavorite(ctx, "tenant-1", other.ID)
	require.NoError(t, err)
	require.Len(t, updated.Favorites, 1)
	assert.Equal(t, kept.ID, updated.Favorites[0].ID)

	_, err = repo.RemoveFavorite(ctx, "nobody", other.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCurrentResidences(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()
	createTenant(t, repo, "tenant-1")
	createTenant(t, repo, "tenant-2")

	first := createProperty(t, repo, "First", -73.5, 45.5)
	other := createProperty(t, repo, "Other", 2.35, 48.85)
	second := createProperty(t, repo, "Second", -122.42, 37.77)

	require.NoError(t, repo.CreateLease(ctx, &model.Lease{PropertyID: second.ID, TenantCognitoID: "tenant-1", Rent: 1200}))
	require.NoError(t, repo.CreateLease(ctx, &model.Lease{PropertyID: first.ID, TenantCognitoID: "tenant-1", Rent: 900}))
	require.NoError(t, repo.CreateLease(ctx, &model.Lease{PropertyID: other.ID, TenantCognitoID: "tenant-2", Rent: 800}))

	residences, err := repo.CurrentResidences(ctx, "tenant-1")
	require.NoError(t, err)
	require.Len(t, residences, 2)

	assert.Equal(t, first.ID, residences[0].ID)
	assert.Equal(t, second.ID, residences[1].ID)

	require.NotNil(t, residences[0].Location)
	require.NotNil(t, residences[0].Location.Position)
	assert.Equal(t, geo.Coordinates{Longitude: -73.5, Latitude: 45.5}, *residences[0].Location.Position)
	assert.Equal(t, geo.Coordinates{Longitude: -122.42, Latitude: 37.77}, *residences[1].Location.Position)
	assert.Equal(t, "Montreal", residences[1].Location.City)
}

func TestCurrentResidences_NoLeases(t *testing.T) {
	repo, _ := setupTestRepo(t)
	createTenant(t, repo, "tenant-1")

	residences, err := repo.CurrentResidences(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.Empty(t, residences)
}

func TestCurrentResidences_UnknownLocationFailsRequest(t *testing.T) {
	repo, db := setupTestRepo(t)
	ctx := context.Background()
	createTenant(t, repo, "tenant-1")
	good := createProperty(t, repo, "Good", -73.5, 45.5)
	broken := createProperty(t, repo, "Broken", -73.6, 45.6)
	require.NoError(t, db.Exec("UPDATE locations SET coordinates = '' WHERE id = ?", broken.LocationID).Error)

	require.NoError(t, repo.CreateLease(ctx, &model.Lease{PropertyID: good.ID, TenantCognitoID: "tenant-1"}))
	require.NoError(t, repo.CreateLease(ctx, &model.Lease{PropertyID: broken.ID, TenantCognitoID: "tenant-1"}))

	residences, err := repo.CurrentResidences(ctx, "tenant-1")
	assert.ErrorIs(t, err, geo.ErrUnknownLocation)
	assert.Nil(t, residences)
}

func TestCurrentResidences_MalformedLocationFailsRequest(t *testing.T) {
	repo, db := setupTestRepo(t)
	ctx := context.Background()
	createTenant(t, repo, "tenant-1")
	p := createProperty(t, repo, "Broken", -73.6, 45.6)
	require.NoError(t, db.Exec("UPDATE locations SET coordinates = 'POINT(oops)' WHERE id = ?", p.LocationID).Error)
	require.NoError(t, repo.CreateLease(ctx, &model.Lease{PropertyID: p.ID, TenantCognitoID: "tenant-1"}))

	_, err := repo.CurrentResidences(ctx, "tenant-1")
	assert.ErrorIs(t, err, geo.ErrInvalidPoint)
}

func TestLocationCoordinates_Timeout(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db, Options{LookupTimeout: time.Nanosecond, LookupConcurrency: 1})
	p := createProperty(t, repo, "Slow", -73.5, 45.5)

	_, err := repo.LocationCoordinates(context.Background(), p.LocationID)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestManagedProperties(t *testing.T) {
	repo, _ := setupTestRepo(t)
	createProperty(t, repo, "A", -73.5, 45.5)
	createProperty(t, repo, "B", -73.6, 45.6)

	props, err := repo.ManagedProperties(context.Background(), "manager-1")
	require.NoError(t, err)
	require.Len(t, props, 2)
	for _, p := range props {
		assert.NotNil(t, p.Location.Position)
	}

	props, err = repo.ManagedProperties(context.Background(), "manager-2")
	require.NoError(t, err)
	assert.Empty(t, props)
}
