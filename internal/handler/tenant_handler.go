package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/Prashant-2024/Rental-App/internal/model"
	"github.com/Prashant-2024/Rental-App/internal/repository"
	"github.com/Prashant-2024/Rental-App/pkg/logger"
	"github.com/Prashant-2024/Rental-App/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TenantStore is the data access the tenant routes need
type TenantStore interface {
	GetTenant(ctx context.Context, cognitoID string) (*model.Tenant, error)
	CreateTenant(ctx context.Context, t *model.Tenant) error
	UpdateTenant(ctx context.Context, cognitoID string, u repository.ProfileUpdate) (*model.Tenant, error)
	CurrentResidences(ctx context.Context, cognitoID string) ([]model.Property, error)
	AddFavorite(ctx context.Context, cognitoID string, propertyID uint) (*model.Tenant, error)
	RemoveFavorite(ctx context.Context, cognitoID string, propertyID uint) (*model.Tenant, error)
}

// TenantHandler serves the /tenants routes
type TenantHandler struct {
	store TenantStore
}

// NewTenantHandler creates a tenant handler backed by store
func NewTenantHandler(store TenantStore) *TenantHandler {
	return &TenantHandler{store: store}
}

// GetTenant handles GET /tenants/:cognitoId
func (h *TenantHandler) GetTenant(c echo.Context) error {
	log := logger.FromContext(c)
	cognitoID := c.Param("cognitoId")
	prometheus.RecordProfileOperation("tenant", "get")

	tenant, err := h.store.GetTenant(c.Request().Context(), cognitoID)
	if errors.Is(err, repository.ErrNotFound) {
		log.Info("Tenant not found", zap.String("cognito_id", cognitoID))
		return message(c, http.StatusNotFound, "Tenant not Found")
	}
	if err != nil {
		log.Error("Failed to retrieve tenant", zap.String("cognito_id", cognitoID), zap.Error(err))
		return internalError(c, "retrieving tenant", err)
	}

	log.Info("Tenant retrieved",
		zap.String("cognito_id", cognitoID),
		zap.Int("favorites", len(tenant.Favorites)))
	return c.JSON(http.StatusOK, tenant)
}

// CreateTenant handles POST /tenants
func (h *TenantHandler) CreateTenant(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProfileOperation("tenant", "create")

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid tenant creation request", zap.Error(err))
		return message(c, http.StatusBadRequest, "Invalid request data")
	}
	if err := req.validateCreate(); err != nil {
		log.Warn("Incomplete tenant creation request", zap.Error(err))
		return message(c, http.StatusBadRequest, err.Error())
	}

	tenant := model.Tenant{
		CognitoID:   req.CognitoID,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}
	err := h.store.CreateTenant(c.Request().Context(), &tenant)
	if errors.Is(err, repository.ErrConflict) {
		log.Warn("Tenant already exists", zap.String("cognito_id", req.CognitoID))
		return message(c, http.StatusConflict, "Tenant already exists")
	}
	if err != nil {
		log.Error("Failed to create tenant", zap.String("cognito_id", req.CognitoID), zap.Error(err))
		return internalError(c, "creating tenant", err)
	}

	log.Info("Tenant created",
		zap.Uint("id", tenant.ID),
		zap.String("cognito_id", tenant.CognitoID))
	return c.JSON(http.StatusCreated, tenant)
}

// UpdateTenant handles PUT /tenants/:cognitoId
func (h *TenantHandler) UpdateTenant(c echo.Context) error {
	log := logger.FromContext(c)
	cognitoID := c.Param("cognitoId")
	prometheus.RecordProfileOperation("tenant", "update")

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid tenant update request", zap.String("cognito_id", cognitoID), zap.Error(err))
		return message(c, http.StatusBadRequest, "Invalid request data")
	}

	tenant, err := h.store.UpdateTenant(c.Request().Context(), cognitoID, req.update())
	switch {
	case errors.Is(err, repository.ErrNotFound):
		log.Info("Tenant not found for update", zap.String("cognito_id", cognitoID))
		return message(c, http.StatusNotFound, "Tenant not Found")
	case errors.Is(err, repository.ErrConflict):
		log.Warn("Tenant update conflicts with existing data", zap.String("cognito_id", cognitoID), zap.Error(err))
		return message(c, http.StatusConflict, err.Error())
	case err != nil:
		log.Error("Failed to update tenant", zap.String("cognito_id", cognitoID), zap.Error(err))
		return internalError(c, "updating tenant", err)
	}

	log.Info("Tenant updated", zap.String("cognito_id", cognitoID))
	return c.JSON(http.StatusOK, tenant)
}

// GetCurrentResidences handles GET /tenants/:cognitoId/residences
func (h *TenantHandler) GetCurrentResidences(c echo.Context) error {
	log := logger.FromContext(c)
	cognitoID := c.Param("cognitoId")

	residences, err := h.store.CurrentResidences(c.Request().Context(), cognitoID)
	if err != nil {
		log.Error("Failed to retrieve tenant residences", zap.String("cognito_id", cognitoID), zap.Error(err))
		return internalError(c, "retrieving tenant residences", err)
	}

	log.Info("Tenant residences retrieved",
		zap.String("cognito_id", cognitoID),
		zap.Int("count", len(residences)))
	return c.JSON(http.StatusOK, residences)
}

// AddFavoriteProperty handles POST /tenants/:cognitoId/favorites/:propertyId
func (h *TenantHandler) AddFavoriteProperty(c echo.Context) error {
	log := logger.FromContext(c)
	cognitoID := c.Param("cognitoId")

	propertyID, err := parsePropertyID(c.Param("propertyId"))
	if err != nil {
		log.Warn("Invalid property id", zap.String("property_id", c.Param("propertyId")))
		return message(c, http.StatusBadRequest, "Invalid property id")
	}

	tenant, err := h.store.AddFavorite(c.Request().Context(), cognitoID, propertyID)
	switch {
	case errors.Is(err, repository.ErrConflict):
		prometheus.RecordFavoriteOperation("conflict")
		log.Info("Property already a favorite",
			zap.String("cognito_id", cognitoID),
			zap.Uint("property_id", propertyID))
		return message(c, http.StatusConflict, "Property already added as favorites.")
	case errors.Is(err, repository.ErrNotFound):
		log.Info("Favorite target not found",
			zap.String("cognito_id", cognitoID),
			zap.Uint("property_id", propertyID),
			zap.Error(err))
		return message(c, statusFor(err), err.Error())
	case err != nil:
		log.Error("Failed to add favorite property",
			zap.String("cognito_id", cognitoID),
			zap.Uint("property_id", propertyID),
			zap.Error(err))
		return internalError(c, "adding property to favorites", err)
	}

	prometheus.RecordFavoriteOperation("added")
	log.Info("Favorite property added",
		zap.String("cognito_id", cognitoID),
		zap.Uint("property_id", propertyID))
	return c.JSON(http.StatusOK, tenant)
}

// RemoveFavoriteProperty handles DELETE /tenants/:cognitoId/favorites/:propertyId
func (h *TenantHandler) RemoveFavoriteProperty(c echo.Context) error {
	log := logger.FromContext(c)
	cognitoID := c.Param("cognitoId")

	propertyID, err := parsePropertyID(c.Param("propertyId"))
	if err != nil {
		log.Warn("Invalid property id", zap.String("property_id", c.Param("propertyId")))
		return message(c, http.StatusBadRequest, "Invalid property id")
	}

	tenant, err := h.store.RemoveFavorite(c.Request().Context(), cognitoID, propertyID)
	if errors.Is(err, repository.ErrNotFound) {
		log.Info("Tenant not found for favorite removal", zap.String("cognito_id", cognitoID))
		return message(c, http.StatusNotFound, "Tenant not Found")
	}
	if err != nil {
		log.Error("Failed to remove favorite property",
			zap.String("cognito_id", cognitoID),
			zap.Uint("property_id", propertyID),
			zap.Error(err))
		return internalError(c, "removing property from favorites", err)
	}

	prometheus.RecordFavoriteOperation("removed")
	log.Info("Favorite property removed",
		zap.String("cognito_id", cognitoID),
		zap.Uint("property_id", propertyID))
	return c.JSON(http.StatusOK, tenant)
}
