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

// ManagerStore is the data access the manager routes need
type ManagerStore interface {
	GetManager(ctx context.Context, cognitoID string) (*model.Manager, error)
	CreateManager(ctx context.Context, m *model.Manager) error
	UpdateManager(ctx context.Context, cognitoID string, u repository.ProfileUpdate) (*model.Manager, error)
	ManagedProperties(ctx context.Context, cognitoID string) ([]model.Property, error)
}

// ManagerHandler serves the /managers routes
type ManagerHandler struct {
	store ManagerStore
}

// NewManagerHandler creates a manager handler backed by store
func NewManagerHandler(store ManagerStore) *ManagerHandler {
	return &ManagerHandler{store: store}
}

// GetManager handles GET /managers/:cognitoId
func (h *ManagerHandler) GetManager(c echo.Context) error {
	log := logger.FromContext(c)
	cognitoID := c.Param("cognitoId")
	prometheus.RecordProfileOperation("manager", "get")

	manager, err := h.store.GetManager(c.Request().Context(), cognitoID)
	if errors.Is(err, repository.ErrNotFound) {
		log.Info("Manager not found", zap.String("cognito_id", cognitoID))
		return message(c, http.StatusNotFound, "Manager not found")
	}
	if err != nil {
		log.Error("Failed to retrieve manager", zap.String("cognito_id", cognitoID), zap.Error(err))
		return internalError(c, "retrieving manager", err)
	}

	return c.JSON(http.StatusOK, manager)
}

// CreateManager handles POST /managers
func (h *ManagerHandler) CreateManager(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProfileOperation("manager", "create")

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid manager creation request", zap.Error(err))
		return message(c, http.StatusBadRequest, "Invalid request data")
	}
	if err := req.validateCreate(); err != nil {
		log.Warn("Incomplete manager creation request", zap.Error(err))
		return message(c, http.StatusBadRequest, err.Error())
	}

	manager := model.Manager{
		CognitoID:   req.CognitoID,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}
	err := h.store.CreateManager(c.Request().Context(), &manager)
	if errors.Is(err, repository.ErrConflict) {
		log.Warn("Manager already exists", zap.String("cognito_id", req.CognitoID))
		return message(c, http.StatusConflict, "Manager already exists")
	}
	if err != nil {
		log.Error("Failed to create manager", zap.String("cognito_id", req.CognitoID), zap.Error(err))
		return internalError(c, "creating manager", err)
	}

	log.Info("Manager created", zap.Uint("id", manager.ID), zap.String("cognito_id", manager.CognitoID))
	return c.JSON(http.StatusCreated, manager)
}

// UpdateManager handles PUT /managers/:cognitoId
func (h *ManagerHandler) UpdateManager(c echo.Context) error {
	log := logger.FromContext(c)
	cognitoID := c.Param("cognitoId")
	prometheus.RecordProfileOperation("manager", "update")

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid manager update request", zap.String("cognito_id", cognitoID), zap.Error(err))
		return message(c, http.StatusBadRequest, "Invalid request data")
	}

	manager, err := h.store.UpdateManager(c.Request().Context(), cognitoID, req.update())
	if err != nil {
		if status := statusFor(err); status != http.StatusInternalServerError {
			log.Info("Manager update rejected", zap.String("cognito_id", cognitoID), zap.Error(err))
			return message(c, status, err.Error())
		}
		log.Error("Failed to update manager", zap.String("cognito_id", cognitoID), zap.Error(err))
		return internalError(c, "updating manager", err)
	}

	log.Info("Manager updated", zap.String("cognito_id", cognitoID))
	return c.JSON(http.StatusOK, manager)
}

// GetManagerProperties handles GET /managers/:cognitoId/properties
func (h *ManagerHandler) GetManagerProperties(c echo.Context) error {
	log := logger.FromContext(c)
	cognitoID := c.Param("cognitoId")

	properties, err := h.store.ManagedProperties(c.Request().Context(), cognitoID)
	if err != nil {
		log.Error("Failed to retrieve manager properties", zap.String("cognito_id", cognitoID), zap.Error(err))
		return internalError(c, "retrieving manager properties", err)
	}

	log.Info("Manager properties retrieved",
		zap.String("cognito_id", cognitoID),
		zap.Int("count", len(properties)))
	return c.JSON(http.StatusOK, properties)
}
