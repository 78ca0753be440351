package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Prashant-2024/Rental-App/internal/repository"
	"github.com/labstack/echo/v4"
)

// errValidation marks request input the handler refuses
var errValidation = errors.New("validation failed")

// statusFor maps a data-access error onto an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, errValidation):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// message writes the {"message": ...} error body
func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"message": msg})
}

// internalError writes a 500 carrying the underlying error text
func internalError(c echo.Context, action string, err error) error {
	return message(c, http.StatusInternalServerError, fmt.Sprintf("Error %s: %s", action, err.Error()))
}

func parsePropertyID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("property id %q: %w", raw, errValidation)
	}
	return uint(id), nil
}

// profileRequest is the body of tenant and manager create/update calls
type profileRequest struct {
	CognitoID   string `json:"cognitoId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

func (r profileRequest) validateCreate() error {
	if r.CognitoID == "" || r.Name == "" || r.Email == "" {
		return fmt.Errorf("cognitoId, name and email are required: %w", errValidation)
	}
	return nil
}

func (r profileRequest) update() repository.ProfileUpdate {
	return repository.ProfileUpdate{
		Name:        r.Name,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
	}
}
