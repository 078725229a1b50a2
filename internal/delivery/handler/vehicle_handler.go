package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/mhaberler/rikitrakiws/internal/domain"
)

// VehicleService is what the vehicle routes need from the usecase
// layer.
type VehicleService interface {
	Count(ctx context.Context, params url.Values) (int64, error)
	Create(ctx context.Context, reg domain.VehicleRegistration) (*domain.Vehicle, error)
	List(ctx context.Context, name, owner string, includeBlob bool) (map[string]domain.Vehicle, error)
	Delete(ctx context.Context, name, owner string) error
}

type VehicleHandler struct {
	vehicles VehicleService
}

func NewVehicleHandler(vehicles VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

// Count handles GET /vehicles/number. Query parameters narrow the
// count; none means total.
func (h *VehicleHandler) Count(c echo.Context) error {
	count, err := h.vehicles.Count(c.Request().Context(), c.QueryParams())
	if err != nil {
		log.WithError(err).Error("vehicle count failed")
		return c.JSON(http.StatusInsufficientStorage, domain.ErrorResponse{
			Error:       domain.ErrorDatabaseQuery,
			Description: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]int64{"numberOfVehicles": count})
}

// Create handles POST /vehicles. Validation happens before any store
// interaction; a name collision surfaces as Duplicate, never as a
// generic failure.
func (h *VehicleHandler) Create(c echo.Context) error {
	var reg domain.VehicleRegistration
	if err := c.Bind(&reg); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Error:       domain.ErrorInvalidInput,
			Description: "malformed JSON body",
		})
	}
	if err := c.Validate(&reg); err != nil {
		log.WithField("errors", err.Error()).Warn("vehicle registration rejected")
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Error:       domain.ErrorInvalidInput,
			Description: describeValidationError(err),
		})
	}

	vehicle, err := h.vehicles.Create(c.Request().Context(), reg)
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return c.JSON(http.StatusUnprocessableEntity, domain.ErrorResponse{
			Error:       domain.ErrorDuplicate,
			Description: "vehicle already exists",
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Error:       domain.ErrorInvalidInput,
			Description: err.Error(),
		})
	case err != nil:
		log.WithError(err).Error("vehicle insert failed")
		return c.JSON(http.StatusInsufficientStorage, domain.ErrorResponse{
			Error:       domain.ErrorDatabaseInsert,
			Description: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"name": vehicle.Name,
		"id":   vehicle.VehicleID,
	})
}

// List handles GET /vehicles/. The result is an object keyed by
// vehicle name; the payload field is only included with ?blob=true.
// An empty result is 204 but still carries the empty map.
func (h *VehicleHandler) List(c echo.Context) error {
	includeBlob := c.QueryParam("blob") == "true"
	vehicles, err := h.vehicles.List(c.Request().Context(), c.QueryParam("name"), c.QueryParam("owner"), includeBlob)
	if err != nil {
		log.WithError(err).Error("vehicle list failed")
		return c.JSON(http.StatusInsufficientStorage, domain.ErrorResponse{
			Error:       domain.ErrorDatabaseQuery,
			Description: err.Error(),
		})
	}

	body := map[string]map[string]domain.Vehicle{"vehicles": vehicles}
	if len(vehicles) == 0 {
		return c.JSON(http.StatusNoContent, body)
	}
	return c.JSON(http.StatusOK, body)
}

// Delete handles DELETE /vehicles/:name. Absence and foreign ownership
// both report NotFound so non-owners cannot probe for existence.
func (h *VehicleHandler) Delete(c echo.Context) error {
	err := h.vehicles.Delete(c.Request().Context(), c.Param("name"), principal(c))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, domain.ErrorResponse{
			Error:       domain.ErrorNotFound,
			Description: "vehicle not found",
		})
	case err != nil:
		log.WithError(err).Error("vehicle delete failed")
		return c.JSON(http.StatusInsufficientStorage, domain.ErrorResponse{
			Error:       domain.ErrorDatabaseDocRemove,
			Description: err.Error(),
		})
	}
	return c.NoContent(http.StatusNoContent)
}
