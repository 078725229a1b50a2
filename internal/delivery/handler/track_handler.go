package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/mhaberler/rikitrakiws/internal/domain"
	"github.com/mhaberler/rikitrakiws/internal/repository"
)

// TrackService is what the track routes need from the usecase layer.
type TrackService interface {
	Count(ctx context.Context, query repository.TrackQuery) (int64, error)
	List(ctx context.Context, query repository.TrackQuery) (map[string]domain.Track, error)
	Get(ctx context.Context, trackID string) (*domain.Track, error)
	GPX(ctx context.Context, trackID string) ([]byte, error)
	Create(ctx context.Context, reg domain.TrackRegistration, username string) (*domain.Track, error)
	Delete(ctx context.Context, trackID, username string) error
}

type TrackHandler struct {
	tracks TrackService
}

func NewTrackHandler(tracks TrackService) *TrackHandler {
	return &TrackHandler{tracks: tracks}
}

func (h *TrackHandler) Count(c echo.Context) error {
	query := repository.ParseTrackQuery(c.QueryParams())
	count, err := h.tracks.Count(c.Request().Context(), query)
	if err != nil {
		log.WithError(err).Error("track count failed")
		return c.JSON(http.StatusInsufficientStorage, domain.ErrorResponse{
			Error:       domain.ErrorDatabaseQuery,
			Description: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]int64{"numberOfTracks": count})
}

// List handles GET /tracks/ with the proximity and filter parameters,
// returning an object keyed by trackId.
func (h *TrackHandler) List(c echo.Context) error {
	query := repository.ParseTrackQuery(c.QueryParams())
	tracks, err := h.tracks.List(c.Request().Context(), query)
	if err != nil {
		log.WithError(err).Error("track list failed")
		return c.JSON(http.StatusInsufficientStorage, domain.ErrorResponse{
			Error:       domain.ErrorDatabaseQuery,
			Description: err.Error(),
		})
	}

	body := map[string]map[string]domain.Track{"tracks": tracks}
	if len(tracks) == 0 {
		return c.JSON(http.StatusNoContent, body)
	}
	return c.JSON(http.StatusOK, body)
}

func (h *TrackHandler) Get(c echo.Context) error {
	track, err := h.tracks.Get(c.Request().Context(), c.Param("trackId"))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, domain.ErrorResponse{
			Error:       domain.ErrorNotFound,
			Description: "track not found",
		})
	case err != nil:
		log.WithError(err).Error("track lookup failed")
		return c.JSON(http.StatusInsufficientStorage, domain.ErrorResponse{
			Error:       domain.ErrorDatabaseQuery,
			Description: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, track)
}

// GPX handles GET /tracks/:trackId/GPX, serving the raw GPX document.
func (h *TrackHandler) GPX(c echo.Context) error {
	gpx, err := h.tracks.GPX(c.Request().Context(), c.Param("trackId"))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, domain.ErrorResponse{
			Error:       domain.ErrorNotFound,
			Description: "track not found",
		})
	case err != nil:
		log.WithError(err).Error("gpx lookup failed")
		return c.JSON(http.StatusInsufficientStorage, domain.ErrorResponse{
			Error:       domain.ErrorDatabaseQuery,
			Description: err.Error(),
		})
	}
	return c.Blob(http.StatusOK, "application/gpx+xml", gpx)
}

func (h *TrackHandler) Create(c echo.Context) error {
	var reg domain.TrackRegistration
	if err := c.Bind(&reg); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Error:       domain.ErrorInvalidInput,
			Description: "malformed JSON body",
		})
	}
	if err := c.Validate(&reg); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Error:       domain.ErrorInvalidInput,
			Description: describeValidationError(err),
		})
	}

	track, err := h.tracks.Create(c.Request().Context(), reg, principal(c))
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return c.JSON(http.StatusUnprocessableEntity, domain.ErrorResponse{
			Error:       domain.ErrorDuplicate,
			Description: "track already exists",
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Error:       domain.ErrorInvalidInput,
			Description: err.Error(),
		})
	case err != nil:
		log.WithError(err).Error("track insert failed")
		return c.JSON(http.StatusInsufficientStorage, domain.ErrorResponse{
			Error:       domain.ErrorDatabaseInsert,
			Description: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"trackId": track.TrackID})
}

func (h *TrackHandler) Delete(c echo.Context) error {
	err := h.tracks.Delete(c.Request().Context(), c.Param("trackId"), principal(c))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, domain.ErrorResponse{
			Error:       domain.ErrorNotFound,
			Description: "track not found",
		})
	case err != nil:
		log.WithError(err).Error("track delete failed")
		return c.JSON(http.StatusInsufficientStorage, domain.ErrorResponse{
			Error:       domain.ErrorDatabaseDocRemove,
			Description: err.Error(),
		})
	}
	return c.NoContent(http.StatusNoContent)
}
