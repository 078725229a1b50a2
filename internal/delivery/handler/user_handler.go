package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/mhaberler/rikitrakiws/internal/domain"
)

// UserService is what the user and token routes need from the usecase
// layer.
type UserService interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	IssueToken(username string) (string, error)
	Profile(ctx context.Context, username string) (*domain.User, error)
	Register(ctx context.Context, reg domain.UserRegistration) (*domain.User, error)
	Invite(ctx context.Context, email, invitedBy string) error
}

type UserHandler struct {
	users UserService
}

func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// basicValidator backs the Basic strategy on the token endpoint. The
// verified user becomes the request principal.
func (h *UserHandler) basicValidator(username, password string, c echo.Context) (bool, error) {
	user, err := h.users.Authenticate(c.Request().Context(), username, password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	c.Set(principalKey, user.Username)
	return true, nil
}

// Token handles GET /token behind Basic auth. The signed JWT is
// returned as a plain text body, which is what the clients expect.
func (h *UserHandler) Token(c echo.Context) error {
	token, err := h.users.IssueToken(principal(c))
	if err != nil {
		log.WithError(err).Error("token signing failed")
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	return c.String(http.StatusOK, token)
}

// Me handles GET /users/me.
func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.users.Profile(c.Request().Context(), principal(c))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, domain.ErrorResponse{
			Error:       domain.ErrorNotFound,
			Description: "username not found",
		})
	case err != nil:
		log.WithError(err).Error("profile lookup failed")
		return c.JSON(http.StatusInsufficientStorage, domain.ErrorResponse{
			Error:       domain.ErrorDatabaseQuery,
			Description: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, user)
}

// Register handles POST /users.
func (h *UserHandler) Register(c echo.Context) error {
	var reg domain.UserRegistration
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

	user, err := h.users.Register(c.Request().Context(), reg)
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return c.JSON(http.StatusUnprocessableEntity, domain.ErrorResponse{
			Error:       domain.ErrorDuplicate,
			Description: "username or email already exists",
		})
	case err != nil:
		log.WithError(err).Error("user insert failed")
		return c.JSON(http.StatusInsufficientStorage, domain.ErrorResponse{
			Error:       domain.ErrorDatabaseInsert,
			Description: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"username": user.Username})
}

// Invite handles POST /users/invite for authenticated callers.
func (h *UserHandler) Invite(c echo.Context) error {
	var req domain.InvitationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Error:       domain.ErrorInvalidInput,
			Description: "malformed JSON body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Error:       domain.ErrorInvalidInput,
			Description: describeValidationError(err),
		})
	}

	err := h.users.Invite(c.Request().Context(), req.Email, principal(c))
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return c.JSON(http.StatusUnprocessableEntity, domain.ErrorResponse{
			Error:       domain.ErrorDuplicate,
			Description: "invitation already exists",
		})
	case err != nil:
		log.WithError(err).Error("invitation insert failed")
		return c.JSON(http.StatusInsufficientStorage, domain.ErrorResponse{
			Error:       domain.ErrorDatabaseInsert,
			Description: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"email": req.Email})
}
