package handler

import (
	"context"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/mhaberler/rikitrakiws/internal/domain"
	"github.com/mhaberler/rikitrakiws/internal/infrastructure"
	"github.com/mhaberler/rikitrakiws/internal/repository"
)

var testTokens = infrastructure.NewTokenService("test-secret", "rikitrakiws", time.Hour)

func newTestServer(svc Services) *echo.Echo {
	e := echo.New()
	Register(e, testTokens, svc)
	return e
}

func bearer(t *testing.T, username string) string {
	t.Helper()
	token, err := testTokens.Generate(username)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(e *echo.Echo, method, target, auth, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// stubVehicleService records arguments and plays back canned results.
type stubVehicleService struct {
	countResult  int64
	countErr     error
	countParams  url.Values
	created      *domain.Vehicle
	createErr    error
	createCalls  int
	gotReg       domain.VehicleRegistration
	listResult   map[string]domain.Vehicle
	listErr      error
	gotListName  string
	gotListOwner string
	gotBlobFlag  bool
	deleteErr    error
	deleteCalls  int
	gotDelName   string
	gotDelOwner  string
}

func (s *stubVehicleService) Count(ctx context.Context, params url.Values) (int64, error) {
	s.countParams = params
	return s.countResult, s.countErr
}

func (s *stubVehicleService) Create(ctx context.Context, reg domain.VehicleRegistration) (*domain.Vehicle, error) {
	s.createCalls++
	s.gotReg = reg
	return s.created, s.createErr
}

func (s *stubVehicleService) List(ctx context.Context, name, owner string, includeBlob bool) (map[string]domain.Vehicle, error) {
	s.gotListName = name
	s.gotListOwner = owner
	s.gotBlobFlag = includeBlob
	return s.listResult, s.listErr
}

func (s *stubVehicleService) Delete(ctx context.Context, name, owner string) error {
	s.deleteCalls++
	s.gotDelName = name
	s.gotDelOwner = owner
	return s.deleteErr
}

type stubUserService struct {
	authUser    *domain.User
	authErr     error
	profile     *domain.User
	profileErr  error
	registered  *domain.User
	registerErr error
	inviteErr   error
	gotInvite   string
	gotInviter  string
}

func (s *stubUserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	return s.authUser, s.authErr
}

func (s *stubUserService) IssueToken(username string) (string, error) {
	return testTokens.Generate(username)
}

func (s *stubUserService) Profile(ctx context.Context, username string) (*domain.User, error) {
	return s.profile, s.profileErr
}

func (s *stubUserService) Register(ctx context.Context, reg domain.UserRegistration) (*domain.User, error) {
	return s.registered, s.registerErr
}

func (s *stubUserService) Invite(ctx context.Context, email, invitedBy string) error {
	s.gotInvite = email
	s.gotInviter = invitedBy
	return s.inviteErr
}

type stubTrackService struct {
	countResult int64
	listResult  map[string]domain.Track
	track       *domain.Track
	trackErr    error
	gpx         []byte
	gpxErr      error
	created     *domain.Track
	createErr   error
	deleteErr   error
	gotQuery    repository.TrackQuery
	gotDelID    string
	gotDelUser  string
}

func (s *stubTrackService) Count(ctx context.Context, query repository.TrackQuery) (int64, error) {
	s.gotQuery = query
	return s.countResult, nil
}

func (s *stubTrackService) List(ctx context.Context, query repository.TrackQuery) (map[string]domain.Track, error) {
	s.gotQuery = query
	return s.listResult, nil
}

func (s *stubTrackService) Get(ctx context.Context, trackID string) (*domain.Track, error) {
	return s.track, s.trackErr
}

func (s *stubTrackService) GPX(ctx context.Context, trackID string) ([]byte, error) {
	return s.gpx, s.gpxErr
}

func (s *stubTrackService) Create(ctx context.Context, reg domain.TrackRegistration, username string) (*domain.Track, error) {
	return s.created, s.createErr
}

func (s *stubTrackService) Delete(ctx context.Context, trackID, username string) error {
	s.gotDelID = trackID
	s.gotDelUser = username
	return s.deleteErr
}

func defaultServices(vehicles *stubVehicleService) Services {
	return Services{
		Users:    &stubUserService{},
		Vehicles: vehicles,
		Tracks:   &stubTrackService{},
	}
}

func checkStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body: %s", rec.Body.String())
}
