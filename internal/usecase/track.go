package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mhaberler/rikitrakiws/internal/domain"
	"github.com/mhaberler/rikitrakiws/internal/repository"
)

type TrackStore interface {
	Count(ctx context.Context, filter bson.M) (int64, error)
	List(ctx context.Context, filter bson.M) ([]domain.Track, error)
	FindByTrackID(ctx context.Context, trackID string) (*domain.Track, error)
	GPX(ctx context.Context, trackID string) ([]byte, error)
	Insert(ctx context.Context, track *domain.Track) error
	DeleteOwned(ctx context.Context, trackID, username string) error
}

type TrackUsecase struct {
	store TrackStore
}

func NewTrackUsecase(store TrackStore) *TrackUsecase {
	return &TrackUsecase{store: store}
}

func (uc *TrackUsecase) Count(ctx context.Context, query repository.TrackQuery) (int64, error) {
	return uc.store.Count(ctx, query.Filter())
}

// List returns tracks keyed by trackId, newest first, GPX omitted.
func (uc *TrackUsecase) List(ctx context.Context, query repository.TrackQuery) (map[string]domain.Track, error) {
	tracks, err := uc.store.List(ctx, query.Filter())
	if err != nil {
		return nil, err
	}
	result := make(map[string]domain.Track, len(tracks))
	for _, t := range tracks {
		result[t.TrackID] = t
	}
	return result, nil
}

func (uc *TrackUsecase) Get(ctx context.Context, trackID string) (*domain.Track, error) {
	return uc.store.FindByTrackID(ctx, trackID)
}

func (uc *TrackUsecase) GPX(ctx context.Context, trackID string) ([]byte, error) {
	return uc.store.GPX(ctx, trackID)
}

// Create builds a track from a validated registration. The track is
// always attributed to the authenticated caller.
func (uc *TrackUsecase) Create(ctx context.Context, reg domain.TrackRegistration, username string) (*domain.Track, error) {
	var gpx []byte
	if reg.GPX != "" {
		decoded, err := base64.StdEncoding.DecodeString(reg.GPX)
		if err != nil {
			return nil, fmt.Errorf("%w: trackGPX is not valid base64", domain.ErrInvalidInput)
		}
		gpx = decoded
	}

	track := &domain.Track{
		TrackID:     uuid.NewString(),
		Name:        reg.Name,
		Description: reg.Description,
		GeoJSON:     reg.GeoJSON,
		Level:       reg.Level,
		Type:        reg.Type,
		RegionTags:  reg.RegionTags,
		GPX:         gpx,
		Username:    username,
		CreatedDate: time.Now(),
	}
	if err := uc.store.Insert(ctx, track); err != nil {
		return nil, err
	}
	return track, nil
}

func (uc *TrackUsecase) Delete(ctx context.Context, trackID, username string) error {
	return uc.store.DeleteOwned(ctx, trackID, username)
}
