package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/mhaberler/rikitrakiws/internal/db"
	"github.com/mhaberler/rikitrakiws/internal/domain"
)

// MaxTracks caps every list query.
const MaxTracks = 500

type TrackRepo struct {
	collection *mongo.Collection
}

func NewTrackRepo(database *mongo.Database) *TrackRepo {
	opts := options.Collection().SetWriteConcern(writeconcern.W1())
	return &TrackRepo{
		collection: database.Collection(db.TracksCollection, opts),
	}
}

func (r *TrackRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return r.collection.CountDocuments(ctx, filter)
}

// List returns at most MaxTracks records, newest first, without the
// GPX payload.
func (r *TrackRepo) List(ctx context.Context, filter bson.M) ([]domain.Track, error) {
	if filter == nil {
		filter = bson.M{}
	}
	opts := options.Find().
		SetLimit(MaxTracks).
		SetSort(bson.D{{Key: "createdDate", Value: -1}}).
		SetProjection(bson.M{"trackGPXBlob": 0})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tracks []domain.Track
	if err := cursor.All(ctx, &tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}

func (r *TrackRepo) FindByTrackID(ctx context.Context, trackID string) (*domain.Track, error) {
	var track domain.Track
	err := r.collection.FindOne(ctx, bson.M{"trackId": trackID},
		options.FindOne().SetProjection(bson.M{"trackGPXBlob": 0})).Decode(&track)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &track, nil
}

// GPX fetches only the GPX payload of a track.
func (r *TrackRepo) GPX(ctx context.Context, trackID string) ([]byte, error) {
	var track domain.Track
	err := r.collection.FindOne(ctx, bson.M{"trackId": trackID},
		options.FindOne().SetProjection(bson.M{"trackGPXBlob": 1})).Decode(&track)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(track.GPX) == 0 {
		return nil, domain.ErrNotFound
	}
	return track.GPX, nil
}

func (r *TrackRepo) Insert(ctx context.Context, track *domain.Track) error {
	_, err := r.collection.InsertOne(ctx, track)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicate
	}
	return err
}

// DeleteOwned mirrors the vehicle delete semantics: one combined match
// on id and owner, absence and foreign ownership indistinguishable.
func (r *TrackRepo) DeleteOwned(ctx context.Context, trackID, username string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{
		"$and": []bson.M{{"trackId": trackID}, {"username": username}},
	})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
