package db

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used across the service.
const (
	UsersCollection       = "users"
	InvitationsCollection = "invitations"
	PicturesCollection    = "pictures"
	TracksCollection      = "tracks"
	VehiclesCollection    = "vehicles"
)

const namespaceExistsCode = 48

type indexSpec struct {
	name   string
	keys   bson.D
	unique bool
}

var requiredIndexes = map[string][]indexSpec{
	UsersCollection: {
		{name: "username_unique", keys: bson.D{{Key: "username", Value: 1}}, unique: true},
		{name: "email_unique", keys: bson.D{{Key: "email", Value: 1}}, unique: true},
	},
	InvitationsCollection: {
		{name: "email_unique", keys: bson.D{{Key: "email", Value: 1}}, unique: true},
	},
	PicturesCollection: {
		{name: "trackId_picIndex", keys: bson.D{{Key: "trackId", Value: 1}, {Key: "picIndex", Value: 1}}, unique: true},
	},
	TracksCollection: {
		{name: "trackId_unique", keys: bson.D{{Key: "trackId", Value: 1}}, unique: true},
		{name: "trackGeoJson_idx", keys: bson.D{{Key: "trackGeoJson", Value: "2dsphere"}}},
		{name: "createdDate_idx", keys: bson.D{{Key: "createdDate", Value: 1}}},
		{name: "username_idx", keys: bson.D{{Key: "username", Value: 1}}},
	},
	VehiclesCollection: {
		{name: "name_unique", keys: bson.D{{Key: "name", Value: 1}}, unique: true},
	},
}

// EnsureIndexes creates the collections and indexes the service relies
// on for uniqueness and query support. Existing indexes are left alone,
// running this repeatedly is a no-op.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	for _, name := range []string{UsersCollection, InvitationsCollection, PicturesCollection, TracksCollection, VehiclesCollection} {
		if err := createCollection(ctx, database, name); err != nil {
			return err
		}
		if err := ensureCollectionIndexes(ctx, database.Collection(name), requiredIndexes[name]); err != nil {
			return err
		}
	}
	return nil
}

func createCollection(ctx context.Context, database *mongo.Database, name string) error {
	err := database.CreateCollection(ctx, name)
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == namespaceExistsCode {
		return nil
	}
	return err
}

func ensureCollectionIndexes(ctx context.Context, coll *mongo.Collection, specs []indexSpec) error {
	existing, err := listIndexNames(ctx, coll)
	if err != nil {
		return err
	}
	for _, spec := range specs {
		if existing[spec.name] {
			continue
		}
		log.WithFields(log.Fields{
			"collection": coll.Name(),
			"index":      spec.name,
		}).Info("creating index")

		opts := options.Index().SetName(spec.name)
		if spec.unique {
			opts.SetUnique(true)
		}
		if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: spec.keys, Options: opts}); err != nil {
			return err
		}
	}
	return nil
}

func listIndexNames(ctx context.Context, coll *mongo.Collection) (map[string]bool, error) {
	cursor, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	names := make(map[string]bool)
	for cursor.Next(ctx) {
		var idx struct {
			Name string `bson:"name"`
		}
		if err := cursor.Decode(&idx); err != nil {
			return nil, err
		}
		names[idx.Name] = true
	}
	return names, cursor.Err()
}
