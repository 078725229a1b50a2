package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/mhaberler/rikitrakiws/internal/db"
	"github.com/mhaberler/rikitrakiws/internal/domain"
)

// MaxVehicles caps every list query.
const MaxVehicles = 500

type VehicleRepo struct {
	collection *mongo.Collection
}

func NewVehicleRepo(database *mongo.Database) *VehicleRepo {
	// all writes require store acknowledgment
	opts := options.Collection().SetWriteConcern(writeconcern.W1())
	return &VehicleRepo{
		collection: database.Collection(db.VehiclesCollection, opts),
	}
}

func (r *VehicleRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return r.collection.CountDocuments(ctx, filter)
}

func (r *VehicleRepo) Insert(ctx context.Context, vehicle *domain.Vehicle) error {
	_, err := r.collection.InsertOne(ctx, vehicle)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicate
	}
	return err
}

// List returns at most MaxVehicles records, newest first. The binary
// payload is projected away unless explicitly requested.
func (r *VehicleRepo) List(ctx context.Context, filter bson.M, includeBlob bool) ([]domain.Vehicle, error) {
	if filter == nil {
		filter = bson.M{}
	}
	opts := options.Find().
		SetLimit(MaxVehicles).
		SetSort(bson.D{{Key: "createdDate", Value: -1}})
	if !includeBlob {
		opts.SetProjection(bson.M{"blob": 0})
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vehicles []domain.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// DeleteOwned removes the named vehicle only when it belongs to owner.
// Name and owner are matched in a single query so there is no window
// between the ownership check and the delete; a miss on either
// condition reports domain.ErrNotFound.
func (r *VehicleRepo) DeleteOwned(ctx context.Context, name, owner string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{
		"$and": []bson.M{{"name": name}, {"owner": owner}},
	})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
