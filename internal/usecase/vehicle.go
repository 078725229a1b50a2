package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mhaberler/rikitrakiws/internal/domain"
)

// VehicleStore is the slice of the vehicles collection the usecase
// needs. Uniqueness of the name field is enforced by the store index,
// not here.
type VehicleStore interface {
	Count(ctx context.Context, filter bson.M) (int64, error)
	Insert(ctx context.Context, vehicle *domain.Vehicle) error
	List(ctx context.Context, filter bson.M, includeBlob bool) ([]domain.Vehicle, error)
	DeleteOwned(ctx context.Context, name, owner string) error
}

type VehicleUsecase struct {
	store VehicleStore
}

func NewVehicleUsecase(store VehicleStore) *VehicleUsecase {
	return &VehicleUsecase{store: store}
}

// Count counts vehicles matching the given query parameters as
// equality conditions; no parameters means total count.
func (uc *VehicleUsecase) Count(ctx context.Context, params url.Values) (int64, error) {
	filter := bson.M{}
	for key := range params {
		filter[key] = params.Get(key)
	}
	return uc.store.Count(ctx, filter)
}

// Create builds a vehicle from a validated registration and inserts
// it. The creation timestamp and id are server-assigned; the blob is
// stored decoded.
func (uc *VehicleUsecase) Create(ctx context.Context, reg domain.VehicleRegistration) (*domain.Vehicle, error) {
	blob, err := base64.StdEncoding.DecodeString(reg.Blob)
	if err != nil {
		return nil, fmt.Errorf("%w: blob is not valid base64", domain.ErrInvalidInput)
	}
	blobType := reg.BlobType
	if blobType == "" {
		blobType = reg.Type
	}

	vehicle := &domain.Vehicle{
		VehicleID:   uuid.NewString(),
		Name:        reg.Name,
		Type:        reg.Type,
		Description: reg.Description,
		Owner:       reg.Owner,
		Blob:        blob,
		BlobType:    blobType,
		CreatedDate: time.Now(),
	}
	if err := uc.store.Insert(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// List returns vehicles keyed by name, optionally narrowed to an exact
// name or owner. Keying by name is safe because name is unique.
func (uc *VehicleUsecase) List(ctx context.Context, name, owner string, includeBlob bool) (map[string]domain.Vehicle, error) {
	filter := bson.M{}
	if name != "" {
		filter["name"] = name
	}
	if owner != "" {
		filter["owner"] = owner
	}

	vehicles, err := uc.store.List(ctx, filter, includeBlob)
	if err != nil {
		return nil, err
	}
	result := make(map[string]domain.Vehicle, len(vehicles))
	for _, v := range vehicles {
		result[v.Name] = v
	}
	return result, nil
}

func (uc *VehicleUsecase) Delete(ctx context.Context, name, owner string) error {
	return uc.store.DeleteOwned(ctx, name, owner)
}
