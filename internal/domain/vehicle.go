package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vehicle is a record in the vehicles collection. name is the natural
// identifier and unique at the database level; the generated vehicleId
// is returned to the caller on creation. Ownership never changes after
// creation, the only transitions are create and delete.
type Vehicle struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	VehicleID   string             `bson:"vehicleId" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Type        string             `bson:"type,omitempty" json:"type,omitempty"`
	Description string             `bson:"description" json:"description"`
	Owner       string             `bson:"owner" json:"owner"`
	Blob        []byte             `bson:"blob,omitempty" json:"blob,omitempty"`
	BlobType    string             `bson:"blobType,omitempty" json:"blobType,omitempty"`
	CreatedDate time.Time          `bson:"createdDate" json:"createdDate"`
}

// VehicleRegistration is the untrusted creation body. The payload comes
// in base64 and is stored decoded; blobtype falls back to type when not
// given, one of the two must be present.
type VehicleRegistration struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Owner       string `json:"owner" validate:"required"`
	Blob        string `json:"blob" validate:"required,base64"`
	BlobType    string `json:"blobtype" validate:"required_without=Type"`
	Type        string `json:"type" validate:"required_without=BlobType"`
}
