package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultActivity is assumed for tracks stored without a trackType.
const DefaultActivity = "Hiking"

// GeoJSON is the indexed location geometry of a track. Coordinates are
// longitude first, matching the 2dsphere index expectations.
type GeoJSON struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// Track is a record in the tracks collection, unique by trackId.
// Legacy records predate trackType, an absent value means Hiking.
type Track struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	TrackID     string             `bson:"trackId" json:"trackId"`
	Name        string             `bson:"trackName" json:"trackName"`
	Description string             `bson:"trackDescription,omitempty" json:"trackDescription,omitempty"`
	GeoJSON     *GeoJSON           `bson:"trackGeoJson,omitempty" json:"trackGeoJson,omitempty"`
	Level       string             `bson:"trackLevel,omitempty" json:"trackLevel,omitempty"`
	Type        string             `bson:"trackType,omitempty" json:"trackType,omitempty"`
	RegionTags  []string           `bson:"trackRegionTags,omitempty" json:"trackRegionTags,omitempty"`
	Fav         bool               `bson:"trackFav,omitempty" json:"trackFav,omitempty"`
	GPX         []byte             `bson:"trackGPXBlob,omitempty" json:"-"`
	Username    string             `bson:"username" json:"username"`
	CreatedDate time.Time          `bson:"createdDate" json:"createdDate"`
}

// TrackRegistration is the untrusted creation body.
type TrackRegistration struct {
	Name        string   `json:"trackName" validate:"required"`
	Description string   `json:"trackDescription"`
	GeoJSON     *GeoJSON `json:"trackGeoJson"`
	Level       string   `json:"trackLevel"`
	Type        string   `json:"trackType"`
	RegionTags  []string `json:"trackRegionTags"`
	GPX         string   `json:"trackGPX" validate:"omitempty,base64"`
}

// Picture is a record in the pictures collection, unique by
// (trackId, picIndex).
type Picture struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	TrackID  string             `bson:"trackId" json:"trackId"`
	PicIndex int                `bson:"picIndex" json:"picIndex"`
	Caption  string             `bson:"picCaption,omitempty" json:"picCaption,omitempty"`
	Blob     []byte             `bson:"picBlob,omitempty" json:"-"`
}
