package repository

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mhaberler/rikitrakiws/internal/domain"
)

// NearQuery is a proximity constraint on the track location index.
// Coordinates are stored longitude first.
type NearQuery struct {
	Longitude   float64
	Latitude    float64
	MaxDistance int
}

// TrackQuery is the typed form of the track list/count query
// parameters. The zero value matches everything.
type TrackQuery struct {
	Near          *NearQuery
	Username      string
	FavoritesOnly bool
	Levels        []string
	Activities    []string
	Country       string
	Region        string
}

// trackFilterParams is the shape of the ?filter= JSON parameter.
type trackFilterParams struct {
	Username string `json:"username"`
	TrackFav bool   `json:"trackFav"`
	Level    string `json:"level"`
	Activity string `json:"activity"`
	Country  string `json:"country"`
	Region   string `json:"region"`
}

// ParseTrackQuery builds a TrackQuery from request query parameters.
// Malformed pieces (bad coordinates, unparseable filter JSON) are
// dropped rather than rejected, matching the permissive behavior the
// map client relies on.
func ParseTrackQuery(values url.Values) TrackQuery {
	var q TrackQuery

	if latlng := values.Get("latlng"); latlng != "" {
		q.Near = parseNear(latlng, values.Get("distance"))
	}

	raw := values.Get("filter")
	if raw == "" {
		return q
	}
	var params trackFilterParams
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return q
	}
	q.Username = params.Username
	q.FavoritesOnly = params.TrackFav
	q.Levels = splitList(params.Level)
	q.Activities = splitList(params.Activity)
	q.Country = params.Country
	q.Region = params.Region
	return q
}

func parseNear(latlng, distance string) *NearQuery {
	parts := strings.Split(latlng, ",")
	if len(parts) != 2 {
		return nil
	}
	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil
	}
	if lng <= -180 || lng >= 180 || lat <= -90 || lat >= 90 {
		return nil
	}
	d, _ := strconv.Atoi(distance)
	if d < 0 {
		d = 0
	}
	return &NearQuery{Longitude: lng, Latitude: lat, MaxDistance: d}
}

func splitList(csv string) []string {
	if csv == "" {
		return nil
	}
	return strings.Split(csv, ",")
}

// Filter renders the query as a mongo filter document.
func (q TrackQuery) Filter() bson.M {
	filter := bson.M{}

	if q.Near != nil {
		filter["trackGeoJson"] = bson.M{
			"$near": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": []float64{q.Near.Longitude, q.Near.Latitude},
				},
				"$maxDistance": q.Near.MaxDistance,
			},
		}
	}
	if q.Username != "" {
		// prefix match
		filter["username"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(q.Username)}
	}
	if q.FavoritesOnly {
		filter["trackFav"] = true
	}

	var and []bson.M
	if len(q.Levels) > 0 {
		or := make([]bson.M, 0, len(q.Levels))
		for _, level := range q.Levels {
			or = append(or, bson.M{"trackLevel": level})
		}
		and = append(and, bson.M{"$or": or})
	}
	if len(q.Activities) > 0 {
		var or []bson.M
		for _, activity := range q.Activities {
			if activity == domain.DefaultActivity {
				// legacy records have no trackType at all
				or = append(or, bson.M{"trackType": bson.M{"$exists": false}})
			}
			or = append(or, bson.M{"trackType": activity})
		}
		and = append(and, bson.M{"$or": or})
	}
	if len(and) > 0 {
		filter["$and"] = and
	}

	if q.Country != "" {
		filter["trackRegionTags"] = bson.M{"$in": []string{q.Country}}
	}
	if q.Region != "" {
		filter["trackRegionTags"] = bson.M{"$in": []string{q.Region}}
	}
	return filter
}
