package repository

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseTrackQueryNear(t *testing.T) {
	tests := []struct {
		name     string
		latlng   string
		distance string
		want     *NearQuery
	}{
		{"valid", "47.07,15.43", "5000", &NearQuery{Longitude: 15.43, Latitude: 47.07, MaxDistance: 5000}},
		{"no distance", "47.07,15.43", "", &NearQuery{Longitude: 15.43, Latitude: 47.07}},
		{"negative distance clamped", "47.07,15.43", "-10", &NearQuery{Longitude: 15.43, Latitude: 47.07}},
		{"latitude out of range", "91,15.43", "100", nil},
		{"longitude out of range", "47.07,181", "100", nil},
		{"not a pair", "47.07", "100", nil},
		{"not numeric", "a,b", "100", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			values := url.Values{"latlng": {tc.latlng}}
			if tc.distance != "" {
				values.Set("distance", tc.distance)
			}
			q := ParseTrackQuery(values)
			assert.Equal(t, tc.want, q.Near)
		})
	}
}

func TestParseTrackQueryFilterJSON(t *testing.T) {
	values := url.Values{"filter": {`{"username":"rik","trackFav":true,"level":"easy,moderate","activity":"Hiking,Skiing","country":"Austria"}`}}
	q := ParseTrackQuery(values)

	assert.Equal(t, "rik", q.Username)
	assert.True(t, q.FavoritesOnly)
	assert.Equal(t, []string{"easy", "moderate"}, q.Levels)
	assert.Equal(t, []string{"Hiking", "Skiing"}, q.Activities)
	assert.Equal(t, "Austria", q.Country)
}

func TestParseTrackQueryBadFilterJSONIgnored(t *testing.T) {
	q := ParseTrackQuery(url.Values{"filter": {`{not json`}})
	assert.Equal(t, TrackQuery{}, q)
}

func TestTrackQueryFilterEmpty(t *testing.T) {
	assert.Equal(t, bson.M{}, TrackQuery{}.Filter())
}

func TestTrackQueryFilterNear(t *testing.T) {
	filter := TrackQuery{Near: &NearQuery{Longitude: 15.43, Latitude: 47.07, MaxDistance: 5000}}.Filter()

	geo, ok := filter["trackGeoJson"].(bson.M)
	require.True(t, ok)
	near, ok := geo["$near"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 5000, near["$maxDistance"])
	geometry, ok := near["$geometry"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, []float64{15.43, 47.07}, geometry["coordinates"])
}

func TestTrackQueryFilterUsernamePrefix(t *testing.T) {
	filter := TrackQuery{Username: "rik"}.Filter()
	assert.Equal(t, primitive.Regex{Pattern: "^rik"}, filter["username"])
}

func TestTrackQueryFilterLevelsAndActivities(t *testing.T) {
	filter := TrackQuery{
		Levels:     []string{"easy", "hard"},
		Activities: []string{"Skiing"},
	}.Filter()

	and, ok := filter["$and"].([]bson.M)
	require.True(t, ok)
	require.Len(t, and, 2)
	assert.Equal(t, []bson.M{{"trackLevel": "easy"}, {"trackLevel": "hard"}}, and[0]["$or"])
	assert.Equal(t, []bson.M{{"trackType": "Skiing"}}, and[1]["$or"])
}

func TestTrackQueryFilterHikingMatchesMissingType(t *testing.T) {
	filter := TrackQuery{Activities: []string{"Hiking"}}.Filter()

	and := filter["$and"].([]bson.M)
	require.Len(t, and, 1)
	assert.Equal(t, []bson.M{
		{"trackType": bson.M{"$exists": false}},
		{"trackType": "Hiking"},
	}, and[0]["$or"])
}

func TestTrackQueryFilterRegionOverridesCountry(t *testing.T) {
	filter := TrackQuery{Country: "Austria", Region: "Styria"}.Filter()
	assert.Equal(t, bson.M{"$in": []string{"Styria"}}, filter["trackRegionTags"])
}

func TestTrackQueryFilterFavorites(t *testing.T) {
	filter := TrackQuery{FavoritesOnly: true}.Filter()
	assert.Equal(t, true, filter["trackFav"])
}
