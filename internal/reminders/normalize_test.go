package reminders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTagsDedupAndCasing(t *testing.T) {
	got := NormalizeTags([]string{"#A", "a", "B"})
	assert.Equal(t, []string{"A", "B"}, got)
}

func TestNormalizeTagsDropsEmpties(t *testing.T) {
	got := NormalizeTags([]string{"", "  ", "#", "##", " #work ", "work"})
	assert.Equal(t, []string{"work"}, got)
}

func TestNormalizeTagsIdempotent(t *testing.T) {
	inputs := [][]string{
		{"#A", "a", "B"},
		{"Work", "work", "#urgent", ""},
		nil,
	}
	for _, in := range inputs {
		once := NormalizeTags(in)
		twice := NormalizeTags(once)
		assert.Equal(t, once, twice)
	}
}

func f64(v float64) *float64 { return &v }

func TestNormalizeLocationStrict(t *testing.T) {
	tests := []struct {
		name string
		loc  *Location
	}{
		{"latitude out of range", &Location{Latitude: f64(95), Longitude: f64(10)}},
		{"longitude out of range", &Location{Latitude: f64(10), Longitude: f64(200)}},
		{"latitude without longitude", &Location{Latitude: f64(10)}},
		{"longitude without latitude", &Location{Longitude: f64(10)}},
		{"non-positive radius", &Location{Title: "Office", RadiusMeters: f64(0)}},
		{"unknown proximity", &Location{Title: "Office", Proximity: "hovering"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeLocation(tt.loc, true)
			require.Error(t, err)
		})
	}
}

func TestNormalizeLocationLenientDrops(t *testing.T) {
	loc := &Location{
		Title:        "  Office  ",
		Latitude:     f64(95), // invalid, dropped
		Longitude:    f64(10), // loses its partner, dropped too
		RadiusMeters: f64(-5), // invalid, dropped
		Proximity:    "hovering",
	}
	got, err := NormalizeLocation(loc, false)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Office", got.Title)
	assert.Nil(t, got.Latitude)
	assert.Nil(t, got.Longitude)
	assert.Nil(t, got.RadiusMeters)
	assert.Empty(t, got.Proximity)
}

func TestNormalizeLocationValid(t *testing.T) {
	loc := &Location{
		Title:        "Office",
		Latitude:     f64(52.52),
		Longitude:    f64(13.405),
		RadiusMeters: f64(100),
		Proximity:    " Arriving ",
	}
	got, err := NormalizeLocation(loc, true)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 52.52, *got.Latitude)
	assert.Equal(t, 13.405, *got.Longitude)
	assert.Equal(t, ProximityArriving, got.Proximity)
}

func TestNormalizeLocationCollapsesToNil(t *testing.T) {
	got, err := NormalizeLocation(&Location{}, true)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = NormalizeLocation(&Location{Title: "   "}, true)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Lenient mode can strip everything away.
	got, err = NormalizeLocation(&Location{Latitude: f64(95)}, false)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = NormalizeLocation(nil, true)
	require.NoError(t, err)
	assert.Nil(t, got)
}
