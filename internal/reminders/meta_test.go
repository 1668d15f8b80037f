package reminders

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeDecodeRoundTrip(t *testing.T) {
	loc := &Location{
		Title:        "Office",
		Latitude:     f64(52.52),
		Longitude:    f64(13.405),
		RadiusMeters: f64(100),
		Proximity:    ProximityLeaving,
	}

	tests := []struct {
		name  string
		notes string
	}{
		{"no notes", ""},
		{"simple notes", "buy milk"},
		{"multi-line notes", "line one\nline two\n\nline four"},
		{"notes with trailing newline", "hello\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := composeBody(tt.notes, Metadata{
				Tags:     []string{"Work", "#urgent", "work"},
				Location: loc,
			})

			notes, meta := decodeBody(body)
			assert.Equal(t, strings.TrimRight(tt.notes, " \t\r\n"), notes)
			assert.Equal(t, []string{"Work", "urgent"}, meta.Tags)

			wantLoc, err := NormalizeLocation(loc, false)
			require.NoError(t, err)
			assert.Equal(t, wantLoc, meta.Location)
		})
	}
}

func TestComposeBodyWithoutMetadata(t *testing.T) {
	assert.Equal(t, "just notes", composeBody("just notes", Metadata{}))
	assert.Equal(t, "", composeBody("", Metadata{}))

	// Invalid metadata is normalized leniently before encoding; nothing
	// survives, so the notes pass through untouched.
	assert.Equal(t, "notes", composeBody("notes", Metadata{
		Location: &Location{Latitude: f64(999)},
	}))
}

func TestComposeBodyMarkerOnly(t *testing.T) {
	body := composeBody("", Metadata{Tags: []string{"a"}})
	assert.True(t, strings.HasPrefix(body, metaPrefix))
	assert.True(t, strings.HasSuffix(body, metaSuffix))

	notes, meta := decodeBody(body)
	assert.Empty(t, notes)
	assert.Equal(t, []string{"a"}, meta.Tags)
}

func TestDecodeBodyWithoutMarker(t *testing.T) {
	notes, meta := decodeBody("plain notes\nwith lines")
	assert.Equal(t, "plain notes\nwith lines", notes)
	assert.Empty(t, meta.Tags)
	assert.Nil(t, meta.Location)

	notes, meta = decodeBody("")
	assert.Empty(t, notes)
	assert.True(t, meta.isEmpty())
}

func TestDecodeBodyCorruptToken(t *testing.T) {
	// Token in the right alphabet but not decodable base64.
	bad := "notes here\n\n" + metaPrefix + "abcde" + metaSuffix
	notes, meta := decodeBody(bad)
	assert.Equal(t, bad, notes)
	assert.True(t, meta.isEmpty())

	// Valid base64 wrapping a payload that is not JSON.
	garbage := base64.RawURLEncoding.EncodeToString([]byte("not json at all"))
	bad = "other notes\n\n" + metaPrefix + garbage + metaSuffix
	notes, meta = decodeBody(bad)
	assert.Equal(t, bad, notes)
	assert.True(t, meta.isEmpty())
}

func TestDecodeBodyLenientOnStoredFields(t *testing.T) {
	// A well-formed token whose location is out of range: the token parses,
	// lenient normalization drops the bad fields, tags survive.
	token := base64.RawURLEncoding.EncodeToString(
		[]byte(`{"tags":["work"],"location":{"latitude":95,"longitude":10}}`))
	body := "notes\n\n" + metaPrefix + token + metaSuffix

	notes, meta := decodeBody(body)
	assert.Equal(t, "notes", notes)
	assert.Equal(t, []string{"work"}, meta.Tags)
	assert.Nil(t, meta.Location)
}

func TestMetadataSurvivesNotesEdit(t *testing.T) {
	body := composeBody("original", Metadata{Tags: []string{"keep"}})
	edited := strings.Replace(body, "original", "edited by a human\nover two lines", 1)

	notes, meta := decodeBody(edited)
	assert.Equal(t, "edited by a human\nover two lines", notes)
	assert.Equal(t, []string{"keep"}, meta.Tags)
}

func TestEncodeMetadataEmpty(t *testing.T) {
	assert.Empty(t, encodeMetadata(Metadata{}))
	assert.Empty(t, encodeMetadata(Metadata{Tags: []string{"", "#"}}))
	assert.Empty(t, encodeMetadata(Metadata{Location: &Location{}}))
}
