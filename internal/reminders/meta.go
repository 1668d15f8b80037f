package reminders

import (
	"encoding/base64"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// Metadata travels inside the item body as a trailing sentinel-wrapped
// token: base64url of the JSON-encoded Metadata. Everything before the
// token is the user's notes. Any other consumer of the raw body can
// ignore the token; it survives edits to the preceding text.
const (
	metaPrefix = "[[mcp-reminder-meta:"
	metaSuffix = "]]"
)

var metaTokenRE = regexp.MustCompile(`\[\[mcp-reminder-meta:([A-Za-z0-9_-]+)\]\]\s*$`)

// encodeMetadata normalizes the metadata leniently and returns the
// sentinel-wrapped token, or "" when nothing survives normalization.
func encodeMetadata(m Metadata) string {
	norm := Metadata{Tags: NormalizeTags(m.Tags)}
	norm.Location, _ = NormalizeLocation(m.Location, false)
	if norm.isEmpty() {
		return ""
	}
	payload, err := json.Marshal(norm)
	if err != nil {
		// Metadata is plain data; this cannot happen.
		return ""
	}
	token := base64.RawURLEncoding.EncodeToString(payload)
	return metaPrefix + token + metaSuffix
}

// composeBody combines the user's notes and the metadata token into the
// stored body. Without metadata the notes pass through unchanged.
func composeBody(notes string, m Metadata) string {
	marker := encodeMetadata(m)
	if marker == "" {
		return notes
	}
	if notes == "" {
		return marker
	}
	return notes + "\n\n" + marker
}

// decodeBody splits a stored body into notes and metadata. It never fails:
// a missing marker means the whole body is notes, and a corrupt token is
// logged and degraded to the same.
func decodeBody(body string) (string, Metadata) {
	if body == "" {
		return "", Metadata{}
	}

	loc := metaTokenRE.FindStringSubmatchIndex(body)
	if loc == nil {
		return body, Metadata{}
	}
	token := body[loc[2]:loc[3]]

	payload, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		log.Warn().Err(err).Msg("discarding malformed reminder metadata token")
		return body, Metadata{}
	}
	var m Metadata
	if err := json.Unmarshal(payload, &m); err != nil {
		log.Warn().Err(err).Msg("discarding malformed reminder metadata payload")
		return body, Metadata{}
	}

	m.Tags = NormalizeTags(m.Tags)
	m.Location, _ = NormalizeLocation(m.Location, false)

	notes := strings.TrimRight(body[:loc[0]], " \t\r\n")
	return notes, m
}
