package reminders

import (
	"fmt"
	"strings"
)

// NormalizeTags canonicalizes a tag list: trim, strip leading '#', drop
// empties, dedup case-insensitively keeping the first-seen casing and order.
// Idempotent.
func NormalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		t = strings.TrimLeft(t, "#")
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

// NormalizeLocation validates and canonicalizes a location. In strict mode
// any invalid field is an error; in lenient mode invalid fields are dropped
// silently. Latitude and longitude must co-occur. A location with no
// surviving field collapses to nil.
func NormalizeLocation(loc *Location, strict bool) (*Location, error) {
	if loc == nil {
		return nil, nil
	}

	out := &Location{}

	if title := strings.TrimSpace(loc.Title); title != "" {
		out.Title = title
	}

	lat := loc.Latitude
	if lat != nil && (*lat < -90 || *lat > 90) {
		if strict {
			return nil, fmt.Errorf("latitude %v out of range [-90, 90]", *lat)
		}
		lat = nil
	}
	lon := loc.Longitude
	if lon != nil && (*lon < -180 || *lon > 180) {
		if strict {
			return nil, fmt.Errorf("longitude %v out of range [-180, 180]", *lon)
		}
		lon = nil
	}
	if (lat == nil) != (lon == nil) {
		if strict {
			return nil, fmt.Errorf("latitude and longitude must be given together")
		}
		lat, lon = nil, nil
	}
	out.Latitude = lat
	out.Longitude = lon

	if r := loc.RadiusMeters; r != nil {
		if *r > 0 {
			out.RadiusMeters = r
		} else if strict {
			return nil, fmt.Errorf("radius %v must be positive", *r)
		}
	}

	if p := strings.ToLower(strings.TrimSpace(loc.Proximity)); p != "" {
		switch p {
		case ProximityArriving, ProximityLeaving:
			out.Proximity = p
		default:
			if strict {
				return nil, fmt.Errorf("proximity %q must be %q or %q", loc.Proximity, ProximityArriving, ProximityLeaving)
			}
		}
	}

	if out.isEmpty() {
		return nil, nil
	}
	return out, nil
}
