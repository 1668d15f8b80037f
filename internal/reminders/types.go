// Package reminders implements the metadata virtualization layer over a
// reminders store: smart (virtual) lists computed from predicates, and tags
// and geofence locations packed into the free-text body of each item.
package reminders

import "time"

// Proximity values for location-based reminders.
const (
	ProximityArriving = "arriving"
	ProximityLeaving  = "leaving"
)

// Priority bounds. 0 means no priority.
const (
	PriorityMin = 0
	PriorityMax = 9
)

// Location is a geofence attached to a reminder. Every field is optional;
// latitude and longitude must appear together or not at all.
type Location struct {
	Title        string   `json:"title,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	RadiusMeters *float64 `json:"radius,omitempty"`
	Proximity    string   `json:"proximity,omitempty"`
}

func (l *Location) isEmpty() bool {
	return l == nil ||
		(l.Title == "" && l.Latitude == nil && l.Longitude == nil &&
			l.RadiusMeters == nil && l.Proximity == "")
}

// Metadata is what gets packed into the stored body alongside the
// human-authored notes.
type Metadata struct {
	Tags     []string  `json:"tags,omitempty"`
	Location *Location `json:"location,omitempty"`
}

func (m Metadata) isEmpty() bool {
	return len(m.Tags) == 0 && m.Location.isEmpty()
}

// Reminder is the public, decoded view of an item: native fields plus the
// unpacked metadata, with the token stripped from the notes.
type Reminder struct {
	Name      string     `json:"name"`
	Completed bool       `json:"completed"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	Flagged   bool       `json:"flagged"`
	Priority  int        `json:"priority"`
	Notes     string     `json:"notes,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	Location  *Location  `json:"location,omitempty"`
}
