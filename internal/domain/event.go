package domain

import (
	"context"
	"time"
)

// DefaultAttendeeName is the placeholder name given to a freshly added attendee.
const DefaultAttendeeName = "Unnamed"

// DefaultAttendeeHTML is the placeholder invitation body for a freshly added attendee.
const DefaultAttendeeHTML = "<html></html>"

// Event is an invitation campaign: a name, a creation time, and the attendees
// invited to it. Name is nil until the organizer first saves the manage form.
type Event struct {
	ID        uint64     `json:"id"`
	Name      *string    `json:"name"`
	Attendees []Attendee `json:"attendees"`
	Created   time.Time  `json:"created"`
}

// DisplayName returns the event name, or a fallback when it was never set.
func (e *Event) DisplayName() string {
	if e.Name == nil {
		return "Untitled Event"
	}
	return *e.Name
}

// Attendee is a single invitee of an event. CustomHTML is the personalized
// invitation body the organizer writes for this attendee; it is rendered as a
// template when the attendee views their invitation.
type Attendee struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	CustomHTML  string `json:"custom_html"`
	HasAccepted bool   `json:"has_accepted"`
}

// AttendeeUpdate carries the organizer's edits for one attendee.
type AttendeeUpdate struct {
	Name       string `json:"name"`
	CustomHTML string `json:"custom_html"`
}

// EventUpdate is the manage-form payload. AttendeeData is keyed by *encoded*
// attendee id as it appears in URLs; entries with keys that do not decode are
// ignored.
type EventUpdate struct {
	EventName    string                    `json:"event_name"`
	AttendeeData map[string]AttendeeUpdate `json:"attendee_data"`
}

// EventChange is the decoded form of EventUpdate consumed by the store:
// attendee edits are keyed by native 64-bit id.
type EventChange struct {
	Name      string
	Attendees map[uint64]AttendeeUpdate
}

// EventStore is the persistence boundary for the event database.
//
// Every call is a single atomic load-modify-save cycle against the backing
// file; implementations serialize all calls. Returned events and attendees are
// owned copies, never references into store state. Mutations that match no
// record succeed silently; only the two Get lookups report ErrNotFound.
type EventStore interface {
	// CreateEvent appends a new empty event and returns its id.
	CreateEvent(ctx context.Context) (uint64, error)
	// GetEventByID returns a copy of the event with the given id.
	GetEventByID(ctx context.Context, eventID uint64) (*Event, error)
	// GetEventByAttendee scans every event's attendee list and returns copies
	// of the first event owning an attendee with the given id, and that attendee.
	GetEventByAttendee(ctx context.Context, attendeeID uint64) (*Event, *Attendee, error)
	// SetAccepted sets the acceptance flag on every attendee with the given id.
	SetAccepted(ctx context.Context, attendeeID uint64, accepted bool) error
	// UpdateEvent sets the name of the matching event and applies per-attendee edits.
	UpdateEvent(ctx context.Context, eventID uint64, change EventChange) error
	// AddAttendee appends a placeholder attendee to every event with the given
	// id and returns the id of the last attendee added, or 0 when nothing matched.
	AddAttendee(ctx context.Context, eventID uint64) (uint64, error)
	// RemoveAttendee drops every attendee with the given id, from every event.
	RemoveAttendee(ctx context.Context, attendeeID uint64) error
	// RemoveExpired drops events older than maxAge (or created in the future)
	// and returns how many were dropped.
	RemoveExpired(ctx context.Context, maxAge time.Duration) (int, error)
}
