package domain

import (
	"context"
	"time"
)

// ManageAttendee is one attendee row of the manage view, with the encoded id
// and the links the organizer needs.
type ManageAttendee struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CustomHTML  string `json:"custom_html"`
	HasAccepted bool   `json:"has_accepted"`
	// InviteLink is absolute so the organizer can copy it straight into a
	// message to the attendee.
	InviteLink string `json:"invite_link"`
	RemoveLink string `json:"remove_link"`
}

// ManageView is everything the organizer's manage page needs for one event.
type ManageView struct {
	ID         string           `json:"id"`
	EventName  string           `json:"event_name"`
	Created    time.Time        `json:"created"`
	Attendees  []ManageAttendee `json:"attendees"`
	UpdateLink string           `json:"update_link"`
	AddLink    string           `json:"add_link"`
}

// InvitationView is what an attendee sees when opening their invite link.
// When the attendee has already accepted, Body holds the withdraw prompt
// instead of the invitation itself.
type InvitationView struct {
	EventName    string `json:"event_name"`
	AttendeeName string `json:"attendee_name"`
	HasAccepted  bool   `json:"has_accepted"`
	Body         string `json:"body"`
	AcceptLink   string `json:"accept_link"`
	WithdrawLink string `json:"withdraw_link"`
}

// EventService defines organizer-facing operations. Identifiers cross this
// boundary in their encoded URL form; values that do not decode behave like
// ids that match nothing.
type EventService interface {
	// Organize creates a new unnamed event and returns its encoded id.
	Organize(ctx context.Context) (string, error)
	// GetManageView loads the event and shapes it for the manage page.
	GetManageView(ctx context.Context, encodedEventID string) (*ManageView, error)
	// Update applies the manage-form payload to the event.
	Update(ctx context.Context, encodedEventID string, upd EventUpdate) error
	// AddAttendee adds a placeholder attendee and returns its encoded id.
	AddAttendee(ctx context.Context, encodedEventID string) (string, error)
	// RemoveAttendee removes the attendee from whichever event holds it.
	RemoveAttendee(ctx context.Context, encodedAttendeeID string) error
}

// InvitationService defines attendee-facing operations.
type InvitationService interface {
	// View renders the attendee's personalized invitation (or the withdraw
	// prompt when already accepted).
	View(ctx context.Context, encodedAttendeeID string) (*InvitationView, error)
	// SetAccepted records acceptance or withdrawal for the attendee.
	SetAccepted(ctx context.Context, encodedAttendeeID string, accepted bool) error
	// SendInvite emails the attendee their invite link.
	SendInvite(ctx context.Context, encodedAttendeeID, emailAddress string) error
}
