package services

import (
	"context"
	"errors"
	"fmt"

	"eventinvite/internal/domain"
	"eventinvite/internal/idcodec"
)

type eventService struct {
	store   domain.EventStore
	ids     *idcodec.Codec
	baseURL string
}

// NewEventService creates an EventService over the given store. baseURL is
// used to build absolute invite links for the manage view.
func NewEventService(store domain.EventStore, ids *idcodec.Codec, baseURL string) domain.EventService {
	return &eventService{store: store, ids: ids, baseURL: baseURL}
}

func (s *eventService) Organize(ctx context.Context) (string, error) {
	id, err := s.store.CreateEvent(ctx)
	if err != nil {
		return "", fmt.Errorf("create event: %w", err)
	}
	return s.ids.Encode(id), nil
}

func (s *eventService) GetManageView(ctx context.Context, encodedEventID string) (*domain.ManageView, error) {
	eventID, err := s.ids.Decode(encodedEventID)
	if err != nil {
		// an id that does not decode cannot name any event
		return nil, domain.ErrNotFound
	}

	event, err := s.store.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	view := &domain.ManageView{
		ID:         encodedEventID,
		EventName:  event.DisplayName(),
		Created:    event.Created,
		Attendees:  make([]domain.ManageAttendee, 0, len(event.Attendees)),
		UpdateLink: "/events/" + encodedEventID,
		AddLink:    "/events/" + encodedEventID + "/attendees",
	}
	for _, at := range event.Attendees {
		encoded := s.ids.Encode(at.ID)
		view.Attendees = append(view.Attendees, domain.ManageAttendee{
			ID:          encoded,
			Name:        at.Name,
			CustomHTML:  at.CustomHTML,
			HasAccepted: at.HasAccepted,
			InviteLink:  s.baseURL + "/invites/" + encoded,
			RemoveLink:  "/attendees/" + encoded,
		})
	}
	return view, nil
}

func (s *eventService) Update(ctx context.Context, encodedEventID string, upd domain.EventUpdate) error {
	eventID, err := s.ids.Decode(encodedEventID)
	if err != nil {
		return domain.ErrNotFound
	}

	change := domain.EventChange{
		Name:      upd.EventName,
		Attendees: make(map[uint64]domain.AttendeeUpdate, len(upd.AttendeeData)),
	}
	for key, at := range upd.AttendeeData {
		attendeeID, err := s.ids.Decode(key)
		if err != nil {
			// malformed keys are dropped, the rest of the payload still applies
			continue
		}
		change.Attendees[attendeeID] = at
	}

	if err := s.store.UpdateEvent(ctx, eventID, change); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

func (s *eventService) AddAttendee(ctx context.Context, encodedEventID string) (string, error) {
	eventID, err := s.ids.Decode(encodedEventID)
	if err != nil {
		return "", domain.ErrNotFound
	}

	attendeeID, err := s.store.AddAttendee(ctx, eventID)
	if err != nil {
		return "", fmt.Errorf("add attendee: %w", err)
	}
	if attendeeID == 0 {
		// no event matched; the store treats that as a no-op and so do we
		return "", nil
	}
	return s.ids.Encode(attendeeID), nil
}

func (s *eventService) RemoveAttendee(ctx context.Context, encodedAttendeeID string) error {
	attendeeID, err := s.ids.Decode(encodedAttendeeID)
	if err != nil {
		return domain.ErrNotFound
	}
	if err := s.store.RemoveAttendee(ctx, attendeeID); err != nil {
		return fmt.Errorf("remove attendee: %w", err)
	}
	return nil
}
