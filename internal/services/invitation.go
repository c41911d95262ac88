package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"eventinvite/internal/domain"
	"eventinvite/internal/idcodec"
	"eventinvite/internal/render"
)

// renderFallback is shown when an organizer-authored invitation body fails to
// render. The attendee should never see a broken page.
const renderFallback = "Failed to render the custom invitation. Please contact the event organizer and let them know."

type invitationService struct {
	store   domain.EventStore
	ids     *idcodec.Codec
	email   domain.EmailService
	logger  *slog.Logger
	baseURL string
}

// NewInvitationService creates an InvitationService. email may be a noop-backed
// service when no mailer is configured.
func NewInvitationService(store domain.EventStore, ids *idcodec.Codec, email domain.EmailService, logger *slog.Logger, baseURL string) domain.InvitationService {
	return &invitationService{store: store, ids: ids, email: email, logger: logger, baseURL: baseURL}
}

func (s *invitationService) View(ctx context.Context, encodedAttendeeID string) (*domain.InvitationView, error) {
	attendeeID, err := s.ids.Decode(encodedAttendeeID)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	event, attendee, err := s.store.GetEventByAttendee(ctx, attendeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by attendee: %w", err)
	}

	view := &domain.InvitationView{
		EventName:    event.DisplayName(),
		AttendeeName: attendee.Name,
		HasAccepted:  attendee.HasAccepted,
		AcceptLink:   "/invites/" + encodedAttendeeID + "/accept",
		WithdrawLink: "/invites/" + encodedAttendeeID + "/withdraw",
	}

	// an attendee who already accepted gets the withdraw prompt, not the
	// invitation body again
	if attendee.HasAccepted {
		view.Body = "You have accepted the invitation to " + view.EventName + "."
		return view, nil
	}

	body, err := render.Invitation(attendee.CustomHTML, render.InviteContext{
		EventName:    view.EventName,
		AttendeeName: attendee.Name,
		AcceptLink:   view.AcceptLink,
	})
	if err != nil {
		s.logger.Warn("invitation body failed to render", "attendee", encodedAttendeeID, "err", err)
		body = renderFallback
	}
	view.Body = body
	return view, nil
}

func (s *invitationService) SetAccepted(ctx context.Context, encodedAttendeeID string, accepted bool) error {
	attendeeID, err := s.ids.Decode(encodedAttendeeID)
	if err != nil {
		return domain.ErrNotFound
	}
	if err := s.store.SetAccepted(ctx, attendeeID, accepted); err != nil {
		return fmt.Errorf("set accepted: %w", err)
	}
	return nil
}

func (s *invitationService) SendInvite(ctx context.Context, encodedAttendeeID, emailAddress string) error {
	attendeeID, err := s.ids.Decode(encodedAttendeeID)
	if err != nil {
		return domain.ErrNotFound
	}

	event, attendee, err := s.store.GetEventByAttendee(ctx, attendeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event by attendee: %w", err)
	}

	data := &domain.InviteEmailData{
		Email:        emailAddress,
		EventName:    event.DisplayName(),
		AttendeeName: attendee.Name,
		InviteLink:   s.baseURL + "/invites/" + encodedAttendeeID,
	}
	if err := s.email.SendInvite(ctx, data); err != nil {
		return fmt.Errorf("send invite email: %w", err)
	}
	return nil
}
