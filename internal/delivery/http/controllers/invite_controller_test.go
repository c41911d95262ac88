package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventinvite/internal/delivery/http/helpers"
	"eventinvite/internal/domain"
)

type mockInvitationService struct {
	view *domain.InvitationView
	err  error

	lastAccepted *bool
	lastEmail    string
}

func (m *mockInvitationService) View(ctx context.Context, encodedAttendeeID string) (*domain.InvitationView, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.view, nil
}

func (m *mockInvitationService) SetAccepted(ctx context.Context, encodedAttendeeID string, accepted bool) error {
	if m.err != nil {
		return m.err
	}
	m.lastAccepted = &accepted
	return nil
}

func (m *mockInvitationService) SendInvite(ctx context.Context, encodedAttendeeID, emailAddress string) error {
	if m.err != nil {
		return m.err
	}
	m.lastEmail = emailAddress
	return nil
}

func TestInviteController_View_Success(t *testing.T) {
	svc := &mockInvitationService{view: &domain.InvitationView{
		EventName:    "Party",
		AttendeeName: "Alice",
		Body:         "<p>Hi Alice</p>",
		AcceptLink:   "/invites/at123456/accept",
	}}
	ctrl := NewInviteController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/invites/at123456", nil)
	req.SetPathValue("attendeeID", "at123456")
	w := httptest.NewRecorder()

	ctrl.View(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %T", resp.Data)
	}
	if data["event_name"] != "Party" {
		t.Fatalf("expected event name Party, got %v", data["event_name"])
	}
}

func TestInviteController_View_NotFound(t *testing.T) {
	svc := &mockInvitationService{err: domain.ErrNotFound}
	ctrl := NewInviteController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/invites/unknown1", nil)
	req.SetPathValue("attendeeID", "unknown1")
	w := httptest.NewRecorder()

	ctrl.View(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestInviteController_AcceptThenWithdraw(t *testing.T) {
	svc := &mockInvitationService{}
	ctrl := NewInviteController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/invites/at123456/accept", nil)
	req.SetPathValue("attendeeID", "at123456")
	w := httptest.NewRecorder()
	ctrl.Accept(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if svc.lastAccepted == nil || !*svc.lastAccepted {
		t.Fatalf("expected acceptance to be recorded")
	}

	req = httptest.NewRequest(http.MethodPost, "/invites/at123456/withdraw", nil)
	req.SetPathValue("attendeeID", "at123456")
	w = httptest.NewRecorder()
	ctrl.Withdraw(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if svc.lastAccepted == nil || *svc.lastAccepted {
		t.Fatalf("expected withdrawal to be recorded")
	}
}

func TestInviteController_Send_ValidatesEmail(t *testing.T) {
	svc := &mockInvitationService{}
	ctrl := NewInviteController(testLogger(), svc)

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{name: "valid", body: `{"email":"alice@example.com"}`, wantCode: http.StatusOK},
		{name: "missing", body: `{}`, wantCode: http.StatusBadRequest},
		{name: "malformed", body: `{"email":"not-an-email"}`, wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/invites/at123456/send", strings.NewReader(tt.body))
			req.SetPathValue("attendeeID", "at123456")
			w := httptest.NewRecorder()

			ctrl.Send(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, w.Code)
			}
		})
	}

	if svc.lastEmail != "alice@example.com" {
		t.Fatalf("expected email to reach the service, got %q", svc.lastEmail)
	}
}
