package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventinvite/internal/delivery/http/helpers"
	"eventinvite/internal/domain"
)

type mockEventService struct {
	encodedID  string
	view       *domain.ManageView
	attendeeID string
	err        error

	lastUpdate domain.EventUpdate
}

func (m *mockEventService) Organize(ctx context.Context) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.encodedID, nil
}

func (m *mockEventService) GetManageView(ctx context.Context, encodedEventID string) (*domain.ManageView, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.view, nil
}

func (m *mockEventService) Update(ctx context.Context, encodedEventID string, upd domain.EventUpdate) error {
	if m.err != nil {
		return m.err
	}
	m.lastUpdate = upd
	return nil
}

func (m *mockEventService) AddAttendee(ctx context.Context, encodedEventID string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.attendeeID, nil
}

func (m *mockEventService) RemoveAttendee(ctx context.Context, encodedAttendeeID string) error {
	return m.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestEventController_Organize_Success(t *testing.T) {
	svc := &mockEventService{encodedID: "abc12345"}
	ctrl := NewEventController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/events", nil)
	w := httptest.NewRecorder()

	ctrl.Organize(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}
	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %T", resp.Data)
	}
	if data["id"] != "abc12345" {
		t.Fatalf("expected id abc12345, got %v", data["id"])
	}
	if data["manage_link"] != "/events/abc12345" {
		t.Fatalf("expected manage link /events/abc12345, got %v", data["manage_link"])
	}
}

func TestEventController_Organize_StoreError(t *testing.T) {
	svc := &mockEventService{err: errors.New("database was inaccessible")}
	ctrl := NewEventController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/events", nil)
	w := httptest.NewRecorder()

	ctrl.Organize(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestEventController_GetManageView_NotFound(t *testing.T) {
	svc := &mockEventService{err: domain.ErrNotFound}
	ctrl := NewEventController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/events/unknown1", nil)
	req.SetPathValue("eventID", "unknown1")
	w := httptest.NewRecorder()

	ctrl.GetManageView(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestEventController_Update_Success(t *testing.T) {
	svc := &mockEventService{}
	ctrl := NewEventController(testLogger(), svc)

	body := `{"event_name":"Party","attendee_data":{"abc12345":{"name":"Alice","custom_html":"<p>Hi</p>"}}}`
	req := httptest.NewRequest(http.MethodPut, "/events/ev123456", strings.NewReader(body))
	req.SetPathValue("eventID", "ev123456")
	w := httptest.NewRecorder()

	ctrl.Update(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if svc.lastUpdate.EventName != "Party" {
		t.Fatalf("expected event name Party, got %q", svc.lastUpdate.EventName)
	}
	if svc.lastUpdate.AttendeeData["abc12345"].Name != "Alice" {
		t.Fatalf("expected attendee update for Alice, got %+v", svc.lastUpdate.AttendeeData)
	}
}

func TestEventController_Update_BadBody(t *testing.T) {
	svc := &mockEventService{}
	ctrl := NewEventController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodPut, "/events/ev123456", strings.NewReader("{not json"))
	req.SetPathValue("eventID", "ev123456")
	w := httptest.NewRecorder()

	ctrl.Update(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestEventController_AddAttendee_Success(t *testing.T) {
	svc := &mockEventService{attendeeID: "at123456"}
	ctrl := NewEventController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/events/ev123456/attendees", nil)
	req.SetPathValue("eventID", "ev123456")
	w := httptest.NewRecorder()

	ctrl.AddAttendee(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	data, ok := resp.Data.(map[string]any)
	if !ok || data["id"] != "at123456" {
		t.Fatalf("expected attendee id at123456, got %v", resp.Data)
	}
}

func TestEventController_RemoveAttendee_NotFound(t *testing.T) {
	svc := &mockEventService{err: domain.ErrNotFound}
	ctrl := NewEventController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodDelete, "/attendees/unknown1", nil)
	req.SetPathValue("attendeeID", "unknown1")
	w := httptest.NewRecorder()

	ctrl.RemoveAttendee(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}
