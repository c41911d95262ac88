package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventinvite/internal/delivery/http/helpers"
	"eventinvite/internal/domain"
)

// EventController handles organizer-facing routes: creating an event,
// the manage view, updates, and attendee add/remove.
type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// OrganizeEventResponse is the payload in the success envelope for POST /events (201).
type OrganizeEventResponse struct {
	ID         string `json:"id"`
	ManageLink string `json:"manage_link"`
}

// Organize godoc
// @Summary Create a new event
// @Description Creates an empty, unnamed event and returns its encoded id together with the manage link. No body is accepted; everything about the event is edited afterwards through the manage view.
// @Tags events
// @Produce json
// @Success 201 {object} helpers.APIResponse "data contains id and manage_link"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Organize(w http.ResponseWriter, r *http.Request) {
	id, err := c.Service.Organize(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, OrganizeEventResponse{
		ID:         id,
		ManageLink: "/events/" + id,
	})
}

// GetManageView godoc
// @Summary Get the manage view of an event
// @Description Returns the event name, creation time, and all attendees with their encoded ids and invite/remove links.
// @Tags events
// @Produce json
// @Param eventID path string true "Encoded event ID"
// @Success 200 {object} helpers.APIResponse "data contains the manage view"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetManageView(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}

	view, err := c.Service.GetManageView(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// UpdateEventRequest is the request body for PUT /events/{eventID}. AttendeeData
// is keyed by encoded attendee id; entries with keys that do not decode are ignored.
type UpdateEventRequest struct {
	EventName    string                           `json:"event_name"`
	AttendeeData map[string]domain.AttendeeUpdate `json:"attendee_data"`
}

// Update godoc
// @Summary Update an event
// @Description Sets the event name and overwrites name and invitation body of each attendee present in attendee_data. Attendees absent from the payload are untouched.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "Encoded event ID"
// @Param body body UpdateEventRequest true "Event name and per-attendee edits"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [put]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}

	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	upd := domain.EventUpdate{EventName: req.EventName, AttendeeData: req.AttendeeData}
	if err := c.Service.Update(r.Context(), eventID, upd); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}

// AddAttendeeResponse is the payload in the success envelope for POST /events/{eventID}/attendees (201).
type AddAttendeeResponse struct {
	ID string `json:"id"`
}

// AddAttendee godoc
// @Summary Add an attendee to an event
// @Description Appends a placeholder attendee ("Unnamed", empty invitation body) to the event and returns the attendee's encoded id. The id is empty when no event with the given id exists.
// @Tags events
// @Produce json
// @Param eventID path string true "Encoded event ID"
// @Success 201 {object} helpers.APIResponse "data contains the new attendee id"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees [post]
func (c *EventController) AddAttendee(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}

	attendeeID, err := c.Service.AddAttendee(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, AddAttendeeResponse{ID: attendeeID})
}

// RemoveAttendee godoc
// @Summary Remove an attendee
// @Description Removes the attendee from whichever event holds it. Removing an attendee that does not exist is not an error.
// @Tags events
// @Produce json
// @Param attendeeID path string true "Encoded attendee ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees/{attendeeID} [delete]
func (c *EventController) RemoveAttendee(w http.ResponseWriter, r *http.Request) {
	attendeeID := r.PathValue("attendeeID")
	if attendeeID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing attendeeID")
		return
	}

	if err := c.Service.RemoveAttendee(r.Context(), attendeeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "attendee not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}
