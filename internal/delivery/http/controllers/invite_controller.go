package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"eventinvite/internal/delivery/http/helpers"
	"eventinvite/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// InviteController handles attendee-facing routes: viewing an invitation,
// accepting, withdrawing, and emailing the invite link.
type InviteController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

func NewInviteController(logger *slog.Logger, svc domain.InvitationService) *InviteController {
	return &InviteController{
		Logger:  logger,
		Service: svc,
	}
}

// View godoc
// @Summary View an invitation
// @Description Returns the attendee's personalized invitation: the rendered body, the event and attendee names, and the accept link. When the attendee already accepted, the body is the withdraw prompt instead.
// @Tags invites
// @Produce json
// @Param attendeeID path string true "Encoded attendee ID"
// @Success 200 {object} helpers.APIResponse "data contains the invitation view"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invites/{attendeeID} [get]
func (c *InviteController) View(w http.ResponseWriter, r *http.Request) {
	attendeeID := r.PathValue("attendeeID")
	if attendeeID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing attendeeID")
		return
	}

	view, err := c.Service.View(r.Context(), attendeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invitation not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// Accept godoc
// @Summary Accept an invitation
// @Description Records that the attendee accepted. Accepting twice is harmless.
// @Tags invites
// @Produce json
// @Param attendeeID path string true "Encoded attendee ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invites/{attendeeID}/accept [post]
func (c *InviteController) Accept(w http.ResponseWriter, r *http.Request) {
	c.setAccepted(w, r, true)
}

// Withdraw godoc
// @Summary Withdraw an accepted invitation
// @Description Clears the attendee's acceptance.
// @Tags invites
// @Produce json
// @Param attendeeID path string true "Encoded attendee ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invites/{attendeeID}/withdraw [post]
func (c *InviteController) Withdraw(w http.ResponseWriter, r *http.Request) {
	c.setAccepted(w, r, false)
}

func (c *InviteController) setAccepted(w http.ResponseWriter, r *http.Request, accepted bool) {
	attendeeID := r.PathValue("attendeeID")
	if attendeeID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing attendeeID")
		return
	}

	if err := c.Service.SetAccepted(r.Context(), attendeeID, accepted); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invitation not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}

// SendInviteRequest is the request body for POST /invites/{attendeeID}/send.
type SendInviteRequest struct {
	Email string `json:"email"`
}

// Validate implements helpers.Validator.
func (s *SendInviteRequest) Validate() []string {
	if s.Email == "" {
		return []string{"email is required"}
	}
	if !emailRegex.MatchString(s.Email) {
		return []string{"email is not valid"}
	}
	return nil
}

// Send godoc
// @Summary Email an invite link
// @Description Sends the attendee their invite link at the given address.
// @Tags invites
// @Accept json
// @Produce json
// @Param attendeeID path string true "Encoded attendee ID"
// @Param body body SendInviteRequest true "Recipient address"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invites/{attendeeID}/send [post]
func (c *InviteController) Send(w http.ResponseWriter, r *http.Request) {
	attendeeID := r.PathValue("attendeeID")
	if attendeeID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing attendeeID")
		return
	}

	var req SendInviteRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := c.Service.SendInvite(r.Context(), attendeeID, req.Email); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invitation not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}
