package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventinvite/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(eventController *controllers.EventController, inviteController *controllers.InviteController) *http.ServeMux {
	mux := http.NewServeMux()

	// Organizer routes
	mux.HandleFunc("POST /events", eventController.Organize)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetManageView)
	mux.HandleFunc("PUT /events/{eventID}", eventController.Update)
	mux.HandleFunc("POST /events/{eventID}/attendees", eventController.AddAttendee)
	mux.HandleFunc("DELETE /attendees/{attendeeID}", eventController.RemoveAttendee)

	// Attendee routes
	mux.HandleFunc("GET /invites/{attendeeID}", inviteController.View)
	mux.HandleFunc("POST /invites/{attendeeID}/accept", inviteController.Accept)
	mux.HandleFunc("POST /invites/{attendeeID}/withdraw", inviteController.Withdraw)
	mux.HandleFunc("POST /invites/{attendeeID}/send", inviteController.Send)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
