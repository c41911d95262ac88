// Package render turns an attendee's stored invitation body into the page
// they see. The body is organizer-authored template text, rendered one-off
// against the invitation context.
package render

import (
	"bytes"
	"fmt"
	"html/template"
)

// InviteContext is the data available to an invitation body template.
type InviteContext struct {
	EventName    string
	AttendeeName string
	AcceptLink   string
}

// Invitation parses body as a template and executes it with ctx. The body is
// whatever the organizer typed; a body that fails to parse or execute is the
// organizer's mistake and surfaces as an error for the caller to soften.
func Invitation(body string, ctx InviteContext) (string, error) {
	t, err := template.New("invitation").Parse(body)
	if err != nil {
		return "", fmt.Errorf("parse invitation body: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("render invitation body: %w", err)
	}
	return buf.String(), nil
}
