package models

import "strings"

// UserProfile is the cached identity returned by OTP verification.
// All fields are optional; the session is established by token
// presence, not by the profile.
type UserProfile struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// DisplayName returns the best human-readable label for the profile:
// full name when known, otherwise the email.
func (p UserProfile) DisplayName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name != "" {
		return name
	}
	return p.Email
}
