package domain

import "time"

// Session is the locally stored sign-in state.
type Session struct {
	Token     string
	Email     string
	UpdatedAt time.Time
}

// PrefRememberedEmail is the preference key holding the "remember me" email.
const PrefRememberedEmail = "remembered_email"
