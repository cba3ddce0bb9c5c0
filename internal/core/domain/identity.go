package domain

import "time"

// Identity is the authenticated actor of a request, snapshotted at login.
// It is not refreshed when the underlying user's role or username changes.
//
// SessionID and ExpiresAt identify the session so it can be terminated; they
// play no part in authorization decisions.
type Identity struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	SessionID string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}
