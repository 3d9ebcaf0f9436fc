package dto

import "github.com/finlight/dashboard-be/internal/models"

type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is returned by login and signup; the token itself travels
// only in the session cookie.
type SessionResponse struct {
	User      models.User `json:"user"`
	ExpiresAt int64       `json:"expires_at"`
}
