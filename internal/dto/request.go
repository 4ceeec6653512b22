package dto

import "time"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username      string `json:"username" binding:"required"`
	FirstPassword string `json:"first-password" binding:"required"`
	LastPassword  string `json:"second-password" binding:"required"`
	Email         string `json:"email" binding:"required"`
}

// UpdateLinkRequest is a partial link update. PasswordAction is an
// explicit tri-state so the client never round-trips a hash or a
// placeholder: "keep" (default), "clear", or "set" with Password.
type UpdateLinkRequest struct {
	LinkID         string     `json:"link_id" binding:"required"`
	FileName       string     `json:"file_name"`
	PasswordAction string     `json:"password_action"`
	Password       string     `json:"password"`
	ExpiresEnabled *bool      `json:"expires_enabled"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

// DeleteLinkRequest removes an owned link.
type DeleteLinkRequest struct {
	LinkID string `json:"link_id" binding:"required"`
}

// ViewLinkRequest is one access attempt against a link.
type ViewLinkRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// Auth is an optional viewer JWT minted at magic-link redemption.
	Auth string `json:"auth"`
}

// RequestAccessRequest asks for a magic view link by email.
type RequestAccessRequest struct {
	Email  string `json:"email" binding:"required"`
	LinkID string `json:"link_id" binding:"required"`
}
