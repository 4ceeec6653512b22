package dto

import (
	"DocVault/model"
	"time"
)

// LinkResponse is the owner-facing view of a link. The stored hash and
// backing URL are never echoed back.
type LinkResponse struct {
	LinkID      string     `json:"link_id"`
	FileName    string     `json:"file_name"`
	HasPassword bool       `json:"has_password"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewLinkResponse builds a LinkResponse from a model row.
func NewLinkResponse(link *model.Link) LinkResponse {
	return LinkResponse{
		LinkID:      link.LinkID,
		FileName:    link.FileName,
		HasPassword: link.PasswordHash != nil,
		ExpiresAt:   link.ExpiresAt,
		CreatedAt:   link.CreatedAt,
	}
}
