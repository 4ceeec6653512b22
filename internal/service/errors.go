package service

import "errors"

var (
	// ErrNothingToShare is returned when a link is created without a
	// backing document reference.
	ErrNothingToShare = errors.New("nothing to share")

	// ErrNotOwner is returned when the caller does not own the link.
	ErrNotOwner = errors.New("permission denied")

	ErrLinkNotFound      = errors.New("link not found")
	ErrLinkExpired       = errors.New("link expired")
	ErrPasswordRequired  = errors.New("password required")
	ErrIncorrectPassword = errors.New("incorrect password")

	// ErrTokenInvalid covers unknown, expired and already-redeemed magic
	// tokens. The causes are not distinguished externally.
	ErrTokenInvalid = errors.New("link invalid or expired")
)

// DeliveryError reports a failed email send. The token it refers to is
// already issued and stays valid until its TTL.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return "email delivery failed: " + e.Err.Error()
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
