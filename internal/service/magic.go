package service

import (
	"DocVault/utils"
	"encoding/json"
	"errors"
	"log"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/context"
	"gorm.io/gorm"
)

const magicKeyPrefix = "magic:"

// TokenStore keeps single-use magic tokens. Consume must be atomic so
// that concurrent redemptions yield exactly one winner.
type TokenStore interface {
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Consume(ctx context.Context, key string) ([]byte, bool, error)
}

// Mailer delivers one HTML message.
type Mailer interface {
	Send(to, subject, html string) error
}

type magicPayload struct {
	Email    string    `json:"email"`
	LinkID   string    `json:"link_id"`
	IssuedAt time.Time `json:"issued_at"`
}

// MagicLinkService issues and redeems one-time view links delivered by email.
type MagicLinkService struct {
	links   LinkStore
	tokens  TokenStore
	mailer  Mailer
	baseURL string
	ttl     time.Duration
}

// NewMagicLinkService creates a magic link service.
func NewMagicLinkService(links LinkStore, tokens TokenStore, mailer Mailer, baseURL string, ttl time.Duration) *MagicLinkService {
	return &MagicLinkService{
		links:   links,
		tokens:  tokens,
		mailer:  mailer,
		baseURL: strings.TrimRight(baseURL, "/"),
		ttl:     ttl,
	}
}

// IssueViewToken stores a single-use token bound to email and linkID and
// mails the redemption URL. A failed send returns a *DeliveryError along
// with the URL: the token is already issued and stays valid until TTL,
// so the caller may retry delivery or hand the URL over another channel.
func (s *MagicLinkService) IssueViewToken(ctx context.Context, email, linkID string) (string, error) {
	link, err := s.links.FindByLinkID(ctx, linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrLinkNotFound
		}
		return "", err
	}

	token := utils.NewToken()
	payload, err := json.Marshal(magicPayload{
		Email:    email,
		LinkID:   link.LinkID,
		IssuedAt: time.Now(),
	})
	if err != nil {
		return "", err
	}
	if err := s.tokens.Put(ctx, magicKeyPrefix+token, payload, s.ttl); err != nil {
		return "", err
	}

	redemptionURL := s.baseURL + "/api/links/redeem?token=" + url.QueryEscape(token)
	if err := s.mailer.Send(email, "Your document link", utils.ViewLinkMailHTML(link.FileName, redemptionURL)); err != nil {
		return redemptionURL, &DeliveryError{Err: err}
	}
	return redemptionURL, nil
}

// RedeemViewToken consumes a magic token and returns the bound email and
// redirect target. Unknown, expired and already-consumed tokens all map
// to ErrTokenInvalid; the internal cause is only logged.
func (s *MagicLinkService) RedeemViewToken(ctx context.Context, token string) (string, string, error) {
	if token == "" {
		return "", "", ErrTokenInvalid
	}

	data, ok, err := s.tokens.Consume(ctx, magicKeyPrefix+token)
	if err != nil {
		return "", "", err
	}
	if !ok {
		log.Printf("magic token rejected: unknown, expired or already redeemed")
		return "", "", ErrTokenInvalid
	}

	var payload magicPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Printf("magic token rejected: bad payload: %v", err)
		return "", "", ErrTokenInvalid
	}

	return payload.Email, "/links/view/" + payload.LinkID, nil
}
