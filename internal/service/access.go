package service

import (
	"DocVault/model"
	"DocVault/utils"
	"errors"
	"log"
	"time"

	"golang.org/x/net/context"
	"gorm.io/gorm"
)

// ViewerEventStore appends access-attempt rows.
type ViewerEventStore interface {
	Append(ctx context.Context, event *model.ViewerEvent) error
}

// EventPublisher forwards viewer events to the analytics pipeline.
type EventPublisher interface {
	PublishEvent(ctx context.Context, body []byte) error
}

// AccessRequest describes one view attempt against a link.
type AccessRequest struct {
	Email     string
	Password  string
	VisitorIP string
	UserAgent string
	Referer   string
}

// AccessService decides whether a view attempt may reach the document.
type AccessService struct {
	links     LinkStore
	events    ViewerEventStore
	publisher EventPublisher
}

// NewAccessService creates an access service. publisher may be nil.
func NewAccessService(links LinkStore, events ViewerEventStore, publisher EventPublisher) *AccessService {
	return &AccessService{links: links, events: events, publisher: publisher}
}

// ValidateAccess checks one access attempt and returns the link on grant.
// Every attempt against an existing link is recorded before the expiry
// and password checks run, so denied attempts appear in the audit trail.
func (s *AccessService) ValidateAccess(ctx context.Context, linkID string, req AccessRequest) (*model.Link, error) {
	link, err := s.links.FindByLinkID(ctx, linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}

	s.recordEvent(ctx, link, req)

	if link.ExpiresAt != nil && time.Now().After(*link.ExpiresAt) {
		return nil, ErrLinkExpired
	}

	if link.PasswordHash != nil {
		if req.Password == "" {
			return nil, ErrPasswordRequired
		}
		if !utils.CheckPwd(req.Password, *link.PasswordHash) {
			return nil, ErrIncorrectPassword
		}
	}

	return link, nil
}

// recordEvent appends the audit row and forwards it to the analytics
// pipeline. Both are best-effort: a failure never blocks the decision.
func (s *AccessService) recordEvent(ctx context.Context, link *model.Link, req AccessRequest) {
	event := &model.ViewerEvent{
		OwnerUserID: link.OwnerID,
		LinkRowID:   link.ID,
		LinkID:      link.LinkID,
		Email:       req.Email,
		VisitorIP:   req.VisitorIP,
		UserAgent:   req.UserAgent,
		Referer:     req.Referer,
		ViewedAt:    time.Now(),
	}
	if err := s.events.Append(ctx, event); err != nil {
		log.Printf("record viewer event failed: %v", err)
	}

	if s.publisher == nil {
		return
	}
	body, err := MarshalViewEvent(event)
	if err != nil {
		log.Printf("marshal viewer event failed: %v", err)
		return
	}
	if err := s.publisher.PublishEvent(ctx, body); err != nil {
		log.Printf("publish viewer event failed: %v", err)
	}
}
