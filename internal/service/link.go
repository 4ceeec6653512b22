package service

import (
	"DocVault/model"
	"DocVault/utils"
	"errors"
	"time"

	"golang.org/x/net/context"
	"gorm.io/gorm"
)

// LinkStore is the persistence surface the link services need.
type LinkStore interface {
	Create(ctx context.Context, link *model.Link) error
	FindByLinkID(ctx context.Context, linkID string) (*model.Link, error)
	Save(ctx context.Context, link *model.Link) error
	Delete(ctx context.Context, link *model.Link) error
}

// PasswordAction selects what happens to a link's password on update.
type PasswordAction int

const (
	PasswordKeep PasswordAction = iota
	PasswordClear
	PasswordSet
)

// CreateLinkInput carries the fields for a new link.
type CreateLinkInput struct {
	FileName   string
	ObjectName string
	URL        string
	Password   string
	ExpiresAt  *time.Time
}

// UpdateLinkInput carries a partial link update. Nil / zero fields are
// kept as-is; expiry and password have explicit clear actions.
type UpdateLinkInput struct {
	FileName    string
	Password    PasswordAction
	NewPassword string
	ExpiresAt   *time.Time
	ClearExpiry bool
}

// LinkService creates and updates shareable links.
type LinkService struct {
	links LinkStore
}

// NewLinkService creates a link service.
func NewLinkService(links LinkStore) *LinkService {
	return &LinkService{links: links}
}

// CreateLink stores a new link owned by ownerID. The plaintext password,
// when present, is hashed before storage and never persisted.
func (s *LinkService) CreateLink(ctx context.Context, ownerID uint64, in CreateLinkInput) (*model.Link, error) {
	if in.URL == "" && in.ObjectName == "" {
		return nil, ErrNothingToShare
	}

	link := &model.Link{
		LinkID:     utils.NewToken(),
		OwnerID:    ownerID,
		FileName:   in.FileName,
		ObjectName: in.ObjectName,
		URL:        in.URL,
		ExpiresAt:  in.ExpiresAt,
	}
	if in.Password != "" {
		hash, err := utils.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		link.PasswordHash = &hash
	}

	if err := s.links.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// UpdateLink applies a partial update to an owned link. The whole row is
// overwritten; concurrent owner updates are last-writer-wins.
func (s *LinkService) UpdateLink(ctx context.Context, ownerID uint64, linkID string, in UpdateLinkInput) (*model.Link, error) {
	link, err := s.links.FindByLinkID(ctx, linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	if link.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	if in.FileName != "" {
		link.FileName = in.FileName
	}

	switch in.Password {
	case PasswordClear:
		link.PasswordHash = nil
	case PasswordSet:
		hash, err := utils.HashPassword(in.NewPassword)
		if err != nil {
			return nil, err
		}
		link.PasswordHash = &hash
	}

	if in.ClearExpiry {
		link.ExpiresAt = nil
	} else if in.ExpiresAt != nil {
		link.ExpiresAt = in.ExpiresAt
	}

	if err := s.links.Save(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// DeleteLink removes an owned link and returns the removed row so the
// caller can clean up the backing object.
func (s *LinkService) DeleteLink(ctx context.Context, ownerID uint64, linkID string) (*model.Link, error) {
	link, err := s.links.FindByLinkID(ctx, linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	if link.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	if err := s.links.Delete(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}
