package repo

import (
	"DocVault/model"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/net/context"
	"gorm.io/gorm"
)

const linkCacheTTL = 10 * time.Minute

// LinkRepository persists links in MySQL with a Redis cache in front
// of link_id lookups.
type LinkRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewLinkRepository creates a link repository.
func NewLinkRepository(db *gorm.DB, rdb *redis.Client) *LinkRepository {
	return &LinkRepository{db: db, rdb: rdb}
}

// Create inserts a new link row.
func (r *LinkRepository) Create(ctx context.Context, link *model.Link) error {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return err
	}
	r.cacheSet(ctx, link)
	return nil
}

// FindByLinkID returns a link by its public id.
func (r *LinkRepository) FindByLinkID(ctx context.Context, linkID string) (*model.Link, error) {
	if link, ok := r.cacheGet(ctx, linkID); ok {
		return link, nil
	}

	var link model.Link
	if err := r.db.WithContext(ctx).Where("link_id = ?", linkID).First(&link).Error; err != nil {
		return nil, err
	}
	r.cacheSet(ctx, &link)
	return &link, nil
}

// Save overwrites the full link row. Last writer wins.
func (r *LinkRepository) Save(ctx context.Context, link *model.Link) error {
	if err := r.db.WithContext(ctx).Save(link).Error; err != nil {
		return err
	}
	r.cacheDel(ctx, link.LinkID)
	return nil
}

// Delete soft-deletes the link row and drops it from the cache.
func (r *LinkRepository) Delete(ctx context.Context, link *model.Link) error {
	if err := r.db.WithContext(ctx).Delete(link).Error; err != nil {
		return err
	}
	r.cacheDel(ctx, link.LinkID)
	return nil
}

func (r *LinkRepository) cacheKey(linkID string) string {
	return "link:" + linkID
}

func (r *LinkRepository) cacheGet(ctx context.Context, linkID string) (*model.Link, bool) {
	if r.rdb == nil {
		return nil, false
	}
	val, err := r.rdb.Get(ctx, r.cacheKey(linkID)).Result()
	if err != nil {
		return nil, false
	}
	var link model.Link
	if err := json.Unmarshal([]byte(val), &link); err != nil {
		return nil, false
	}
	return &link, true
}

func (r *LinkRepository) cacheSet(ctx context.Context, link *model.Link) {
	if r.rdb == nil {
		return
	}
	ttl := linkCacheTTL
	if link.ExpiresAt != nil {
		// Do not cache past the link's own expiry.
		until := time.Until(*link.ExpiresAt)
		if until <= 0 {
			return
		}
		if until < ttl {
			ttl = until
		}
	}
	value, err := json.Marshal(link)
	if err != nil {
		return
	}
	r.rdb.Set(ctx, r.cacheKey(link.LinkID), value, ttl)
}

func (r *LinkRepository) cacheDel(ctx context.Context, linkID string) {
	if r.rdb == nil {
		return
	}
	r.rdb.Del(ctx, r.cacheKey(linkID))
}
