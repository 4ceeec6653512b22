package repo

import (
	"DocVault/model"
	"time"

	"golang.org/x/net/context"
	"gorm.io/gorm"
)

// ViewerEventRepository appends and queries viewer events.
// Events are append-only; there is no update path.
type ViewerEventRepository struct {
	db *gorm.DB
}

// NewViewerEventRepository creates a viewer event repository.
func NewViewerEventRepository(db *gorm.DB) *ViewerEventRepository {
	return &ViewerEventRepository{db: db}
}

// Append inserts one viewer event row.
func (r *ViewerEventRepository) Append(ctx context.Context, event *model.ViewerEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// ListByOwner returns recent events for an owner, optionally scoped to one link.
func (r *ViewerEventRepository) ListByOwner(ctx context.Context, ownerID uint64, linkID string, limit int) ([]model.ViewerEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	query := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerID).
		Order("viewed_at DESC").
		Limit(limit)
	if linkID != "" {
		query = query.Where("link_id = ?", linkID)
	}

	var events []model.ViewerEvent
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// DailyStat is one per-link per-day view count.
type DailyStat struct {
	LinkID string    `json:"link_id"`
	Day    time.Time `json:"day"`
	Views  int64     `json:"views"`
}

// StatsByDay returns aggregated daily views for an owner over the last N days.
func (r *ViewerEventRepository) StatsByDay(ctx context.Context, ownerID uint64, days int) ([]DailyStat, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	var stats []DailyStat
	err := r.db.WithContext(ctx).
		Model(&model.LinkActivityDaily{}).
		Select("link_id, day, views").
		Where("owner_user_id = ? AND day >= ?", ownerID, since).
		Order("day DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// BumpDaily increments the daily counter for one owner/link/day.
// Used by the analytics worker.
func (r *ViewerEventRepository) BumpDaily(ctx context.Context, ownerID uint64, linkID string, day time.Time) error {
	day = day.Truncate(24 * time.Hour)
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO link_activity_daily (owner_user_id, link_id, day, views, created_at, updated_at)"+
			" VALUES (?, ?, ?, 1, NOW(), NOW())"+
			" ON DUPLICATE KEY UPDATE views = views + 1, updated_at = NOW()",
		ownerID, linkID, day,
	).Error
}
