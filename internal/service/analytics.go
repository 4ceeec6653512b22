package service

import (
	"DocVault/internal/repo"
	"DocVault/model"

	"golang.org/x/net/context"
)

// AnalyticsService serves owner-facing read-only views over the audit trail.
type AnalyticsService struct {
	events *repo.ViewerEventRepository
}

// NewAnalyticsService creates an analytics service.
func NewAnalyticsService(events *repo.ViewerEventRepository) *AnalyticsService {
	return &AnalyticsService{events: events}
}

// ListViewerEvents returns recent access attempts against the owner's links.
func (s *AnalyticsService) ListViewerEvents(ctx context.Context, ownerID uint64, linkID string, limit int) ([]model.ViewerEvent, error) {
	return s.events.ListByOwner(ctx, ownerID, linkID, limit)
}

// GetDailyStats returns per-link daily view counts for the last N days.
func (s *AnalyticsService) GetDailyStats(ctx context.Context, ownerID uint64, days int) ([]repo.DailyStat, error) {
	return s.events.StatsByDay(ctx, ownerID, days)
}
