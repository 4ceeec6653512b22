package model

import "time"

// ViewerEvent stores one row per access attempt against a link,
// granted or denied. Rows are append-only.
type ViewerEvent struct {
	ID uint64 `gorm:"primaryKey"`

	OwnerUserID uint64 `gorm:"column:owner_user_id;not null;index"`
	LinkRowID   uint64 `gorm:"column:link_row_id;not null;index"`
	LinkID      string `gorm:"column:link_id;size:64;not null;index"`

	Email     string `gorm:"column:email;size:255;not null;default:''"`
	VisitorIP string `gorm:"column:visitor_ip;size:64;not null;default:''"`
	Referer   string `gorm:"column:referer;type:text"`
	UserAgent string `gorm:"column:user_agent;type:text"`

	ViewedAt  time.Time `gorm:"column:viewed_at;not null;index"`
	CreatedAt time.Time
}

// TableName returns the database table name.
func (ViewerEvent) TableName() string {
	return "viewer_event"
}
