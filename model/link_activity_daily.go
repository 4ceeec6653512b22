package model

import "time"

// LinkActivityDaily aggregates viewer events per owner, link and day.
// Maintained by the analytics worker.
type LinkActivityDaily struct {
	ID uint64 `gorm:"primaryKey"`

	OwnerUserID uint64    `gorm:"column:owner_user_id;not null;uniqueIndex:uk_owner_link_day,priority:1"`
	LinkID      string    `gorm:"column:link_id;size:64;not null;uniqueIndex:uk_owner_link_day,priority:2"`
	Day         time.Time `gorm:"column:day;type:date;not null;uniqueIndex:uk_owner_link_day,priority:3"`

	Views int64 `gorm:"column:views;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the database table name.
func (LinkActivityDaily) TableName() string {
	return "link_activity_daily"
}
