package model

import (
	"time"

	"gorm.io/gorm"
)

type Link struct {
	ID uint64 `gorm:"primaryKey"`

	LinkID string `gorm:"column:link_id;size:64;uniqueIndex;not null"`

	OwnerID uint64 `gorm:"column:owner_id;not null;index"`
	Owner   User   `gorm:"foreignKey:OwnerID;references:ID"`

	FileName   string `gorm:"column:file_name;size:255;not null"`
	ObjectName string `gorm:"column:object_name;size:255;not null;default:''"`

	// URL is the opaque signed URL of the backing document.
	URL string `gorm:"column:url;type:text"`

	// PasswordHash is a bcrypt hash; nil means no password required.
	PasswordHash *string `gorm:"column:password_hash;size:255"`

	// ExpiresAt nil means the link never expires.
	ExpiresAt *time.Time `gorm:"column:expires_at"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the database table name.
func (Link) TableName() string {
	return "link"
}
