package models

import (
	"time"
)

// CornerBinding persists the application assigned to one screen corner.
// There is at most one row per corner; an empty AppPath means the corner
// is unassigned.
type CornerBinding struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Corner    string    `gorm:"not null;uniqueIndex" json:"corner"` // "top-left", "top-right", "bottom-left", "bottom-right"
	AppName   string    `gorm:"not null;default:''" json:"app_name"`
	AppPath   string    `gorm:"not null;default:''" json:"app_path"`
	AppIcon   string    `gorm:"not null;default:''" json:"app_icon"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
