package models

import (
	"time"

	"gorm.io/gorm"
)

type TriggerEvent struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Timestamp time.Time      `gorm:"not null;index" json:"timestamp"`
	Corner    string         `gorm:"not null;index" json:"corner"` // "top-left", "top-right", "bottom-left", "bottom-right"
	DisplayID int            `gorm:"not null;default:0" json:"display_id"`
	CursorX   float64        `gorm:"not null;default:0" json:"cursor_x"`
	CursorY   float64        `gorm:"not null;default:0" json:"cursor_y"`
	AppName   string         `gorm:"not null" json:"app_name"`
	AppPath   string         `gorm:"not null" json:"app_path"`
	Launched  bool           `gorm:"not null;default:false" json:"launched"`
	LaunchErr string         `gorm:"not null;default:''" json:"launch_err,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type CornerSummary struct {
	Corner        string    `json:"corner"`
	AppName       string    `json:"app_name"`
	TriggerCount  int       `json:"trigger_count"`
	LastTriggered time.Time `json:"last_triggered"`
	Percentage    float64   `json:"percentage,omitempty"`
}

type ReportPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Type  string    `json:"type"` // "day", "week", "month"
}

type Report struct {
	Period        ReportPeriod    `json:"period"`
	Corners       []CornerSummary `json:"corners"`
	TotalTriggers int             `json:"total_triggers"`
	GeneratedAt   time.Time       `json:"generated_at"`
}
