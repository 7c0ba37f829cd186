package model

import "time"

// ContentModule is a bookable learning unit
type ContentModule struct {
	BaseEntity

	Title           string `gorm:"column:title;size:200;not null"`
	Description     string `gorm:"column:description;size:4000;not null"`
	ContentURL      string `gorm:"column:content_url;size:500;not null"`
	IsActive        bool   `gorm:"column:is_active;not null"`
	MaxBookings     *int   `gorm:"column:max_bookings"` // nil: 무제한
	CurrentBookings int    `gorm:"column:current_bookings;not null"`
}

func (*ContentModule) TableName() string {
	return "content_module"
}

// IsFull reports whether the module has reached its booking limit.
func (m *ContentModule) IsFull() bool {
	return m.MaxBookings != nil && m.CurrentBookings >= *m.MaxBookings
}

type ModuleBooking struct {
	BaseEntity

	MemberID        uint32         `gorm:"column:member_id;not null;index:idx_booking_module_member"`
	Member          *Member        `gorm:"foreignKey:MemberID"`
	ContentModuleID uint32         `gorm:"column:content_module_id;not null;index:idx_booking_module_member"`
	ContentModule   *ContentModule `gorm:"foreignKey:ContentModuleID"`
	BookedAt        time.Time      `gorm:"column:booked_at;not null"`
	IsCompleted     bool           `gorm:"column:is_completed;not null"`
}

func (*ModuleBooking) TableName() string {
	return "module_booking"
}

type ModuleProgress struct {
	BaseEntity

	MemberID        uint32                 `gorm:"column:member_id;not null;index:idx_progress_module_member"`
	Member          *Member                `gorm:"foreignKey:MemberID"`
	ContentModuleID uint32                 `gorm:"column:content_module_id;not null;index:idx_progress_module_member"`
	ContentModule   *ContentModule         `gorm:"foreignKey:ContentModuleID"`
	Status          ModuleCompletionStatus `gorm:"column:status;size:20;not null;index"`
	StartedAt       *time.Time             `gorm:"column:started_at"`
	CompletedAt     *time.Time             `gorm:"column:completed_at;index"`
}

func (*ModuleProgress) TableName() string {
	return "module_progress"
}
