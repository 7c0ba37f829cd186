package model

import "time"

type Event struct {
	BaseEntity

	Title        string     `gorm:"column:title;size:200;not null"`
	Description  string     `gorm:"column:description;size:4000;not null"`
	Location     string     `gorm:"column:location;size:200"`
	StartDate    time.Time  `gorm:"column:start_date;not null;index"`
	EndDate      *time.Time `gorm:"column:end_date"`
	MaxAttendees int        `gorm:"column:max_attendees;not null"`
	IsCancelled  bool       `gorm:"column:is_cancelled;not null"`
}

func (*Event) TableName() string {
	return "event"
}

// EventAttendance joins a member to an event.
// At most one non-deleted row exists per (event, member); cancelling soft-deletes the row.
type EventAttendance struct {
	BaseEntity

	EventID      uint32    `gorm:"column:event_id;not null;index:idx_attendance_event_member"`
	Event        *Event    `gorm:"foreignKey:EventID"`
	MemberID     uint32    `gorm:"column:member_id;not null;index:idx_attendance_event_member"`
	Member       *Member   `gorm:"foreignKey:MemberID"`
	RegisteredAt time.Time `gorm:"column:registered_at;not null;index"`
	HasAttended  bool      `gorm:"column:has_attended;not null"`
}

func (*EventAttendance) TableName() string {
	return "event_attendance"
}
