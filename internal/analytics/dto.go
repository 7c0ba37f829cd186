package analytics

import (
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
)

type FunnelResponse struct {
	TotalVisitors     int64 `json:"totalVisitors"`
	InterestedMembers int64 `json:"interestedMembers"`
	RegisteredMembers int64 `json:"registeredMembers"`
	ActiveMembers     int64 `json:"activeMembers"`
}

// TrendsQuery dates are calendar days (UTC), both inclusive
type TrendsQuery struct {
	StartDate *time.Time `form:"startDate" binding:"required" time_format:"2006-01-02" time_utc:"1"`
	EndDate   *time.Time `form:"endDate" binding:"required" time_format:"2006-01-02" time_utc:"1"`
}

type TrendResponse struct {
	Date            string `json:"date"`
	EventAttendance int    `json:"eventAttendance"`
	MemberActivity  int    `json:"memberActivity"`
	ModuleProgress  int    `json:"moduleProgress"`
}

type InterestShiftResponse struct {
	Interest         model.InterestType `json:"interest"`
	InitialCount     int64              `json:"initialCount"`
	CurrentCount     int64              `json:"currentCount"`
	PercentageChange float64            `json:"percentageChange"`
}

type EngagementResponse struct {
	AverageEventsPerMember      float64 `json:"averageEventsPerMember"`
	ContentModuleCompletionRate float64 `json:"contentModuleCompletionRate"`
	TotalConnections            int64   `json:"totalConnections"`
	ActiveDiscussions           int64   `json:"activeDiscussions"`
}
