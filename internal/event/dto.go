package event

import (
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
)

type EventResponse struct {
	ID               uint32     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Location         string     `json:"location,omitempty"`
	StartDate        time.Time  `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
	MaxAttendees     int        `json:"maxAttendees"`
	CurrentAttendees int64      `json:"currentAttendees"`
	IsCancelled      bool       `json:"isCancelled"`
	CreatedAt        time.Time  `json:"createdAt"`
}

func toEventResponse(e *model.Event, attendees int64) EventResponse {
	return EventResponse{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		Location:         e.Location,
		StartDate:        e.StartDate,
		EndDate:          e.EndDate,
		MaxAttendees:     e.MaxAttendees,
		CurrentAttendees: attendees,
		IsCancelled:      e.IsCancelled,
		CreatedAt:        e.CreatedAt,
	}
}

type CreateEventRequest struct {
	Title        string     `json:"title" binding:"required,max=200"`
	Description  string     `json:"description" binding:"required,max=4000"`
	Location     string     `json:"location" binding:"max=200"`
	StartDate    time.Time  `json:"startDate" binding:"required"`
	EndDate      *time.Time `json:"endDate"`
	MaxAttendees int        `json:"maxAttendees" binding:"required,gte=1"`
}

type UpdateEventRequest struct {
	Title        string     `json:"title" binding:"required,max=200"`
	Description  string     `json:"description" binding:"required,max=4000"`
	Location     string     `json:"location" binding:"max=200"`
	StartDate    time.Time  `json:"startDate" binding:"required"`
	EndDate      *time.Time `json:"endDate"`
	MaxAttendees int        `json:"maxAttendees" binding:"required,gte=1"`
}

// SearchEventsQuery dates are calendar days (UTC). EndDate is inclusive.
type SearchEventsQuery struct {
	StartDate  *time.Time `form:"startDate" time_format:"2006-01-02" time_utc:"1"`
	EndDate    *time.Time `form:"endDate" time_format:"2006-01-02" time_utc:"1"`
	MinGuests  *int       `form:"minGuests" binding:"omitempty,gte=0"`
	MaxGuests  *int       `form:"maxGuests" binding:"omitempty,gte=0"`
	SearchTerm string     `form:"searchTerm" binding:"max=100"`
	PageSize   int        `form:"pageSize" binding:"omitempty,gte=1,lte=100"`
	PageNumber int        `form:"pageNumber" binding:"omitempty,gte=1"`
}

func (q SearchEventsQuery) filter() SearchFilter {
	f := SearchFilter{
		StartFrom:  q.StartDate,
		MinGuests:  q.MinGuests,
		MaxGuests:  q.MaxGuests,
		SearchTerm: q.SearchTerm,
	}
	if q.EndDate != nil {
		endExclusive := q.EndDate.AddDate(0, 0, 1)
		f.EndBefore = &endExclusive
	}
	return f
}

type AttendanceResponse struct {
	EventID          uint32    `json:"eventId"`
	MemberID         uint32    `json:"memberId"`
	RegisteredAt     time.Time `json:"registeredAt"`
	HasAttended      bool      `json:"hasAttended"`
	CurrentAttendees int64     `json:"currentAttendees"`
}

type AttendeeResponse struct {
	MemberID     uint32    `json:"memberId"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registeredAt"`
	HasAttended  bool      `json:"hasAttended"`
}

func toAttendeeResponse(a *model.EventAttendance) AttendeeResponse {
	resp := AttendeeResponse{
		MemberID:     a.MemberID,
		RegisteredAt: a.RegisteredAt,
		HasAttended:  a.HasAttended,
	}
	if a.Member != nil {
		resp.FirstName = a.Member.FirstName
		resp.LastName = a.Member.LastName
		if a.Member.User != nil {
			resp.Email = a.Member.User.Email
		}
	}
	return resp
}

type RegistrationResponse struct {
	Event        EventResponse `json:"event"`
	RegisteredAt time.Time     `json:"registeredAt"`
	HasAttended  bool          `json:"hasAttended"`
}

type MarkAttendedRequest struct {
	Attended *bool `json:"attended" binding:"required"`
}
