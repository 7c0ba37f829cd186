package contentmodule

import (
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
)

type ModuleResponse struct {
	ID              uint32    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ContentURL      string    `json:"contentUrl"`
	IsActive        bool      `json:"isActive"`
	MaxBookings     *int      `json:"maxBookings"`
	CurrentBookings int       `json:"currentBookings"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toModuleResponse(m *model.ContentModule) ModuleResponse {
	return ModuleResponse{
		ID:              m.ID,
		Title:           m.Title,
		Description:     m.Description,
		ContentURL:      m.ContentURL,
		IsActive:        m.IsActive,
		MaxBookings:     m.MaxBookings,
		CurrentBookings: m.CurrentBookings,
		CreatedAt:       m.CreatedAt,
	}
}

type CreateModuleRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required,max=4000"`
	ContentURL  string `json:"contentUrl" binding:"required,url,max=500"`
	IsActive    *bool  `json:"isActive"`
	MaxBookings *int   `json:"maxBookings" binding:"omitempty,gte=1"`
}

type UpdateModuleRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required,max=4000"`
	ContentURL  string `json:"contentUrl" binding:"required,url,max=500"`
	IsActive    bool   `json:"isActive"`
	MaxBookings *int   `json:"maxBookings" binding:"omitempty,gte=1"`
}

type BookingResponse struct {
	ModuleID        uint32    `json:"moduleId"`
	MemberID        uint32    `json:"memberId"`
	BookedAt        time.Time `json:"bookedAt"`
	IsCompleted     bool      `json:"isCompleted"`
	CurrentBookings int       `json:"currentBookings"`
}

type UpdateProgressRequest struct {
	Status string `json:"status" binding:"required,modulestatus"`
}

type ProgressResponse struct {
	ModuleID    uint32     `json:"moduleId"`
	MemberID    uint32     `json:"memberId"`
	Status      string     `json:"status"`
	StartedAt   *time.Time `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

func toProgressResponse(p *model.ModuleProgress) ProgressResponse {
	return ProgressResponse{
		ModuleID:    p.ContentModuleID,
		MemberID:    p.MemberID,
		Status:      string(p.Status),
		StartedAt:   p.StartedAt,
		CompletedAt: p.CompletedAt,
	}
}
