package connection

import (
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
)

type ConnectionResponse struct {
	ID            uint32    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	IsNeed        bool      `json:"isNeed"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedByID   uint32    `json:"createdById"`
	CreatedByName string    `json:"createdByName,omitempty"`
}

func toConnectionResponse(c *model.Connection) ConnectionResponse {
	resp := ConnectionResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		IsNeed:      c.IsNeed,
		CreatedAt:   c.CreatedAt,
		CreatedByID: c.CreatedByID,
	}
	if c.CreatedBy != nil {
		resp.CreatedByName = c.CreatedBy.FullName()
	}
	return resp
}

type ConnectionRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=4000"`
	IsNeed      bool   `json:"isNeed"`
}
