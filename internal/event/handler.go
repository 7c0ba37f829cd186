package event

import (
	"net/http"

	sharedContext "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/context"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/handler"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/repository"
	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventService *EventService
}

func NewEventHandler(eventService *EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

func (h *EventHandler) List(c *gin.Context) {
	response, err := h.eventService.List(c.Request.Context())
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *EventHandler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	response, err := h.eventService.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *EventHandler) Search(c *gin.Context) {
	var query SearchEventsQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	page := repository.Page{Number: query.PageNumber, Size: query.PageSize}
	response, err := h.eventService.Search(c.Request.Context(), query.filter(), page)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *EventHandler) Attend(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	response, err := h.eventService.Attend(c.Request.Context(), id, memberID)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *EventHandler) CancelAttendance(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.eventService.CancelAttendance(c.Request.Context(), id, memberID); err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EventHandler) MyRegistrations(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	response, err := h.eventService.MyRegistrations(c.Request.Context(), memberID)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *EventHandler) Create(c *gin.Context) {
	var request CreateEventRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.eventService.Create(c.Request.Context(), &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

func (h *EventHandler) Update(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var request UpdateEventRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.eventService.Update(c.Request.Context(), id, &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), id); err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EventHandler) Cancel(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	response, err := h.eventService.Cancel(c.Request.Context(), id)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *EventHandler) Attendees(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	response, err := h.eventService.Attendees(c.Request.Context(), id)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *EventHandler) MarkAttended(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	memberID, ok := handler.ParseID(c, "memberId")
	if !ok {
		return
	}
	var request MarkAttendedRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.eventService.MarkAttended(c.Request.Context(), id, memberID, *request.Attended)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}
