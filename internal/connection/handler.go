package connection

import (
	"context"
	"net/http"

	sharedContext "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/context"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type ConnectionHandler struct {
	connectionService *ConnectionService
}

func NewConnectionHandler(connectionService *ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{
		connectionService: connectionService,
	}
}

func (h *ConnectionHandler) respondList(c *gin.Context, list func(context.Context) ([]ConnectionResponse, error)) {
	response, err := list(c.Request.Context())
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *ConnectionHandler) List(c *gin.Context) {
	h.respondList(c, h.connectionService.List)
}

func (h *ConnectionHandler) Needs(c *gin.Context) {
	h.respondList(c, h.connectionService.Needs)
}

func (h *ConnectionHandler) Offers(c *gin.Context) {
	h.respondList(c, h.connectionService.Offers)
}

func (h *ConnectionHandler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	response, err := h.connectionService.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *ConnectionHandler) Create(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	var request ConnectionRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.connectionService.Create(c.Request.Context(), memberID, &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

func (h *ConnectionHandler) Update(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var request ConnectionRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.connectionService.Update(c.Request.Context(), id, memberID, &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *ConnectionHandler) Delete(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.connectionService.Delete(c.Request.Context(), id, memberID); err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
