package contentmodule

import (
	"net/http"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
	sharedContext "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/context"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type ModuleHandler struct {
	moduleService *ModuleService
}

func NewModuleHandler(moduleService *ModuleService) *ModuleHandler {
	return &ModuleHandler{
		moduleService: moduleService,
	}
}

func (h *ModuleHandler) List(c *gin.Context) {
	response, err := h.moduleService.List(c.Request.Context())
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *ModuleHandler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	response, err := h.moduleService.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *ModuleHandler) Book(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	response, err := h.moduleService.Book(c.Request.Context(), id, memberID)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *ModuleHandler) Unbook(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.moduleService.Unbook(c.Request.Context(), id, memberID); err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ModuleHandler) UpdateProgress(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var request UpdateProgressRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.moduleService.UpdateProgress(c.Request.Context(), id, memberID, model.ModuleCompletionStatus(request.Status))
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *ModuleHandler) Create(c *gin.Context) {
	var request CreateModuleRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.moduleService.Create(c.Request.Context(), &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

func (h *ModuleHandler) Update(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var request UpdateModuleRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.moduleService.Update(c.Request.Context(), id, &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}
