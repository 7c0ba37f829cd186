package member

import (
	"net/http"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
	sharedContext "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/context"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/handler"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/repository"
	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	memberService *MemberService
}

func NewMemberHandler(memberService *MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

func (h *MemberHandler) GetProfile(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	response, err := h.memberService.GetProfile(c.Request.Context(), memberID)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) UpdateProfile(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	var request UpdateProfileRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.UpdateProfile(c.Request.Context(), memberID, &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) Dashboard(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	response, err := h.memberService.Dashboard(c.Request.Context(), memberID)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) GetBenefits(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	response, err := h.memberService.GetBenefits(c.Request.Context(), memberID)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) UseBenefit(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	benefitID, ok := handler.ParseID(c, "benefitId")
	if !ok {
		return
	}

	response, err := h.memberService.UseBenefit(c.Request.Context(), memberID, benefitID)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) GetInterests(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	response, err := h.memberService.GetInterests(c.Request.Context(), memberID)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) ExpressInterest(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	var request ExpressInterestRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.ExpressInterest(c.Request.Context(), memberID, &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) GetSuggestions(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	response, err := h.memberService.GetSuggestions(c.Request.Context(), memberID)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Admin endpoints

func (h *MemberHandler) List(c *gin.Context) {
	var query SearchMembersQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	response, err := h.memberService.List(c.Request.Context(), repository.Page{Number: query.PageNumber, Size: query.PageSize})
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) Search(c *gin.Context) {
	var query SearchMembersQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	filter := SearchFilter{
		SearchTerm:     query.SearchTerm,
		MembershipType: model.MembershipType(query.MembershipType),
		Interest:       model.InterestType(query.Interest),
	}
	response, err := h.memberService.Search(c.Request.Context(), filter, repository.Page{Number: query.PageNumber, Size: query.PageSize})
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) GetByID(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	response, err := h.memberService.GetByID(c.Request.Context(), id)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) Create(c *gin.Context) {
	var request CreateMemberRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.Create(c.Request.Context(), &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var request UpdateMemberRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.Update(c.Request.Context(), id, &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.memberService.Delete(c.Request.Context(), id); err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *MemberHandler) ChangeMembershipType(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var request UpdateMembershipTypeRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.ChangeMembershipType(c.Request.Context(), id, model.MembershipType(request.MembershipType))
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) ChangeStatus(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var request UpdateStatusRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.ChangeStatus(c.Request.Context(), id, model.MembershipStatus(request.Status))
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) GrantBenefit(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	var request GrantBenefitRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.GrantBenefit(c.Request.Context(), id, &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}
