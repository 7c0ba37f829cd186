package auth

import (
	"net/http"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *AuthService
}

func NewAuthHandler(authService *AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (a *AuthHandler) Register(c *gin.Context) {
	var request RegisterRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := a.authService.Register(c.Request.Context(), &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

func (a *AuthHandler) Login(c *gin.Context) {
	var request LoginRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := a.authService.Login(c.Request.Context(), &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (a *AuthHandler) RefreshToken(c *gin.Context) {
	var request RefreshTokenRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := a.authService.RefreshToken(c.Request.Context(), request.RefreshToken)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (a *AuthHandler) Logout(c *gin.Context) {
	var request RefreshTokenRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	if err := a.authService.Logout(c.Request.Context(), request.RefreshToken); err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
