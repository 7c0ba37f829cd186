package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	sharedContext "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/context"
	sharedError "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/token"

	"github.com/gin-gonic/gin"
)

const (
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
)

// JWT error constants (errInfo)
const (
	missingToken  = "MISSING_TOKEN"
	invalidToken  = "INVALID_TOKEN"
	expiredToken  = "EXPIRED_TOKEN"
	invalidClaims = "INVALID_CLAIMS"
	adminRequired = "ADMIN_REQUIRED"
)

// Domain errors
var (
	ErrMissingToken  = sharedError.NewDomainError(missingToken)
	ErrInvalidToken  = sharedError.NewDomainError(invalidToken)
	ErrExpiredToken  = sharedError.NewDomainError(expiredToken)
	ErrInvalidClaims = sharedError.NewDomainError(invalidClaims)
	ErrAdminRequired = sharedError.NewDomainError(adminRequired)
)

// Register JWT error responses
func init() {
	sharedError.RegisterDomainErrorResponse(missingToken, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-000",
		Message: "Please sign in.",
	})

	sharedError.RegisterDomainErrorResponse(invalidToken, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-000",
		Message: "Please sign in.",
	})

	sharedError.RegisterDomainErrorResponse(expiredToken, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-001",
		Message: "Your session has expired. Please sign in again.",
	})

	sharedError.RegisterDomainErrorResponse(invalidClaims, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-000",
		Message: "Please sign in.",
	})

	sharedError.RegisterDomainErrorResponse(adminRequired, sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "AUTH-008",
		Message: "Administrator access is required.",
	})
}

// JWT authenticates the bearer access token and stores the principal on the gin context
func JWT(tokenManager token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 요청 정보 (로깅용)
		clientIP := c.ClientIP()
		method := c.Request.Method
		path := c.Request.URL.Path

		// Step 1: 토큰 추출
		raw, err := extractToken(c)
		if err != nil {
			slog.Warn("JWT 토큰 추출 실패",
				"step", "extract_token",
				"error", err.Error(),
				"client_ip", clientIP,
				"method", method,
				"path", path,
			)
			handleJWTError(c, err)
			return
		}

		// Step 2: 토큰 검증
		claims, err := tokenManager.ValidateToken(raw)
		if err != nil {
			slog.Warn("JWT 토큰 검증 실패",
				"step", "validate_token",
				"error", err.Error(),
				"client_ip", clientIP,
				"method", method,
				"path", path,
			)
			handleJWTError(c, mapTokenError(err))
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			handleJWTError(c, ErrInvalidClaims)
			return
		}

		// 인증 성공 - Context에 사용자 정보 저장
		sharedContext.SetPrincipal(c, sharedContext.Principal{
			UserID:   userID,
			MemberID: claims.MemberID,
			Email:    claims.Email,
			IsAdmin:  claims.IsAdmin,
		})
		c.Request = c.Request.WithContext(logger.With(c.Request.Context(), "member_id", claims.MemberID))
		c.Next()
	}
}

// RequireAdmin must run after JWT
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sharedContext.IsAdmin(c) {
			logger.FromContext(c.Request.Context()).Warn("관리자 권한 없음",
				"email", logger.MaskEmail(c.GetString(sharedContext.MemberEmailKey)),
				"path", c.Request.URL.Path,
			)
			handleJWTError(c, ErrAdminRequired)
			return
		}
		c.Next()
	}
}

// handleJWTError handles JWT errors using the standardized error response format
// Note: Logging is done at the point of error detection in JWT() function
func handleJWTError(c *gin.Context, err error) {
	resp, ok := sharedError.ResolveDomainError(err)
	if !ok {
		// 예상치 못한 에러 → Fallback 응답
		resp = sharedError.ErrorResponse{
			Status:  http.StatusUnauthorized,
			Code:    "AUTH-999",
			Message: "Authentication failed.",
		}
	}
	c.AbortWithStatusJSON(resp.Status, sharedError.Wrap(resp))
}

func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return "", ErrMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], BearerScheme) || strings.TrimSpace(parts[1]) == "" {
		return "", ErrInvalidToken
	}

	return strings.TrimSpace(parts[1]), nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, token.ErrExpiredToken):
		return ErrExpiredToken
	case errors.Is(err, token.ErrInvalidClaims):
		return ErrInvalidClaims
	default:
		return ErrInvalidToken
	}
}
