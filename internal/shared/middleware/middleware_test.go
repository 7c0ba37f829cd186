package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/config"
	sharedContext "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/context"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/middleware"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/testutil"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/token"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRequestID(t *testing.T) {
	router := testutil.SetupTestRouter()
	router.Use(middleware.RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetRequestID(c))
	})

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "generated when absent", incoming: "", keep: false},
		{name: "propagated when valid", incoming: "req-123", keep: true},
		{name: "replaced when it contains spaces", incoming: "bad id", keep: false},
		{name: "replaced when too long", incoming: strings.Repeat("a", 65), keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.incoming != "" {
				req.Header.Set(middleware.RequestIDHeader, tt.incoming)
			}

			recorder := serve(router, req)

			got := recorder.Header().Get(middleware.RequestIDHeader)
			assert.Equal(t, got, recorder.Body.String())
			if tt.keep {
				assert.Equal(t, tt.incoming, got)
			} else {
				assert.NotEqual(t, tt.incoming, got)
				assert.Len(t, got, 36)
			}
		})
	}
}

func TestRequestLogger_BindsLoggerIntoContext(t *testing.T) {
	router := testutil.SetupTestRouter()
	router.Use(middleware.RequestID(), middleware.RequestLogger())

	var bound bool
	router.GET("/ping", func(c *gin.Context) {
		bound = logger.FromContext(c.Request.Context()) != nil
		c.Status(http.StatusNoContent)
	})

	recorder := serve(router, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.True(t, bound)
}

func TestCORS(t *testing.T) {
	cfg := config.CORSConfig{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           600,
	}
	router := testutil.SetupTestRouter()
	router.Use(middleware.CORS(cfg))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("allowed origin sees exposed headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "http://localhost:5173")

		recorder := serve(router, req)

		assert.Equal(t, "http://localhost:5173", recorder.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", recorder.Header().Get("Access-Control-Allow-Credentials"))
		// header names come back canonicalized (X-Request-Id)
		exposed := strings.Split(recorder.Header().Get("Access-Control-Expose-Headers"), ",")
		assert.True(t, containsHeader(exposed, middleware.RequestIDHeader), "exposed: %v", exposed)
		assert.True(t, containsHeader(exposed, "Content-Disposition"), "exposed: %v", exposed)
	})

	t.Run("unknown origin is refused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "http://evil.example")

		recorder := serve(router, req)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
		assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
	})
}

func containsHeader(names []string, want string) bool {
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), want) {
			return true
		}
	}
	return false
}

func TestTimeout(t *testing.T) {
	router := testutil.SetupTestRouter()
	router.Use(middleware.Timeout(20*time.Millisecond, "/api/documents"))

	slow := func(c *gin.Context) {
		select {
		case <-c.Request.Context().Done():
		case <-time.After(time.Second):
		}
		if c.Request.Context().Err() == nil {
			c.Status(http.StatusOK)
		}
	}
	router.GET("/api/events", slow)
	router.GET("/api/documents/1/download", func(c *gin.Context) {
		_, hasDeadline := c.Request.Context().Deadline()
		if hasDeadline {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})

	t.Run("deadline answers 503", func(t *testing.T) {
		recorder := serve(router, httptest.NewRequest(http.MethodGet, "/api/events", nil))

		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
		assert.Equal(t, "ERROR-009", testutil.ParseError(t, recorder).Code)
	})

	t.Run("skipped prefix has no deadline", func(t *testing.T) {
		recorder := serve(router, httptest.NewRequest(http.MethodGet, "/api/documents/1/download", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestJWTAndRequireAdmin(t *testing.T) {
	tokenManager := testutil.NewTokenManager()
	sign := func(isAdmin bool) string {
		access, err := tokenManager.GenerateAccessToken(token.Identity{
			UserID: 7, MemberID: 11, Email: "someone@example.com", Name: "Some One", IsAdmin: isAdmin,
		})
		require.NoError(t, err)
		return access
	}

	router := testutil.SetupTestRouter()
	protected := router.Group("/api", middleware.JWT(tokenManager))
	protected.GET("/me", func(c *gin.Context) {
		principal, ok := sharedContext.RequirePrincipal(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, principal)
	})
	protected.GET("/admin", middleware.RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name       string
		url        string
		header     string
		wantStatus int
		wantCode   string
	}{
		{name: "missing header", url: "/api/me", wantStatus: http.StatusUnauthorized, wantCode: "AUTH-000"},
		{name: "wrong scheme", url: "/api/me", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantCode: "AUTH-000"},
		{name: "garbage token", url: "/api/me", header: "Bearer not.a.jwt", wantStatus: http.StatusUnauthorized, wantCode: "AUTH-000"},
		{name: "member token", url: "/api/me", header: "Bearer " + sign(false), wantStatus: http.StatusOK},
		{name: "member on admin route", url: "/api/admin", header: "Bearer " + sign(false), wantStatus: http.StatusForbidden, wantCode: "AUTH-008"},
		{name: "admin on admin route", url: "/api/admin", header: "Bearer " + sign(true), wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.header != "" {
				req.Header.Set(middleware.AuthorizationHeader, tt.header)
			}

			recorder := serve(router, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, testutil.ParseError(t, recorder).Code)
			}
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set(middleware.AuthorizationHeader, "Bearer "+sign(false))
	var principal sharedContext.Principal
	testutil.ParseResponse(t, serve(router, req), &principal)
	assert.Equal(t, sharedContext.Principal{UserID: 7, MemberID: 11, Email: "someone@example.com"}, principal)
}
