package meta_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/meta"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
)

type healthBody struct {
	Status string `json:"status"`
	Checks map[string]struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	} `json:"checks"`
}

func up(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("connection refused") }

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		database   meta.Checker
		cache      meta.Checker
		wantCode   int
		wantStatus string
		wantRedis  string
	}{
		{name: "database only", database: up, wantCode: http.StatusOK, wantStatus: "healthy", wantRedis: "disabled"},
		{name: "database and redis", database: up, cache: up, wantCode: http.StatusOK, wantStatus: "healthy", wantRedis: "up"},
		{name: "redis down", database: up, cache: down, wantCode: http.StatusServiceUnavailable, wantStatus: "unhealthy", wantRedis: "down"},
		{name: "database down", database: down, wantCode: http.StatusServiceUnavailable, wantStatus: "unhealthy", wantRedis: "disabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			router := testutil.SetupTestRouter()
			router.GET("/health", meta.NewHandler(testutil.NewTestConfig(), tt.database, tt.cache).Health)

			// When
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/health"})

			// Then
			assert.Equal(t, tt.wantCode, recorder.Code)
			var body healthBody
			testutil.ParseResponse(t, recorder, &body)
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, tt.wantRedis, body.Checks["redis"].Status)
		})
	}
}

func TestHealth_RealDatabase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	sqlDB, err := db.DB()
	assert.NoError(t, err)

	router := testutil.SetupTestRouter()
	router.GET("/health", meta.NewHandler(testutil.NewTestConfig(), sqlDB.PingContext, nil).Health)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/health"})

	assert.Equal(t, http.StatusOK, recorder.Code)
}
