package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	sharedError "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/validator"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// SetupTestRouter returns a bare engine with the custom binding validators registered
func SetupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	_ = validator.RegisterAll()
	return gin.New()
}

// TestRequest is one JSON call against a test engine.
// Token, when set, is sent as a bearer access token.
type TestRequest struct {
	Method  string
	URL     string
	Body    any
	Token   string
	Headers map[string]string
}

// ExecuteRequest serves req through router and returns the recorded response
func ExecuteRequest(t *testing.T, router *gin.Engine, req TestRequest) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		require.NoError(t, err, "marshal request body")
		body = bytes.NewReader(payload)
	}

	httpReq := httptest.NewRequest(req.Method, req.URL, body)
	httpReq.Header.Set("Content-Type", "application/json")
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)
	return w
}

func ParseResponse(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), "decode response body: %s", w.Body.String())
}

// ParseError unwraps the {"error": {...}} envelope
func ParseError(t *testing.T, w *httptest.ResponseRecorder) sharedError.ErrorResponse {
	t.Helper()

	var envelope sharedError.Envelope
	ParseResponse(t, w, &envelope)
	return envelope.Error
}
