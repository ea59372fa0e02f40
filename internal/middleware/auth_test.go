package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RolAlek/personal-blog/internal/utils"
)

const testSecret = "test-secret"

func newTestRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	token, err := utils.GenerateToken("user-1", testSecret, time.Hour)
	require.NoError(t, err)
	r := newTestRouter(AuthMiddleware(testSecret))

	tests := []struct {
		name         string
		header       string
		expectedCode int
	}{
		{name: "Missing header", header: "", expectedCode: http.StatusUnauthorized},
		{name: "Not bearer", header: "Basic abc", expectedCode: http.StatusUnauthorized},
		{name: "Bad token", header: "Bearer abc", expectedCode: http.StatusUnauthorized},
		{name: "Valid token", header: "Bearer " + token, expectedCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, tt.header)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	token, err := utils.GenerateToken("user-1", testSecret, time.Hour)
	require.NoError(t, err)
	r := newTestRouter(OptionalAuthMiddleware(testSecret))

	w := doRequest(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":""}`, w.Body.String())

	w = doRequest(r, "Bearer garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":""}`, w.Body.String())

	w = doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"user-1"}`, w.Body.String())
}
