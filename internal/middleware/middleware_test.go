package middleware

import (
	"english_app_backend/internal/model"
	"english_app_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-secret"

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(util.RequestIDKey))
	})
	r.GET("/", handlers...)
	return r
}

func serve(r *gin.Engine, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := newRouter(RequestID(), RequestLogger())

	w := serve(r, http.Header{util.RequestIDKey: {"abc-123"}})
	assert.Equal(t, "abc-123", w.Header().Get(util.RequestIDKey))
	assert.Equal(t, "abc-123", w.Body.String())

	w = serve(r, nil)
	generated := w.Header().Get(util.RequestIDKey)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	w = serve(r, http.Header{util.RequestIDKey: {strings.Repeat("x", 65)}})
	assert.Len(t, w.Header().Get(util.RequestIDKey), 36)
}

func bearer(t *testing.T, role model.UserRole) http.Header {
	token, err := util.GenerateJWT(&model.User{BaseModel: model.BaseModel{ID: 1}, Role: role}, secret, time.Hour)
	require.NoError(t, err)
	return http.Header{"Authorization": {"Bearer " + token}}
}

func TestAuthAndRoleMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware(secret), RoleMiddleware(model.Admin))

	tests := []struct {
		name   string
		header http.Header
		want   int
	}{
		{"no header", nil, http.StatusUnauthorized},
		{"garbage token", http.Header{"Authorization": {"Bearer nope"}}, http.StatusUnauthorized},
		{"student", bearer(t, model.Student), http.StatusForbidden},
		{"admin", bearer(t, model.Admin), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(r, tt.header).Code)
		})
	}
}

func TestRoleMiddlewareWithoutAuth(t *testing.T) {
	r := newRouter(RoleMiddleware(model.Student))
	assert.Equal(t, http.StatusUnauthorized, serve(r, nil).Code)
}
