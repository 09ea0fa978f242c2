package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/KasumiMercury/primind-calendar-remind/internal/observability/logging"
	"github.com/KasumiMercury/primind-calendar-remind/internal/observability/middleware"
)

func newRouter(t *testing.T, buf *bytes.Buffer) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	previous := slog.Default()
	slog.SetDefault(slog.New(logging.NewHandler(buf, logging.HandlerConfig{Level: slog.LevelDebug})))
	t.Cleanup(func() {
		slog.SetDefault(previous)
	})

	router := gin.New()
	router.Use(middleware.PanicRecoveryGin())
	router.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:  []string{"/ping"},
		Module:     logging.Module("api"),
		TracerName: "test",
	}))

	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/ok", func(c *gin.Context) {
		assert.NotEmpty(t, logging.RequestIDFromContext(c.Request.Context()))
		assert.Equal(t, logging.Module("api"), logging.ModuleFromContext(c.Request.Context()))
		c.Status(http.StatusNoContent)
	})
	router.GET("/boom", func(*gin.Context) {
		panic("boom")
	})

	return router
}

func TestGinRequestIDSuccess(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keeps    bool
	}{
		{
			name:     "propagates a valid id",
			incoming: "req-123",
			keeps:    true,
		},
		{
			name:     "mints an id when absent",
			incoming: "",
			keeps:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			router := newRouter(t, &buf)

			req := httptest.NewRequest(http.MethodGet, "/ok", nil)
			if tt.incoming != "" {
				req.Header.Set(middleware.RequestIDHeader, tt.incoming)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusNoContent, w.Code)

			got := w.Header().Get(middleware.RequestIDHeader)
			if tt.keeps {
				assert.Equal(t, tt.incoming, got)
			} else {
				assert.NotEmpty(t, got)
			}

			assert.Contains(t, buf.String(), `"event":"http.request.finish"`)
		})
	}
}

func TestGinSkipPathSuccess(t *testing.T) {
	var buf bytes.Buffer
	router := newRouter(t, &buf)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.NotContains(t, buf.String(), "request completed")
}

func TestPanicRecoveryError(t *testing.T) {
	var buf bytes.Buffer
	router := newRouter(t, &buf)

	w := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal_error")
	assert.Contains(t, buf.String(), `"event":"app.panic"`)
}
