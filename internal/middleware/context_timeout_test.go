package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextTimeoutSetsDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var deadline time.Time
	var ok bool
	r := gin.New()
	r.Use(ContextTimeout(30 * time.Second))
	r.GET("/", func(c *gin.Context) {
		deadline, ok = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(30*time.Second), deadline, time.Second)
}

// 非正值不加截止时间
func TestContextTimeoutDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var ok bool
	r := gin.New()
	r.Use(ContextTimeout(0))
	r.GET("/", func(c *gin.Context) {
		_, ok = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, ok)
}
