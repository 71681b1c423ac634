package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping() error { return s.err }

func serveHealth(p Pinger) *httptest.ResponseRecorder {
	engine := gin.New()
	engine.GET("/health", NewHealthHandler(p).Check)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	return rec
}

func TestHealthHandler_OK(t *testing.T) {
	rec := serveHealth(stubPinger{})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	rec := serveHealth(stubPinger{err: errors.New("connection refused")})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"degraded"`)
	assert.Contains(t, rec.Body.String(), `"database":"unreachable"`)
}
