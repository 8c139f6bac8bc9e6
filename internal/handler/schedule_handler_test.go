package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/campusbot/schedule-api/pkg/errors"
)

type mockScheduleService struct {
	result []byte
	err    error

	gotUserID string
	gotTerm   string
}

func (m *mockScheduleService) Render(ctx context.Context, userID, term string) ([]byte, error) {
	m.gotUserID = userID
	m.gotTerm = term
	return m.result, m.err
}

func performRequest(t *testing.T, handler gin.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	handler(c)
	return w
}

func TestScheduleHandlerReturnsPNG(t *testing.T) {
	svc := &mockScheduleService{result: []byte("png-bytes")}
	h := NewScheduleHandler(svc)

	w := performRequest(t, h.Render, "/schedule?userId=u1&term=A")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", w.Body.String())
	assert.Equal(t, "u1", svc.gotUserID)
	assert.Equal(t, "A", svc.gotTerm)
}

func TestScheduleHandlerMapsValidationError(t *testing.T) {
	svc := &mockScheduleService{err: appErrors.Clone(appErrors.ErrValidation, "userId and term are required")}
	h := NewScheduleHandler(svc)

	w := performRequest(t, h.Render, "/schedule")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), appErrors.ErrValidation.Code)
}

func TestScheduleHandlerMapsResolutionError(t *testing.T) {
	svc := &mockScheduleService{err: appErrors.ErrResolution}
	h := NewScheduleHandler(svc)

	w := performRequest(t, h.Render, "/schedule?userId=u1&term=A")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), appErrors.ErrResolution.Code)
}
