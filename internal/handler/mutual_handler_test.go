package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbot/schedule-api/internal/models"
	appErrors "github.com/campusbot/schedule-api/pkg/errors"
)

type mockMutualFinder struct {
	classes []models.MutualClass
	err     error

	gotUserA string
	gotUserB string
	gotTerm  string
}

func (m *mockMutualFinder) FindMutualClasses(ctx context.Context, userA, userB, term string) ([]models.MutualClass, error) {
	m.gotUserA = userA
	m.gotUserB = userB
	m.gotTerm = term
	return m.classes, m.err
}

func TestMutualHandlerListsSharedClasses(t *testing.T) {
	finder := &mockMutualFinder{classes: []models.MutualClass{
		{ClassID: "MA1021", Name: "Calculus I", SectionIDs: []string{"AL01"}},
	}}
	h := NewMutualHandler(finder)

	w := performRequest(t, h.List, "/mutuals?userId=u1&otherId=u2&term=A")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", finder.gotUserA)
	assert.Equal(t, "u2", finder.gotUserB)
	assert.Equal(t, "A", finder.gotTerm)

	var envelope struct {
		Data []models.MutualClass `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Calculus I", envelope.Data[0].Name)
}

func TestMutualHandlerListEmptyIsArray(t *testing.T) {
	h := NewMutualHandler(&mockMutualFinder{})

	w := performRequest(t, h.List, "/mutuals?userId=u1&otherId=u3")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[]}`, w.Body.String())
}

func TestMutualHandlerListPropagatesError(t *testing.T) {
	finder := &mockMutualFinder{err: appErrors.Clone(appErrors.ErrValidation, "userId and otherId are required")}
	h := NewMutualHandler(finder)

	w := performRequest(t, h.List, "/mutuals")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), appErrors.ErrValidation.Code)
}

func TestMutualHandlerCSVReport(t *testing.T) {
	finder := &mockMutualFinder{classes: []models.MutualClass{
		{ClassID: "MA1021", Name: "Calculus I", SectionIDs: []string{"AL01", "AX02"}},
	}}
	h := NewMutualHandler(finder)

	w := performRequest(t, h.Report, "/mutuals/report?userId=u1&otherId=u2")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Class,Name,Sections")
	assert.Contains(t, w.Body.String(), "MA1021,Calculus I,\"AL01, AX02\"")
}

func TestMutualHandlerPDFReport(t *testing.T) {
	finder := &mockMutualFinder{classes: []models.MutualClass{
		{ClassID: "CS2102", Name: "OO Design", SectionIDs: []string{"A01"}},
	}}
	h := NewMutualHandler(finder)

	w := performRequest(t, h.Report, "/mutuals/report?userId=u1&otherId=u2&format=pdf")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, len(w.Body.Bytes()) > 0)
}

func TestMutualHandlerRejectsUnknownFormat(t *testing.T) {
	h := NewMutualHandler(&mockMutualFinder{})

	w := performRequest(t, h.Report, "/mutuals/report?userId=u1&otherId=u2&format=xml")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), appErrors.ErrValidation.Code)
}
