package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbot/schedule-api/internal/models"
)

type mockScheduleProvider struct {
	records map[string][]models.EnrollmentRecord
}

func (m *mockScheduleProvider) ListByUser(ctx context.Context, userID string) ([]models.EnrollmentRecord, error) {
	return m.records[userID], nil
}

func (m *mockScheduleProvider) ListByUserAndTermPrefix(ctx context.Context, userID, prefix string) ([]models.EnrollmentRecord, error) {
	var filtered []models.EnrollmentRecord
	for _, r := range m.records[userID] {
		if strings.HasPrefix(r.SectionID, prefix) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

type mockNamer map[string]string

func (m mockNamer) ClassName(classID string) string { return m[classID] }

func enrollment(userID, classID, sectionID string) models.EnrollmentRecord {
	return models.EnrollmentRecord{UserID: userID, ClassID: classID, SectionID: sectionID}
}

func TestMutualSectionsIntersection(t *testing.T) {
	a := []models.EnrollmentRecord{
		enrollment("u1", "MA1021", "AL01"),
		enrollment("u1", "CS2102", "A01"),
		enrollment("u1", "PH1110", "B03"),
	}
	b := []models.EnrollmentRecord{
		enrollment("u2", "CS2102", "A01"),
		enrollment("u2", "MA1021", "AL02"), // same class, different section
	}

	shared := MutualSections(a, b, "")
	require.Len(t, shared, 1)
	assert.Equal(t, models.SectionRef{ClassID: "CS2102", SectionID: "A01"}, shared[0])
}

func TestMutualSectionsCommutativeContent(t *testing.T) {
	a := []models.EnrollmentRecord{
		enrollment("u1", "MA1021", "AL01"),
		enrollment("u1", "CS2102", "A01"),
	}
	b := []models.EnrollmentRecord{
		enrollment("u2", "CS2102", "A01"),
		enrollment("u2", "MA1021", "AL01"),
	}

	ab := MutualSections(a, b, "")
	ba := MutualSections(b, a, "")
	assert.ElementsMatch(t, ab, ba)
}

func TestMutualSectionsPreservesFirstScheduleOrder(t *testing.T) {
	a := []models.EnrollmentRecord{
		enrollment("u1", "PH1110", "B03"),
		enrollment("u1", "MA1021", "AL01"),
	}
	b := []models.EnrollmentRecord{
		enrollment("u2", "MA1021", "AL01"),
		enrollment("u2", "PH1110", "B03"),
	}

	shared := MutualSections(a, b, "")
	require.Len(t, shared, 2)
	assert.Equal(t, "PH1110", shared[0].ClassID)
	assert.Equal(t, "MA1021", shared[1].ClassID)
}

func TestMutualSectionsDeduplicates(t *testing.T) {
	a := []models.EnrollmentRecord{
		enrollment("u1", "MA1021", "AL01"),
		enrollment("u1", "MA1021", "AL01"),
	}
	b := []models.EnrollmentRecord{enrollment("u2", "MA1021", "AL01")}

	assert.Len(t, MutualSections(a, b, ""), 1)
}

func TestMutualSectionsTermFilterIsSubset(t *testing.T) {
	a := []models.EnrollmentRecord{
		enrollment("u1", "MA1021", "AL01"),
		enrollment("u1", "CS2102", "B01"),
	}
	b := []models.EnrollmentRecord{
		enrollment("u2", "MA1021", "AL01"),
		enrollment("u2", "CS2102", "B01"),
	}

	all := MutualSections(a, b, "")
	termA := MutualSections(a, b, "A")

	require.Len(t, all, 2)
	require.Len(t, termA, 1)
	assert.Equal(t, "AL01", termA[0].SectionID)
	for _, ref := range termA {
		assert.Contains(t, all, ref)
	}
}

func TestGroupByClass(t *testing.T) {
	refs := []models.SectionRef{
		{ClassID: "MA1021", SectionID: "AL01"},
		{ClassID: "MA1021", SectionID: "AX02"},
		{ClassID: "CS2102", SectionID: "A01"},
	}
	names := mockNamer{"MA1021": "Calculus I", "CS2102": "OO Design"}

	grouped := GroupByClass(refs, names)
	require.Len(t, grouped, 2)
	assert.Equal(t, "MA1021", grouped[0].ClassID)
	assert.Equal(t, "Calculus I", grouped[0].Name)
	assert.Equal(t, []string{"AL01", "AX02"}, grouped[0].SectionIDs)
	assert.Equal(t, []string{"A01"}, grouped[1].SectionIDs)
}

func TestMutualServiceSharedAndDisjointSchedules(t *testing.T) {
	provider := &mockScheduleProvider{records: map[string][]models.EnrollmentRecord{
		"u1": {enrollment("u1", "MA1021", "AL01"), enrollment("u1", "CS2102", "A01")},
		"u2": {enrollment("u2", "MA1021", "AL01")},
		"u3": {enrollment("u3", "PH1110", "B03")},
	}}
	svc := NewMutualService(provider, mockNamer{"MA1021": "Calculus I"}, nil)

	shared, err := svc.FindMutualSections(context.Background(), "u1", "u2", "")
	require.NoError(t, err)
	require.Len(t, shared, 1)
	assert.Equal(t, "MA1021", shared[0].ClassID)

	none, err := svc.FindMutualSections(context.Background(), "u1", "u3", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMutualServiceTermFiltersAtTheStore(t *testing.T) {
	provider := &mockScheduleProvider{records: map[string][]models.EnrollmentRecord{
		"u1": {enrollment("u1", "MA1021", "AL01"), enrollment("u1", "CS2102", "B01")},
		"u2": {enrollment("u2", "MA1021", "AL01"), enrollment("u2", "CS2102", "B01")},
	}}
	svc := NewMutualService(provider, nil, nil)

	shared, err := svc.FindMutualSections(context.Background(), "u1", "u2", "B")
	require.NoError(t, err)
	require.Len(t, shared, 1)
	assert.Equal(t, "CS2102", shared[0].ClassID)

	all, err := svc.FindMutualSections(context.Background(), "u1", "u2", "ALL")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMutualServiceRequiresBothUsers(t *testing.T) {
	svc := NewMutualService(&mockScheduleProvider{}, nil, nil)
	_, err := svc.FindMutualSections(context.Background(), "u1", "", "")
	require.Error(t, err)
}
