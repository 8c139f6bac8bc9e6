package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/campusbot/schedule-api/internal/models"
	appErrors "github.com/campusbot/schedule-api/pkg/errors"
)

type mutualProvider interface {
	ListByUser(ctx context.Context, userID string) ([]models.EnrollmentRecord, error)
	ListByUserAndTermPrefix(ctx context.Context, userID, prefix string) ([]models.EnrollmentRecord, error)
}

type classNamer interface {
	ClassName(classID string) string
}

// MutualService computes the sections two users are both enrolled in.
type MutualService struct {
	provider mutualProvider
	names    classNamer
	logger   *zap.Logger
}

// NewMutualService constructs MutualService.
func NewMutualService(provider mutualProvider, names classNamer, logger *zap.Logger) *MutualService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MutualService{provider: provider, names: names, logger: logger}
}

// FindMutualSections returns the distinct (class, section) pairs shared
// by both users, in the first user's enrollment order. term restricts
// both sides to a section-identifier prefix; empty or "ALL" disables the
// filter. No shared sections is an empty list, not an error.
func (s *MutualService) FindMutualSections(ctx context.Context, userA, userB, term string) ([]models.SectionRef, error) {
	if userA == "" || userB == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "both user ids are required")
	}

	a, err := s.fetch(ctx, userA, term)
	if err != nil {
		return nil, err
	}
	b, err := s.fetch(ctx, userB, term)
	if err != nil {
		return nil, err
	}

	// Both sides are already term-filtered by the store query, so no
	// further prefix filtering happens here.
	return MutualSections(a, b, ""), nil
}

// FindMutualClasses groups the shared sections one entry per class.
func (s *MutualService) FindMutualClasses(ctx context.Context, userA, userB, term string) ([]models.MutualClass, error) {
	refs, err := s.FindMutualSections(ctx, userA, userB, term)
	if err != nil {
		return nil, err
	}
	return GroupByClass(refs, s.names), nil
}

func (s *MutualService) fetch(ctx context.Context, userID, term string) ([]models.EnrollmentRecord, error) {
	var (
		records []models.EnrollmentRecord
		err     error
	)
	if term == "" || strings.EqualFold(term, models.TermAll) {
		records, err = s.provider.ListByUser(ctx, userID)
	} else {
		records, err = s.provider.ListByUserAndTermPrefix(ctx, userID, term)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	return records, nil
}

// MutualSections intersects two schedules by exact (class, section)
// identity. The result preserves the first schedule's iteration order
// and contains each pair once. A non-empty termPrefix restricts both
// sides before intersecting. The second side is indexed into a set, so
// the scan is linear in the combined size.
func MutualSections(a, b []models.EnrollmentRecord, termPrefix string) []models.SectionRef {
	if termPrefix != "" {
		a = filterByTermPrefix(a, termPrefix)
		b = filterByTermPrefix(b, termPrefix)
	}

	other := make(map[models.SectionRef]struct{}, len(b))
	for _, record := range b {
		other[models.SectionRef{ClassID: record.ClassID, SectionID: record.SectionID}] = struct{}{}
	}

	var shared []models.SectionRef
	seen := make(map[models.SectionRef]struct{})
	for _, record := range a {
		ref := models.SectionRef{ClassID: record.ClassID, SectionID: record.SectionID}
		if _, ok := other[ref]; !ok {
			continue
		}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		shared = append(shared, ref)
	}
	return shared
}

func filterByTermPrefix(records []models.EnrollmentRecord, prefix string) []models.EnrollmentRecord {
	filtered := make([]models.EnrollmentRecord, 0, len(records))
	for _, record := range records {
		if strings.HasPrefix(record.SectionID, prefix) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

// GroupByClass folds section refs into one entry per distinct class,
// keeping the incoming order for classes and sections alike.
func GroupByClass(refs []models.SectionRef, names classNamer) []models.MutualClass {
	var grouped []models.MutualClass
	index := make(map[string]int)
	for _, ref := range refs {
		i, ok := index[ref.ClassID]
		if !ok {
			i = len(grouped)
			index[ref.ClassID] = i
			name := ""
			if names != nil {
				name = names.ClassName(ref.ClassID)
			}
			grouped = append(grouped, models.MutualClass{ClassID: ref.ClassID, Name: name})
		}
		grouped[i].SectionIDs = append(grouped[i].SectionIDs, ref.SectionID)
	}
	return grouped
}
