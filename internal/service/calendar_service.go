package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/campusbot/schedule-api/internal/catalog"
	"github.com/campusbot/schedule-api/internal/render"
	appErrors "github.com/campusbot/schedule-api/pkg/errors"
	"github.com/campusbot/schedule-api/pkg/export"
)

// CalendarService exports a user's schedule as iCalendar text.
type CalendarService struct {
	provider scheduleProvider
	resolver render.Resolver
	exporter *export.ICSExporter
	logger   *zap.Logger
	now      func() time.Time
}

// NewCalendarService constructs CalendarService.
func NewCalendarService(provider scheduleProvider, resolver render.Resolver, exporter *export.ICSExporter, logger *zap.Logger) *CalendarService {
	if exporter == nil {
		exporter = export.NewICSExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{provider: provider, resolver: resolver, exporter: exporter, logger: logger, now: time.Now}
}

// Build renders the ICS bytes for one (user, term) pair. Recurrences are
// anchored on the Monday of the current week.
func (s *CalendarService) Build(ctx context.Context, userID, term string) ([]byte, error) {
	if userID == "" || term == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "userId and term are required")
	}

	schedule, err := s.provider.ListByUserAndTermPrefix(ctx, userID, term)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}

	monday := startOfWeek(s.now())
	events := make([]export.ICSEvent, 0, len(schedule))
	for _, record := range schedule {
		section, err := s.resolver.Resolve(record.ClassID, record.SectionID)
		if err != nil {
			var resolution *catalog.ResolutionError
			if errors.As(err, &resolution) {
				return nil, appErrors.Wrap(err, appErrors.ErrResolution.Code, appErrors.ErrResolution.Status, err.Error())
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve section")
		}
		events = append(events, export.ICSEvent{
			UID:         record.UserID + "-" + section.ClassID + "-" + section.SectionID,
			Summary:     section.ClassID + "-" + section.SectionID + " " + section.Name,
			Location:    section.Room,
			Description: section.Type,
			Weekdays:    section.Weekdays,
			StartMinute: section.StartMinute,
			EndMinute:   section.EndMinute,
			FirstDay:    monday,
		})
	}

	return s.exporter.Render(events), nil
}

// startOfWeek returns midnight on the Monday of t's week.
func startOfWeek(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
