package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusbot/schedule-api/internal/catalog"
	"github.com/campusbot/schedule-api/internal/models"
	"github.com/campusbot/schedule-api/internal/render"
	appErrors "github.com/campusbot/schedule-api/pkg/errors"
)

type scheduleProvider interface {
	ListByUserAndTermPrefix(ctx context.Context, userID, prefix string) ([]models.EnrollmentRecord, error)
}

type scheduleRenderer interface {
	Render(term string, schedule []models.EnrollmentRecord, resolver render.Resolver) ([]byte, error)
}

type renderObserver interface {
	ObserveRender(term string, sections int, duration time.Duration)
}

// renderRequest carries the validated render parameters.
type renderRequest struct {
	UserID string `validate:"required"`
	Term   string `validate:"required"`
}

// ScheduleService renders a user's weekly schedule for a term as a PNG.
type ScheduleService struct {
	provider scheduleProvider
	renderer scheduleRenderer
	resolver render.Resolver
	metrics  renderObserver
	validate *validator.Validate
	logger   *zap.Logger
}

// NewScheduleService constructs ScheduleService. metrics may be nil.
func NewScheduleService(provider scheduleProvider, renderer scheduleRenderer, resolver render.Resolver, metrics renderObserver, logger *zap.Logger) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		provider: provider,
		renderer: renderer,
		resolver: resolver,
		metrics:  metrics,
		validate: validator.New(),
		logger:   logger,
	}
}

// Render fetches the user's enrollment rows for the term and produces
// the schedule image. Both parameters are required; the image format and
// its 800x600 dimensions are part of the external contract.
func (s *ScheduleService) Render(ctx context.Context, userID, term string) ([]byte, error) {
	if err := s.validate.Struct(renderRequest{UserID: userID, Term: term}); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "userId and term are required")
	}

	schedule, err := s.provider.ListByUserAndTermPrefix(ctx, userID, term)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}

	start := time.Now()
	imageBytes, err := s.renderer.Render(term, schedule, s.resolver)
	if err != nil {
		var resolution *catalog.ResolutionError
		if errors.As(err, &resolution) {
			s.logger.Error("unresolvable enrollment row",
				zap.String("user_id", userID),
				zap.String("class_id", resolution.ClassID),
				zap.String("section_id", resolution.SectionID))
			return nil, appErrors.Wrap(err, appErrors.ErrResolution.Code, appErrors.ErrResolution.Status, err.Error())
		}
		var encoding *render.EncodingError
		if errors.As(err, &encoding) {
			return nil, appErrors.Wrap(err, appErrors.ErrEncoding.Code, appErrors.ErrEncoding.Status, appErrors.ErrEncoding.Message)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render schedule")
	}
	if s.metrics != nil {
		s.metrics.ObserveRender(term, len(schedule), time.Since(start))
	}

	return imageBytes, nil
}
