package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/campusbot/schedule-api/internal/models"
	appErrors "github.com/campusbot/schedule-api/pkg/errors"
)

// Registrar CSV layout: the export carries its sheet title in the first
// cell, the section label in column 4 ("MA 1021-AL01 - Calculus I - ...")
// and the registration status in column 8.
const (
	rosterTitle         = "My Enrolled Courses"
	rosterSectionColumn = 4
	rosterStatusColumn  = 8
	rosterStatusWanted  = "Registered"
)

type importStore interface {
	DeleteByUser(ctx context.Context, userID string) error
	BulkInsert(ctx context.Context, records []models.EnrollmentRecord) error
}

type sectionChecker interface {
	Has(classID, sectionID string) bool
}

// ImportService turns an uploaded registrar roster into enrollment rows.
type ImportService struct {
	store   importStore
	catalog sectionChecker
	logger  *zap.Logger
}

// NewImportService constructs ImportService.
func NewImportService(store importStore, catalog sectionChecker, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{store: store, catalog: catalog, logger: logger}
}

// Import parses the roster CSV and replaces the user's enrollment rows
// with the registered sections it contains. Rows that are not registered
// or reference sections absent from the catalog are skipped. Returns the
// number of rows stored.
func (s *ImportService) Import(ctx context.Context, userID string, roster io.Reader) (int, error) {
	if userID == "" {
		return 0, appErrors.Clone(appErrors.ErrValidation, "user id is required")
	}

	records, err := s.parseRoster(userID, roster)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to read the uploaded roster")
	}
	if len(records) == 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "roster did not contain any valid sections")
	}

	if err := s.store.DeleteByUser(ctx, userID); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear previous roster")
	}
	if err := s.store.BulkInsert(ctx, records); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store roster")
	}

	s.logger.Info("roster imported", zap.String("user_id", userID), zap.Int("sections", len(records)))
	return len(records), nil
}

func (s *ImportService) parseRoster(userID string, roster io.Reader) ([]models.EnrollmentRecord, error) {
	reader := csv.NewReader(roster)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read roster header: %w", err)
	}
	if len(header) == 0 || strings.TrimSpace(header[0]) != rosterTitle {
		return nil, fmt.Errorf("unexpected roster title")
	}

	var records []models.EnrollmentRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read roster row: %w", err)
		}
		if len(row) <= rosterStatusColumn || row[rosterStatusColumn] != rosterStatusWanted {
			continue
		}

		classID, sectionID, ok := parseSectionLabel(row[rosterSectionColumn])
		if !ok {
			continue
		}
		if !s.catalog.Has(classID, sectionID) {
			s.logger.Debug("skipping uncatalogued roster row",
				zap.String("class_id", classID), zap.String("section_id", sectionID))
			continue
		}

		records = append(records, models.EnrollmentRecord{
			UserID:    userID,
			ClassID:   classID,
			SectionID: sectionID,
		})
	}
	return records, nil
}

// parseSectionLabel extracts identifiers from a registrar section label
// such as "MA 1021-AL01 - Calculus I - Lecture". The space inside the
// class identifier is dropped, then the leading "CLASS-SECTION" token is
// split on the dash.
func parseSectionLabel(label string) (classID, sectionID string, ok bool) {
	collapsed := strings.Replace(label, " ", "", 1)
	fields := strings.Fields(collapsed)
	if len(fields) == 0 {
		return "", "", false
	}
	parts := strings.SplitN(fields[0], "-", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return strings.ToUpper(parts[0]), strings.ToUpper(parts[1]), true
}
