package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusbot/schedule-api/internal/models"
	appErrors "github.com/campusbot/schedule-api/pkg/errors"
	"github.com/campusbot/schedule-api/pkg/export"
	"github.com/campusbot/schedule-api/pkg/response"
)

type mutualFinder interface {
	FindMutualClasses(ctx context.Context, userA, userB, term string) ([]models.MutualClass, error)
}

// MutualHandler exposes the mutual-enrollment endpoints.
type MutualHandler struct {
	mutuals mutualFinder
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
}

// NewMutualHandler constructs MutualHandler.
func NewMutualHandler(mutuals mutualFinder) *MutualHandler {
	return &MutualHandler{
		mutuals: mutuals,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
	}
}

// List godoc
// @Summary List classes two users share, grouped by class
// @Tags Mutuals
// @Produce json
// @Param userId query string true "First user"
// @Param otherId query string true "Second user"
// @Param term query string false "Term prefix; ALL or absent for every term"
// @Success 200 {object} response.Envelope
// @Router /mutuals [get]
func (h *MutualHandler) List(c *gin.Context) {
	classes, err := h.mutuals.FindMutualClasses(c.Request.Context(), c.Query("userId"), c.Query("otherId"), c.Query("term"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if classes == nil {
		classes = []models.MutualClass{}
	}
	response.JSON(c, http.StatusOK, classes)
}

// Report godoc
// @Summary Export shared classes as a CSV or PDF report
// @Tags Mutuals
// @Produce octet-stream
// @Param userId query string true "First user"
// @Param otherId query string true "Second user"
// @Param term query string false "Term prefix"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} binary
// @Router /mutuals/report [get]
func (h *MutualHandler) Report(c *gin.Context) {
	classes, err := h.mutuals.FindMutualClasses(c.Request.Context(), c.Query("userId"), c.Query("otherId"), c.Query("term"))
	if err != nil {
		response.Error(c, err)
		return
	}

	data := export.Dataset{Headers: []string{"Class", "Name", "Sections"}}
	for _, class := range classes {
		data.Rows = append(data.Rows, map[string]string{
			"Class":    class.ClassID,
			"Name":     class.Name,
			"Sections": strings.Join(class.SectionIDs, ", "),
		})
	}

	switch strings.ToLower(c.DefaultQuery("format", "csv")) {
	case "pdf":
		rendered, err := h.pdf.Render(data, "Shared classes")
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report"))
			return
		}
		c.Data(http.StatusOK, "application/pdf", rendered)
	case "csv":
		rendered, err := h.csv.Render(data)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report"))
			return
		}
		c.Data(http.StatusOK, "text/csv", rendered)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown report format"))
	}
}
