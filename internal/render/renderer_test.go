package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbot/schedule-api/internal/catalog"
	"github.com/campusbot/schedule-api/internal/models"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	return r
}

func TestRenderProducesFixedSizePNG(t *testing.T) {
	r := newTestRenderer(t)

	imageBytes, err := r.Render("A", []models.EnrollmentRecord{record("MA1021", "AL01")}, testSections())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(imageBytes))
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, 800, bounds.Dx())
	assert.Equal(t, 600, bounds.Dy())
}

func TestRenderPaintsSectionBlock(t *testing.T) {
	r := newTestRenderer(t)

	imageBytes, err := r.Render("A", []models.EnrollmentRecord{record("MA1021", "AL01")}, testSections())
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(imageBytes))
	require.NoError(t, err)

	// MA1021-AL01 is the window's only section, so its Monday block
	// spans the full grid band. Sample a pixel below the text lines.
	cr, cg, cb, _ := img.At(100, 300).RGBA()
	want := palette[0]
	assert.Equal(t, uint32(want.R), cr>>8)
	assert.Equal(t, uint32(want.G), cg>>8)
	assert.Equal(t, uint32(want.B), cb>>8)

	// The hour gutter stays black outside labels and gridlines.
	cr, cg, cb, _ = img.At(20, 300).RGBA()
	assert.Zero(t, cr>>8)
	assert.Zero(t, cg>>8)
	assert.Zero(t, cb>>8)
}

func TestRenderEmptySchedule(t *testing.T) {
	r := newTestRenderer(t)

	imageBytes, err := r.Render("C", nil, testSections())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(imageBytes))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestRenderUnresolvableRecordFails(t *testing.T) {
	r := newTestRenderer(t)

	_, err := r.Render("A", []models.EnrollmentRecord{record("XX0000", "A01")}, testSections())
	require.Error(t, err)

	var resolution *catalog.ResolutionError
	assert.ErrorAs(t, err, &resolution)
}

func TestRenderSequentialCallsAreIndependent(t *testing.T) {
	r := newTestRenderer(t)

	first, err := r.Render("A", []models.EnrollmentRecord{record("MA1021", "AL01")}, testSections())
	require.NoError(t, err)
	second, err := r.Render("A", []models.EnrollmentRecord{record("MA1021", "AL01")}, testSections())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
