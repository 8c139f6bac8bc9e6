package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/campusbot/schedule-api/internal/models"
)

const fontSize = 14

// EncodingError reports a failure while turning the raster into PNG bytes.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode schedule image: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// detailLine is one block label, gated by a minimum block height. The
// lines are evaluated top to bottom so the level of detail grows with the
// block: taller blocks carry more text.
type detailLine struct {
	minHeight float64
	offsetY   int
	text      func(p Placement) string
}

var detailLines = []detailLine{
	{minHeight: 0, offsetY: 10, text: func(p Placement) string {
		return strings.ToUpper(p.Record.ClassID) + "-" + strings.ToUpper(p.Record.SectionID)
	}},
	{minHeight: 30, offsetY: 25, text: func(p Placement) string { return p.Section.Name }},
	{minHeight: 45, offsetY: 40, text: func(p Placement) string { return p.Section.Room }},
	{minHeight: 60, offsetY: 55, text: func(p Placement) string { return p.Section.Type }},
}

// Renderer rasterizes a weekly schedule into a PNG image. The font face
// is loaded once at construction; the drawing surface is allocated fresh
// per call so concurrent renders never share mutable pixels. The face
// itself keeps an internal buffer, so calls are serialized with a mutex.
type Renderer struct {
	mu   sync.Mutex
	face font.Face
}

// NewRenderer builds a renderer with the bundled regular face.
func NewRenderer() (*Renderer, error) {
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build font face: %w", err)
	}
	return &Renderer{face: face}, nil
}

// Render produces the 800x600 PNG for one (term, schedule) pair.
//
// An empty schedule is not an error: the sentinel time window keeps the
// hour loop empty and no blocks are drawn, yielding the bare grid.
func (r *Renderer) Render(term string, schedule []models.EnrollmentRecord, resolver Resolver) ([]byte, error) {
	view, placements, err := BuildView(schedule, resolver)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	layout := NewLayout(view)
	img := image.NewRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))
	measure := faceMeasurer{face: r.face}

	fillRect(img, 0, 0, canvasWidth, canvasHeight, black)

	r.drawText(img, white, term+" term", 5, 15)

	for d := 0; d < 5; d++ {
		fillRect(img, ColumnX(d), 0, 1, canvasHeight, white)
		r.drawText(img, white, dayNames[d], ColumnX(d)+5, 15)
	}

	fillRect(img, 0, headerHeight, canvasWidth, 1, white)

	from, to := layout.HourRange()
	for h := from; h < to; h++ {
		y := layout.GridY(h * 60)
		fillRect(img, 0, round(y), canvasWidth, 1, white)
		r.drawText(img, white, hourLabel(h), 5, round(y)+15)
	}

	for _, p := range placements {
		blockColor := view.Colors[p.Section.ClassID]
		height := layout.PixelsPerMinute * float64(p.Section.EndMinute-p.Section.StartMinute)

		for _, day := range p.Section.Weekdays {
			x := ColumnX(day) + 5
			y := layout.GridY(p.Section.StartMinute) + 5

			fillRect(img, x-2, round(y)-2, blockWidth, round(height), blockColor)

			for _, line := range detailLines {
				if line.minHeight > 0 && height <= line.minHeight {
					continue
				}
				label := fitText(measure, line.text(p), labelWidth)
				r.drawText(img, black, label, x, round(y)+line.offsetY)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &EncodingError{Err: err}
	}
	return buf.Bytes(), nil
}

// drawText paints s with its baseline at (x, y).
func (r *Renderer) drawText(img *image.RGBA, col color.Color, s string, x, y int) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: r.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func fillRect(img *image.RGBA, x, y, w, h int, col color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	draw.Draw(img, image.Rect(x, y, x+w, y+h), image.NewUniform(col), image.Point{}, draw.Src)
}

func round(f float64) int {
	return int(math.Round(f))
}
