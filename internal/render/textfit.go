package render

import (
	"golang.org/x/image/font"
)

// truncationMarker is appended when a label has to be shortened.
const truncationMarker = "..."

// Measurer reports the rendered pixel width of a string under the active
// font face.
type Measurer interface {
	Width(s string) int
}

// fitText shrinks text to fit within maxWidth pixels. A string that
// already fits is returned unchanged, making the function idempotent.
// Otherwise the last character is dropped and the prefix re-measured with
// the truncation marker until it fits or the prefix is empty. Linear in
// the label length, which is fine for the short labels drawn here.
func fitText(m Measurer, text string, maxWidth int) string {
	if m.Width(text) <= maxWidth {
		return text
	}

	runes := []rune(text)
	n := len(runes) - 1
	for n > 0 && m.Width(string(runes[:n])+truncationMarker) > maxWidth {
		n--
	}
	return string(runes[:n]) + truncationMarker
}

// faceMeasurer measures with a font.Face. Not safe for concurrent use;
// the face keeps an internal rasterization buffer.
type faceMeasurer struct {
	face font.Face
}

func (m faceMeasurer) Width(s string) int {
	return font.MeasureString(m.face, s).Ceil()
}
