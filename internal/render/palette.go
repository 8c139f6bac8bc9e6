package render

import "image/color"

// palette holds the ordered block colors handed out to classes by first
// appearance. Seventeen entries; once exhausted every further class falls
// back to white, which is a known scaling limit for unusually dense
// schedules rather than a defect.
var palette = []color.RGBA{
	{R: 172, G: 114, B: 94, A: 255},
	{R: 250, G: 87, B: 60, A: 255},
	{R: 255, G: 173, B: 70, A: 255},
	{R: 66, G: 214, B: 146, A: 255},
	{R: 123, G: 209, B: 72, A: 255},
	{R: 154, G: 156, B: 255, A: 255},
	{R: 179, G: 220, B: 108, A: 255},
	{R: 202, G: 189, B: 191, A: 255},
	{R: 251, G: 233, B: 131, A: 255},
	{R: 205, G: 116, B: 230, A: 255},
	{R: 194, G: 194, B: 194, A: 255},
	{R: 159, G: 225, B: 231, A: 255},
	{R: 246, G: 145, B: 178, A: 255},
	{R: 146, G: 225, B: 192, A: 255},
	{R: 251, G: 233, B: 131, A: 255},
	{R: 123, G: 209, B: 72, A: 255},
	{R: 159, G: 198, B: 231, A: 255},
}

// fallbackColor is assigned to every class beyond the palette.
var fallbackColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

var (
	black = color.RGBA{A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)
