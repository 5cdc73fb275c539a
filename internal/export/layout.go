package export

import (
	"fmt"
	"math"
)

// PageSize is a page in millimetres.
type PageSize struct {
	WidthMM  float64
	HeightMM float64
}

// A4 portrait.
var A4 = PageSize{WidthMM: 210, HeightMM: 297}

// DefaultTopMarginMM is the fixed gap above the image.
const DefaultTopMarginMM = 30

// Layout places a bitmap on a page, all values in millimetres.
type Layout struct {
	Page   PageSize
	X      float64
	Y      float64
	Width  float64
	Height float64
	Scale  float64
}

// ComputeLayout scales a bitmap uniformly so it fits the page,
// scale = min(pageW/bitmapW, pageH/bitmapH), centres it horizontally and puts
// it topMargin from the top edge. Bitmap dimensions share the page's unit
// ratio, so pixels are used directly.
func ComputeLayout(page PageSize, bitmapWidth, bitmapHeight int, topMargin float64) (Layout, error) {
	if bitmapWidth <= 0 || bitmapHeight <= 0 {
		return Layout{}, fmt.Errorf("bitmap has no area (%dx%d)", bitmapWidth, bitmapHeight)
	}
	if page.WidthMM <= 0 || page.HeightMM <= 0 {
		return Layout{}, fmt.Errorf("page has no area (%.1fx%.1f mm)", page.WidthMM, page.HeightMM)
	}

	w := float64(bitmapWidth)
	h := float64(bitmapHeight)
	scale := math.Min(page.WidthMM/w, page.HeightMM/h)

	return Layout{
		Page:   page,
		X:      (page.WidthMM - w*scale) / 2,
		Y:      topMargin,
		Width:  w * scale,
		Height: h * scale,
		Scale:  scale,
	}, nil
}
