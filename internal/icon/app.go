package icon

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
)

// App icon palette.
var (
	skyTop       = color.NRGBA{R: 123, G: 104, B: 238, A: 255} // #7B68EE
	skyBottom    = color.NRGBA{R: 147, G: 112, B: 219, A: 255} // #9370DB
	cloudColor   = color.NRGBA{R: 255, G: 255, B: 255, A: 180}
	moonColor    = color.NRGBA{R: 255, G: 248, B: 220, A: 255}
	featureColor = color.NRGBA{R: 100, G: 80, B: 60, A: 255}
	starColor    = color.NRGBA{R: 255, G: 255, B: 224, A: 255}
	zzzColor     = color.NRGBA{R: 255, G: 255, B: 255, A: 200}
)

// Proportional (x, y, r) triples, as fractions of the icon edge.
var (
	cloudFractions = []Circle{
		{0.15, 0.85, 0.12},
		{0.25, 0.80, 0.10},
		{0.35, 0.85, 0.13},
		{0.50, 0.82, 0.11},
		{0.65, 0.85, 0.12},
		{0.75, 0.81, 0.10},
		{0.85, 0.85, 0.11},
	}
	starFractions = []Circle{
		{0.15, 0.20, 0.03},
		{0.80, 0.15, 0.025},
		{0.85, 0.35, 0.02},
		{0.20, 0.60, 0.025},
		{0.75, 0.65, 0.03},
	}
	// R is the glyph edge.
	zFractions = []Circle{
		{0.70, 0.25, 0.08},
		{0.78, 0.20, 0.06},
		{0.84, 0.16, 0.04},
	}
)

const (
	eyeSamples   = 20
	smileSamples = 30
	starInner    = 0.4
)

// AppLayout is the geometry of the app icon at one size. Every value is
// the icon edge times a fixed fraction.
type AppLayout struct {
	Size        int
	Moon        Circle   // moon body
	Cut         Circle   // crescent cut, filled with the bottom sky colour
	Clouds      []Circle // cloud band
	Stars       []Circle // R is the outer star radius
	Zs          []Circle // R is the glyph edge
	LeftEye     []Point
	RightEye    []Point
	Smile       []Point
	StrokeWidth float64 // eyes and smile
}

// NewAppLayout computes the app icon geometry for an edge of size pixels.
func NewAppLayout(size int) AppLayout {
	s := float64(size)
	moon := Circle{X: s * 0.5, Y: s * 0.45, R: s * 0.25}
	r := moon.R

	l := AppLayout{
		Size:        size,
		Moon:        moon,
		Cut:         Circle{X: moon.X + r*0.5, Y: moon.Y, R: r},
		Clouds:      scaleCircles(cloudFractions, s),
		Stars:       scaleCircles(starFractions, s),
		Zs:          scaleCircles(zFractions, s),
		StrokeWidth: StrokeWidth(size),
	}

	eyeSpan, eyeAmp := r*0.3, r*0.08
	eyeY := moon.Y - r*0.1
	l.LeftEye = SineArc(moon.X-r*0.3, eyeY, eyeSpan, eyeAmp, eyeSamples)
	l.RightEye = SineArc(moon.X+r*0.1, eyeY, eyeSpan, eyeAmp, eyeSamples)
	l.Smile = SineArc(moon.X, moon.Y+r*0.2, r*0.4, -r*0.1, smileSamples)
	return l
}

// App draws the sleeping-moon app icon as a size×size image. The result is
// deterministic; a size below 1 yields an empty image. App panics if
// rasterisation fails; Render returns that failure as an error instead.
func App(size int) *image.RGBA {
	return must(drawApp(size))
}

func drawApp(size int) (*image.RGBA, error) {
	cv := newCanvas(size)
	if size <= 0 {
		return cv.img, nil
	}
	l := NewAppLayout(size)

	for y := 0; y < size; y++ {
		cv.fillRect(image.Rect(0, y, size, y+1), skyAt(y, size))
	}

	cv.layer(cloudColor, fillCircles(l.Clouds...))
	cv.layer(moonColor, fillCircles(l.Moon))
	cv.layer(skyBottom, fillCircles(l.Cut))
	cv.layer(featureColor, strokePolylines(l.StrokeWidth, l.LeftEye, l.RightEye, l.Smile))

	stars := make([][]Point, len(l.Stars))
	for i, st := range l.Stars {
		stars[i] = StarPolygon(st.X, st.Y, st.R, starInner, 4)
	}
	cv.layer(starColor, fillRings(stars...))

	cv.layer(zzzColor, zShapes(l.Zs)...)
	return cv.img, cv.err
}

// zShapes strokes each Z with the width for its own glyph size. All of
// them go into one layer, so glyphs that touch at small sizes do not
// stack their translucency.
func zShapes(zs []Circle) []func(*gg.Context) error {
	shapes := make([]func(*gg.Context) error, len(zs))
	for i, z := range zs {
		shapes[i] = strokePolylines(ZStrokeWidth(z.R), ZGlyph(z.X, z.Y, z.R))
	}
	return shapes
}

// skyAt returns the background colour of row y: a linear blend from skyTop
// on the first row to skyBottom on the last, channels truncated.
func skyAt(y, size int) color.NRGBA {
	ratio := 0.0
	if size > 1 {
		ratio = float64(y) / float64(size-1)
	}
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*ratio)
	}
	return color.NRGBA{
		R: lerp(skyTop.R, skyBottom.R),
		G: lerp(skyTop.G, skyBottom.G),
		B: lerp(skyTop.B, skyBottom.B),
		A: 255,
	}
}

func scaleCircles(fr []Circle, s float64) []Circle {
	out := make([]Circle, len(fr))
	for i, c := range fr {
		out[i] = Circle{X: c.X * s, Y: c.Y * s, R: c.R * s}
	}
	return out
}
