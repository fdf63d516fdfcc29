package icon

import (
	"image"
	"image/color"
	"math"
)

// Notification icon palette.
var (
	bodyColor = color.NRGBA{R: 123, G: 104, B: 238, A: 255} // purple
	dotColor  = color.NRGBA{R: 255, G: 215, B: 0, A: 255}   // gold
)

// dotGap is the least distance left between two dot rims, so the dots
// stay apart even at the smallest notification sizes.
const dotGap = 1.5

var dotFractions = []Point{
	{0.70, 0.30},
	{0.80, 0.50},
	{0.65, 0.70},
}

// NotificationLayout is the geometry of the notification icon at one size.
type NotificationLayout struct {
	Size    int
	Padding float64
	Inner   float64 // edge of the padded square
	Body    Circle  // moon disc inscribed in the padded square
	Cutout  Circle  // disc removed from Body to leave a crescent
	Dots    []Circle
}

// NewNotificationLayout computes the notification icon geometry for an
// edge of size pixels.
func NewNotificationLayout(size int) NotificationLayout {
	s := float64(size)
	pad := s * 0.1
	inner := s - 2*pad
	half := inner / 2
	off := inner * 0.3

	l := NotificationLayout{
		Size:    size,
		Padding: pad,
		Inner:   inner,
		Body:    Circle{X: pad + half, Y: pad + half, R: half},
		Cutout:  Circle{X: pad + half + off, Y: pad + half - off*0.5, R: half},
	}
	for _, f := range dotFractions {
		// Centred on a pixel so the hard-edged disc is symmetric.
		l.Dots = append(l.Dots, Circle{
			X: math.Floor(pad+float64(inner*f.X)) + 0.5,
			Y: math.Floor(pad+float64(inner*f.Y)) + 0.5,
		})
	}
	dotR := math.Min(math.Max(2, math.Trunc(s*0.05)), (minSpacing(l.Dots)-dotGap)/2)
	dotR = math.Max(dotR, 0.5)
	for i := range l.Dots {
		l.Dots[i].R = dotR
	}
	return l
}

func minSpacing(cs []Circle) float64 {
	d := math.Inf(1)
	for i := range cs {
		for _, o := range cs[i+1:] {
			d = math.Min(d, math.Hypot(cs[i].X-o.X, cs[i].Y-o.Y))
		}
	}
	return d
}

// Notification draws the crescent-moon notification icon as a size×size
// image on a transparent background. The cutout is removed geometrically,
// so the carved area is fully transparent. A size below 1 yields an empty
// image. Notification panics if rasterisation fails; Render returns that
// failure as an error instead.
func Notification(size int) *image.RGBA {
	return must(drawNotification(size))
}

func drawNotification(size int) (*image.RGBA, error) {
	cv := newCanvas(size)
	if size <= 0 {
		return cv.img, nil
	}
	l := NewNotificationLayout(size)

	crescent := Lune(l.Body, l.Cutout, circleSegments(l.Body.R))
	cv.layer(bodyColor, fillRings(crescent...))
	cv.composite(dotColor, discMask(size, l.Dots...))
	return cv.img, cv.err
}
