package icon

import "math"

// Point is a position in pixel space, origin top-left.
type Point struct {
	X, Y float64
}

// Circle is a disc given by centre and radius in pixels.
type Circle struct {
	X, Y, R float64
}

// StarPolygon returns the 2*points vertices of a star centred on (cx, cy).
// Vertices alternate between the outer radius r and r*inner, starting at
// angle 0 and advancing by π/points.
func StarPolygon(cx, cy, r, inner float64, points int) []Point {
	if points < 2 {
		points = 2
	}
	n := 2 * points
	step := math.Pi / float64(points)
	pts := make([]Point, n)
	for i := range pts {
		rad := r
		if i%2 == 1 {
			rad = r * inner
		}
		a := float64(i) * step
		pts[i] = Point{X: cx + rad*math.Cos(a), Y: cy + rad*math.Sin(a)}
	}
	return pts
}

// SineArc samples n points of a half-period sine curve spanning span pixels
// horizontally and centred on x0. Sample i sits at t = i/(n-1):
//
//	x = x0 - span/2 + span*t
//	y = y0 + sin(t*π)*amp
//
// A negative amp bows the curve upward (a smile in screen coordinates).
func SineArc(x0, y0, span, amp float64, n int) []Point {
	if n < 2 {
		n = 2
	}
	pts := make([]Point, n)
	for i := range pts {
		t := float64(i) / float64(n-1)
		pts[i] = Point{
			X: x0 - span/2 + span*t,
			Y: y0 + math.Sin(t*math.Pi)*amp,
		}
	}
	return pts
}

// ZGlyph returns the four corners of a "Z" of edge s centred on (cx, cy),
// in stroke order: top-left, top-right, bottom-left, bottom-right.
func ZGlyph(cx, cy, s float64) []Point {
	h := s / 2
	return []Point{
		{X: cx - h, Y: cy - h},
		{X: cx + h, Y: cy - h},
		{X: cx - h, Y: cy + h},
		{X: cx + h, Y: cy + h},
	}
}

// CirclePolygon approximates c with segments vertices.
func CirclePolygon(c Circle, segments int) []Point {
	return arc(c, 0, 2*math.Pi, segments)[:segments]
}

// Lune returns the rings outlining disc a with disc b removed, to be filled
// with the even-odd rule. The result is:
//   - one ring (the full circle a) when the discs do not overlap,
//   - nil when b covers a entirely,
//   - two rings (a, then b as the hole) when b lies strictly inside a,
//   - otherwise one ring: the arc of a outside b followed by the arc of b
//     inside a.
//
// segments is the vertex count used for a full circle; arcs get a share
// proportional to their sweep.
func Lune(a, b Circle, segments int) [][]Point {
	if segments < 8 {
		segments = 8
	}
	d := math.Hypot(b.X-a.X, b.Y-a.Y)
	switch {
	case d >= a.R+b.R:
		return [][]Point{CirclePolygon(a, segments)}
	case d+a.R <= b.R:
		return nil
	case d+b.R <= a.R:
		return [][]Point{CirclePolygon(a, segments), CirclePolygon(b, segments)}
	}

	theta := math.Atan2(b.Y-a.Y, b.X-a.X)
	alpha := math.Acos(clampUnit((d*d + a.R*a.R - b.R*b.R) / (2 * d * a.R)))
	phi := theta + math.Pi
	beta := math.Acos(clampUnit((d*d + b.R*b.R - a.R*a.R) / (2 * d * b.R)))

	outerSweep := 2*math.Pi - 2*alpha
	innerSweep := 2 * beta
	outer := arc(a, theta+alpha, outerSweep, sweepSegments(outerSweep, segments))
	inner := arc(b, phi+beta, -innerSweep, sweepSegments(innerSweep, segments))

	ring := make([]Point, 0, len(outer)+len(inner))
	ring = append(ring, outer...)
	// Both arcs share their end points; drop the duplicates.
	ring = append(ring, inner[1:len(inner)-1]...)
	return [][]Point{ring}
}

// arc samples segments+1 points of c from angle start over sweep radians.
func arc(c Circle, start, sweep float64, segments int) []Point {
	pts := make([]Point, segments+1)
	for i := range pts {
		a := start + sweep*float64(i)/float64(segments)
		pts[i] = Point{X: c.X + c.R*math.Cos(a), Y: c.Y + c.R*math.Sin(a)}
	}
	return pts
}

func sweepSegments(sweep float64, full int) int {
	n := int(math.Ceil(float64(full) * sweep / (2 * math.Pi)))
	if n < 2 {
		n = 2
	}
	return n
}

func clampUnit(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}

// StrokeWidth returns the eye and smile stroke width for an icon edge of
// size pixels: 3px at 1024, never thinner than 2px.
func StrokeWidth(size int) float64 {
	return math.Max(2, 3*float64(size)/1024)
}

// ZStrokeWidth returns the stroke width for a Z glyph of edge s pixels.
func ZStrokeWidth(s float64) float64 {
	return math.Max(2, 0.1*s)
}

// circleSegments picks a polygon resolution fine enough that the chord
// error stays well under a pixel.
func circleSegments(r float64) int {
	n := int(math.Ceil(2 * math.Pi * r / 2))
	if n < 32 {
		n = 32
	}
	return n
}
