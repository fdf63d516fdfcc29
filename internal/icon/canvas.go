package icon

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

// canvas is the destination raster for one render call. Shapes are
// rasterised by gg into a scratch context; only the scratch alpha is used,
// as a coverage mask for compositing the layer colour onto img.
type canvas struct {
	img  *image.RGBA
	size int
	err  error // first rasterisation error
}

func newCanvas(size int) *canvas {
	// image.Rect would swap a negative size into a non-empty rectangle.
	size = max(size, 0)
	return &canvas{
		img:  image.NewRGBA(image.Rect(0, 0, size, size)),
		size: size,
	}
}

// fillRect overwrites r with c (no blending).
func (cv *canvas) fillRect(r image.Rectangle, c color.NRGBA) {
	draw.Draw(cv.img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// layer composites c over the canvas through the union of every shape's
// coverage. The union keeps the larger coverage per pixel, so shapes that
// overlap within one layer never compound a translucent colour.
func (cv *canvas) layer(c color.NRGBA, shapes ...func(dc *gg.Context) error) {
	if cv.err != nil || cv.size <= 0 {
		return
	}
	mask := image.NewAlpha(cv.img.Bounds())
	for _, shape := range shapes {
		cov, err := cv.coverage(shape)
		if err != nil {
			cv.err = err
			return
		}
		unionAlpha(mask, cov)
	}
	cv.composite(c, mask)
}

// coverage rasterises shape in white on a scratch context.
func (cv *canvas) coverage(shape func(dc *gg.Context) error) (image.Image, error) {
	dc := gg.NewContext(cv.size, cv.size)
	defer dc.Close()
	dc.SetColor(color.White)

	if err := shape(dc); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// composite draws c over the canvas with mask as per-pixel coverage.
func (cv *canvas) composite(c color.NRGBA, mask image.Image) {
	if cv.err != nil || cv.size <= 0 {
		return
	}
	draw.DrawMask(cv.img, cv.img.Bounds(), image.NewUniform(c), image.Point{},
		mask, image.Point{}, draw.Over)
}

// unionAlpha raises every pixel of dst to the alpha of src where src is
// more opaque.
func unionAlpha(dst *image.Alpha, src image.Image) {
	b := dst.Bounds().Intersect(src.Bounds())
	if rgba, ok := src.(*image.RGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				a := rgba.Pix[rgba.PixOffset(x, y)+3]
				if i := dst.PixOffset(x, y); a > dst.Pix[i] {
					dst.Pix[i] = a
				}
			}
		}
		return
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a32 := src.At(x, y).RGBA()
			if a := uint8(a32 >> 8); a > dst.AlphaAt(x, y).A {
				dst.SetAlpha(x, y, color.Alpha{A: a})
			}
		}
	}
}

// discMask marks every pixel whose centre lies inside one of circles. The
// edge is hard: each pixel is either fully covered or untouched.
func discMask(size int, circles ...Circle) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, max(size, 0), max(size, 0)))
	b := mask.Bounds()
	for _, c := range circles {
		r := image.Rect(
			int(math.Floor(c.X-c.R)), int(math.Floor(c.Y-c.R)),
			int(math.Ceil(c.X+c.R))+1, int(math.Ceil(c.Y+c.R))+1,
		).Intersect(b)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				dx, dy := float64(x)+0.5-c.X, float64(y)+0.5-c.Y
				if dx*dx+dy*dy <= c.R*c.R {
					mask.SetAlpha(x, y, color.Alpha{A: 0xff})
				}
			}
		}
	}
	return mask
}

// fillCircles fills every circle in one pass with the non-zero rule.
func fillCircles(circles ...Circle) func(*gg.Context) error {
	return func(dc *gg.Context) error {
		for _, c := range circles {
			dc.DrawCircle(c.X, c.Y, c.R)
		}
		return dc.Fill()
	}
}

// fillRings fills closed polygons with the even-odd rule, so a ring inside
// another ring is a hole.
func fillRings(rings ...[]Point) func(*gg.Context) error {
	return func(dc *gg.Context) error {
		dc.SetFillRule(gg.FillRuleEvenOdd)
		for _, ring := range rings {
			tracePath(dc, ring)
			dc.ClosePath()
		}
		return dc.Fill()
	}
}

// strokePolylines strokes each open polyline with width w and round
// joins and caps.
func strokePolylines(w float64, lines ...[]Point) func(*gg.Context) error {
	return func(dc *gg.Context) error {
		dc.SetLineWidth(w)
		dc.SetLineCap(gg.LineCapRound)
		dc.SetLineJoin(gg.LineJoinRound)
		for _, line := range lines {
			tracePath(dc, line)
		}
		return dc.Stroke()
	}
}

func tracePath(dc *gg.Context, pts []Point) {
	for i, p := range pts {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
			continue
		}
		dc.LineTo(p.X, p.Y)
	}
}
