// Package sheet lays rendered icons out on a labelled contact sheet for
// visual review.
package sheet

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"path"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Mavwarf/moonicon/internal/export"
	"github.com/Mavwarf/moonicon/internal/icon"
)

// DefaultCell is the default cell edge in pixels.
const DefaultCell = 128

// MinCell is the smallest usable cell edge.
const MinCell = 32

const (
	padding     = 4
	labelHeight = 16
	checkerSize = 8
)

var (
	checkerLight = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	checkerDark  = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	labelColor   = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
)

// Tile is one icon and its caption.
type Tile struct {
	Image image.Image
	Label string
}

// Render draws tiles on a grid of ceil(sqrt(n)) columns. Each cell is cell
// pixels square plus a caption strip. Icons larger than a cell are scaled
// down with Catmull-Rom; smaller icons are drawn at their own size.
func Render(tiles []Tile, cell int) *image.RGBA {
	if len(tiles) == 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	if cell < MinCell {
		cell = MinCell
	}
	cols, rows := Grid(len(tiles))
	cellH := cell + labelHeight
	dst := image.NewRGBA(image.Rect(0, 0, cols*cell, rows*cellH))
	drawChecker(dst)

	for i, t := range tiles {
		origin := image.Pt((i%cols)*cell, (i/cols)*cellH)
		drawIcon(dst, t.Image, image.Rect(padding, padding, cell-padding, cell-padding).Add(origin))
		drawLabel(dst, t.Label, image.Rect(0, cell, cell, cellH).Add(origin))
	}
	return dst
}

// Grid returns the column and row counts for n tiles.
func Grid(n int) (cols, rows int) {
	if n <= 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = (n + cols - 1) / cols
	return cols, rows
}

func drawChecker(dst *image.RGBA) {
	b := dst.Bounds()
	light, dark := image.NewUniform(checkerLight), image.NewUniform(checkerDark)
	for y := b.Min.Y; y < b.Max.Y; y += checkerSize {
		for x := b.Min.X; x < b.Max.X; x += checkerSize {
			src := light
			if (x/checkerSize+y/checkerSize)%2 == 1 {
				src = dark
			}
			draw.Draw(dst, image.Rect(x, y, x+checkerSize, y+checkerSize).Intersect(b), src, image.Point{}, draw.Src)
		}
	}
}

// drawIcon centres src in box, scaling down to fit when needed.
func drawIcon(dst *image.RGBA, src image.Image, box image.Rectangle) {
	if src == nil {
		return
	}
	sb := src.Bounds()
	w, h := sb.Dx(), sb.Dy()
	if w == 0 || h == 0 {
		return
	}
	if w > box.Dx() || h > box.Dy() {
		scale := math.Min(float64(box.Dx())/float64(w), float64(box.Dy())/float64(h))
		w = max(1, int(float64(w)*scale))
		h = max(1, int(float64(h)*scale))
	}
	x := box.Min.X + (box.Dx()-w)/2
	y := box.Min.Y + (box.Dy()-h)/2
	r := image.Rect(x, y, x+w, y+h)

	if w == sb.Dx() && h == sb.Dy() {
		draw.Draw(dst, r, src, sb.Min, draw.Over)
		return
	}
	draw.CatmullRom.Scale(dst, r, src, sb, draw.Over, nil)
}

// drawLabel writes text into box, truncated with ".." to fit.
func drawLabel(dst *image.RGBA, text string, box image.Rectangle) {
	face := basicfont.Face7x13
	text = truncate(face, text, box.Dx()-2)
	if text == "" {
		return
	}
	width := font.MeasureString(face, text).Ceil()
	m := face.Metrics()
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(labelColor),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(box.Min.X + (box.Dx()-width)/2),
			Y: fixed.I(box.Min.Y + m.Ascent.Ceil()),
		},
	}
	d.DrawString(text)
}

func truncate(face font.Face, text string, width int) string {
	if font.MeasureString(face, text).Ceil() <= width {
		return text
	}
	r := []rune(text)
	for len(r) > 0 {
		r = r[:len(r)-1]
		s := string(r) + ".."
		if font.MeasureString(face, s).Ceil() <= width {
			return s
		}
	}
	return ""
}

// FromPlan renders one tile per PNG item, skipping manifests. Icons are
// rendered once per kind and size.
func FromPlan(items []export.Item) ([]Tile, error) {
	type key struct {
		kind icon.Kind
		size int
	}
	cache := make(map[key]image.Image)

	var tiles []Tile
	for _, it := range items {
		if it.Manifest != nil {
			continue
		}
		k := key{it.Kind, it.Size}
		img, ok := cache[k]
		if !ok {
			rgba, err := icon.Render(it.Kind, it.Size)
			if err != nil {
				return nil, err
			}
			img = rgba
			cache[k] = img
		}
		tiles = append(tiles, Tile{
			Image: img,
			Label: fmt.Sprintf("%d %s", it.Size, path.Base(it.Path)),
		})
	}
	return tiles, nil
}
