package icon

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func near(a, b uint8, tol int) bool {
	d := int(a) - int(b)
	return d >= -tol && d <= tol
}

func colorNear(got, want color.NRGBA, tol int) bool {
	return near(got.R, want.R, tol) && near(got.G, want.G, tol) &&
		near(got.B, want.B, tol) && near(got.A, want.A, tol)
}

func TestBoundsMatchSize(t *testing.T) {
	for _, k := range Kinds() {
		for _, size := range []int{1, 2, 3, 20, 24, 29, 48, 83, 167} {
			img, err := Render(k, size)
			if err != nil {
				t.Fatalf("Render(%s, %d): %v", k, size, err)
			}
			b := img.Bounds()
			if b.Min != (image.Point{}) || b.Dx() != size || b.Dy() != size {
				t.Errorf("Render(%s, %d) bounds = %v, want %dx%d at origin", k, size, b, size, size)
			}
		}
	}
}

func TestNonPositiveSizeIsEmpty(t *testing.T) {
	for _, size := range []int{0, -5} {
		if b := App(size).Bounds(); !b.Empty() {
			t.Errorf("App(%d) bounds = %v, want empty", size, b)
		}
		if b := Notification(size).Bounds(); !b.Empty() {
			t.Errorf("Notification(%d) bounds = %v, want empty", size, b)
		}
	}
}

func TestDeterministic(t *testing.T) {
	for _, k := range Kinds() {
		a, err := Render(k, 120)
		if err != nil {
			t.Fatal(err)
		}
		b, err := Render(k, 120)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(a.Pix, b.Pix) {
			t.Errorf("%s: two renders at 120px differ", k)
		}
	}
}

func TestRenderUnknownKind(t *testing.T) {
	if _, err := Render("splash", 10); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"app", KindApp, false},
		{"  Notification ", KindNotification, false},
		{"APP", KindApp, false},
		{"launcher", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// --- app icon ---

func TestAppLayoutMoonRadius(t *testing.T) {
	for _, size := range []int{1, 20, 180, 1024} {
		l := NewAppLayout(size)
		if want := 0.25 * float64(size); l.Moon.R != want {
			t.Errorf("size %d: moon radius = %v, want %v", size, l.Moon.R, want)
		}
		if l.Cut.X-l.Moon.X != l.Moon.R*0.5 || l.Cut.R != l.Moon.R {
			t.Errorf("size %d: cut = %+v for moon %+v", size, l.Cut, l.Moon)
		}
	}
}

func TestAppLayoutScalesLinearly(t *testing.T) {
	small := NewAppLayout(512)
	large := NewAppLayout(1024)

	doubled := small
	doubled.Moon = scaleCircle(small.Moon)
	doubled.Cut = scaleCircle(small.Cut)
	doubled.Clouds = scaleAll(small.Clouds)
	doubled.Stars = scaleAll(small.Stars)
	doubled.Zs = scaleAll(small.Zs)
	doubled.LeftEye = scalePoints(small.LeftEye)
	doubled.RightEye = scalePoints(small.RightEye)
	doubled.Smile = scalePoints(small.Smile)

	opts := cmp.Options{
		cmpopts.EquateApprox(0, 1e-9),
		cmpopts.IgnoreFields(AppLayout{}, "Size", "StrokeWidth"),
	}
	if diff := cmp.Diff(large, doubled, opts); diff != "" {
		t.Errorf("layout(1024) != 2 * layout(512) (-1024 +2*512):\n%s", diff)
	}
}

func scaleCircle(c Circle) Circle { return Circle{X: 2 * c.X, Y: 2 * c.Y, R: 2 * c.R} }

func scaleAll(cs []Circle) []Circle {
	out := make([]Circle, len(cs))
	for i, c := range cs {
		out[i] = scaleCircle(c)
	}
	return out
}

func scalePoints(ps []Point) []Point {
	out := make([]Point, len(ps))
	for i, p := range ps {
		out[i] = Point{X: 2 * p.X, Y: 2 * p.Y}
	}
	return out
}

func TestAppLayoutSampleCounts(t *testing.T) {
	l := NewAppLayout(256)
	if len(l.LeftEye) != 20 || len(l.RightEye) != 20 {
		t.Errorf("eye samples = %d/%d, want 20", len(l.LeftEye), len(l.RightEye))
	}
	if len(l.Smile) != 30 {
		t.Errorf("smile samples = %d, want 30", len(l.Smile))
	}
	if len(l.Clouds) != 7 || len(l.Stars) != 5 || len(l.Zs) != 3 {
		t.Errorf("clouds/stars/zs = %d/%d/%d, want 7/5/3", len(l.Clouds), len(l.Stars), len(l.Zs))
	}
	// The smile bows upward: its middle sample is above its end points.
	if l.Smile[15].Y >= l.Smile[0].Y {
		t.Errorf("smile middle y %v should be above end y %v", l.Smile[15].Y, l.Smile[0].Y)
	}
}

func TestSkyGradientEndpoints(t *testing.T) {
	if got := skyAt(0, 1024); got != skyTop {
		t.Errorf("skyAt(0) = %v, want %v", got, skyTop)
	}
	if got := skyAt(1023, 1024); got != skyBottom {
		t.Errorf("skyAt(1023) = %v, want %v", got, skyBottom)
	}
	if got := skyAt(0, 1); got != skyTop {
		t.Errorf("skyAt(0, size 1) = %v, want %v", got, skyTop)
	}
	mid := skyAt(512, 1025)
	if mid.R != 135 || mid.G != 108 {
		t.Errorf("skyAt(mid) = %v, want R=135 G=108", mid)
	}
}

func TestAppIcon1024EndToEnd(t *testing.T) {
	img := App(1024)

	path := filepath.Join(t.TempDir(), "Icon-App-1024x1024@1x.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatal(err)
	}
	f.Close()

	f, err = os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := decoded.Bounds(); b.Dx() != 1024 || b.Dy() != 1024 {
		t.Fatalf("decoded bounds = %v, want 1024x1024", b)
	}
	if got := nrgbaAt(decoded, 0, 0); got != (color.NRGBA{123, 104, 238, 255}) {
		t.Errorf("pixel (0,0) = %v, want {123 104 238 255}", got)
	}
	if got := nrgbaAt(decoded, 0, 1023); got != (color.NRGBA{147, 112, 219, 255}) {
		t.Errorf("pixel (0,1023) = %v, want {147 112 219 255}", got)
	}
	if got := nrgbaAt(decoded, 1023, 1023); got != (color.NRGBA{147, 112, 219, 255}) {
		t.Errorf("pixel (1023,1023) = %v, want {147 112 219 255}", got)
	}
}

func TestAppIconLayers(t *testing.T) {
	const size = 1024
	img := App(size)
	l := NewAppLayout(size)

	// Lit side of the moon, clear of the crescent cut and the eyes.
	mx, my := int(l.Moon.X-0.75*l.Moon.R), int(l.Moon.Y)
	if got := nrgbaAt(img, mx, my); !colorNear(got, moonColor, 1) {
		t.Errorf("moon pixel (%d,%d) = %v, want %v", mx, my, got, moonColor)
	}

	// Inside the crescent cut the bottom sky colour shows.
	if got := nrgbaAt(img, int(l.Cut.X), int(l.Moon.Y+0.5*l.Moon.R)); !colorNear(got, skyBottom, 1) {
		t.Errorf("cut pixel = %v, want %v", got, skyBottom)
	}

	// Apex of the left eye arc.
	apex := l.LeftEye[10]
	if got := nrgbaAt(img, int(apex.X), int(apex.Y)); !colorNear(got, featureColor, 8) {
		t.Errorf("eye pixel (%d,%d) = %v, want ~%v", int(apex.X), int(apex.Y), got, featureColor)
	}

	// Star centres.
	for i, st := range l.Stars {
		if got := nrgbaAt(img, int(st.X), int(st.Y)); !colorNear(got, starColor, 1) {
			t.Errorf("star %d centre = %v, want %v", i, got, starColor)
		}
	}
}

func TestAppIconCloudsDoNotCompound(t *testing.T) {
	const size = 1024
	img := App(size)

	// Same row, so the sky underneath is identical. (102,844) lies in the
	// first cloud only; (204,844) in the overlap of the first two.
	single := nrgbaAt(img, 102, 844)
	overlap := nrgbaAt(img, 204, 844)
	if single != overlap {
		t.Errorf("overlap pixel %v differs from single-cloud pixel %v", overlap, single)
	}

	sky := skyAt(844, size)
	if single.A != 255 {
		t.Errorf("cloud pixel alpha = %d, want 255", single.A)
	}
	if single.R <= sky.R || single.G <= sky.G || single.B <= sky.B {
		t.Errorf("cloud pixel %v should be lighter than sky %v", single, sky)
	}
	// Translucent: not pure white.
	if single == (color.NRGBA{255, 255, 255, 255}) {
		t.Error("cloud pixel is opaque white, want translucent blend")
	}
}

func TestAppIconZzzTranslucent(t *testing.T) {
	const size = 1024
	img := App(size)
	l := NewAppLayout(size)

	z := l.Zs[0]
	x, y := int(z.X), int(z.Y-z.R/2)
	got := nrgbaAt(img, x, y)
	sky := skyAt(y, size)
	if got.A != 255 {
		t.Errorf("Z pixel alpha = %d, want 255", got.A)
	}
	if got.R <= sky.R || got.G <= sky.G {
		t.Errorf("Z pixel %v should be lighter than sky %v", got, sky)
	}
	if got == (color.NRGBA{255, 255, 255, 255}) {
		t.Error("Z pixel is opaque white, want translucent blend")
	}
}

func TestAppIconTinySizes(t *testing.T) {
	for size := 1; size <= 8; size++ {
		img := App(size)
		if got := nrgbaAt(img, 0, 0).A; got != 255 {
			t.Errorf("App(%d) corner alpha = %d, want 255", size, got)
		}
	}
}

// --- notification icon ---

// isGold reports a pixel that is at least half covered and reads as gold.
func isGold(c color.NRGBA) bool {
	return c.A >= 128 && c.R >= 200 && c.G >= 170 && c.B <= 80
}

// goldRegions counts 8-connected regions of gold pixels.
func goldRegions(img *image.RGBA) int {
	b := img.Bounds()
	seen := make(map[image.Point]bool)
	regions := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p := image.Point{x, y}
			if seen[p] || !isGold(nrgbaAt(img, x, y)) {
				continue
			}
			regions++
			stack := []image.Point{p}
			seen[p] = true
			for len(stack) > 0 {
				q := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						n := image.Point{q.X + dx, q.Y + dy}
						if !n.In(b) || seen[n] || !isGold(nrgbaAt(img, n.X, n.Y)) {
							continue
						}
						seen[n] = true
						stack = append(stack, n)
					}
				}
			}
		}
	}
	return regions
}

func TestNotificationThreeDots(t *testing.T) {
	for _, size := range []int{20, 24, 36, 40, 48, 60, 72, 96} {
		if got := goldRegions(Notification(size)); got != 3 {
			t.Errorf("Notification(%d): %d gold regions, want 3", size, got)
		}
	}
}

func TestNotificationLayout(t *testing.T) {
	got := NewNotificationLayout(100)
	want := NotificationLayout{
		Size:    100,
		Padding: 10,
		Inner:   80,
		Body:    Circle{X: 50, Y: 50, R: 40},
		Cutout:  Circle{X: 74, Y: 38, R: 40},
		Dots: []Circle{
			{X: 66.5, Y: 34.5, R: 5},
			{X: 74.5, Y: 50.5, R: 5},
			{X: 62.5, Y: 66.5, R: 5},
		},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("NewNotificationLayout(100) mismatch (-want +got):\n%s", diff)
	}
	if mid := NewNotificationLayout(48); mid.Dots[0].R != 2 {
		t.Errorf("dot radius at 48 = %v, want floor of 2", mid.Dots[0].R)
	}
}

func TestNotificationDotsKeepGap(t *testing.T) {
	for size := 14; size <= 256; size++ {
		l := NewNotificationLayout(size)
		for i, a := range l.Dots {
			for _, b := range l.Dots[i+1:] {
				gap := math.Hypot(a.X-b.X, a.Y-b.Y) - a.R - b.R
				if gap < dotGap-1e-9 {
					t.Fatalf("size %d: dots %v and %v are %.3f apart, want at least %v", size, a, b, gap, dotGap)
				}
			}
		}
	}
	// Small icons shrink the dots below the 2px floor instead of merging them.
	if r := NewNotificationLayout(20).Dots[0].R; r >= 2 {
		t.Errorf("dot radius at 20 = %v, want below 2", r)
	}
}

func TestNotificationDotsHardEdged(t *testing.T) {
	const size = 60
	img := Notification(size)
	mask := discMask(size, NewNotificationLayout(size).Dots...)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := nrgbaAt(img, x, y)
			if mask.AlphaAt(x, y).A != 0 {
				if c != dotColor {
					t.Errorf("dot pixel (%d,%d) = %v, want %v", x, y, c, dotColor)
				}
				continue
			}
			// Purple body pixels stay blue-heavy; a gold rim would not.
			if c.A >= 128 && c.B < 150 {
				t.Errorf("pixel (%d,%d) = %v outside the dots looks gold", x, y, c)
			}
		}
	}
}

func TestNotificationCrescentIsCarved(t *testing.T) {
	for _, size := range []int{24, 96} {
		img := Notification(size)
		l := NewNotificationLayout(size)
		const margin = 1.5

		nearDot := func(x, y float64) bool {
			for _, d := range l.Dots {
				if math.Hypot(x-d.X, y-d.Y) < d.R+margin {
					return true
				}
			}
			return false
		}

		carved, body := 0, 0
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				cx, cy := float64(x)+0.5, float64(y)+0.5
				if nearDot(cx, cy) {
					continue
				}
				inBody := math.Hypot(cx-l.Body.X, cy-l.Body.Y) < l.Body.R-margin
				inCut := math.Hypot(cx-l.Cutout.X, cy-l.Cutout.Y) < l.Cutout.R-margin
				outCut := math.Hypot(cx-l.Cutout.X, cy-l.Cutout.Y) > l.Cutout.R+margin
				got := nrgbaAt(img, x, y)
				switch {
				case inBody && inCut:
					carved++
					if got.A != 0 {
						t.Errorf("size %d: carved pixel (%d,%d) = %v, want transparent", size, x, y, got)
					}
				case inBody && outCut:
					body++
					if !colorNear(got, bodyColor, 2) {
						t.Errorf("size %d: body pixel (%d,%d) = %v, want %v", size, x, y, got, bodyColor)
					}
				}
			}
		}
		if carved == 0 || body == 0 {
			t.Errorf("size %d: sampled %d carved and %d body pixels, want both > 0", size, carved, body)
		}
	}
}

func TestNotificationCornersTransparent(t *testing.T) {
	img := Notification(48)
	for _, p := range []image.Point{{0, 0}, {47, 0}, {0, 47}, {47, 47}} {
		if got := nrgbaAt(img, p.X, p.Y); got.A != 0 {
			t.Errorf("corner %v = %v, want transparent", p, got)
		}
	}
}
