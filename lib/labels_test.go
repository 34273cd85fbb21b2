package multiwalllib

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

func TestLabelFontSize(t *testing.T) {
	type tc struct {
		w, h int
		want float64
	}

	tests := map[string]tc{
		"small image clamps up":   {w: 200, h: 100, want: 24},
		"large image clamps down": {w: 7680, h: 4320, want: 72},
		"in range":                {w: 1000, h: 500, want: 30},
		"wide preview":            {w: 1000, h: 281, want: 0.04 * 1281 / 2},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := labelFontSize(tt.w, tt.h)
			if d := got - tt.want; d > 1e-9 || d < -1e-9 {
				t.Errorf("labelFontSize(%d, %d) = %f, want %f", tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestBadgeRect(t *testing.T) {
	monitor := image.Rect(100, 50, 600, 400)

	left := badgeRect(monitor, 1, 40, CornerTopLeft)
	right := badgeRect(monitor, 1, 40, CornerTopRight)
	wide := badgeRect(monitor, 2, 40, CornerTopLeft)

	if !left.In(monitor) || !right.In(monitor) {
		t.Fatalf("badges %v and %v should fit inside %v", left, right, monitor)
	}
	if left.Min.X-monitor.Min.X != monitor.Max.X-right.Max.X {
		t.Errorf("corner margins differ: %v %v", left, right)
	}
	if left.Min.Y != right.Min.Y {
		t.Errorf("badges are at different heights: %v %v", left, right)
	}
	if wide.Dx() <= left.Dx() || wide.Dy() != left.Dy() {
		t.Errorf("two digit badge %v should only be wider than %v", wide, left)
	}
	if left.Dy() < 40 {
		t.Errorf("badge %v is shorter than the font size", left)
	}
}

func TestPreviewLabelsFollowMonitors(t *testing.T) {
	for _, corner := range []Corner{CornerTopLeft, CornerTopRight} {
		t.Run(corner.String(), func(t *testing.T) {
			co, _ := testComposer(nil)
			co.LabelCorner = corner

			rects := []MonitorRect{
				{X: -3840, Y: 0, Width: 3840, Height: 2160},
				{X: 0, Y: 540, Width: 1920, Height: 1080},
			}
			states := States{"0": {Background: "#ffffff"}, "1": {Background: "#ffffff"}}

			img, ratio, err := co.Preview(rects, states, 1000)
			if err != nil {
				t.Fatal(err)
			}
			if ratio >= 1 {
				t.Fatalf("ratio = %f, expected downscaling", ratio)
			}

			l, _ := NormalizeLayout(rects)
			b := img.Bounds()
			size := labelFontSize(b.Dx(), b.Dy())

			for i, r := range l.Rects {
				monitor := image.Rect(
					scaleInt(r.X, ratio), scaleInt(r.Y, ratio),
					scaleInt(r.X+r.Width, ratio), scaleInt(r.Y+r.Height, ratio))
				badge := badgeRect(monitor, 1, size, corner)

				if !badge.In(monitor) {
					t.Fatalf("badge %d %v is outside its monitor %v", i, badge, monitor)
				}

				// Left edge of the badge, vertically centred, clear of the digit
				p := image.Pt(badge.Min.X+1, badge.Min.Y+badge.Dy()/2)
				got := img.RGBAAt(p.X, p.Y)
				if got.R > 128 {
					t.Errorf("monitor %d: pixel %v = %v, want the dark badge", i, p, got)
				}

				// Just outside the badge the preview is untouched
				outside := image.Pt(badge.Min.X+1, badge.Max.Y+2)
				if got := img.RGBAAt(outside.X, outside.Y); got != (color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
					t.Errorf("monitor %d: pixel %v = %v, want white", i, outside, got)
				}
			}
		})
	}
}

func TestPreviewSkipsDegenerateLabels(t *testing.T) {
	co, _ := testComposer(nil)

	// The second monitor scales to less than a pixel, but its badge would
	// still land well inside the preview
	rects := []MonitorRect{
		{X: 0, Y: 0, Width: 4000, Height: 1000},
		{X: 2000, Y: 500, Width: 1, Height: 1},
	}
	states := States{"0": {Background: "#ffffff"}, "1": {Background: "#ffffff"}}

	img, ratio, err := co.Preview(rects, states, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if ratio != 0.25 {
		t.Fatalf("ratio = %f, want 0.25", ratio)
	}

	b := img.Bounds()
	size := labelFontSize(b.Dx(), b.Dy())

	first := badgeRect(image.Rect(0, 0, 1000, 250), 1, size, CornerTopLeft)
	p := image.Pt(first.Min.X+1, first.Min.Y+first.Dy()/2)
	if got := img.RGBAAt(p.X, p.Y); got.R > 128 {
		t.Errorf("first monitor has no badge at %v: %v", p, got)
	}

	tiny := image.Rect(500, 125, 500, 125)
	skipped := badgeRect(tiny, 1, size, CornerTopLeft)
	if !skipped.In(b) {
		t.Fatalf("badge %v should be inside the preview %v", skipped, b)
	}
	if skipped.Overlaps(first) {
		t.Fatalf("badges %v and %v overlap", skipped, first)
	}

	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	for y := skipped.Min.Y; y < skipped.Max.Y; y++ {
		for x := skipped.Min.X; x < skipped.Max.X; x++ {
			if got := img.RGBAAt(x, y); got != white {
				t.Fatalf("pixel (%d, %d) = %v, the empty monitor was labelled", x, y, got)
			}
		}
	}
}

func TestLabelsWithFallbackFont(t *testing.T) {
	co, logs := testComposer(nil)
	co.face = func(float64) (font.Face, error) {
		return basicfont.Face7x13, errors.New("opentype: bad font")
	}

	rects := []MonitorRect{{X: 0, Y: 0, Width: 2000, Height: 1000}}
	img, ratio, err := co.Preview(rects, States{"0": {Background: "#ffffff"}}, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if ratio != 0.5 {
		t.Fatalf("ratio = %f, want 0.5", ratio)
	}

	if n := logs.FilterMessage("Falling back to the builtin label font").Len(); n != 1 {
		t.Errorf("logged %d font fallbacks, want 1", n)
	}

	b := img.Bounds()
	size := labelFontSize(b.Dx(), b.Dy())
	badge := badgeRect(b, 1, size, CornerTopLeft)

	p := image.Pt(badge.Min.X+1, badge.Min.Y+badge.Dy()/2)
	if got := img.RGBAAt(p.X, p.Y); got.R > 128 {
		t.Errorf("pixel %v = %v, want the dark badge", p, got)
	}

	// The bitmap digit is drawn in white inside the badge, clear of its edges
	inner := badge.Inset(3)
	text := false
	for y := inner.Min.Y; y < inner.Max.Y && !text; y++ {
		for x := inner.Min.X; x < inner.Max.X; x++ {
			if img.RGBAAt(x, y).R > 200 {
				text = true
				break
			}
		}
	}
	if !text {
		t.Error("no label text was drawn with the fallback font")
	}
}

func TestRoundedRectMask(t *testing.T) {
	rr := &roundedRect{r: image.Rect(0, 0, 40, 20), radius: 5}

	type tc struct {
		p      image.Point
		opaque bool
	}

	tests := map[string]tc{
		"centre":         {p: image.Pt(20, 10), opaque: true},
		"top edge":       {p: image.Pt(20, 0), opaque: true},
		"corner pixel":   {p: image.Pt(0, 0), opaque: false},
		"far corner":     {p: image.Pt(39, 19), opaque: false},
		"inside corner":  {p: image.Pt(3, 3), opaque: true},
		"outside bounds": {p: image.Pt(40, 10), opaque: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, _, a := rr.At(tt.p.X, tt.p.Y).RGBA()
			if (a == 0xffff) != tt.opaque {
				t.Errorf("At(%v) alpha = %d, want opaque %v", tt.p, a, tt.opaque)
			}
		})
	}
}

func TestParseCorner(t *testing.T) {
	for _, c := range []Corner{CornerTopLeft, CornerTopRight} {
		got, ok := ParseCorner(c.String())
		if !ok || got != c {
			t.Errorf("ParseCorner(%q) = %v, %v", c.String(), got, ok)
		}
	}
	if _, ok := ParseCorner("bottom"); ok {
		t.Error("ParseCorner(bottom) should fail")
	}
}
