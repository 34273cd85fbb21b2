package multiwalllib

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type Corner int

const (
	CornerTopLeft Corner = iota
	CornerTopRight
)

func (c Corner) String() string {
	if c == CornerTopRight {
		return "top-right"
	}
	return "top-left"
}

func ParseCorner(s string) (Corner, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top-left", "":
		return CornerTopLeft, true
	case "top-right":
		return CornerTopRight, true
	}
	return CornerTopLeft, false
}

const (
	minLabelSize = 24
	maxLabelSize = 72
	// Label size as a fraction of the average image dimension
	labelSizeRatio = 0.04
	// Conservative advance per digit as a fraction of the font size. Glyph
	// measurement is not used, it is unreliable with embedded fonts.
	digitWidthRatio = 0.62
	labelPadRatio   = 0.25
	labelMargin     = 0.4
)

var (
	badgeColor = color.NRGBA{A: 160}
	textColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// labelFontSize is derived from the image the labels are drawn on, after any
// scaling.
func labelFontSize(width, height int) float64 {
	size := labelSizeRatio * float64(width+height) / 2
	return math.Max(minLabelSize, math.Min(maxLabelSize, size))
}

var labelFont *opentype.Font
var labelFontErr error
var labelFontOnce sync.Once

// labelFace falls back to the builtin bitmap face if the embedded font is
// unusable. Labels are then smaller than their badges but still drawn.
func labelFace(size float64) (font.Face, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = opentype.Parse(gobold.TTF)
	})
	if labelFontErr != nil {
		return basicfont.Face7x13, labelFontErr
	}

	face, err := opentype.NewFace(labelFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13, err
	}
	return face, nil
}

// badgeRect estimates the badge for a label of the given number of digits,
// anchored inside the corner of monitor. The badge may be empty.
func badgeRect(monitor image.Rectangle, digits int, size float64, corner Corner) image.Rectangle {
	pad := int(math.Ceil(size * labelPadRatio))
	margin := int(math.Ceil(size * labelMargin))
	w := int(math.Ceil(float64(digits)*size*digitWidthRatio)) + 2*pad
	h := int(math.Ceil(size)) + 2*pad

	x := monitor.Min.X + margin
	if corner == CornerTopRight {
		x = monitor.Max.X - margin - w
	}
	y := monitor.Min.Y + margin

	return image.Rect(x, y, x+w, y+h)
}

// drawLabels numbers every monitor on img. Positions come from the original
// layout multiplied by ratio, the same ratio used to scale the canvas, so
// labels stay on their monitors.
func (co *Composer) drawLabels(img *image.RGBA, l Layout, ratio float64) {
	b := img.Bounds()
	size := labelFontSize(b.Dx(), b.Dy())

	face, err := co.face(size)
	if err != nil {
		co.log.Warn("Falling back to the builtin label font", zap.Error(err))
	}
	defer face.Close()

	for i, r := range l.Rects {
		monitor := image.Rect(
			scaleInt(r.X, ratio),
			scaleInt(r.Y, ratio),
			scaleInt(r.X+r.Width, ratio),
			scaleInt(r.Y+r.Height, ratio))

		text := strconv.Itoa(i + 1)
		badge := badgeRect(monitor, len(text), size, co.LabelCorner)

		if monitor.Empty() || badge.Empty() || !badge.Overlaps(b) {
			co.log.Debug("Skipping label", zap.Int("monitor", i),
				zap.Stringer("monitor_rect", monitor), zap.Stringer("badge", badge))
			continue
		}

		drawBadge(img, badge, size, face, text)
	}
}

func drawBadge(img *image.RGBA, badge image.Rectangle, size float64, face font.Face, text string) {
	radius := badge.Dy() / 4
	draw.DrawMask(img, badge, image.NewUniform(badgeColor), image.Point{},
		&roundedRect{r: badge, radius: radius}, badge.Min, draw.Over)

	pad := int(math.Ceil(size * labelPadRatio))
	// Digits sit roughly between 0.1 and 0.85 of the em box
	baseline := badge.Min.Y + pad + int(size*0.85)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: face,
		Dot:  fixed.P(badge.Min.X+pad, baseline),
	}
	d.DrawString(text)
}

// roundedRect is an alpha mask that is opaque inside r with rounded corners.
type roundedRect struct {
	r      image.Rectangle
	radius int
}

func (rr *roundedRect) ColorModel() color.Model { return color.AlphaModel }

func (rr *roundedRect) Bounds() image.Rectangle { return rr.r }

func (rr *roundedRect) At(x, y int) color.Color {
	if !(image.Point{x, y}).In(rr.r) {
		return color.Transparent
	}

	rad := rr.radius
	// Distance into a corner square, measured from the pixel centre
	cx, cy := 0.0, 0.0
	switch {
	case x < rr.r.Min.X+rad:
		cx = float64(rr.r.Min.X+rad) - (float64(x) + 0.5)
	case x >= rr.r.Max.X-rad:
		cx = (float64(x) + 0.5) - float64(rr.r.Max.X-rad)
	}
	switch {
	case y < rr.r.Min.Y+rad:
		cy = float64(rr.r.Min.Y+rad) - (float64(y) + 0.5)
	case y >= rr.r.Max.Y-rad:
		cy = (float64(y) + 0.5) - float64(rr.r.Max.Y-rad)
	}

	if cx > 0 && cy > 0 && cx*cx+cy*cy > float64(rad*rad) {
		return color.Transparent
	}
	return color.Opaque
}
