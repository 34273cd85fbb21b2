package multiwalllib

import (
	"image"
	"image/color"
	"math"

	"github.com/nfnt/resize"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
)

// Composer combines per-monitor images into a single spanned wallpaper.
// It holds no state between calls, each call builds a fresh canvas.
type Composer struct {
	log *zap.Logger

	// Canvas colour, and the fallback for monitors without a valid background
	Background color.NRGBA
	// Used for monitors with no saved settings
	DefaultMode Mode
	LabelCorner Corner
	// Label previews even when no scaling was needed
	LabelUnscaled bool

	// Swappable for tests
	open func(string) (image.Image, error)
	face func(float64) (font.Face, error)
}

func NewComposer(log *zap.Logger) *Composer {
	if log == nil {
		log = zap.NewNop()
	}
	bg, _ := ParseColor(DefaultBackground)
	return &Composer{
		log:         log,
		Background:  bg,
		DefaultMode: ModeFill,
		LabelCorner: CornerTopLeft,
		open:        loadImage,
		face:        labelFace,
	}
}

// NewComposerFromConfig applies the defaults from multiwall.toml.
func NewComposerFromConfig(log *zap.Logger, c *Config) *Composer {
	co := NewComposer(log)
	if bg, err := ParseColor(c.DefaultBackground); err == nil {
		co.Background = bg
	}
	co.DefaultMode, _ = ParseMode(c.DefaultMode)
	co.LabelCorner, _ = ParseCorner(c.LabelCorner)
	co.LabelUnscaled = c.LabelUnscaled
	return co
}

// Compose renders the full resolution wallpaper. It never carries labels.
func (co *Composer) Compose(rects []MonitorRect, states States) (*image.RGBA, error) {
	l, err := NormalizeLayout(rects)
	if err != nil {
		return nil, err
	}
	return co.compose(l, states), nil
}

// Preview renders the wallpaper scaled so neither dimension exceeds maxSize
// and labels each monitor with its 1-indexed number. Previews are never
// scaled up. The returned ratio is 1 when no scaling happened.
func (co *Composer) Preview(
	rects []MonitorRect, states States, maxSize int) (*image.RGBA, float64, error) {
	l, err := NormalizeLayout(rects)
	if err != nil {
		return nil, 0, err
	}

	canvas := co.compose(l, states)
	if maxSize <= 0 {
		return canvas, 1, nil
	}

	ratio := math.Min(
		float64(maxSize)/float64(l.Width),
		float64(maxSize)/float64(l.Height))
	if ratio >= 1 {
		if co.LabelUnscaled {
			co.drawLabels(canvas, l, 1)
		}
		return canvas, 1, nil
	}

	w, h := scaledSize(l.Width, l.Height, ratio)
	co.log.Debug("Scaling preview",
		zap.Int("width", w), zap.Int("height", h), zap.Float64("ratio", ratio))

	scaled := toRGBA(resize.Resize(uint(w), uint(h), canvas, resize.Lanczos3))
	co.drawLabels(scaled, l, ratio)
	return scaled, ratio, nil
}

// Truncates, matching how monitor rectangles are scaled for labels.
// Never returns a zero dimension.
func scaledSize(w, h int, ratio float64) (int, int) {
	sw, sh := scaleInt(w, ratio), scaleInt(h, ratio)
	if sw < 1 {
		sw = 1
	}
	if sh < 1 {
		sh = 1
	}
	return sw, sh
}

func (co *Composer) compose(l Layout, states States) *image.RGBA {
	co.log.Debug("Composing canvas",
		zap.Int("width", l.Width), zap.Int("height", l.Height),
		zap.Int("monitors", len(l.Rects)))

	canvas := image.NewRGBA(image.Rect(0, 0, l.Width, l.Height))
	fillRect(canvas, canvas.Bounds(), co.Background)

	// Later monitors are drawn over earlier ones where they overlap
	for i, r := range l.Rects {
		st := co.resolveState(i, states)
		bg := co.background(i, st)
		dst := r.Bounds()

		img := co.openMonitorImage(i, st)
		if img == nil {
			fillRect(canvas, dst, bg)
			continue
		}

		out := ApplyMode(img, r.Width, r.Height, st.Mode, bg)
		draw.Draw(canvas, dst, out, image.Point{}, draw.Over)
	}

	return canvas
}

func (co *Composer) resolveState(i int, states States) MonitorState {
	st, ok := states.For(i)
	if !ok {
		return MonitorState{Mode: co.DefaultMode}
	}
	return st
}

func (co *Composer) background(i int, st MonitorState) color.NRGBA {
	if st.Background == "" {
		return co.Background
	}

	bg, err := ParseColor(st.Background)
	if err != nil {
		co.log.Warn("Invalid background, using the default",
			zap.Int("monitor", i), zap.Error(err))
		return co.Background
	}
	return bg
}

// Returns nil when the monitor should be a solid colour. Failures to read or
// decode are logged and never fatal.
func (co *Composer) openMonitorImage(i int, st MonitorState) image.Image {
	if st.File == nil || *st.File == "" {
		co.log.Debug("No image, using background", zap.Int("monitor", i))
		return nil
	}

	img, err := co.open(*st.File)
	if err != nil {
		co.log.Error("Could not load image, using background",
			zap.Int("monitor", i), zap.String("file", *st.File), zap.Error(err))
		return nil
	}

	co.log.Debug("Loaded image",
		zap.Int("monitor", i), zap.String("file", *st.File),
		zap.Stringer("mode", st.Mode), zap.Stringer("size", img.Bounds().Size()))
	return img
}

// The epsilon keeps 3840 * (1000 / 3840) from truncating to 999.
func scaleInt(v int, ratio float64) int {
	return int(math.Floor(float64(v)*ratio + 1e-9))
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
