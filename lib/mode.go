package multiwalllib

import (
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Mode controls how an image is fitted into a monitor.
type Mode int

const (
	// Cover the whole monitor, cropping whatever does not fit
	ModeFill Mode = iota
	// Scale down to fit inside the monitor, never up
	ModeFit
	ModeStretch
	ModeCenter
	ModeTile
)

var modeNames = [...]string{
	ModeFill:    "fill",
	ModeFit:     "fit",
	ModeStretch: "stretch",
	ModeCenter:  "center",
	ModeTile:    "tile",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return modeNames[ModeFill]
	}
	return modeNames[m]
}

// ParseMode returns ModeFill and false for unrecognized names.
func ParseMode(s string) (Mode, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, n := range modeNames {
		if n == s {
			return Mode(m), true
		}
	}
	return ModeFill, false
}

func ModeNames() []string {
	return append([]string(nil), modeNames[:]...)
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Unknown modes decode as fill instead of failing the whole settings file.
func (m *Mode) UnmarshalText(b []byte) error {
	*m, _ = ParseMode(string(b))
	return nil
}

// ApplyMode fits img into a width x height image according to mode. Pixels
// not covered by the image are filled with bg. The result is always exactly
// width x height.
func ApplyMode(img image.Image, width, height int, mode Mode, bg color.Color) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return out
	}

	switch mode {
	case ModeFit:
		fillRect(out, out.Bounds(), bg)
		// imaging.Fit returns a clone when the image is already small enough
		scaled := imaging.Fit(img, width, height, imaging.Lanczos)
		sb := scaled.Bounds()
		at := image.Pt((width-sb.Dx())/2, (height-sb.Dy())/2)
		draw.Draw(out, sb.Sub(sb.Min).Add(at), scaled, sb.Min, draw.Over)
	case ModeStretch:
		scaled := imaging.Resize(img, width, height, imaging.Lanczos)
		draw.Draw(out, out.Bounds(), scaled, image.Point{}, draw.Src)
	case ModeCenter:
		fillRect(out, out.Bounds(), bg)
		ib := img.Bounds()
		// Oversized images are offset by a negative amount, round it down
		at := image.Pt(floorDiv(width-ib.Dx(), 2), floorDiv(height-ib.Dy(), 2))
		draw.Draw(out, ib.Sub(ib.Min).Add(at), img, ib.Min, draw.Over)
	case ModeTile:
		fillRect(out, out.Bounds(), bg)
		ib := img.Bounds()
		if ib.Empty() {
			break
		}
		for y := 0; y < height; y += ib.Dy() {
			for x := 0; x < width; x += ib.Dx() {
				draw.Draw(out, ib.Sub(ib.Min).Add(image.Pt(x, y)), img, ib.Min, draw.Over)
			}
		}
	default:
		scaled := imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)
		draw.Draw(out, out.Bounds(), scaled, image.Point{}, draw.Src)
	}

	return out
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func fillRect(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}
