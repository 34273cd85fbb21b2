package multiwalllib

import (
	"errors"
	"fmt"
	"image"
	"regexp"
	"strconv"

	"github.com/BurntSushi/toml"
)

var ErrNoMonitors = errors.New("No monitors to compose")

// MonitorRect is a monitor in desktop coordinates. X and Y may be negative.
type MonitorRect struct {
	X      int `toml:"x"`
	Y      int `toml:"y"`
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

func (r MonitorRect) String() string {
	return fmt.Sprintf("%dx%d%+d%+d", r.Width, r.Height, r.X, r.Y)
}

func (r MonitorRect) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Layout is a set of monitors translated so the smallest X and Y are zero.
// Width and Height cover every monitor.
type Layout struct {
	Rects  []MonitorRect
	Width  int
	Height int
}

// NormalizeLayout is a pure translation, overlaps are left alone.
func NormalizeLayout(rects []MonitorRect) (Layout, error) {
	if len(rects) == 0 {
		return Layout{}, ErrNoMonitors
	}

	minX, minY := rects[0].X, rects[0].Y
	for _, r := range rects[1:] {
		if r.X < minX {
			minX = r.X
		}
		if r.Y < minY {
			minY = r.Y
		}
	}

	l := Layout{Rects: make([]MonitorRect, len(rects))}
	for i, r := range rects {
		r.X -= minX
		r.Y -= minY
		l.Rects[i] = r

		if r.X+r.Width > l.Width {
			l.Width = r.X + r.Width
		}
		if r.Y+r.Height > l.Height {
			l.Height = r.Y + r.Height
		}
	}

	return l, nil
}

var geometryRE = regexp.MustCompile(`^(\d+)x(\d+)([+-]\d+)([+-]\d+)$`)

// ParseGeometry reads X11 style geometry strings like 1920x1080+0+0 or
// 1080x1920-1080+0.
func ParseGeometry(s string) (MonitorRect, error) {
	m := geometryRE.FindStringSubmatch(s)
	if m == nil {
		return MonitorRect{}, fmt.Errorf("Invalid geometry [%s], expected WxH+X+Y", s)
	}

	var v [4]int
	for i := range v {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return MonitorRect{}, fmt.Errorf("Invalid geometry [%s]: %w", s, err)
		}
		v[i] = n
	}
	w, h, x, y := v[0], v[1], v[2], v[3]

	if w == 0 || h == 0 {
		return MonitorRect{}, fmt.Errorf("Geometry [%s] has an empty dimension", s)
	}

	return MonitorRect{X: x, Y: y, Width: w, Height: h}, nil
}

type layoutFile struct {
	Monitor []MonitorRect `toml:"monitor"`
}

// LoadLayoutFile reads monitors from a TOML file of [[monitor]] tables.
func LoadLayoutFile(path string) ([]MonitorRect, error) {
	var lf layoutFile
	if _, err := toml.DecodeFile(path, &lf); err != nil {
		return nil, fmt.Errorf("Error reading layout file [%s]: %w", path, err)
	}

	for i, m := range lf.Monitor {
		if m.Width <= 0 || m.Height <= 0 {
			return nil, fmt.Errorf(
				"Monitor %d in layout file [%s] has an empty dimension", i+1, path)
		}
	}

	return lf.Monitor, nil
}
