package multiwalllib

import (
	"fmt"
	"image/color"
	"regexp"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const DefaultBackground = "#000000"

var hexRE = regexp.MustCompile(`^#([[:xdigit:]]{3}|[[:xdigit:]]{6})$`)

// ParseColor reads #RRGGBB (or #RGB) into an opaque colour.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}

	if !hexRE.MatchString(s) {
		return color.NRGBA{}, fmt.Errorf("Invalid colour [%s]", s)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("Invalid colour [%s]: %w", s, err)
	}

	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func FormatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
