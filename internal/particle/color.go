package particle

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

var (
	White = RGB{255, 255, 255}
	Black = RGB{0, 0, 0}
)

// Rainbow is the default particle palette stepped through by the control
// surface, white first.
var Rainbow = []RGB{
	White,
	MustHex("#FF0000"),
	MustHex("#FF7F00"),
	MustHex("#FFFF00"),
	MustHex("#00FF00"),
	MustHex("#0000FF"),
	MustHex("#4B0082"),
	MustHex("#9400D3"),
}

// ParseHex parses "#rrggbb" (or the short "#rgb" form).
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("particle: invalid colour %q: %w", s, err)
	}
	return FromColorful(c), nil
}

func MustHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Hex returns the lowercase "#rrggbb" form.
func (c RGB) Hex() string { return c.Colorful().Hex() }

// Blend mixes c towards o in Lab space, t in [0,1].
func (c RGB) Blend(o RGB, t float64) RGB {
	return FromColorful(c.Colorful().BlendLab(o.Colorful(), t))
}

func (c RGB) String() string { return c.Hex() }
