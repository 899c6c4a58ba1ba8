package entity

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color keeps channel values structured so the document model never has to
// parse CSS strings to answer "what is this layer's opacity".
type Color struct {
	R uint8
	G uint8
	B uint8
	A float64
}

func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: clampAlpha(a)}
}

// WithAlpha changes only the alpha component, keeping the channels.
func (c Color) WithAlpha(a float64) Color {
	c.A = clampAlpha(a)
	return c
}

// WithRGB changes only the channels, keeping the alpha component.
func (c Color) WithRGB(r, g, b uint8) Color {
	c.R, c.G, c.B = r, g, b
	return c
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String renders the CSS form used on the wire: rgba(r, g, b, a).
func (c Color) String() string {
	a := strconv.FormatFloat(c.A, 'g', -1, 64)
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, a)
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor accepts rgba(...), rgb(...) and #hex (3, 6 or 8 digits).
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)

	switch {
	case strings.HasPrefix(lower, "rgba(") && strings.HasSuffix(lower, ")"):
		return parseRGBParts(s[5:len(s)-1], true)
	case strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")"):
		return parseRGBParts(s[4:len(s)-1], false)
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	}
	return Color{}, fmt.Errorf("unsupported color format: %q", s)
}

func parseRGBParts(body string, hasAlpha bool) (Color, error) {
	parts := strings.Split(body, ",")
	want := 3
	if hasAlpha {
		want = 4
	}
	if len(parts) != want {
		return Color{}, fmt.Errorf("expected %d components, got %d", want, len(parts))
	}

	var chans [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return Color{}, fmt.Errorf("invalid channel %q", parts[i])
		}
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		chans[i] = uint8(v)
	}

	alpha := 1.0
	if hasAlpha {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha %q", parts[3])
		}
		alpha = clampAlpha(v)
	}

	return Color{R: chans[0], G: chans[1], B: chans[2], A: alpha}, nil
}

func parseHex(h string) (Color, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("invalid hex color length %d", len(h))
	}

	v, err := strconv.ParseUint(h[:6], 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q", h)
	}

	c := Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 1,
	}

	if len(h) == 8 {
		a, err := strconv.ParseUint(h[6:], 16, 16)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex alpha %q", h[6:])
		}
		c.A = math.Round(float64(a)/255*1000) / 1000
	}

	return c, nil
}

func clampAlpha(a float64) float64 {
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}
