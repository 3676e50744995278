package reim

import (
	"fmt"
	"math"
	"strconv"
)

// Color is an 8-bit-per-channel RGBA color. The toolkit's two drawing APIs
// want different encodings: widget styling takes a normalized float 4-vector
// (Vec4), draw-list primitives take a packed 32-bit integer (Packed).
type Color struct {
	R, G, B, A uint8
}

// White is the documented fallback for malformed color props.
var White = Color{255, 255, 255, 255}

// Vec4 returns the color as normalized RGBA floats in [0,1].
func (c Color) Vec4() [4]float32 {
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}

// Packed returns the color in the draw list's packed ABGR layout
// (alpha in the top byte, red in the bottom).
func (c Color) Packed() uint32 {
	return uint32(c.A)<<24 | uint32(c.B)<<16 | uint32(c.G)<<8 | uint32(c.R)
}

// ParseColor interprets a color prop value. It accepts a "#RRGGBB" or
// "#RRGGBBAA" hex string, or a nested {r,g,b,a} map with 0-255 channels.
// Out-of-range numeric channels clamp to [0,255]; anything else falls back
// to opaque white with a non-nil error for the caller to log.
func ParseColor(v Value) (Color, error) {
	switch v.Kind() {
	case ValueString:
		return parseHexColor(v.str)
	case ValueMap:
		return colorFromMap(v.m), nil
	default:
		return White, fmt.Errorf("color prop must be a hex string or {r,g,b,a} map, got kind %d", v.Kind())
	}
}

func parseHexColor(s string) (Color, error) {
	if len(s) == 0 || s[0] != '#' {
		return White, fmt.Errorf("invalid color %q: missing '#'", s)
	}
	hex := s[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return White, fmt.Errorf("invalid color %q: want #RRGGBB or #RRGGBBAA", s)
	}
	n, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return White, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		return Color{
			R: uint8(n >> 16),
			G: uint8(n >> 8),
			B: uint8(n),
			A: 255,
		}, nil
	}
	return Color{
		R: uint8(n >> 24),
		G: uint8(n >> 16),
		B: uint8(n >> 8),
		A: uint8(n),
	}, nil
}

// colorFromMap reads {r,g,b,a} channels, clamping each to [0,255].
// A missing or non-numeric alpha defaults to opaque.
func colorFromMap(m *Props) Color {
	return Color{
		R: clampChannel(m.Number("r", 255)),
		G: clampChannel(m.Number("g", 255)),
		B: clampChannel(m.Number("b", 255)),
		A: clampChannel(m.Number("a", 255)),
	}
}

func clampChannel(v float64) uint8 {
	if math.IsNaN(v) {
		return 255
	}
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
