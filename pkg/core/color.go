package core

import (
	"fmt"
	"strconv"
	"strings"
)

const fullByte = 255.0

// FloatFromByte converts a byte component to the 0..1 range.
func FloatFromByte(b uint8) float32 {
	return float32(b) / fullByte
}

// ByteFromFloat converts a 0..1 component to a byte. The fractional part is
// truncated, not rounded; colors must stay bit compatible with native code.
func ByteFromFloat(v float32) uint8 {
	return uint8(v * fullByte)
}

// Color4f is an RGBA color with float32 components in 0..1.
type Color4f struct {
	R, G, B, A float32
}

// Color3f is an RGB color with float32 components in 0..1.
type Color3f struct {
	R, G, B float32
}

// Color4u is an RGBA color with byte components.
type Color4u struct {
	R, G, B, A uint8
}

// Color3u is an RGB color with byte components.
type Color3u struct {
	R, G, B uint8
}

// RGB returns an opaque Color4f.
func RGB(r, g, b float32) Color4f {
	return Color4f{R: r, G: g, B: b, A: 1}
}

// Color4fFromHex unpacks 0xRRGGBBAA.
func Color4fFromHex(hex uint32) Color4f {
	return Color4uFromHex(hex).Float()
}

// Color4fFromRGBA builds a Color4f from byte components.
func Color4fFromRGBA(r, g, b, a uint8) Color4f {
	return Color4u{R: r, G: g, B: b, A: a}.Float()
}

// ToHex packs the color as 0xRRGGBBAA.
func (c Color4f) ToHex() uint32 {
	return c.Bytes().ToHex()
}

// Bytes converts the color to byte components.
func (c Color4f) Bytes() Color4u {
	return Color4u{R: ByteFromFloat(c.R), G: ByteFromFloat(c.G), B: ByteFromFloat(c.B), A: ByteFromFloat(c.A)}
}

// ToRGB discards alpha.
func (c Color4f) ToRGB() Color3f {
	return Color3f{R: c.R, G: c.G, B: c.B}
}

// Transparent reports whether alpha is zero.
func (c Color4f) Transparent() bool {
	return c.A == 0
}

// Color3fFromHex unpacks 0xRRGGBBxx, ignoring the low byte.
func Color3fFromHex(hex uint32) Color3f {
	return Color3uFromHex(hex).Float()
}

// ToHex packs the color as 0xRRGGBBFF.
func (c Color3f) ToHex() uint32 {
	return Color3u{R: ByteFromFloat(c.R), G: ByteFromFloat(c.G), B: ByteFromFloat(c.B)}.ToHex()
}

// ToRGBA restores full intensity alpha.
func (c Color3f) ToRGBA() Color4f {
	return Color4f{R: c.R, G: c.G, B: c.B, A: 1}
}

// Color4uFromHex unpacks 0xRRGGBBAA.
func Color4uFromHex(hex uint32) Color4u {
	return Color4u{R: uint8(hex >> 24), G: uint8(hex >> 16), B: uint8(hex >> 8), A: uint8(hex)}
}

// ToHex packs the color as 0xRRGGBBAA.
func (c Color4u) ToHex() uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// Float converts the color to float components.
func (c Color4u) Float() Color4f {
	return Color4f{R: FloatFromByte(c.R), G: FloatFromByte(c.G), B: FloatFromByte(c.B), A: FloatFromByte(c.A)}
}

// ToRGB discards alpha.
func (c Color4u) ToRGB() Color3u {
	return Color3u{R: c.R, G: c.G, B: c.B}
}

// Color3uFromHex unpacks 0xRRGGBBxx, ignoring the low byte.
func Color3uFromHex(hex uint32) Color3u {
	return Color3u{R: uint8(hex >> 24), G: uint8(hex >> 16), B: uint8(hex >> 8)}
}

// ToHex packs the color as 0xRRGGBBFF.
func (c Color3u) ToHex() uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | 0xFF
}

// ToRGBA restores full intensity alpha.
func (c Color3u) ToRGBA() Color4u {
	return Color4u{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// Float converts the color to float components.
func (c Color3u) Float() Color3f {
	return Color3f{R: FloatFromByte(c.R), G: FloatFromByte(c.G), B: FloatFromByte(c.B)}
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa" (the leading '#' is optional).
func ParseHexColor(s string) (Color4f, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(raw) {
	case 6:
		raw += "ff"
	case 8:
	default:
		return Color4f{}, fmt.Errorf("invalid color %q: expected #rrggbb or #rrggbbaa", s)
	}

	v, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return Color4f{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color4fFromHex(uint32(v)), nil
}

// HexString formats the color as "#rrggbbaa".
func (c Color4f) HexString() string {
	return fmt.Sprintf("#%08x", c.ToHex())
}
