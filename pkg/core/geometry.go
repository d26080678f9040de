// Package core holds the small value types shared by windows and web views.
package core

// Vec2i is a signed 2D vector, used for positions.
type Vec2i struct {
	X, Y int32
}

// Vec2u is an unsigned 2D vector, used for sizes.
type Vec2u struct {
	X, Y uint32
}

// Rect2i is a rectangle with a signed origin.
type Rect2i struct {
	Position Vec2i
	Size     Vec2u
}

// Rect2u is a rectangle with an unsigned origin.
type Rect2u struct {
	Position Vec2u
	Size     Vec2u
}

// NewRect2i builds a Rect2i from its components.
func NewRect2i(x, y int32, w, h uint32) Rect2i {
	return Rect2i{Position: Vec2i{X: x, Y: y}, Size: Vec2u{X: w, Y: h}}
}

// Empty reports whether the rectangle has no area.
func (r Rect2i) Empty() bool {
	return r.Size.X == 0 || r.Size.Y == 0
}

// Contains reports whether p lies inside r.
func (r Rect2i) Contains(p Vec2i) bool {
	return p.X >= r.Position.X && p.Y >= r.Position.Y &&
		int64(p.X) < int64(r.Position.X)+int64(r.Size.X) &&
		int64(p.Y) < int64(r.Position.Y)+int64(r.Size.Y)
}

// Clamp returns r moved and shrunk so it fits inside bounds.
func (r Rect2i) Clamp(bounds Rect2i) Rect2i {
	out := r
	if out.Size.X > bounds.Size.X {
		out.Size.X = bounds.Size.X
	}
	if out.Size.Y > bounds.Size.Y {
		out.Size.Y = bounds.Size.Y
	}

	maxX := int64(bounds.Position.X) + int64(bounds.Size.X) - int64(out.Size.X)
	maxY := int64(bounds.Position.Y) + int64(bounds.Size.Y) - int64(out.Size.Y)
	out.Position.X = int32(clamp64(int64(out.Position.X), int64(bounds.Position.X), maxX))
	out.Position.Y = int32(clamp64(int64(out.Position.Y), int64(bounds.Position.Y), maxY))
	return out
}

// Unsigned converts r to a Rect2u, clamping negative coordinates to zero.
func (r Rect2i) Unsigned() Rect2u {
	return Rect2u{
		Position: Vec2u{X: uint32(max(r.Position.X, 0)), Y: uint32(max(r.Position.Y, 0))},
		Size:     r.Size,
	}
}

func clamp64(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
