// Package charunits provides a typed byte-count wrapper distinct from bit
// counts, so that offsets and sizes at package boundaries can never be
// accidentally mixed with raw bit math.
//
// CharUnits.Add and CharUnits.Sub saturate at the int64 limits.
// RoundUpToAlignment, ToBits, FromCharUnits and the BitCount operations do
// not check for overflow.
package charunits

import "math"

// CharUnits is a count of storage units (bytes on every target this engine
// supports, since CharWidth is always queried from the target rather than
// hardcoded).
type CharUnits int64

// Zero and One are the two constants every builder seeds its running totals
// from.
const (
	Zero CharUnits = 0
	One  CharUnits = 1
)

// Add returns c+other, saturating at math.MaxInt64.
func (c CharUnits) Add(other CharUnits) CharUnits {
	if other > 0 && c > math.MaxInt64-other {
		return math.MaxInt64
	}
	return c + other
}

// Sub returns c-other, saturating at math.MinInt64.
func (c CharUnits) Sub(other CharUnits) CharUnits {
	if other < 0 && c > math.MaxInt64+other {
		return math.MaxInt64
	}
	if other > 0 && c < math.MinInt64+other {
		return math.MinInt64
	}
	return c - other
}

// Less reports whether c < other.
func (c CharUnits) Less(other CharUnits) bool { return c < other }

// LessEqual reports whether c <= other.
func (c CharUnits) LessEqual(other CharUnits) bool { return c <= other }

// IsZero reports whether c is zero.
func (c CharUnits) IsZero() bool { return c == 0 }

// Max returns the larger of c and other.
func Max(c, other CharUnits) CharUnits {
	if c > other {
		return c
	}
	return other
}

// Min returns the smaller of c and other.
func Min(c, other CharUnits) CharUnits {
	if c < other {
		return c
	}
	return other
}

// RoundUpToAlignment rounds c up to the next multiple of a, which must be a
// power of two. a is not checked; an a of one or less returns c unchanged.
func (c CharUnits) RoundUpToAlignment(a CharUnits) CharUnits {
	if a <= 1 {
		return c
	}
	rem := int64(c) % int64(a)
	if rem == 0 {
		return c
	}
	return c + CharUnits(int64(a)-rem)
}

// IsPowerOfTwo reports whether a is a positive power of two.
func (c CharUnits) IsPowerOfTwo() bool {
	return c > 0 && int64(c)&int64(c-1) == 0
}

// FromBits converts a bit count to CharUnits, given the target's char width
// in bits. The bit count must be an exact multiple of charWidth; this is an
// interface invariant, not something this function checks, mirroring the
// spec's "every field offset and base offset exposed at the boundary is an
// exact multiple of CharWidth."
func FromBits(bits int64, charWidth int64) CharUnits {
	return CharUnits(bits / charWidth)
}

// ToBits converts c to a bit count using the target's char width in bits.
func (c CharUnits) ToBits(charWidth int64) int64 {
	return int64(c) * charWidth
}

// Int64 returns the raw char count.
func (c CharUnits) Int64() int64 { return int64(c) }
