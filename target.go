package reclayout

import "github.com/abilayout/reclayout/charunits"

// ABIKind selects which of the two layout algorithms applies.
type ABIKind int

const (
	ABIItanium ABIKind = iota
	ABIMicrosoft
)

func (k ABIKind) String() string {
	if k == ABIMicrosoft {
		return "microsoft"
	}
	return "itanium"
}

// Target supplies the ABI parameters the layout engine treats as external:
// char width, pointer geometry, the default C++ ABI flavor, and the
// bitfield-alignment policy. Name mangling, code generation, and anything
// else outside layout is deliberately not part of this interface.
type Target interface {
	// CharWidth is the number of bits per char on this target, typically 8.
	CharWidth() int64

	// PointerWidth and PointerAlign report pointer size/alignment in the
	// given address space (0 is the default/generic address space).
	PointerWidth(addrSpace int) charunits.CharUnits
	PointerAlign(addrSpace int) charunits.CharUnits

	// ABI reports the default C++ ABI flavor for this target.
	ABI() ABIKind

	// Is64Bit distinguishes the two vfptr/vbptr injection rules under the
	// Microsoft ABI (spec.md §4.7 step 7).
	Is64Bit() bool

	// BitfieldTypeAlignEnabled reports whether a bitfield's declared type
	// contributes to the record's alignment (most targets: true).
	BitfieldTypeAlignEnabled() bool

	// UseZeroLengthBitfieldAlignment reports whether a target-specific
	// zero-length-bitfield alignment boundary is honored when
	// BitfieldTypeAlignEnabled is false.
	UseZeroLengthBitfieldAlignment() bool

	// ZeroLengthBitfieldBoundary is that boundary, in char units; zero
	// means "no special boundary."
	ZeroLengthBitfieldBoundary() charunits.CharUnits

	// ForbidsOutOfLineInlineKeyFunction reports whether this ABI requires
	// every definition of a candidate key function to be non-inline
	// (relevant only to the key-function resolver).
	ForbidsOutOfLineInlineKeyFunction() bool
}
