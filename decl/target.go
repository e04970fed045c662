// Package decl is a small, concrete declaration-graph builder implementing
// the reclayout.Record/Field/Base/Method/Target contracts. It stands in for
// "the type system / declaration graph" that spec.md lists as an external
// collaborator: real front ends supply their own implementation of these
// interfaces, but this module needs one to test, demo, and drive the CLI
// against.
package decl

import (
	"github.com/abilayout/reclayout"
	"github.com/abilayout/reclayout/charunits"
)

// Target is a concrete reclayout.Target.
type Target struct {
	charWidth                         int64
	ptrWidth, ptrAlign                charunits.CharUnits
	abi                               reclayout.ABIKind
	is64Bit                           bool
	bitfieldTypeAlignEnabled          bool
	useZeroLengthBitfieldAlignment    bool
	zeroLengthBitfieldBoundary        charunits.CharUnits
	forbidsOutOfLineInlineKeyFunction bool
}

func (t *Target) CharWidth() int64 { return t.charWidth }
func (t *Target) PointerWidth(int) charunits.CharUnits { return t.ptrWidth }
func (t *Target) PointerAlign(int) charunits.CharUnits { return t.ptrAlign }
func (t *Target) ABI() reclayout.ABIKind               { return t.abi }
func (t *Target) Is64Bit() bool                        { return t.is64Bit }
func (t *Target) BitfieldTypeAlignEnabled() bool        { return t.bitfieldTypeAlignEnabled }
func (t *Target) UseZeroLengthBitfieldAlignment() bool  { return t.useZeroLengthBitfieldAlignment }
func (t *Target) ZeroLengthBitfieldBoundary() charunits.CharUnits {
	return t.zeroLengthBitfieldBoundary
}
func (t *Target) ForbidsOutOfLineInlineKeyFunction() bool {
	return t.forbidsOutOfLineInlineKeyFunction
}

// DefaultTarget returns a reasonable preset for the given ABI: a 64-bit
// little-endian target with 8-bit chars, matching spec.md §8's
// "64-bit little-endian Itanium system" test target, or its Microsoft
// analogue.
func DefaultTarget(abi reclayout.ABIKind) *Target {
	switch abi {
	case reclayout.ABIMicrosoft:
		return &Target{
			charWidth: 8, ptrWidth: 8, ptrAlign: 8,
			abi: reclayout.ABIMicrosoft, is64Bit: true,
			bitfieldTypeAlignEnabled: true,
		}
	default:
		return &Target{
			charWidth: 8, ptrWidth: 8, ptrAlign: 8,
			abi: reclayout.ABIItanium, is64Bit: true,
			bitfieldTypeAlignEnabled: true,
		}
	}
}

// MicrosoftX86Target returns the 32-bit Microsoft preset used by spec.md
// §8's "Microsoft 32-bit" scenario.
func MicrosoftX86Target() *Target {
	return &Target{
		charWidth: 8, ptrWidth: 4, ptrAlign: 4,
		abi: reclayout.ABIMicrosoft, is64Bit: false,
		bitfieldTypeAlignEnabled: true,
	}
}

// WithZeroLengthBitfieldBoundary returns a copy of t configured to honor a
// target-specific zero-length-bitfield alignment boundary (in chars),
// disabling ordinary bitfield-type alignment — the combination spec.md
// §4.6 step 3 describes.
func (t *Target) WithZeroLengthBitfieldBoundary(boundary charunits.CharUnits) *Target {
	clone := *t
	clone.bitfieldTypeAlignEnabled = false
	clone.useZeroLengthBitfieldAlignment = true
	clone.zeroLengthBitfieldBoundary = boundary
	return &clone
}

// WithForbidsOutOfLineInlineKeyFunction returns a copy of t with that ABI
// flag set, used to exercise the key-function resolver's extra check.
func (t *Target) WithForbidsOutOfLineInlineKeyFunction() *Target {
	clone := *t
	clone.forbidsOutOfLineInlineKeyFunction = true
	return &clone
}
