// Package fieldlayout implements the field and bitfield placement rules
// shared by both ABI builders (spec.md §4.6). The original C++ implements
// this once inside the shared RecordLayoutBuilder base class that the
// Itanium builder derives from directly, and a second time, independently,
// inside MicrosoftRecordLayoutBuilder; this package keeps one copy,
// parameterized by IsMsStruct and an optional PlacementChecker, rather than
// carrying the duplication into Go.
package fieldlayout

import (
	"github.com/abilayout/reclayout"
	"github.com/abilayout/reclayout/charunits"
	"github.com/abilayout/reclayout/diag"
)

// PlacementChecker is consulted by LayoutField to keep a trial field offset
// from colliding with a recorded empty subobject. The Itanium builder backs
// this with its subobject.Map; the Microsoft builder passes nil, since it
// has no empty-subobject map (spec.md §4.7).
type PlacementChecker interface {
	CanPlaceFieldAtOffset(t reclayout.FieldType, off charunits.CharUnits) bool
	UpdateField(t reclayout.FieldType, off charunits.CharUnits)
}

// State is the transient "Builder state" of spec.md §3, shared across every
// field and bitfield placed in one record.
type State struct {
	Target reclayout.Target
	LP     reclayout.LayoutProvider
	Sink   diag.Sink
	Check  PlacementChecker // nil under the Microsoft builder

	RecordKind reclayout.RecordKind
	RecordName string

	Size              charunits.BitCount
	DataSize          charunits.BitCount
	Alignment         charunits.CharUnits
	UnpackedAlignment charunits.CharUnits
	MaxFieldAlignment charunits.CharUnits

	UnfilledBitsInLastUnit charunits.BitCount
	LastBitfieldTypeSize   charunits.CharUnits

	Packed       bool
	IsUnion      bool
	IsMac68kAlign bool
	IsMsStruct   bool

	FieldOffsets []charunits.BitCount
}

// New constructs a field-layout state for rec with zero size and data size
// and an alignment of one char. It does not account for any vfptr or base
// area placed before the fields; a builder that has placed one sets Size,
// DataSize and Alignment itself.
func New(tgt reclayout.Target, lp reclayout.LayoutProvider, sink diag.Sink, rec reclayout.Record, check PlacementChecker) *State {
	if sink == nil {
		sink = diag.Nop
	}
	return &State{
		Target:            tgt,
		LP:                lp,
		Sink:              sink,
		Check:             check,
		RecordKind:        rec.Kind(),
		RecordName:        rec.Name(),
		Alignment:         charunits.One,
		UnpackedAlignment: charunits.One,
		MaxFieldAlignment: rec.MaxFieldAlignment(),
		Packed:            rec.Packed(),
		IsUnion:           rec.IsUnion(),
		IsMac68kAlign:     rec.IsMac68kAlign(),
		IsMsStruct:        rec.IsMsStruct(),
	}
}

// SizeInChars rounds the current bit size up to a char boundary.
func (s *State) SizeInChars() charunits.CharUnits {
	return s.Size.RoundUpToAlignment(charunits.BitCount(s.Target.CharWidth())).ToCharUnits(s.Target.CharWidth())
}

// DataSizeInChars rounds the current bit data size up to a char boundary.
func (s *State) DataSizeInChars() charunits.CharUnits {
	return s.DataSize.RoundUpToAlignment(charunits.BitCount(s.Target.CharWidth())).ToCharUnits(s.Target.CharWidth())
}

func (s *State) updateAlignment(fieldAlign, unpackedFieldAlign charunits.CharUnits) {
	s.Alignment = charunits.Max(s.Alignment, fieldAlign)
	s.UnpackedAlignment = charunits.Max(s.UnpackedAlignment, unpackedFieldAlign)
}

func (s *State) charWidth() int64 { return s.Target.CharWidth() }
