package fieldlayout

import (
	"github.com/abilayout/reclayout"
	"github.com/abilayout/reclayout/charunits"
	"github.com/abilayout/reclayout/diag"
	"github.com/abilayout/reclayout/errors"
)

// LayoutField places a non-bitfield f per spec.md §4.6's non-bitfield
// steps, appends its bit offset to s.FieldOffsets, and returns that offset.
// externalOffset, when non-nil, is the offset an external layout source
// supplied for f (step 5); it overrides the computed trial offset but is
// still asserted against the placement checker.
func LayoutField(s *State, f reclayout.Field, externalOffset *charunits.BitCount) charunits.BitCount {
	cw := s.charWidth()

	// Step 1.
	s.UnfilledBitsInLastUnit = 0
	s.LastBitfieldTypeSize = 0

	// Step 2.
	t := f.Type()
	fieldSize := t.Size(s.Target, s.LP)
	fieldAlign := t.Align(s.Target, s.LP)
	if s.IsMsStruct && t.Kind() == reclayout.TypeArray {
		if elem := t.Elem(); elem.Kind() == reclayout.TypeBasic {
			fieldAlign = charunits.Max(fieldAlign, elem.Size(s.Target, s.LP))
		}
	}

	// Step 3.
	unpackedFieldAlign := fieldAlign
	packed := s.Packed || f.Packed()
	if packed {
		fieldAlign = charunits.One
	}
	if max := f.MaxAlignment(); max > 0 {
		fieldAlign = charunits.Max(fieldAlign, max)
		unpackedFieldAlign = charunits.Max(unpackedFieldAlign, max)
	}
	if s.MaxFieldAlignment > 0 {
		fieldAlign = charunits.Min(fieldAlign, s.MaxFieldAlignment)
		unpackedFieldAlign = charunits.Min(unpackedFieldAlign, s.MaxFieldAlignment)
	}

	// Step 4.
	var baseOffsetChars charunits.CharUnits
	if !s.IsUnion {
		baseOffsetChars = s.DataSizeInChars()
	}
	fieldOffsetChars := baseOffsetChars.RoundUpToAlignment(fieldAlign)
	unpaddedOffsetChars := baseOffsetChars
	unpackedOffsetChars := baseOffsetChars.RoundUpToAlignment(unpackedFieldAlign)

	// Step 5 / 6.
	if externalOffset != nil {
		fieldOffsetChars = externalOffset.ToCharUnits(cw)
		if s.Check != nil && !s.Check.CanPlaceFieldAtOffset(t, fieldOffsetChars) {
			errors.Panic(errors.PhaseField, errors.KindInternal,
				"externally supplied offset of field %q collides with an empty subobject", f.Name())
		}
	} else if s.Check != nil {
		for !s.Check.CanPlaceFieldAtOffset(t, fieldOffsetChars) {
			fieldOffsetChars = fieldOffsetChars.Add(fieldAlign)
		}
	}
	if s.Check != nil {
		s.Check.UpdateField(t, fieldOffsetChars)
	}

	// Step 7.
	fieldOffset := charunits.FromCharUnits(fieldOffsetChars, cw)
	s.FieldOffsets = append(s.FieldOffsets, fieldOffset)
	if fieldOffsetChars > unpaddedOffsetChars && !f.IsObjCIvar() && f.HasValidLocation() {
		pad := fieldOffsetChars - unpaddedOffsetChars
		kind := diag.KindPaddedField
		name := f.Name()
		if name == "" {
			kind = diag.KindPaddedAnonField
		}
		s.Sink.Emit(diag.Diagnostic{
			Kind: kind, RecordKind: s.RecordKind, RecordName: s.RecordName,
			FieldName: name, PadSize: int64(pad), PadIsBits: false, PadIsPlural: pad > 1,
		})
	}

	// Unnecessary-packed warning: packing requested, but it changed nothing.
	if packed && f.Packed() && fieldOffsetChars == unpackedOffsetChars && unpackedFieldAlign > charunits.One {
		s.Sink.Emit(diag.Diagnostic{
			Kind: diag.KindUnnecessaryPacked, RecordKind: s.RecordKind, RecordName: s.RecordName,
			FieldName: f.Name(),
		})
	}

	// Step 8.
	if s.IsUnion {
		if sz := charunits.FromCharUnits(fieldSize, cw); sz > s.DataSize {
			s.DataSize = sz
		}
	} else {
		s.DataSize = fieldOffset.Add(charunits.FromCharUnits(fieldSize, cw))
	}
	if s.DataSize > s.Size {
		s.Size = s.DataSize
	}
	s.updateAlignment(fieldAlign, unpackedFieldAlign)

	return fieldOffset
}
