package fieldlayout

import (
	"github.com/abilayout/reclayout"
	"github.com/abilayout/reclayout/charunits"
)

// LayoutBitField places a bitfield f per spec.md §4.6's bitfield steps,
// appends its bit offset to s.FieldOffsets, and returns that offset.
func LayoutBitField(s *State, f reclayout.Field) charunits.BitCount {
	cw := s.charWidth()
	t := f.Type()

	fieldSize := charunits.BitCount(f.BitWidth())
	typeSize := t.Size(s.Target, s.LP)
	fieldAlign := t.Align(s.Target, s.LP)

	// Step 2: ms_struct bitfield-unit rules.
	flushedUnit := false
	if s.IsMsStruct {
		fieldAlign = typeSize
		if fieldSize == 0 && s.LastBitfieldTypeSize == 0 {
			// A zero-length bitfield following a non-bitfield is ignored
			// entirely: no placement, no alignment contribution.
			s.FieldOffsets = append(s.FieldOffsets, charunits.BitCount(s.DataSize))
			return charunits.BitCount(s.DataSize)
		}
		if s.LastBitfieldTypeSize != 0 && s.LastBitfieldTypeSize != typeSize {
			s.UnfilledBitsInLastUnit = 0
			flushedUnit = true
		}
	}

	// Step 3: target-specific zero-length-bitfield alignment boundary.
	if fieldSize == 0 && !s.Target.BitfieldTypeAlignEnabled() && s.Target.UseZeroLengthBitfieldAlignment() {
		fieldAlign = s.Target.ZeroLengthBitfieldBoundary()
	}

	// Step 4: wide bitfield.
	if fieldSize > charunits.BitCount(typeSize.ToBits(cw)) {
		return layoutWideBitField(s, f, fieldSize)
	}

	// Step 5.
	unpackedFieldAlign := fieldAlign
	if s.Packed || f.Packed() || !s.Target.BitfieldTypeAlignEnabled() {
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
	fieldAlignBits := charunits.BitCount(fieldAlign.ToBits(cw))

	offset := s.DataSize - s.UnfilledBitsInLastUnit
	if s.IsUnion {
		offset = 0
	}

	// Step 6: ms_struct realignment after a flushed unit.
	if s.IsMsStruct && flushedUnit {
		offset = offset.RoundUpToAlignment(fieldAlignBits)
	}

	// Step 7: cross-unit / zero-length rounding.
	typeSizeBits := charunits.BitCount(typeSize.ToBits(cw))
	crossesUnit := s.MaxFieldAlignment.IsZero() && typeSizeBits > 0 &&
		offset/typeSizeBits != (offset+fieldSize-1)/typeSizeBits && fieldSize > 0
	if fieldSize == 0 || crossesUnit {
		offset = offset.RoundUpToAlignment(fieldAlignBits)
	}

	// Step 8: anonymous zero-length bitfields that don't participate in
	// alignment.
	contributesToAlignment := true
	if f.Name() == "" && fieldSize == 0 && !s.IsMsStruct && !s.Target.UseZeroLengthBitfieldAlignment() {
		contributesToAlignment = false
	}

	s.FieldOffsets = append(s.FieldOffsets, offset)

	// Step 9: data-size update.
	if s.IsUnion {
		if offset+fieldSize > s.DataSize {
			s.DataSize = offset + fieldSize
		}
	} else if s.IsMsStruct {
		if flushedUnit || s.UnfilledBitsInLastUnit == 0 {
			s.DataSize = offset + typeSizeBits
			s.UnfilledBitsInLastUnit = typeSizeBits - fieldSize
		} else {
			s.UnfilledBitsInLastUnit -= fieldSize
		}
	} else {
		s.DataSize = (offset + fieldSize).RoundUpToAlignment(charunits.BitCount(cw))
		s.UnfilledBitsInLastUnit = s.DataSize - (offset + fieldSize)
	}
	if s.DataSize > s.Size {
		s.Size = s.DataSize
	}

	s.LastBitfieldTypeSize = typeSize

	// Step 10.
	if contributesToAlignment {
		s.updateAlignment(fieldAlign, unpackedFieldAlign)
	}

	return offset
}

// layoutWideBitField implements spec.md §4.6 step 4: fieldSize exceeds the
// declared type's width, so a wider unsigned integral POD type is selected
// to back the bitfield.
//
// FIXME (preserved from the original): the data-size update below uses
// fieldSize when it probably should use the chosen wide type's size; the
// original source carries the same open question unresolved.
func layoutWideBitField(s *State, f reclayout.Field, fieldSize charunits.BitCount) charunits.BitCount {
	cw := s.charWidth()
	wideSize, wideAlign := widestIntegralType(fieldSize, cw)

	// Starting a wide bitfield resets bit-packing.
	s.UnfilledBitsInLastUnit = 0
	s.LastBitfieldTypeSize = 0

	dataSizeChars := s.DataSize.ToCharUnits(cw).RoundUpToAlignment(wideAlign)
	offset := charunits.FromCharUnits(dataSizeChars, cw)
	s.FieldOffsets = append(s.FieldOffsets, offset)

	if s.IsUnion {
		if fieldSize > s.DataSize {
			s.DataSize = fieldSize
		}
	} else {
		next := (offset + fieldSize).RoundUpToAlignment(charunits.BitCount(cw))
		s.DataSize = next
		s.UnfilledBitsInLastUnit = next - (offset + fieldSize)
	}
	if s.DataSize > s.Size {
		s.Size = s.DataSize
	}
	s.LastBitfieldTypeSize = wideSize

	s.updateAlignment(wideAlign, wideAlign)
	return offset
}

// widestIntegralType picks the largest unsigned integral POD type T' with
// sizeof(T')*8 <= fieldSize, walking {uchar,ushort,uint,ulong,ulonglong} and
// keeping the last one that still fits. If even the smallest candidate
// doesn't fit (fieldSize < 8), it falls back to uchar.
func widestIntegralType(fieldSize charunits.BitCount, cw int64) (charunits.CharUnits, charunits.CharUnits) {
	widths := []int64{8, 16, 32, 64}
	bits := int64(fieldSize)
	chosen := widths[0]
	for _, w := range widths {
		if w > bits {
			break
		}
		chosen = w
	}
	return charunits.CharUnits(chosen / cw), charunits.CharUnits(chosen / cw)
}
