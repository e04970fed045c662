package itanium

import (
	"github.com/abilayout/reclayout/charunits"
	"github.com/abilayout/reclayout/layout/internal/fieldlayout"
)

// layoutFields implements spec.md §4.4(d) by delegating to the shared
// fieldlayout package, seeded with the base-layout state accumulated so
// far and copied back afterward.
func (b *Builder) layoutFields() {
	cw := b.tgt.CharWidth()
	fs := &fieldlayout.State{
		Target: b.tgt, LP: b.lp, Sink: b.sink, Check: b.checker(),
		RecordKind: b.rec.Kind(), RecordName: b.rec.Name(),
		Size:              charunits.FromCharUnits(b.size, cw),
		DataSize:          charunits.FromCharUnits(b.dataSize, cw),
		Alignment:         b.alignment,
		UnpackedAlignment: b.unpackedAlignment,
		MaxFieldAlignment: b.maxFieldAlignment,
		Packed:            b.packed,
		IsUnion:           b.rec.IsUnion(),
		IsMac68kAlign:     b.rec.IsMac68kAlign(),
		IsMsStruct:        b.rec.IsMsStruct(),
	}

	for _, f := range b.rec.Fields() {
		if f.IsBitField() {
			fieldlayout.LayoutBitField(fs, f)
			continue
		}
		var ext *charunits.BitCount
		if b.hasExternal {
			if off, ok := b.external.FieldOffsets[f]; ok {
				o := off
				ext = &o
			}
		}
		fieldlayout.LayoutField(fs, f, ext)
	}

	b.size = fs.SizeInChars()
	b.dataSize = fs.DataSizeInChars()
	b.alignment = fs.Alignment
	b.unpackedAlignment = fs.UnpackedAlignment
	b.fieldOffsets = fs.FieldOffsets
}
