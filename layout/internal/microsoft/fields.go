package microsoft

import (
	"github.com/abilayout/reclayout/charunits"
	"github.com/abilayout/reclayout/layout/internal/fieldlayout"
)

// layoutFields implements spec.md §4.7 step 6 by delegating to the shared
// fieldlayout package with IsMsStruct forced on and no empty-subobject
// checker — the Microsoft ABI has no empty-subobject map.
func (b *Builder) layoutFields() {
	cw := b.tgt.CharWidth()
	fs := &fieldlayout.State{
		Target: b.tgt, LP: b.lp, Sink: b.sink, Check: nil,
		RecordKind: b.rec.Kind(), RecordName: b.rec.Name(),
		Size:              charunits.FromCharUnits(b.size, cw),
		DataSize:          charunits.FromCharUnits(b.dataSize, cw),
		Alignment:         b.alignment,
		UnpackedAlignment: b.alignment,
		MaxFieldAlignment: b.maxFieldAlignment,
		Packed:            b.packed,
		IsUnion:           b.rec.IsUnion(),
		IsMsStruct:        true,
	}

	for _, f := range b.rec.Fields() {
		if f.IsBitField() {
			fieldlayout.LayoutBitField(fs, f)
		} else {
			fieldlayout.LayoutField(fs, f, nil)
		}
	}

	b.size = fs.SizeInChars()
	b.dataSize = fs.DataSizeInChars()
	b.alignment = fs.Alignment
	b.fieldOffsets = fs.FieldOffsets
}
