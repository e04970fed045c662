// Package itanium implements the default layout algorithm (spec.md §4.4,
// §4.5): the one used for every record and Objective-C interface regardless
// of ABI, and for C++ classes under the Itanium C++ ABI.
package itanium

import (
	"github.com/abilayout/reclayout"
	"github.com/abilayout/reclayout/charunits"
	"github.com/abilayout/reclayout/diag"
	"github.com/abilayout/reclayout/layout/internal/fieldlayout"
	"github.com/abilayout/reclayout/layout/internal/subobject"
)

// Builder lays out one record. It is one-shot: construct with Build,
// discard afterward (spec.md §3, "Lifecycle").
type Builder struct {
	tgt  reclayout.Target
	lp   reclayout.LayoutProvider
	sink diag.Sink
	rec  reclayout.Record
	ext  reclayout.ExternalLayoutSource

	emptyMap *subobject.Map
	graph    *subobject.Graph

	size, dataSize                charunits.CharUnits
	alignment, unpackedAlignment  charunits.CharUnits
	maxFieldAlignment             charunits.CharUnits
	packed                        bool

	primaryBase         reclayout.Record
	primaryBaseIsVirtual bool
	hasOwnVFPtr          bool

	nonVirtualSize      charunits.CharUnits
	nonVirtualAlignment charunits.CharUnits

	baseOffsets  map[any]charunits.CharUnits
	baseOrder    []reclayout.Record
	vbaseOffsets map[any]reclayout.VBaseInfo
	vbaseOrder   []reclayout.Record

	indirectPrimaryBases map[any]bool
	visitedVirtualBases  map[any]bool

	fieldOffsets []charunits.BitCount

	hasExternal    bool
	external       reclayout.ExternalLayout
	inferAlignment bool
}

// Build lays rec out and returns its completed RecordLayout.
func Build(rec reclayout.Record, tgt reclayout.Target, lp reclayout.LayoutProvider, sink diag.Sink, ext reclayout.ExternalLayoutSource) *reclayout.RecordLayout {
	b := &Builder{
		tgt: tgt, lp: lp, sink: sink, rec: rec, ext: ext,
		alignment: charunits.One, unpackedAlignment: charunits.One,
		baseOffsets:          make(map[any]charunits.CharUnits),
		vbaseOffsets:         make(map[any]reclayout.VBaseInfo),
		indirectPrimaryBases: make(map[any]bool),
		visitedVirtualBases:  make(map[any]bool),
	}
	b.initialize()

	if rec.IsCXXRecord() {
		b.determinePrimaryBase()
		b.layoutNonVirtualBases()
	} else if rec.IsObjCInterface() && rec.Superclass() != nil {
		superLay := lp.GetLayout(rec.Superclass())
		b.size = superLay.DataSize()
		b.dataSize = superLay.DataSize()
		b.alignment = superLay.Alignment()
		b.unpackedAlignment = superLay.Alignment()
	}

	b.layoutFields()

	if rec.IsCXXRecord() {
		b.freezeNonVirtualDims()
		b.layoutVirtualBases()
	}

	b.finishRounding()
	return b.buildResult()
}

func (b *Builder) initialize() {
	b.packed = b.rec.Packed()
	b.maxFieldAlignment = b.rec.MaxFieldAlignment()
	if b.rec.IsMac68kAlign() {
		b.alignment = charunits.CharUnits(2)
		b.unpackedAlignment = charunits.CharUnits(2)
		b.maxFieldAlignment = charunits.CharUnits(2)
	}
	if req := b.rec.RequiredAlignment(); req > 0 {
		b.alignment = charunits.Max(b.alignment, req)
		b.unpackedAlignment = charunits.Max(b.unpackedAlignment, req)
	}

	b.emptyMap = subobject.New(b.rec, b.tgt, b.lp)
	b.graph = subobject.Build(b.rec, b.lp)

	if b.ext != nil {
		if el, ok := b.ext.LayoutRecordType(b.rec); ok {
			b.hasExternal = true
			b.external = el
			if el.Align.IsZero() {
				b.inferAlignment = true
			} else {
				b.alignment = el.Align
				b.unpackedAlignment = el.Align
			}
		}
	}
}

func (b *Builder) updateAlignment(align, unpackedAlign charunits.CharUnits) {
	b.alignment = charunits.Max(b.alignment, align)
	b.unpackedAlignment = charunits.Max(b.unpackedAlignment, unpackedAlign)
}

func (b *Builder) checker() fieldlayout.PlacementChecker {
	if b.emptyMap == nil {
		return nil
	}
	return b.emptyMap
}
