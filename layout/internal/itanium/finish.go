package itanium

import (
	"github.com/abilayout/reclayout"
	"github.com/abilayout/reclayout/charunits"
	"github.com/abilayout/reclayout/diag"
)

// finishRounding implements spec.md §4.4(g) and the external-size override
// of §4.4(a)/§7.
func (b *Builder) finishRounding() {
	if b.inferAlignment && b.hasExternal && !b.external.Size.IsZero() && b.external.Size < b.size {
		b.alignment = charunits.One
	}
	unpaddedSize := b.size
	b.size = b.size.RoundUpToAlignment(b.alignment)
	if b.rec.IsCXXRecord() && b.size.IsZero() {
		b.size = charunits.One
	}
	if b.size != unpaddedSize {
		b.sink.Emit(diag.Diagnostic{
			Kind: diag.KindPaddedSize, RecordKind: b.rec.Kind(), RecordName: b.rec.Name(),
			PadSize: int64(b.size - unpaddedSize), PadIsBits: false, PadIsPlural: b.size-unpaddedSize > 1,
		})
	}
	if b.hasExternal && !b.external.Size.IsZero() {
		b.size = b.external.Size
	}
}

// buildResult assembles the accumulated state into an immutable
// reclayout.RecordLayout.
func (b *Builder) buildResult() *reclayout.RecordLayout {
	rb := reclayout.NewResultBuilder().
		SetSize(b.size).
		SetDataSize(b.dataSize).
		SetAlignment(b.alignment).
		SetUnadjustedAlignment(b.unpackedAlignment).
		SetFieldOffsets(b.fieldOffsets)

	if b.rec.IsCXXRecord() {
		rb.SetNonVirtualSize(b.nonVirtualSize).
			SetNonVirtualAlignment(b.nonVirtualAlignment).
			SetSizeOfLargestEmptySubobject(b.emptyMap.SizeOfLargestEmptySubobject()).
			SetHasOwnVFPtr(b.hasOwnVFPtr)

		if b.primaryBase != nil {
			rb.SetPrimaryBase(b.primaryBase, b.primaryBaseIsVirtual)
		}

		extendable := b.hasOwnVFPtr
		if !extendable && b.primaryBase != nil && !b.primaryBaseIsVirtual {
			extendable = b.lp.GetLayout(b.primaryBase).HasExtendableVFPtr()
		}
		rb.SetHasExtendableVFPtr(extendable)
	}

	for _, base := range b.baseOrder {
		rb.AddBaseOffset(base, b.baseOffsets[base.Identity()])
	}
	for _, base := range b.vbaseOrder {
		rb.AddVBaseOffset(base, b.vbaseOffsets[base.Identity()])
	}

	return rb.Build()
}
