package itanium

import "github.com/abilayout/reclayout"

// determinePrimaryBase implements spec.md §4.4(b).
func (b *Builder) determinePrimaryBase() {
	if !b.rec.IsDynamicClass() {
		return
	}
	b.computeIndirectPrimaryBases()

	for _, base := range b.rec.Bases() {
		if base.IsVirtual() {
			continue
		}
		if base.Record().IsDynamicClass() {
			b.primaryBase = base.Record()
			b.primaryBaseIsVirtual = false
			return
		}
	}

	if found := b.selectPrimaryVBase(b.rec, true); found != nil {
		b.primaryBase = found
		b.primaryBaseIsVirtual = true
		return
	}
	if found := b.selectPrimaryVBase(b.rec, false); found != nil {
		b.primaryBase = found
		b.primaryBaseIsVirtual = true
	}
}

// computeIndirectPrimaryBases walks the full base hierarchy, collecting
// every virtual base that some (direct or indirect) base already claims as
// its own primary base.
func (b *Builder) computeIndirectPrimaryBases() {
	var walk func(rec reclayout.Record)
	walk = func(rec reclayout.Record) {
		for _, base := range rec.Bases() {
			br := base.Record()
			lay := b.lp.GetLayout(br)
			if lay.PrimaryBase() != nil && lay.PrimaryBaseIsVirtual() {
				b.indirectPrimaryBases[lay.PrimaryBase().Identity()] = true
			}
			walk(br)
		}
	}
	walk(b.rec)
}

// selectPrimaryVBase walks rec's bases in declaration (inheritance) order,
// recursing depth-first, looking for the first nearly-empty virtual base.
// When excludeIndirect is set, a candidate already claimed as some other
// base's indirect primary is skipped.
func (b *Builder) selectPrimaryVBase(rec reclayout.Record, excludeIndirect bool) reclayout.Record {
	for _, base := range rec.Bases() {
		br := base.Record()
		if base.IsVirtual() && isNearlyEmpty(br, b.lp) {
			if !excludeIndirect || !b.indirectPrimaryBases[br.Identity()] {
				return br
			}
		}
		if found := b.selectPrimaryVBase(br, excludeIndirect); found != nil {
			return found
		}
	}
	return nil
}

// isNearlyEmpty mirrors the GLOSSARY definition: a polymorphic class with no
// fields, no non-empty bases, and one virtual table pointer of its own.
func isNearlyEmpty(rec reclayout.Record, lp reclayout.LayoutProvider) bool {
	if !rec.IsDynamicClass() {
		return false
	}
	for _, f := range rec.Fields() {
		if !f.IsBitField() || f.BitWidth() != 0 {
			return false
		}
	}
	for _, base := range rec.Bases() {
		if !base.Record().IsEmpty() {
			return false
		}
	}
	return lp.GetLayout(rec).HasOwnVFPtr()
}
