package testbed

import (
	"testing"

	"github.com/abilayout/reclayout"
	"github.com/abilayout/reclayout/decl"
	"github.com/abilayout/reclayout/layout"
	"github.com/abilayout/reclayout/scenarios"
)

// TestInvariantsAcrossGallery sweeps every scenario in the gallery and
// checks the general properties that must hold for any record, regardless
// of which concrete declaration produced it.
func TestInvariantsAcrossGallery(t *testing.T) {
	for _, sc := range scenarios.All() {
		sc := sc
		t.Run(sc.Name, func(t *testing.T) {
			cache := layout.New(sc.Target)
			lay := cache.GetLayout(sc.Record)

			t.Run("size_is_multiple_of_alignment", func(t *testing.T) {
				if lay.Alignment().Int64() == 0 {
					t.Fatal("alignment must never be zero")
				}
				if lay.Size().Int64()%lay.Alignment().Int64() != 0 {
					t.Errorf("size=%d not a multiple of alignment=%d", lay.Size().Int64(), lay.Alignment().Int64())
				}
			})

			t.Run("data_size_never_exceeds_size", func(t *testing.T) {
				if lay.DataSize().Int64() > lay.Size().Int64() {
					t.Errorf("dataSize=%d > size=%d", lay.DataSize().Int64(), lay.Size().Int64())
				}
			})

			t.Run("field_offsets_within_bounds", func(t *testing.T) {
				if sc.Record.IsUnion() {
					return
				}
				sizeBits := lay.Size().Int64() * sc.Target.CharWidth()
				prev := int64(-1)
				for i, off := range lay.FieldOffsets() {
					if off.Int64() < prev {
						t.Errorf("field %d offset %d precedes field %d offset %d", i, off.Int64(), i-1, prev)
					}
					prev = off.Int64()
					if off.Int64() < 0 || off.Int64() > sizeBits {
						t.Errorf("field %d offset %d out of [0,%d]", i, off.Int64(), sizeBits)
					}
				}
			})

			t.Run("microsoft_vbptr_consistency", func(t *testing.T) {
				if sc.Target.ABI() != reclayout.ABIMicrosoft {
					return
				}
				hasVBPtr := lay.VBPtrOffset() != reclayout.NoVBPtr
				hasVBases := len(lay.VBaseOffsets()) > 0
				if hasVBases && !hasVBPtr {
					t.Error("has virtual bases but no vbptr recorded")
				}
			})

			t.Run("base_offsets_nonnegative", func(t *testing.T) {
				for _, off := range lay.BaseOffsets() {
					if off.Int64() < 0 {
						t.Errorf("negative base offset %d", off.Int64())
					}
				}
				for _, info := range lay.VBaseOffsets() {
					if info.Offset.Int64() < 0 {
						t.Errorf("negative vbase offset %d", info.Offset.Int64())
					}
				}
			})
		})
	}
}

// TestDeterministicAcrossIndependentCaches lays out the same declaration
// through two independently constructed caches and checks the results
// agree field-for-field — layout must be a pure function of the
// declaration and target, not of cache identity or call order.
func TestDeterministicAcrossIndependentCaches(t *testing.T) {
	for _, sc := range scenarios.All() {
		sc := sc
		t.Run(sc.Name, func(t *testing.T) {
			lay1 := layout.New(sc.Target).GetLayout(sc.Record)
			lay2 := layout.New(sc.Target).GetLayout(sc.Record)

			if lay1.Size() != lay2.Size() {
				t.Errorf("size differs: %d vs %d", lay1.Size().Int64(), lay2.Size().Int64())
			}
			if lay1.Alignment() != lay2.Alignment() {
				t.Errorf("alignment differs: %d vs %d", lay1.Alignment().Int64(), lay2.Alignment().Int64())
			}
			offs1, offs2 := lay1.FieldOffsets(), lay2.FieldOffsets()
			if len(offs1) != len(offs2) {
				t.Fatalf("field count differs: %d vs %d", len(offs1), len(offs2))
			}
			for i := range offs1 {
				if offs1[i] != offs2[i] {
					t.Errorf("field %d offset differs: %d vs %d", i, offs1[i].Int64(), offs2[i].Int64())
				}
			}
		})
	}
}

// TestGalleryNamesAreUnique guards against a copy-pasted scenario entry
// silently shadowing another one in the name-keyed CLI lookup.
func TestGalleryNamesAreUnique(t *testing.T) {
	all := scenarios.All()
	if len(all) == 0 {
		t.Fatal("scenario gallery must not be empty")
	}
	seen := make(map[string]bool)
	for _, sc := range all {
		if seen[sc.Name] {
			t.Errorf("duplicate scenario name %q", sc.Name)
		}
		seen[sc.Name] = true
	}
}

// TestItaniumVFPtrAtOffsetZero covers spec.md §8's Itanium offset-zero
// rule for a dynamic class: it checks that the class either has its own
// vfptr (which the Itanium builder places at offset zero before any base or
// field) or a primary base supplying one. It does not read an offset.
func TestItaniumVFPtrAtOffsetZero(t *testing.T) {
	v := decl.NewClass("V")
	v.Method(decl.NewDestructor(v))
	rec := v.Build()

	tgt := decl.DefaultTarget(reclayout.ABIItanium)
	lay := layout.New(tgt).GetLayout(rec)

	if !lay.HasOwnVFPtr() && lay.PrimaryBase() == nil {
		t.Error("dynamic class has neither its own vfptr nor a primary base supplying one")
	}
}
