// Package testbed exercises spec.md §8's testable properties: one targeted
// test per concrete scenario, plus a property-style sweep in
// invariants_test.go.
package testbed

import (
	"testing"

	"github.com/abilayout/reclayout"
	"github.com/abilayout/reclayout/decl"
	"github.com/abilayout/reclayout/layout"
)

func TestEmptyStruct(t *testing.T) {
	rec := decl.NewClass("Empty").Build()
	lay := layout.New(decl.DefaultTarget(reclayout.ABIItanium)).GetLayout(rec)

	if got, want := lay.Size().Int64(), int64(1); got != want {
		t.Errorf("size = %d, want %d", got, want)
	}
	if got, want := lay.DataSize().Int64(), int64(0); got != want {
		t.Errorf("dataSize = %d, want %d", got, want)
	}
	if got, want := lay.Alignment().Int64(), int64(1); got != want {
		t.Errorf("alignment = %d, want %d", got, want)
	}
}

func TestPlainStruct(t *testing.T) {
	rec := decl.NewStruct("A").
		Field(decl.NewField("a", decl.Char)).
		Field(decl.NewField("b", decl.Int32)).
		Build()
	lay := layout.New(decl.DefaultTarget(reclayout.ABIItanium)).GetLayout(rec)

	wantOffsets := []int64{0, 32}
	offs := lay.FieldOffsets()
	if len(offs) != len(wantOffsets) {
		t.Fatalf("field count = %d, want %d", len(offs), len(wantOffsets))
	}
	for i, want := range wantOffsets {
		if offs[i].Int64() != want {
			t.Errorf("fieldOffsets[%d] = %d, want %d", i, offs[i].Int64(), want)
		}
	}
	if lay.Size().Int64() != 8 {
		t.Errorf("size = %d, want 8", lay.Size().Int64())
	}
	if lay.DataSize().Int64() != 8 {
		t.Errorf("dataSize = %d, want 8", lay.DataSize().Int64())
	}
	if lay.Alignment().Int64() != 4 {
		t.Errorf("alignment = %d, want 4", lay.Alignment().Int64())
	}
}

func TestEmptyBase(t *testing.T) {
	empty := decl.NewStruct("Empty").Build()
	rec := decl.NewStruct("B").
		Base(empty).
		Field(decl.NewField("x", decl.Int32)).
		Build()
	tgt := decl.DefaultTarget(reclayout.ABIItanium)
	lay := layout.New(tgt).GetLayout(rec)

	off, ok := lay.BaseOffset(empty)
	if !ok || off.Int64() != 0 {
		t.Errorf("Empty base offset = %v (ok=%v), want 0", off, ok)
	}
	if len(lay.FieldOffsets()) != 1 || lay.FieldOffsets()[0].Int64() != 0 {
		t.Errorf("field x offset = %v, want 0", lay.FieldOffsets())
	}
	if lay.Size().Int64() != 4 {
		t.Errorf("size = %d, want 4", lay.Size().Int64())
	}
}

func TestPolymorphicVFPtr(t *testing.T) {
	v := decl.NewClass("V")
	v.Method(decl.NewDestructor(v))
	v.Field(decl.NewField("x", decl.Int32))
	rec := v.Build()

	tgt := decl.DefaultTarget(reclayout.ABIItanium)
	lay := layout.New(tgt).GetLayout(rec)

	if !lay.HasOwnVFPtr() {
		t.Fatal("expected HasOwnVFPtr")
	}
	if len(lay.FieldOffsets()) != 1 || lay.FieldOffsets()[0].Int64() != 64 {
		t.Errorf("x offset = %v, want 64 bits (byte 8)", lay.FieldOffsets())
	}
	if lay.Size().Int64() != 16 {
		t.Errorf("size = %d, want 16", lay.Size().Int64())
	}
	if lay.Alignment().Int64() != 8 {
		t.Errorf("alignment = %d, want 8", lay.Alignment().Int64())
	}
}

func TestDiamondSharesVirtualBase(t *testing.T) {
	a := decl.NewClass("A").Field(decl.NewField("x", decl.Int32)).Build()
	b := decl.NewClass("B").VirtualBase(a).Build()
	c := decl.NewClass("C").VirtualBase(a).Build()
	d := decl.NewClass("D").Base(b).Base(c).Build()

	tgt := decl.DefaultTarget(reclayout.ABIItanium)
	cache := layout.New(tgt)
	lay := cache.GetLayout(d)

	if _, ok := lay.VBaseOffset(a); !ok {
		t.Fatal("expected a single vbaseOffsets entry for A")
	}
	if len(lay.VBaseOffsets()) != 1 {
		t.Errorf("vbaseOffsets count = %d, want 1 (A shared once)", len(lay.VBaseOffsets()))
	}
}

func TestBitfieldPacking(t *testing.T) {
	rec := decl.NewStruct("Bits").
		Field(decl.NewBitField("a", decl.Int32, 3)).
		Field(decl.NewBitField("b", decl.Int32, 5)).
		Field(decl.NewBitField("c", decl.Int32, 24)).
		Build()
	lay := layout.New(decl.DefaultTarget(reclayout.ABIItanium)).GetLayout(rec)

	want := []int64{0, 3, 8}
	offs := lay.FieldOffsets()
	for i, w := range want {
		if offs[i].Int64() != w {
			t.Errorf("fieldOffsets[%d] = %d, want %d", i, offs[i].Int64(), w)
		}
	}
	if lay.Size().Int64() != 4 {
		t.Errorf("size = %d, want 4", lay.Size().Int64())
	}
}

func TestMicrosoftWideBitfieldUnion(t *testing.T) {
	rec := decl.NewUnion("WideBits").
		Field(decl.NewBitField("", decl.LongLong, 40)).
		Build()
	tgt := decl.DefaultTarget(reclayout.ABIMicrosoft)
	lay := layout.New(tgt).GetLayout(rec)

	if lay.Size().Int64() != 8 {
		t.Errorf("size = %d, want 8 (sizeof unsigned long long)", lay.Size().Int64())
	}
}

func TestMicrosoftVBPtr32(t *testing.T) {
	empty := decl.NewClass("Empty").Build()
	rec := decl.NewClass("Q").
		VirtualBase(empty).
		Field(decl.NewField("c", decl.Char)).
		Build()
	tgt := decl.MicrosoftX86Target()
	lay := layout.New(tgt).GetLayout(rec)

	if lay.VBPtrOffset().Int64() != 0 {
		t.Errorf("vbPtrOffset = %d, want 0", lay.VBPtrOffset().Int64())
	}
	if len(lay.FieldOffsets()) != 1 || lay.FieldOffsets()[0].Int64() != 32 {
		t.Errorf("c offset = %v, want 32 bits (byte 4)", lay.FieldOffsets())
	}
	info, ok := lay.VBaseOffset(empty)
	if !ok || info.Offset.Int64() < 5 {
		t.Errorf("Empty vbase offset = %v (ok=%v), want >= 5", info.Offset, ok)
	}
}
