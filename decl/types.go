package decl

import (
	"github.com/abilayout/reclayout"
	"github.com/abilayout/reclayout/charunits"
)

// basicType is a scalar whose size/alignment the front end has already
// resolved (e.g. "int", "unsigned long long", "double") and which needs no
// further target consultation.
type basicType struct {
	name  string
	size  charunits.CharUnits
	align charunits.CharUnits
}

func (b *basicType) Kind() reclayout.TypeKind { return reclayout.TypeBasic }
func (b *basicType) Size(reclayout.Target, reclayout.LayoutProvider) charunits.CharUnits {
	return b.size
}
func (b *basicType) Align(reclayout.Target, reclayout.LayoutProvider) charunits.CharUnits {
	return b.align
}
func (b *basicType) Record() reclayout.Record   { return nil }
func (b *basicType) Elem() reclayout.FieldType   { return nil }
func (b *basicType) ArrayLen() int64             { return 0 }
func (b *basicType) String() string              { return b.name }

// Common basic types, sized for a typical LP64/LLP64-ish target. Callers
// needing different sizes can build their own with Basic.
var (
	Bool     = &basicType{"bool", 1, 1}
	Char     = &basicType{"char", 1, 1}
	Short    = &basicType{"short", 2, 2}
	Int32    = &basicType{"int", 4, 4}
	Long     = &basicType{"long", 8, 8}
	LongLong = &basicType{"long long", 8, 8}
	Float    = &basicType{"float", 4, 4}
	Double   = &basicType{"double", 8, 8}
)

// Basic constructs a scalar field type with an explicit size and alignment.
func Basic(name string, size, align charunits.CharUnits) reclayout.FieldType {
	return &basicType{name, size, align}
}

// pointerType represents both T* and T& (a reference): reclayout.TypeKind
// distinguishes them, but both size/align from the target's pointer
// geometry in address space 0.
type pointerType struct {
	isReference bool
}

func (p *pointerType) Kind() reclayout.TypeKind {
	if p.isReference {
		return reclayout.TypeReference
	}
	return reclayout.TypePointer
}
func (p *pointerType) Size(tgt reclayout.Target, _ reclayout.LayoutProvider) charunits.CharUnits {
	return tgt.PointerWidth(0)
}
func (p *pointerType) Align(tgt reclayout.Target, _ reclayout.LayoutProvider) charunits.CharUnits {
	return tgt.PointerAlign(0)
}
func (p *pointerType) Record() reclayout.Record { return nil }
func (p *pointerType) Elem() reclayout.FieldType { return nil }
func (p *pointerType) ArrayLen() int64           { return 0 }

// Pointer and Reference are the two pointer-shaped field types.
var Pointer = &pointerType{isReference: false}
var Reference = &pointerType{isReference: true}

// recordType wraps a nested reclayout.Record as a field type. Its size and
// alignment are the nested record's full (tail-padding-inclusive) size and
// alignment, resolved through lp — never through the record's own
// declared attributes, since those aren't sufficient without layout.
type recordType struct {
	rec reclayout.Record
}

// RecordType wraps rec as a field type.
func RecordType(rec reclayout.Record) reclayout.FieldType {
	return &recordType{rec: rec}
}

func (r *recordType) Kind() reclayout.TypeKind { return reclayout.TypeRecord }
func (r *recordType) Size(_ reclayout.Target, lp reclayout.LayoutProvider) charunits.CharUnits {
	return lp.GetLayout(r.rec).Size()
}
func (r *recordType) Align(_ reclayout.Target, lp reclayout.LayoutProvider) charunits.CharUnits {
	return lp.GetLayout(r.rec).Alignment()
}
func (r *recordType) Record() reclayout.Record   { return r.rec }
func (r *recordType) Elem() reclayout.FieldType   { return nil }
func (r *recordType) ArrayLen() int64             { return 0 }

// arrayType is a fixed-length array of elem.
type arrayType struct {
	elem reclayout.FieldType
	n    int64
}

// Array constructs a fixed-length array field type.
func Array(elem reclayout.FieldType, n int64) reclayout.FieldType {
	return &arrayType{elem: elem, n: n}
}

func (a *arrayType) Kind() reclayout.TypeKind { return reclayout.TypeArray }
func (a *arrayType) Size(tgt reclayout.Target, lp reclayout.LayoutProvider) charunits.CharUnits {
	return a.elem.Size(tgt, lp) * charunits.CharUnits(a.n)
}
func (a *arrayType) Align(tgt reclayout.Target, lp reclayout.LayoutProvider) charunits.CharUnits {
	if a.n == 0 {
		return charunits.One
	}
	return a.elem.Align(tgt, lp)
}
func (a *arrayType) Record() reclayout.Record   { return nil }
func (a *arrayType) Elem() reclayout.FieldType   { return a.elem }
func (a *arrayType) ArrayLen() int64             { return a.n }

// incompleteArrayType is a trailing flexible array member: it contributes
// no size but constrains alignment to its element's alignment.
type incompleteArrayType struct {
	elem reclayout.FieldType
}

// IncompleteArray constructs a flexible array member's type.
func IncompleteArray(elem reclayout.FieldType) reclayout.FieldType {
	return &incompleteArrayType{elem: elem}
}

func (a *incompleteArrayType) Kind() reclayout.TypeKind { return reclayout.TypeIncompleteArray }
func (a *incompleteArrayType) Size(reclayout.Target, reclayout.LayoutProvider) charunits.CharUnits {
	return charunits.Zero
}
func (a *incompleteArrayType) Align(tgt reclayout.Target, lp reclayout.LayoutProvider) charunits.CharUnits {
	return a.elem.Align(tgt, lp)
}
func (a *incompleteArrayType) Record() reclayout.Record { return nil }
func (a *incompleteArrayType) Elem() reclayout.FieldType { return a.elem }
func (a *incompleteArrayType) ArrayLen() int64           { return 0 }
