package decl

import (
	"github.com/abilayout/reclayout"
	"github.com/abilayout/reclayout/charunits"
)

// Record is a concrete, fluently-built reclayout.Record. Zero value is a
// plain C struct; use NewClass for a C++-participating declaration.
type Record struct {
	name             string
	kind             reclayout.RecordKind
	isUnion          bool
	isCXXRecord      bool
	bases            []reclayout.Base
	fields           []reclayout.Field
	methods          []reclayout.Method
	superclass       reclayout.Record
	packed           bool
	maxFieldAlign    charunits.CharUnits
	requiredAlign    charunits.CharUnits
	isMsStruct       bool
	isMac68kAlign    bool
	isExternVisible  bool
	templateKind     reclayout.TemplateKind
	hasValidLocation bool
}

func (r *Record) Identity() any            { return r }
func (r *Record) Name() string             { return r.name }
func (r *Record) Kind() reclayout.RecordKind { return r.kind }
func (r *Record) IsUnion() bool            { return r.isUnion }
func (r *Record) IsObjCInterface() bool    { return r.kind == reclayout.KindObjCInterface }
func (r *Record) IsCXXRecord() bool        { return r.isCXXRecord }
func (r *Record) Bases() []reclayout.Base     { return r.bases }
func (r *Record) Fields() []reclayout.Field   { return r.fields }
func (r *Record) Methods() []reclayout.Method { return r.methods }
func (r *Record) Superclass() reclayout.Record { return r.superclass }
func (r *Record) Packed() bool             { return r.packed }
func (r *Record) MaxFieldAlignment() charunits.CharUnits { return r.maxFieldAlign }
func (r *Record) RequiredAlignment() charunits.CharUnits { return r.requiredAlign }
func (r *Record) IsMsStruct() bool         { return r.isMsStruct }
func (r *Record) IsMac68kAlign() bool      { return r.isMac68kAlign }
func (r *Record) IsExternallyVisible() bool { return r.isExternVisible }
func (r *Record) TemplateKind() reclayout.TemplateKind { return r.templateKind }
func (r *Record) HasValidLocation() bool   { return r.hasValidLocation }

// IsDynamicClass reports whether this class has any virtual member function,
// directly declared or inherited through a (non-virtual or virtual) base.
func (r *Record) IsDynamicClass() bool {
	for _, m := range r.methods {
		if m.IsVirtual() {
			return true
		}
	}
	for _, b := range r.bases {
		if b.Record().IsDynamicClass() {
			return true
		}
	}
	return false
}

// IsEmpty mirrors clang's CXXRecordDecl::isEmpty: no non-bitfield or
// nonzero-width bitfield data members, no virtual functions, no virtual
// bases, and every base class is itself empty.
func (r *Record) IsEmpty() bool {
	for _, f := range r.fields {
		if !f.IsBitField() || f.BitWidth() != 0 {
			return false
		}
	}
	for _, m := range r.methods {
		if m.IsVirtual() {
			return false
		}
	}
	for _, b := range r.bases {
		if b.IsVirtual() {
			return false
		}
		if !b.Record().IsEmpty() {
			return false
		}
	}
	return true
}

// NewStruct starts building a plain C struct named name (use NewUnion for a
// union).
func NewStruct(name string) *Record {
	return &Record{name: name, kind: reclayout.KindStruct, hasValidLocation: true, isExternVisible: true}
}

// NewUnion starts building a union named name.
func NewUnion(name string) *Record {
	return &Record{name: name, kind: reclayout.KindStruct, isUnion: true, hasValidLocation: true, isExternVisible: true}
}

// NewClass starts building a C++ class/struct named name, eligible for
// bases, virtual methods, and key-function resolution.
func NewClass(name string) *Record {
	return &Record{name: name, kind: reclayout.KindClass, isCXXRecord: true, hasValidLocation: true, isExternVisible: true}
}

// NewObjCInterface starts building an Objective-C @interface named name,
// optionally rooted in superclass (nil for a root class).
func NewObjCInterface(name string, superclass reclayout.Record) *Record {
	return &Record{name: name, kind: reclayout.KindObjCInterface, superclass: superclass, hasValidLocation: true, isExternVisible: true}
}

// Field appends a data member and returns r for chaining.
func (r *Record) Field(f reclayout.Field) *Record { r.fields = append(r.fields, f); return r }

// Base appends a direct non-virtual base class specifier.
func (r *Record) Base(rec reclayout.Record) *Record {
	r.bases = append(r.bases, NewBase(rec, false))
	r.isCXXRecord = true
	return r
}

// VirtualBase appends a direct virtual base class specifier.
func (r *Record) VirtualBase(rec reclayout.Record) *Record {
	r.bases = append(r.bases, NewBase(rec, true))
	r.isCXXRecord = true
	return r
}

// Method appends a member function.
func (r *Record) Method(m reclayout.Method) *Record {
	r.methods = append(r.methods, m)
	r.isCXXRecord = true
	return r
}

// WithPacked marks the whole record #pragma pack(1)-equivalent packed.
func (r *Record) WithPacked() *Record { r.packed = true; return r }

// WithMaxFieldAlignment sets a #pragma pack(n) ceiling on field alignment.
func (r *Record) WithMaxFieldAlignment(a charunits.CharUnits) *Record {
	r.maxFieldAlign = a
	return r
}

// WithRequiredAlignment sets an __attribute__((aligned)) floor on the
// record's own alignment.
func (r *Record) WithRequiredAlignment(a charunits.CharUnits) *Record {
	r.requiredAlign = a
	return r
}

// AsMsStruct opts the record into MSVC bitfield-packing layout rules even
// under a non-Microsoft ABI (spec.md §4.6's IsMsStruct flag).
func (r *Record) AsMsStruct() *Record { r.isMsStruct = true; return r }

// AsMac68kAlign opts the record into Macintosh 68k alignment rules.
func (r *Record) AsMac68kAlign() *Record { r.isMac68kAlign = true; return r }

// AsInternal marks the record as not externally visible, excluding it from
// key-function resolution under the Itanium ABI.
func (r *Record) AsInternal() *Record { r.isExternVisible = false; return r }

// WithTemplateKind sets the record's template instantiation kind.
func (r *Record) WithTemplateKind(k reclayout.TemplateKind) *Record { r.templateKind = k; return r }

// WithoutLocation marks the record as synthesized, with no source location.
func (r *Record) WithoutLocation() *Record { r.hasValidLocation = false; return r }

// Build returns r. It exists only for symmetry with Field/Method's fluent
// constructors; r is already a valid reclayout.Record after any of the
// With*/Field/Base/Method calls above.
func (r *Record) Build() *Record { return r }
