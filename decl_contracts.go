package reclayout

import "github.com/abilayout/reclayout/charunits"

// RecordKind discriminates the surface syntax of a Record, used only for
// diagnostic messages (spec.md §6: "a record kind discriminator").
type RecordKind int

const (
	KindStruct RecordKind = iota
	KindObjCInterface
	KindClass
)

// TypeKind discriminates the shape of a FieldType.
type TypeKind int

const (
	TypeBasic TypeKind = iota
	TypeRecord
	TypeArray
	TypeIncompleteArray
	TypeReference
	TypePointer
	TypeFunc
)

// FieldType describes the type of a field well enough to size and align it.
// A flexible array, a zero-length array and an empty non-C++ record report
// size zero.
type FieldType interface {
	Kind() TypeKind

	// Size and Align report the size and alignment of this type under tgt,
	// consulting lp to resolve the size/alignment of any record nested
	// inside this type (directly, or as an array element). Size returns
	// zero for an incomplete (flexible) array.
	Size(tgt Target, lp LayoutProvider) charunits.CharUnits
	Align(tgt Target, lp LayoutProvider) charunits.CharUnits

	// Record returns the underlying record when Kind() == TypeRecord,
	// nil otherwise.
	Record() Record

	// Elem returns the element type when Kind() is TypeArray or
	// TypeIncompleteArray, nil otherwise.
	Elem() FieldType

	// ArrayLen returns the element count when Kind() == TypeArray.
	ArrayLen() int64
}

// Method represents a member function, relevant to layout only insofar as
// it determines polymorphism, primary-base eligibility, vtordisp placement,
// and key-function selection.
type Method interface {
	Name() string
	IsVirtual() bool
	IsPure() bool
	IsUserProvided() bool
	IsImplicit() bool
	IsInlineSpecified() bool
	HasInlineBody() bool
	IsConstructor() bool
	IsDestructor() bool

	// Overrides lists the virtual methods (in base classes) that this
	// method overrides. Empty for an "introducing" virtual method.
	Overrides() []Method

	// Parent returns the class that declares this method.
	Parent() Record

	// HasAnyInlineDefinition reports whether any definition of this method,
	// anywhere, is marked inline — consulted by the key-function resolver
	// under ABIs that forbid out-of-line inline key functions.
	HasAnyInlineDefinition() bool
}

// Field represents a non-static data member.
type Field interface {
	Name() string
	Type() FieldType

	IsBitField() bool
	BitWidth() int64 // valid only if IsBitField()

	IsObjCIvar() bool

	// MaxAlignment is the alignment requested by an attribute directly on
	// this field (e.g. __attribute__((aligned))); zero if none.
	MaxAlignment() charunits.CharUnits

	// Packed reports whether this specific field carries its own packed
	// attribute (independent of the enclosing record's packed-ness).
	Packed() bool

	// HasValidLocation reports whether this field has a source location a
	// diagnostic can be attached to; synthesized fields do not.
	HasValidLocation() bool
}

// Base represents a direct base class specifier.
type Base interface {
	Record() Record
	IsVirtual() bool
}

// Record represents a fully elaborated struct/class/union/Objective-C
// interface declaration: everything the layout engine needs to iterate
// without itself understanding the type system.
type Record interface {
	// Identity returns a comparable value uniquely naming this
	// declaration, used as the layout cache key.
	Identity() any

	Name() string
	Kind() RecordKind

	IsUnion() bool
	IsObjCInterface() bool

	// IsCXXRecord reports whether this declaration participates in C++
	// inheritance (has a notion of bases/virtual methods at all). Plain C
	// structs and unions return false.
	IsCXXRecord() bool

	// IsDynamicClass reports whether the class has any virtual member
	// function, directly declared or inherited.
	IsDynamicClass() bool

	// IsEmpty reports whether the class has no data members (other than
	// zero-width bitfields), no virtual functions, no virtual bases, and
	// no non-empty base classes.
	IsEmpty() bool

	Bases() []Base
	Fields() []Field
	Methods() []Method

	// Superclass returns the Objective-C superclass, or nil for anything
	// else (or for a root interface).
	Superclass() Record

	// Packed, MaxFieldAlignment (from #pragma pack), RequiredAlignment
	// (from an attribute on the record itself), IsMsStruct and
	// IsMac68kAlign mirror the builder-state flags of spec.md §3.
	Packed() bool
	MaxFieldAlignment() charunits.CharUnits
	RequiredAlignment() charunits.CharUnits
	IsMsStruct() bool
	IsMac68kAlign() bool

	// IsExternallyVisible and TemplateKind feed the key-function resolver.
	IsExternallyVisible() bool
	TemplateKind() TemplateKind

	HasValidLocation() bool
}

// TemplateKind classifies whether a Record is a template instantiation, for
// key-function eligibility.
type TemplateKind int

const (
	TemplateNone TemplateKind = iota
	TemplateImplicitInstantiation
	TemplateExplicitInstantiation
)

// ExternalLayout is what an external layout source (e.g. a precompiled
// header) supplies for one record. Align == 0 means "infer" (spec.md
// §4.4(a)).
type ExternalLayout struct {
	Size         charunits.CharUnits
	Align        charunits.CharUnits
	FieldOffsets map[Field]charunits.BitCount
	BaseOffsets  map[Record]charunits.CharUnits
	VBaseOffsets map[Record]charunits.CharUnits
}

// ExternalLayoutSource is the consumed external-layout callback.
type ExternalLayoutSource interface {
	LayoutRecordType(rec Record) (ExternalLayout, bool)
}

// LayoutProvider is the recursive-lookup contract the builders use to fetch
// the already-completed layout of a base or field's class. layout.Cache
// implements this; it is defined here (rather than in package layout) so
// that reclayout/layout/internal/* packages can depend on it without
// importing their own parent package.
type LayoutProvider interface {
	GetLayout(rec Record) *RecordLayout
}
