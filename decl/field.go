package decl

import (
	"github.com/abilayout/reclayout"
	"github.com/abilayout/reclayout/charunits"
)

// Field is a concrete reclayout.Field.
type Field struct {
	name             string
	typ              reclayout.FieldType
	isBitField       bool
	bitWidth         int64
	isObjCIvar       bool
	maxAlignment     charunits.CharUnits
	packed           bool
	hasValidLocation bool
}

func (f *Field) Name() string                 { return f.name }
func (f *Field) Type() reclayout.FieldType    { return f.typ }
func (f *Field) IsBitField() bool             { return f.isBitField }
func (f *Field) BitWidth() int64              { return f.bitWidth }
func (f *Field) IsObjCIvar() bool             { return f.isObjCIvar }
func (f *Field) MaxAlignment() charunits.CharUnits { return f.maxAlignment }
func (f *Field) Packed() bool                 { return f.packed }
func (f *Field) HasValidLocation() bool       { return f.hasValidLocation }

// NewField constructs a plain (non-bitfield) field.
func NewField(name string, typ reclayout.FieldType) *Field {
	return &Field{name: name, typ: typ, hasValidLocation: true}
}

// NewBitField constructs a bitfield of the given declared width, whose
// underlying declared type is typ (typ's Size/Align give TypeSize/TypeAlign
// in spec.md §4.6's bitfield steps).
func NewBitField(name string, typ reclayout.FieldType, width int64) *Field {
	return &Field{name: name, typ: typ, isBitField: true, bitWidth: width, hasValidLocation: true}
}

// WithMaxAlignment sets an attribute-derived required alignment on f.
func (f *Field) WithMaxAlignment(a charunits.CharUnits) *Field { f.maxAlignment = a; return f }

// WithPacked marks f as individually packed.
func (f *Field) WithPacked() *Field { f.packed = true; return f }

// AsObjCIvar marks f as an Objective-C instance variable (suppresses
// padding diagnostics).
func (f *Field) AsObjCIvar() *Field { f.isObjCIvar = true; return f }

// WithoutLocation marks f as having no usable source location (also
// suppresses padding diagnostics).
func (f *Field) WithoutLocation() *Field { f.hasValidLocation = false; return f }
