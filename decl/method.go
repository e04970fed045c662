package decl

import "github.com/abilayout/reclayout"

// Method is a concrete reclayout.Method.
type Method struct {
	name                   string
	isVirtual              bool
	isPure                 bool
	isUserProvided         bool
	isImplicit             bool
	isInlineSpecified      bool
	hasInlineBody          bool
	isConstructor          bool
	isDestructor           bool
	hasAnyInlineDefinition bool
	overrides              []reclayout.Method
	parent                 reclayout.Record
}

func (m *Method) Name() string                     { return m.name }
func (m *Method) IsVirtual() bool                  { return m.isVirtual }
func (m *Method) IsPure() bool                     { return m.isPure }
func (m *Method) IsUserProvided() bool             { return m.isUserProvided }
func (m *Method) IsImplicit() bool                 { return m.isImplicit }
func (m *Method) IsInlineSpecified() bool          { return m.isInlineSpecified }
func (m *Method) HasInlineBody() bool              { return m.hasInlineBody }
func (m *Method) IsConstructor() bool              { return m.isConstructor }
func (m *Method) IsDestructor() bool               { return m.isDestructor }
func (m *Method) Overrides() []reclayout.Method    { return m.overrides }
func (m *Method) Parent() reclayout.Record         { return m.parent }
func (m *Method) HasAnyInlineDefinition() bool     { return m.hasAnyInlineDefinition }

// NewVirtualMethod constructs a user-provided, non-pure, non-inline virtual
// method — the common case for an "introducing" or "overriding" member
// function used to drive primary-base selection, vtordisp, and
// key-function tests.
func NewVirtualMethod(name string, parent reclayout.Record, overrides ...reclayout.Method) *Method {
	return &Method{
		name:           name,
		isVirtual:      true,
		isUserProvided: true,
		overrides:      overrides,
		parent:         parent,
	}
}

// NewDestructor constructs a virtual destructor.
func NewDestructor(parent reclayout.Record, overrides ...reclayout.Method) *Method {
	return &Method{
		name:           "~" + parent.Name(),
		isVirtual:      true,
		isUserProvided: true,
		isDestructor:   true,
		overrides:      overrides,
		parent:         parent,
	}
}

// AsPure marks m pure virtual.
func (m *Method) AsPure() *Method { m.isPure = true; return m }

// AsImplicit marks m compiler-generated.
func (m *Method) AsImplicit() *Method { m.isImplicit = true; m.isUserProvided = false; return m }

// AsInlineSpecified marks m declared with the inline specifier.
func (m *Method) AsInlineSpecified() *Method { m.isInlineSpecified = true; return m }

// WithInlineBody marks m as having an in-class (implicitly inline) body.
func (m *Method) WithInlineBody() *Method { m.hasInlineBody = true; return m }

// WithAnyInlineDefinition marks that some definition of m, anywhere in the
// program, is inline.
func (m *Method) WithAnyInlineDefinition() *Method {
	m.hasAnyInlineDefinition = true
	return m
}

// AsConstructor marks m as a constructor.
func (m *Method) AsConstructor() *Method { m.isConstructor = true; return m }
