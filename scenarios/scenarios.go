// Package scenarios holds a small gallery of example declarations used by
// both the CLI and the integration tests: the concrete bullets spec.md §8
// lists as testable scenarios, expressed with the decl package.
package scenarios

import (
	"github.com/abilayout/reclayout"
	"github.com/abilayout/reclayout/decl"
)

// Scenario names one example declaration plus the target it is meant to be
// laid out under.
type Scenario struct {
	Name   string
	Record reclayout.Record
	Target reclayout.Target
}

// All returns a fresh gallery every call, since decl.Record values are
// mutable during construction and each Cache.GetLayout call memoizes by
// identity — sharing one instance across scenario runs would let an earlier
// run's cached layout leak into a later one.
func All() []Scenario {
	return []Scenario{
		emptyStruct(),
		plainStruct(),
		emptyBase(),
		polymorphic(),
		diamond(),
		bitfields(),
		msWideBitfieldUnion(),
		msVBPtr32(),
	}
}

// emptyStruct is "struct Empty {};".
func emptyStruct() Scenario {
	return Scenario{
		Name:   "empty-struct",
		Record: decl.NewClass("Empty").Build(),
		Target: decl.DefaultTarget(reclayout.ABIItanium),
	}
}

// plainStruct is "struct A { char a; int b; };".
func plainStruct() Scenario {
	rec := decl.NewStruct("A").
		Field(decl.NewField("a", decl.Char)).
		Field(decl.NewField("b", decl.Int32)).
		Build()
	return Scenario{Name: "plain-struct", Record: rec, Target: decl.DefaultTarget(reclayout.ABIItanium)}
}

// emptyBase is "struct B : Empty { int x; };".
func emptyBase() Scenario {
	empty := decl.NewStruct("Empty").Build()
	b := decl.NewStruct("B").
		Base(empty).
		Field(decl.NewField("x", decl.Int32)).
		Build()
	return Scenario{Name: "empty-base", Record: b, Target: decl.DefaultTarget(reclayout.ABIItanium)}
}

// polymorphic is "class V { public: virtual ~V(); int x; };".
func polymorphic() Scenario {
	v := decl.NewClass("V")
	v.Method(decl.NewDestructor(v))
	v.Field(decl.NewField("x", decl.Int32))
	return Scenario{Name: "polymorphic", Record: v.Build(), Target: decl.DefaultTarget(reclayout.ABIItanium)}
}

// diamond is the classic virtual-inheritance diamond:
//
//	struct A { int x; };
//	struct B : virtual A {};
//	struct C : virtual A {};
//	struct D : B, C {};
func diamond() Scenario {
	a := decl.NewClass("A").Field(decl.NewField("x", decl.Int32)).Build()
	b := decl.NewClass("B").VirtualBase(a).Build()
	c := decl.NewClass("C").VirtualBase(a).Build()
	d := decl.NewClass("D").Base(b).Base(c).Build()
	return Scenario{Name: "diamond", Record: d, Target: decl.DefaultTarget(reclayout.ABIItanium)}
}

// bitfields is "struct { int a : 3; int b : 5; int c : 24; };".
func bitfields() Scenario {
	rec := decl.NewStruct("Bits").
		Field(decl.NewBitField("a", decl.Int32, 3)).
		Field(decl.NewBitField("b", decl.Int32, 5)).
		Field(decl.NewBitField("c", decl.Int32, 24)).
		Build()
	return Scenario{Name: "bitfields", Record: rec, Target: decl.DefaultTarget(reclayout.ABIItanium)}
}

// msWideBitfieldUnion is "union { unsigned long long : 40; };" under the
// Microsoft ABI.
func msWideBitfieldUnion() Scenario {
	rec := decl.NewUnion("WideBits").
		Field(decl.NewBitField("", decl.LongLong, 40)).
		Build()
	return Scenario{Name: "ms-wide-bitfield-union", Record: rec, Target: decl.DefaultTarget(reclayout.ABIMicrosoft)}
}

// msVBPtr32 is "struct Q : virtual Empty { char c; };" under the 32-bit
// Microsoft ABI.
func msVBPtr32() Scenario {
	empty := decl.NewClass("Empty").Build()
	q := decl.NewClass("Q").
		VirtualBase(empty).
		Field(decl.NewField("c", decl.Char)).
		Build()
	return Scenario{Name: "ms-vbptr-32", Record: q, Target: decl.MicrosoftX86Target()}
}
