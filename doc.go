// Package reclayout provides a record layout engine for a C/C++/
// Objective-C compiler front end: given a fully elaborated record
// declaration and a set of target ABI parameters, it computes field
// offsets, base subobject offsets, size, alignment, and vtable/vtordisp
// placement under either the Itanium or the Microsoft C++ ABI.
//
// This root package holds only the contracts the engine sits on top of:
// the declaration-graph interfaces a type system must implement (Record,
// Base, Field, Method), the Target interface describing ABI parameters,
// and the RecordLayout result shape. The actual algorithms live in
// reclayout/layout and its internal subpackages.
//
// # Architecture Overview
//
//	reclayout/              Contracts: Record/Field/Target, RecordLayout
//	├── charunits/           CharUnits / BitCount arithmetic
//	├── decl/                concrete declaration-graph builder (for tests,
//	│                        the CLI, and examples — stands in for a real
//	│                        type system)
//	├── errors/              assertion-failure style errors
//	├── diag/                diagnostic warning sink
//	└── layout/              the layout cache and public API
//	    └── internal/
//	        ├── fieldlayout/  shared field/bitfield placement
//	        ├── subobject/    empty-subobject map + base-subobject graph
//	        ├── itanium/      Itanium C++ ABI builder
//	        ├── microsoft/    Microsoft C++ ABI builder
//	        ├── keyfunc/      key-function resolution
//	        └── dump/         human-readable layout rendering
//
// # Quick Start
//
//	target := decl.DefaultTarget(reclayout.ABIItanium)
//	cache := layout.New(target)
//	rec := decl.NewStruct("Point").
//		Field(decl.NewField("x", decl.Int32)).
//		Field(decl.NewField("y", decl.Int32)).
//		Build()
//	lay := cache.GetLayout(rec)
//	fmt.Println(lay.Size(), lay.Alignment())
package reclayout
