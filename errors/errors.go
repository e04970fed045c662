// Package errors provides structured error types for defects the layout
// engine cannot proceed past: asking for the layout of an incomplete or
// dependent type, iterating past the end of a base-info graph, and similar
// front-end bugs. These are categorized by Phase (where) and Kind (what).
//
// Unlike a normal error return, most callers encounter these via panic:
// the layout algorithms assume a fully elaborated, non-dependent input and
// treat a violation as a programming error in the caller, not a
// recoverable condition (spec.md §7).
package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which part of the engine raised the error.
type Phase string

const (
	PhaseCache     Phase = "cache"     // layout cache lookups
	PhaseItanium   Phase = "itanium"   // Itanium builder
	PhaseMicrosoft Phase = "microsoft" // Microsoft builder
	PhaseSubobject Phase = "subobject" // empty-subobject map / base graph
	PhaseField     Phase = "field"     // field/bitfield layout
	PhaseKeyFunc   Phase = "keyfunc"   // key-function resolution
	PhaseDump      Phase = "dump"      // layout dumper
)

// Kind categorizes the error.
type Kind string

const (
	KindIncompleteType  Kind = "incomplete_type"
	KindDependentType   Kind = "dependent_type"
	KindInvalidDecl     Kind = "invalid_decl"
	KindReentrantLayout Kind = "reentrant_layout"
	KindGraphOverrun    Kind = "graph_overrun"
	KindInternal        Kind = "internal"
)

// Error is the structured error type used throughout this module for
// defect-level failures.
type Error struct {
	Phase  Phase
	Kind   Kind
	Record string // the record's name, if known
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))
	if e.Record != "" {
		b.WriteString(" in ")
		b.WriteString(e.Record)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}
	return b.String()
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target matches this error's Phase and Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Builder provides structured error construction.
type Builder struct {
	err Error
}

// New starts building an Error for the given phase and kind.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{err: Error{Phase: phase, Kind: kind}}
}

func (b *Builder) Record(name string) *Builder { b.err.Record = name; return b }
func (b *Builder) Cause(err error) *Builder    { b.err.Cause = err; return b }

func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error.
func (b *Builder) Build() *Error { return &b.err }

// Panic is a convenience for the common "raise and crash" pattern: the
// layout algorithms are written assuming these never actually fire outside
// of a malformed declaration graph, so there is no recovery path built in.
func Panic(phase Phase, kind Kind, detail string, args ...any) {
	panic(New(phase, kind).Detail(detail, args...).Build())
}

// IncompleteType panics reporting that rec's layout was requested before it
// had a complete definition.
func IncompleteType(phase Phase, recordName string) {
	panic(New(phase, KindIncompleteType).Record(recordName).
		Detail("layout requested for an incomplete type").Build())
}

// DependentType panics reporting that a dependent base or field type was
// encountered during layout.
func DependentType(phase Phase, recordName string) {
	panic(New(phase, KindDependentType).Record(recordName).
		Detail("cannot lay out a class with dependent bases or fields").Build())
}

// ReentrantLayout panics reporting that a record's layout was requested
// recursively while it was already being built.
func ReentrantLayout(recordName string) {
	panic(New(PhaseCache, KindReentrantLayout).Record(recordName).
		Detail("layout requested recursively for a record already under construction").Build())
}

// GraphOverrun panics reporting that a base-subobject graph traversal ran
// past the end of its node list.
func GraphOverrun(recordName string) {
	panic(New(PhaseSubobject, KindGraphOverrun).Record(recordName).
		Detail("base-subobject graph traversal overran its allocated nodes").Build())
}
