// Package diag carries the non-fatal diagnostics the layout engine emits
// while building a RecordLayout: padding warnings and the
// unnecessary-packed warning (spec.md §6). Unlike reclayout/errors, these
// never change the computed layout — they are purely advisory.
package diag

import "github.com/abilayout/reclayout"

// Kind names one of the four diagnostics spec.md §6 enumerates.
type Kind int

const (
	// KindPaddedField fires when a non-anonymous field needed padding
	// before it to satisfy alignment.
	KindPaddedField Kind = iota
	// KindPaddedAnonField is the same condition for an anonymous field.
	KindPaddedAnonField
	// KindPaddedSize fires when tail padding was added to reach the
	// record's overall alignment.
	KindPaddedSize
	// KindUnnecessaryPacked fires when `packed` was requested but made no
	// difference to the computed layout.
	KindUnnecessaryPacked
)

func (k Kind) String() string {
	switch k {
	case KindPaddedField:
		return "padded_struct_field"
	case KindPaddedAnonField:
		return "padded_struct_anon_field"
	case KindPaddedSize:
		return "padded_struct_size"
	case KindUnnecessaryPacked:
		return "unnecessary_packed"
	default:
		return "unknown"
	}
}

// Diagnostic is one emitted warning.
type Diagnostic struct {
	Kind        Kind
	RecordKind  reclayout.RecordKind
	RecordName  string
	FieldName   string // empty for KindPaddedSize
	PadSize     int64
	PadIsBits   bool // true if PadSize is in bits rather than chars
	PadIsPlural bool
}

// Sink receives diagnostics as they are produced. Implementations must be
// safe to call from within a single layout invocation (the engine itself
// never calls concurrently, per spec.md §5, but a Sink shared across
// multiple Cache instances used from different goroutines must synchronize
// itself).
type Sink interface {
	Emit(Diagnostic)
}

// nopSink discards everything; the default when no Sink is configured.
type nopSink struct{}

func (nopSink) Emit(Diagnostic) {}

// Nop is the shared do-nothing Sink.
var Nop Sink = nopSink{}
