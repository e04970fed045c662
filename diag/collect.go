package diag

import (
	"fmt"
	"sync"

	"go.uber.org/multierr"
)

// CollectingSink accumulates diagnostics in emission order and can join them
// into a single error for callers that want to treat warnings as errors
// (the "-Werror" pattern).
type CollectingSink struct {
	mu    sync.Mutex
	items []Diagnostic
}

// NewCollectingSink returns an empty CollectingSink.
func NewCollectingSink() *CollectingSink {
	return &CollectingSink{}
}

// Emit implements Sink.
func (s *CollectingSink) Emit(d Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, d)
}

// Diagnostics returns every diagnostic collected so far, in emission order.
func (s *CollectingSink) Diagnostics() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Diagnostic, len(s.items))
	copy(out, s.items)
	return out
}

// Err joins every collected diagnostic into one error via multierr, or nil
// if nothing was collected.
func (s *CollectingSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	for _, d := range s.items {
		err = multierr.Append(err, diagnosticError(d))
	}
	return err
}

func diagnosticError(d Diagnostic) error {
	unit := "bytes"
	if d.PadIsBits {
		unit = "bits"
	}
	if d.FieldName != "" {
		return fmt.Errorf("%s: field %q in %q padded by %d %s", d.Kind, d.FieldName, d.RecordName, d.PadSize, unit)
	}
	return fmt.Errorf("%s: %q padded by %d %s", d.Kind, d.RecordName, d.PadSize, unit)
}
