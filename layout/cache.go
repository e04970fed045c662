// Package layout provides the layout cache: the public entry point that
// dispatches to the Itanium or Microsoft builder, memoizes results per
// record, and exposes the auxiliary queries spec.md §6 names.
package layout

import (
	"io"

	"github.com/abilayout/reclayout"
	"github.com/abilayout/reclayout/charunits"
	"github.com/abilayout/reclayout/diag"
	"github.com/abilayout/reclayout/errors"
	"github.com/abilayout/reclayout/layout/internal/dump"
	"github.com/abilayout/reclayout/layout/internal/itanium"
	"github.com/abilayout/reclayout/layout/internal/keyfunc"
	"github.com/abilayout/reclayout/layout/internal/microsoft"
)

// Option configures a Cache at construction time.
type Option func(*Cache)

// WithExternalSource registers a callback consulted for precomputed layouts
// (spec.md §4.4(a), §6).
func WithExternalSource(src reclayout.ExternalLayoutSource) Option {
	return func(c *Cache) { c.ext = src }
}

// WithSink registers the diagnostic sink layout warnings are emitted to.
// The default is diag.Nop.
func WithSink(sink diag.Sink) Option {
	return func(c *Cache) { c.sink = sink }
}

// Cache memoizes RecordLayout results per record and dispatches each build
// to the Itanium or Microsoft builder according to tgt.ABI(). It is owned
// by one translation unit and is not safe for concurrent use (spec.md §5).
type Cache struct {
	tgt  reclayout.Target
	sink diag.Sink
	ext  reclayout.ExternalLayoutSource

	layouts  map[any]*reclayout.RecordLayout
	building map[any]bool
}

// New constructs a Cache for the given target.
func New(tgt reclayout.Target, opts ...Option) *Cache {
	c := &Cache{
		tgt:      tgt,
		sink:     diag.Nop,
		layouts:  make(map[any]*reclayout.RecordLayout),
		building: make(map[any]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetLayout returns rec's cached layout, building it first if necessary.
// Panics via reclayout/errors with KindReentrantLayout if rec's layout is
// requested while already under construction.
func (c *Cache) GetLayout(rec reclayout.Record) *reclayout.RecordLayout {
	id := rec.Identity()
	if lay, ok := c.layouts[id]; ok {
		return lay
	}
	if c.building[id] {
		errors.ReentrantLayout(rec.Name())
	}

	c.building[id] = true
	defer delete(c.building, id)

	var lay *reclayout.RecordLayout
	if rec.IsCXXRecord() && c.tgt.ABI() == reclayout.ABIMicrosoft {
		lay = microsoft.Build(rec, c.tgt, c, c.sink)
	} else {
		lay = itanium.Build(rec, c.tgt, c, c.sink, c.ext)
	}

	c.layouts[id] = lay
	return lay
}

// GetObjcLayout returns the layout of an Objective-C interface, optionally
// accounting for an implementation's extra ivars by laying impl out instead
// and returning that (spec.md §6's "optional implementation" parameter).
func (c *Cache) GetObjcLayout(iface reclayout.Record, impl reclayout.Record) *reclayout.RecordLayout {
	if impl != nil {
		return c.GetLayout(impl)
	}
	return c.GetLayout(iface)
}

// GetFieldOffset returns field's bit offset within rec, the field's
// declaring record.
func (c *Cache) GetFieldOffset(rec reclayout.Record, field reclayout.Field) charunits.BitCount {
	lay := c.GetLayout(rec)
	for i, f := range rec.Fields() {
		if f == field {
			return lay.FieldOffset(i)
		}
	}
	errors.Panic(errors.PhaseCache, errors.KindInvalidDecl, "field %q is not a member of %q", field.Name(), rec.Name())
	panic("unreachable")
}

// GetIndirectFieldOffset sums the offsets along an anonymous-aggregate
// field chain: chain[0] is a direct member of rec, chain[1] a direct member
// of chain[0]'s record type, and so on.
func (c *Cache) GetIndirectFieldOffset(rec reclayout.Record, chain []reclayout.Field) charunits.BitCount {
	var total charunits.BitCount
	cur := rec
	for _, f := range chain {
		total = total.Add(c.GetFieldOffset(cur, f))
		if t := f.Type(); t.Kind() == reclayout.TypeRecord {
			cur = t.Record()
		}
	}
	return total
}

// GetKeyFunction resolves class's key function (spec.md §4.8).
func (c *Cache) GetKeyFunction(class reclayout.Record) reclayout.Method {
	return keyfunc.Resolve(class, c.tgt)
}

// DumpRecordLayout renders rec's layout (computing it first if it is not yet
// cached) to w, in either
// the indented tree form or the single-line "simple" form (spec.md §4.9).
func (c *Cache) DumpRecordLayout(w io.Writer, rec reclayout.Record, simple bool) {
	lay := c.GetLayout(rec)
	dump.Write(w, rec, lay, c.tgt, c, simple)
}
