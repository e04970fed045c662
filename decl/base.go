package decl

import "github.com/abilayout/reclayout"

// Base is a concrete reclayout.Base.
type Base struct {
	rec       reclayout.Record
	isVirtual bool
}

func (b *Base) Record() reclayout.Record { return b.rec }
func (b *Base) IsVirtual() bool          { return b.isVirtual }

// NewBase constructs a direct base class specifier.
func NewBase(rec reclayout.Record, isVirtual bool) *Base {
	return &Base{rec: rec, isVirtual: isVirtual}
}
