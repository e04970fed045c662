// Package keyfunc resolves a polymorphic class's key function (spec.md
// §4.8): the anchor method a vtable's definition is emitted alongside.
// Independent of layout, but colocated with it since both consume the same
// declaration-graph contracts.
package keyfunc

import "github.com/abilayout/reclayout"

// Resolve returns class's key function, or nil if it has none: class is not
// polymorphic, not externally visible, a template instantiation, or has no
// qualifying method.
func Resolve(class reclayout.Record, tgt reclayout.Target) reclayout.Method {
	if !class.IsDynamicClass() {
		return nil
	}
	if !class.IsExternallyVisible() {
		return nil
	}
	switch class.TemplateKind() {
	case reclayout.TemplateImplicitInstantiation, reclayout.TemplateExplicitInstantiation:
		return nil
	}

	for _, m := range class.Methods() {
		if qualifies(m, tgt) {
			return m
		}
	}
	return nil
}

func qualifies(m reclayout.Method, tgt reclayout.Target) bool {
	if !m.IsVirtual() || m.IsPure() || m.IsImplicit() {
		return false
	}
	if m.IsInlineSpecified() || m.HasInlineBody() {
		return false
	}
	if !m.IsUserProvided() {
		return false
	}
	if tgt.ForbidsOutOfLineInlineKeyFunction() && m.HasAnyInlineDefinition() {
		return false
	}
	return true
}
