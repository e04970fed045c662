// Package dump renders a completed RecordLayout as human-readable text
// (spec.md §4.9).
package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/abilayout/reclayout"
	"github.com/abilayout/reclayout/charunits"
)

// Write renders lay as an indented "offset | description" tree, or (when
// simple is true) as a single-line summary.
func Write(w io.Writer, rec reclayout.Record, lay *reclayout.RecordLayout, tgt reclayout.Target, lp reclayout.LayoutProvider, simple bool) {
	if simple {
		writeSimple(w, rec, lay, tgt.CharWidth())
		return
	}

	fmt.Fprintf(w, "*** Dumping AST Record Layout\n")
	fmt.Fprintf(w, "         %s\n", rec.Name())

	writeBody(w, rec, lay, tgt, lp, 0, charunits.Zero)

	fmt.Fprintf(w, "  [sizeof=%d, dsize=%d, align=%d]\n",
		lay.Size().Int64(), lay.DataSize().Int64(), lay.Alignment().Int64())
	fmt.Fprintf(w, "  nvsize=%d, nvalign=%d\n",
		lay.NonVirtualSize().Int64(), lay.NonVirtualAlignment().Int64())
}

func writeSimple(w io.Writer, rec reclayout.Record, lay *reclayout.RecordLayout, cw int64) {
	offs := lay.FieldOffsets()
	parts := make([]string, len(offs))
	for i, o := range offs {
		parts[i] = fmt.Sprintf("%d", o.Int64())
	}
	fmt.Fprintf(w, "<ASTRecordLayout Size:%d Alignment:%d FieldOffsets: [%s]>\n",
		lay.Size().ToBits(cw), lay.Alignment().Int64(), strings.Join(parts, ", "))
}

// writeBody prints, in spec.md §4.9 order: non-virtual bases, vfptr/vbptr
// lines, fields (recursing into record-typed fields), then virtual bases
// (each preceded by its vtordisp line if it has one). base is the offset of
// rec's own subobject within the outermost record being dumped.
func writeBody(w io.Writer, rec reclayout.Record, lay *reclayout.RecordLayout, tgt reclayout.Target, lp reclayout.LayoutProvider, depth int, base charunits.CharUnits) {
	ind := strings.Repeat(" ", depth*2)

	for _, b := range rec.Bases() {
		if b.IsVirtual() {
			continue
		}
		off, _ := lay.BaseOffset(b.Record())
		abs := base.Add(off)
		tag := "(base)"
		if lay.PrimaryBase() != nil && lay.PrimaryBase().Identity() == b.Record().Identity() && !lay.PrimaryBaseIsVirtual() {
			tag = "(primary base)"
		}
		fmt.Fprintf(w, "  %s%-4d | %s %s\n", ind, abs.Int64(), b.Record().Name(), tag)
		baseLay := lp.GetLayout(b.Record())
		writeBody(w, b.Record(), baseLay, tgt, lp, depth+1, abs)
	}

	if lay.HasOwnVFPtr() {
		fmt.Fprintf(w, "  %s%-4d | (vtable pointer)\n", ind, base.Int64())
	}
	if vb := lay.VBPtrOffset(); vb != reclayout.NoVBPtr {
		fmt.Fprintf(w, "  %s%-4d | (vbtable pointer)\n", ind, base.Add(vb).Int64())
	}

	cw := tgt.CharWidth()
	for i, f := range rec.Fields() {
		bitOff := lay.FieldOffset(i)
		var abs charunits.CharUnits
		if !f.IsBitField() {
			abs = base.Add(bitOff.AlignedCharUnits(cw))
			fmt.Fprintf(w, "  %s%-4d | %s %s\n", ind, abs.Int64(), fieldTypeName(f), f.Name())
			if f.Type().Kind() == reclayout.TypeRecord {
				sub := f.Type().Record()
				writeBody(w, sub, lp.GetLayout(sub), tgt, lp, depth+1, abs)
			}
		} else {
			abs = base.Add(charunits.CharUnits(bitOff.Int64() / cw))
			fmt.Fprintf(w, "  %s%-4d | %s %s : %d\n", ind, abs.Int64(), fieldTypeName(f), f.Name(), f.BitWidth())
		}
	}

	for _, b := range rec.Bases() {
		if !b.IsVirtual() {
			continue
		}
		info, _ := lay.VBaseOffset(b.Record())
		abs := base.Add(info.Offset)
		if info.HasVtorDisp {
			fmt.Fprintf(w, "  %s%-4d | (vtordisp for vbase %s)\n", ind, abs.Sub(charunits.CharUnits(4)).Int64(), b.Record().Name())
		}
		tag := "(virtual base)"
		if lay.PrimaryBase() != nil && lay.PrimaryBase().Identity() == b.Record().Identity() && lay.PrimaryBaseIsVirtual() {
			tag = "(primary virtual base)"
		}
		fmt.Fprintf(w, "  %s%-4d | %s %s\n", ind, abs.Int64(), b.Record().Name(), tag)
		baseLay := lp.GetLayout(b.Record())
		writeBody(w, b.Record(), baseLay, tgt, lp, depth+1, abs)
	}
}

func fieldTypeName(f reclayout.Field) string {
	switch f.Type().Kind() {
	case reclayout.TypeRecord:
		return f.Type().Record().Name()
	case reclayout.TypeArray, reclayout.TypeIncompleteArray:
		return "array"
	case reclayout.TypePointer:
		return "pointer"
	case reclayout.TypeReference:
		return "reference"
	case reclayout.TypeFunc:
		return "function"
	default:
		return "scalar"
	}
}
