package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/abilayout/reclayout"
	"github.com/abilayout/reclayout/diag"
	"github.com/abilayout/reclayout/layout"
	"github.com/abilayout/reclayout/scenarios"
)

func main() {
	var (
		name        = flag.String("scenario", "", "Scenario to dump (see -list)")
		abiFlag     = flag.String("abi", "", "Override ABI: itanium or microsoft")
		simple      = flag.Bool("simple", false, "Print the single-line ASTRecordLayout form")
		listOnly    = flag.Bool("list", false, "List available scenarios and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	all := scenarios.All()

	if *listOnly {
		for _, s := range all {
			fmt.Println(s.Name)
		}
		return
	}

	if *interactive || (*name == "" && term.IsTerminal(int(os.Stdout.Fd()))) {
		if err := runInteractive(all); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *name == "" {
		fmt.Fprintln(os.Stderr, "Usage: reclayoutc -scenario <name> [-abi itanium|microsoft] [-simple]")
		fmt.Fprintln(os.Stderr, "       reclayoutc -list")
		fmt.Fprintln(os.Stderr, "       reclayoutc -i")
		os.Exit(1)
	}

	if err := run(all, *name, *abiFlag, *simple); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(all []scenarios.Scenario, name, abiFlag string, simple bool) error {
	sc, ok := find(all, name)
	if !ok {
		return fmt.Errorf("unknown scenario %q (use -list to see available scenarios)", name)
	}

	tgt := sc.Target
	if abiFlag != "" {
		tgt = withABI(tgt, abiFlag)
	}

	sink := diag.NewCollectingSink()
	cache := layout.New(tgt, layout.WithSink(sink))
	cache.DumpRecordLayout(os.Stdout, sc.Record, simple)

	for _, d := range sink.Diagnostics() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", d.Kind)
	}
	return nil
}

func find(all []scenarios.Scenario, name string) (scenarios.Scenario, bool) {
	for _, s := range all {
		if s.Name == name {
			return s, true
		}
	}
	return scenarios.Scenario{}, false
}

func withABI(tgt reclayout.Target, abiFlag string) reclayout.Target {
	switch strings.ToLower(abiFlag) {
	case "microsoft", "ms":
		return &abiOverride{tgt, reclayout.ABIMicrosoft}
	case "itanium":
		return &abiOverride{tgt, reclayout.ABIItanium}
	default:
		return tgt
	}
}

// abiOverride wraps a Target, replacing only its reported ABI — used by the
// -abi flag to lay the same declaration out under the other algorithm
// without rebuilding the whole target.
type abiOverride struct {
	reclayout.Target
	abi reclayout.ABIKind
}

func (o *abiOverride) ABI() reclayout.ABIKind { return o.abi }
