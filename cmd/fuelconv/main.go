// Command fuelconv converts a fuel-economy figure to every supported unit.
//
//	fuelconv [-unit impmpg] [-json] [-list] <value>
//
// Negative values must follow "--" so they are not read as flags.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mandalnilabja/mpgconverter/internal/conversion"
	"github.com/mandalnilabja/mpgconverter/internal/version"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// output is the -json shape, matching the HTTP API response.
type output struct {
	Input   string            `json:"input"`
	Unit    conversion.Unit   `json:"unit"`
	Valid   bool              `json:"valid"`
	Error   string            `json:"error,omitempty"`
	Results conversion.Result `json:"results"`
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fuelconv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	unitFlag := fs.String("unit", string(conversion.ImperialMPG), "source unit slug (see -list)")
	asJSON := fs.Bool("json", false, "print results as JSON")
	list := fs.Bool("list", false, "list supported units and exit")
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: fuelconv [-unit impmpg] [-json] [-list] <value>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	switch {
	case *showVersion:
		fmt.Fprintln(stdout, "fuelconv", version.Version)
		return exitOK
	case *list:
		return printCatalog(stdout)
	}

	unit, err := conversion.ParseUnit(*unitFlag)
	if err != nil {
		fmt.Fprintln(stderr, "fuelconv:", err)
		return exitUsage
	}

	if fs.NArg() > 1 {
		fmt.Fprintln(stderr, "fuelconv: expected a single value")
		fs.Usage()
		return exitUsage
	}
	input := fs.Arg(0) // "" when absent, which converts to zeros

	result, convErr := conversion.Evaluate(input, unit)

	if *asJSON {
		out := output{Input: input, Unit: unit, Valid: convErr == nil, Results: result}
		if convErr != nil {
			out.Error = convErr.Error()
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintln(stderr, "fuelconv:", err)
			return exitError
		}
		return exitOK
	}

	if convErr != nil {
		fmt.Fprintln(stderr, "fuelconv:", convErr)
	}
	return printResult(stdout, result)
}

func printResult(w io.Writer, r conversion.Result) int {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, info := range conversion.Catalog() {
		fmt.Fprintf(tw, "%s\t%s\t\n", info.Label, r.Get(info.Unit))
	}
	if err := tw.Flush(); err != nil {
		return exitError
	}
	return exitOK
}

func printCatalog(w io.Writer) int {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tLABEL\tSOURCE\tDESCRIPTION")
	for _, info := range conversion.Catalog() {
		source := "no"
		if info.Input {
			source = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.Unit, info.Label, source, info.Tooltip)
	}
	if err := tw.Flush(); err != nil {
		return exitError
	}
	return exitOK
}
