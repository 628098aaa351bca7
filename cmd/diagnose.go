package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tzuhan/psa/renderer"
)

type diagnoseCmd struct {
	windowFlags
}

func (*diagnoseCmd) Name() string     { return "diagnose" }
func (*diagnoseCmd) Synopsis() string { return "diagnoses strategy stability out of sample" }
func (*diagnoseCmd) Usage() string {
	return `psa diagnose

Compares historical and forward metrics of both strategies, scores their
stability and prints the diagnosed problems with improvement suggestions.

`
}

func (c *diagnoseCmd) SetFlags(f *flag.FlagSet) { c.windowFlags.SetFlags(f) }

func (c *diagnoseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	comparison, err := Compare(c.windowFlags, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.DiagnoseMarkdown(comparison))
	return subcommands.ExitSuccess
}
