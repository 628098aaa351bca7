package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/tzuhan/psa"
	"github.com/tzuhan/psa/renderer"
)

type reportCmd struct {
	windowFlags
	outputDir string
	capital   float64
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "generates the full analysis report as markdown files" }
func (*reportCmd) Usage() string {
	return `psa report [-o <dir>]

Generates the complete analysis report plus one file per section
(performance, risk, compare, diagnose) and saves them to a directory.
The files are plain markdown, ready for git or a static site.

`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.windowFlags.SetFlags(f)
	f.StringVar(&c.outputDir, "o", "reports", "Root directory for the generated reports")
	f.Float64Var(&c.capital, "capital", 0, "Initial capital in TWD (default 1,000,000)")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	comparison, err := Compare(c.windowFlags, c.capital)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := os.MkdirAll(c.outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create output directory: %v\n", err)
		return subcommands.ExitFailure
	}

	sections := []struct {
		file   string
		render func(*psa.Comparison) string
	}{
		{"report.md", renderer.ReportMarkdown},
		{"performance.md", renderer.PerformanceMarkdown},
		{"risk.md", renderer.RiskMarkdown},
		{"compare.md", renderer.CompareMarkdown},
		{"diagnose.md", renderer.DiagnoseMarkdown},
	}
	for _, s := range sections {
		fullPath := filepath.Join(c.outputDir, s.file)
		if err := os.WriteFile(fullPath, []byte(s.render(comparison)), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write file %s: %v\n", s.file, err)
			return subcommands.ExitFailure
		}
		log.Printf("Generated %s", fullPath)
	}

	return subcommands.ExitSuccess
}
