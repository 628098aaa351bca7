package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/tzuhan/psa/advisor"
	"github.com/tzuhan/psa/renderer"
	"google.golang.org/genai"
)

type assistCmd struct {
	windowFlags
}

func (*assistCmd) Name() string { return "assist" }

func (*assistCmd) Synopsis() string { return "Start an interactive session with the AI advisor." }

func (*assistCmd) Usage() string {
	return `assist [question]

  Start an interactive session with the AI advisor. The advisor is briefed
  with the full analysis report, so it answers questions about the two
  strategies with the actual backtest figures. Requires a Gemini API key in
  the GEMINI_API_KEY environment variable.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) { c.windowFlags.SetFlags(f) }

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}

	comparison, err := Compare(c.windowFlags, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	a := advisor.New(os.Stdout, os.Stdin, renderer.ReportMarkdown(comparison))
	if err := a.Run(ctx, client, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Advisor failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
