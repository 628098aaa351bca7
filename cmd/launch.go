package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"

	"github.com/google/subcommands"
	"github.com/tzuhan/psa/launcher"
	"github.com/tzuhan/psa/web"
)

type launchCmd struct{}

func (*launchCmd) Name() string     { return "launch" }
func (*launchCmd) Synopsis() string { return "starts the web application and opens the browser" }
func (*launchCmd) Usage() string {
	return `psa launch

One-command startup: checks the strategy files, starts 'psa web' in a
child process, opens the browser on it, and waits for a keypress before
closing so the window never vanishes with an unread error.

`
}

func (*launchCmd) SetFlags(_ *flag.FlagSet) {}

func (c *launchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l := launcher.New(runWeb)
	l.Files = []string{*highFile, *lowFile}
	l.Run()
	return subcommands.ExitSuccess
}

// runWeb starts the web subcommand in a child process and blocks until it
// stops, like the launcher expects.
func runWeb() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("cannot locate the psa binary: %w", err)
	}
	cmd := exec.Command(exe,
		"-data", *dataDir,
		"-high", *highFile,
		"-low", *lowFile,
		"-benchmark", *benchmark,
		"web", "-addr", web.DefaultAddr)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
