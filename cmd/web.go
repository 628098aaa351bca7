package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/subcommands"
	"github.com/tzuhan/psa/web"
)

type webCmd struct {
	windowFlags
	addr    string
	capital float64
}

func (*webCmd) Name() string     { return "web" }
func (*webCmd) Synopsis() string { return "serves the analysis as a local web application" }
func (*webCmd) Usage() string {
	return `psa web [-addr <host:port>]

Runs the full analysis and serves it on a local web server, one page per
section. The server runs until interrupted.

Usage Examples:
# Serve on the default address.
$ psa web
serving the analysis on http://localhost:8501

`
}

func (c *webCmd) SetFlags(f *flag.FlagSet) {
	c.windowFlags.SetFlags(f)
	f.StringVar(&c.addr, "addr", web.DefaultAddr, "Address to listen on")
	f.Float64Var(&c.capital, "capital", 0, "Initial capital in TWD (default 1,000,000)")
}

func (c *webCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	comparison, err := Compare(c.windowFlags, c.capital)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	srv := web.NewServer(c.addr, comparison)

	// Ctrl+C stops the server cleanly.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
