package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/tzuhan/psa/cmd"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion wires shell completion. When invoked by the shell's completion
// machinery it prints the candidates and exits, otherwise it is a no-op.
func completion() {
	windows := func(extra map[string]complete.Predictor) *complete.Command {
		flags := map[string]complete.Predictor{
			"from":  predict.Nothing,
			"to":    predict.Nothing,
			"ffrom": predict.Nothing,
			"fto":   predict.Nothing,
		}
		for k, v := range extra {
			flags[k] = v
		}
		return &complete.Command{Flags: flags}
	}

	psa := &complete.Command{
		Flags: map[string]complete.Predictor{
			"data":      predict.Dirs("*"),
			"high":      predict.Files("*.jsonl"),
			"low":       predict.Files("*.jsonl"),
			"benchmark": predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"fetch":    windows(nil),
			"backtest": windows(map[string]complete.Predictor{"capital": predict.Nothing}),
			"diagnose": windows(nil),
			"report": windows(map[string]complete.Predictor{
				"o":       predict.Dirs("*"),
				"capital": predict.Nothing,
			}),
			"web": windows(map[string]complete.Predictor{
				"addr":    predict.Nothing,
				"capital": predict.Nothing,
			}),
			"launch": {},
			"topic": {
				Args: predict.Set{"readme", "strategies", "backtest", "metrics", "diagnosis", "quotes", "*"},
			},
			"assist": windows(nil),
		},
	}
	psa.Complete("psa")
}
