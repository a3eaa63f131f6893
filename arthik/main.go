// Command arthik is the terminal client of an arthik bookkeeping backend.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"path"

	"github.com/etnz/arthik/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// exits when run by the shell to complete the command line.
	completion(commander).Complete(name)

	flag.Parse()
	setupLogs()

	if sub := flag.Arg(0); sub != "" && !registered(commander, sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// setupLogs writes human readable logs on stderr, unless LOG_FORMAT is json.
func setupLogs() {
	output := io.Writer(zerolog.ConsoleWriter{Out: os.Stderr})
	if os.Getenv("LOG_FORMAT") == "json" {
		output = os.Stderr
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *cmd.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()
}

func registered(commander *subcommands.Commander, name string) bool {
	found := false
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if c.Name() == name {
			found = true
		}
	})
	return found
}

// completion describes the global flags and every subcommand with its flags.
func completion(commander *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flags(flag.CommandLine),
	}
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		root.Sub[c.Name()] = &complete.Command{Flags: flags(fs)}
	})
	return root
}

func flags(fs *flag.FlagSet) map[string]complete.Predictor {
	m := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[f.Name] = predict.Nothing
			return
		}
		switch f.Name {
		case "format":
			m[f.Name] = predict.Set{"term", "markdown", "html"}
		case "log":
			m[f.Name] = predict.Files("*")
		default:
			m[f.Name] = predict.Something
		}
	})
	return m
}
