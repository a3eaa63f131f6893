package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/arthik/controller"
	"github.com/etnz/arthik/nav"
	"github.com/etnz/arthik/tui"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

type tuiCmd struct {
	logFile string
	style   string
}

func (*tuiCmd) Name() string     { return "tui" }
func (*tuiCmd) Synopsis() string { return "run the interactive terminal client" }
func (*tuiCmd) Usage() string {
	return `arthik tui [-log <file>] [-style <glamour style>]

  Runs the interactive client. Logs go to a file so they do not garble the screen.
`
}

func (c *tuiCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.logFile, "log", filepath.Join(os.TempDir(), "arthik-tui.log"), "File the logs are appended to")
	f.StringVar(&c.style, "style", "", "Glamour style of the views, defaults to the dark mode preference")
}

func (c *tuiCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	logs, err := os.OpenFile(c.logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening log file %q: %v\n", c.logFile, err)
		return subcommands.ExitFailure
	}
	defer logs.Close()
	level := zerolog.InfoLevel
	if *Verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(logs).Level(level).With().Timestamp().Logger()

	bridge := tui.NewBridge()
	env, done := newEnv(bridge, logger)
	defer done()
	n := nav.New(controller.New(env), nav.MinQuietPeriod)

	if err := tui.Run(ctx, n, bridge, tui.Options{Style: c.style}); err != nil {
		fmt.Fprintf(stderr, "Error running the terminal client: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
