// Package cmd implements the arthik command line client.
//
// Each subcommand opens the client, runs one controller operation and
// prints the resulting view. The tui subcommand runs the interactive
// front-end instead.
package cmd

import (
	"flag"
	"os"
	"strconv"

	"github.com/google/subcommands"
)

const (
	EnvServer   = "ARTHIK_SERVER"
	EnvVerbose  = "ARTHIK_VERBOSE"
	EnvCurrency = "ARTHIK_CURRENCY"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	serverURL = flag.String("server", envOr(EnvServer, "http://localhost:8080"), "URL of the arthik backend. Defaults to $"+EnvServer+".")
	Verbose   = flag.Bool("verbose", envBool(EnvVerbose), "Log debug messages. Defaults to $"+EnvVerbose+".")
	format    = flag.String("format", formatTerm, "Output format of the views: term, markdown or html.")
	assumeYes = flag.Bool("yes", false, "Answer yes to every confirmation.")
	currency  = flag.String("currency", envOr(EnvCurrency, "USD"), "ISO code of the currency amounts are displayed in.")
)

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&loginCmd{}, "session")
	c.Register(&logoutCmd{}, "session")
	c.Register(&passwdCmd{}, "session")

	c.Register(&dashboardCmd{}, "views")
	c.Register(&ledgerCmd{}, "views")
	c.Register(&accountsCmd{}, "views")
	c.Register(&plannerCmd{}, "views")
	c.Register(&tuiCmd{}, "views")

	c.Register(&txAddCmd{}, "transactions")
	c.Register(&txEditCmd{}, "transactions")
	c.Register(&txDeleteCmd{}, "transactions")

	c.Register(&accountAddCmd{}, "accounts")
	c.Register(&accountEditCmd{}, "accounts")
	c.Register(&accountDeleteCmd{}, "accounts")

	c.Register(&recurrenceAddCmd{}, "planner")
	c.Register(&recurrenceEditCmd{}, "planner")
	c.Register(&recurrenceApplyCmd{}, "planner")
	c.Register(&recurrenceDeleteCmd{}, "planner")
	c.Register(&noteAddCmd{}, "planner")
	c.Register(&noteEditCmd{}, "planner")
	c.Register(&noteDeleteCmd{}, "planner")

	c.Register(&themeCmd{}, "settings")
	c.Register(&prefsCmd{}, "settings")
}
