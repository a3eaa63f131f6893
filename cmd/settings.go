package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/google/subcommands"
)

type themeCmd struct{}

func (*themeCmd) Name() string     { return "theme" }
func (*themeCmd) Synopsis() string { return "choose the light or dark theme" }
func (*themeCmd) Usage() string {
	return `arthik theme light|dark

  Stores the theme of this machine, and of the account when logged in.
`
}

func (c *themeCmd) SetFlags(f *flag.FlagSet) {}

func (c *themeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	ctrl, _, done := open()
	defer done()
	if err := ctrl.Env.Store.Session().Hydrate(); err != nil {
		ctrl.Env.Logger.Warn().Err(err).Msg("cannot restore session")
	}
	return status(ctrl.Settings.SetTheme(ctx, f.Arg(0)))
}

// optionalBool is a boolean flag that knows whether it was set.
type optionalBool struct {
	value, set bool
}

func (b *optionalBool) String() string { return fmt.Sprint(b.value) }

func (b *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.value, b.set = v, true
	return nil
}

func (b *optionalBool) IsBoolFlag() bool { return true }

type prefsCmd struct {
	hide   optionalBool
	dark   optionalBool
	accent string
	reset  bool
}

func (*prefsCmd) Name() string     { return "prefs" }
func (*prefsCmd) Synopsis() string { return "show or change the display preferences" }
func (*prefsCmd) Usage() string {
	return `arthik prefs [-hide-amounts=<bool>] [-dark=<bool>] [-accent <colour>] [-reset]

  Shows the display preferences of this machine, after applying the changes.
`
}

func (c *prefsCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.hide, "hide-amounts", "Hide every amount")
	f.Var(&c.dark, "dark", "Dark mode")
	f.StringVar(&c.accent, "accent", "", "Accent colour")
	f.BoolVar(&c.reset, "reset", false, "Restore the default preferences first")
}

func (c *prefsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctrl, _, done := open()
	defer done()
	s := ctrl.Settings
	if c.reset && !s.ResetPreferences() {
		return subcommands.ExitFailure
	}
	if c.hide.set && !s.SetHideAmounts(c.hide.value) {
		return subcommands.ExitFailure
	}
	if c.dark.set && !s.SetDarkMode(c.dark.value) {
		return subcommands.ExitFailure
	}
	if c.accent != "" && !s.SetAccent(c.accent) {
		return subcommands.ExitFailure
	}
	p := s.Preferences()
	fmt.Fprintf(stdout, "theme:        %s\n", p.Theme)
	fmt.Fprintf(stdout, "dark mode:    %t\n", p.DarkMode)
	fmt.Fprintf(stdout, "hide amounts: %t\n", p.HideAmounts)
	fmt.Fprintf(stdout, "accent:       %s\n", p.Accent)
	return subcommands.ExitSuccess
}
