package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type loginCmd struct {
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "open a session on the backend" }
func (*loginCmd) Usage() string {
	return `arthik login [-p <password>]

  Opens a session and keeps it for the next commands. The password is read
  from stdin when -p is missing.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.password, "p", "", "Password of the account")
}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctrl, ui, done := open()
	defer done()

	password := c.password
	if password == "" {
		password = ui.ask("Password: ")
	}
	if !ctrl.Session.Login(ctx, password) {
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, "✅ Logged in.")
	return subcommands.ExitSuccess
}

type logoutCmd struct{}

func (*logoutCmd) Name() string     { return "logout" }
func (*logoutCmd) Synopsis() string { return "close the session" }
func (*logoutCmd) Usage() string {
	return `arthik logout

  Forgets the session of this machine. Display preferences are kept.
`
}

func (c *logoutCmd) SetFlags(f *flag.FlagSet) {}

func (c *logoutCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctrl, _, done := open()
	defer done()
	if err := ctrl.Env.Store.Session().Hydrate(); err != nil {
		fmt.Fprintf(stderr, "Error restoring session: %v\n", err)
	}
	return status(ctrl.Session.Logout())
}

type passwdCmd struct {
	old, new, confirm string
}

func (*passwdCmd) Name() string     { return "passwd" }
func (*passwdCmd) Synopsis() string { return "change the password" }
func (*passwdCmd) Usage() string {
	return `arthik passwd [-old <password>] [-new <password>] [-confirm <password>]

  Changes the password. Missing passwords are read from stdin.
`
}

func (c *passwdCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.old, "old", "", "Current password")
	f.StringVar(&c.new, "new", "", "New password")
	f.StringVar(&c.confirm, "confirm", "", "New password, again")
}

func (c *passwdCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctrl, ui, done := open()
	defer done()
	if !authenticated(ctrl) {
		return subcommands.ExitFailure
	}
	if c.old == "" {
		c.old = ui.ask("Current password: ")
	}
	if c.new == "" {
		c.new = ui.ask("New password: ")
	}
	if c.confirm == "" {
		c.confirm = ui.ask("Confirm new password: ")
	}
	return status(ctrl.Settings.ChangePassword(ctx, c.old, c.new, c.confirm))
}
