package cmd

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/api/apitest"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// client runs the commands against a fake backend, in its own temp dirs.
type client struct {
	t       *testing.T
	backend *apitest.Backend
	out     bytes.Buffer
	errOut  bytes.Buffer
}

func newClient(t *testing.T) *client {
	c := &client{t: t, backend: apitest.New(t)}
	c.backend.Accounts = []arthik.Account{
		{Name: "Bank Account", Category: arthik.Assets, IncludeInNetWorth: true, CurrentBalance: arthik.M(1500)},
		{Name: "Food", Category: arthik.Expenses},
	}
	c.backend.TransactionsN(250)

	t.Setenv("TMPDIR", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	oldServer, oldFormat, oldYes := *serverURL, *format, *assumeYes
	oldIn, oldOut, oldErr := stdin, stdout, stderr
	t.Cleanup(func() {
		*serverURL, *format, *assumeYes = oldServer, oldFormat, oldYes
		stdin, stdout, stderr = oldIn, oldOut, oldErr
	})
	*serverURL, *format, *assumeYes = c.backend.URL(), formatMarkdown, true
	stdin, stdout, stderr = strings.NewReader(""), &c.out, &c.errOut
	return c
}

// run executes one command line and returns its exit status.
func (c *client) run(args ...string) subcommands.ExitStatus {
	c.t.Helper()
	c.out.Reset()
	c.errOut.Reset()
	top := flag.NewFlagSet("arthik", flag.ContinueOnError)
	commander := subcommands.NewCommander(top, "arthik")
	Register(commander)
	require.NoError(c.t, top.Parse(args))
	return commander.Execute(context.Background())
}

func TestCommandsNeedASession(t *testing.T) {
	c := newClient(t)
	assert.Equal(t, subcommands.ExitFailure, c.run("accounts"))
	assert.Contains(t, c.errOut.String(), "arthik login")
	assert.Zero(t, c.backend.Calls("GET", "/api/accounts"))
}

func TestLoginFailure(t *testing.T) {
	c := newClient(t)
	assert.Equal(t, subcommands.ExitFailure, c.run("login", "-p", "wrong"))
	assert.Contains(t, c.errOut.String(), "Error:")
	assert.Equal(t, subcommands.ExitFailure, c.run("ledger"))
}

func TestSessionIsKeptBetweenCommands(t *testing.T) {
	c := newClient(t)
	require.Equal(t, subcommands.ExitSuccess, c.run("login", "-p", "secret"), c.errOut.String())
	assert.Contains(t, c.out.String(), "Logged in.")

	require.Equal(t, subcommands.ExitSuccess, c.run("accounts"), c.errOut.String())
	assert.Contains(t, c.out.String(), "Bank Account")

	require.Equal(t, subcommands.ExitSuccess, c.run("ledger"), c.errOut.String())
	assert.Contains(t, c.out.String(), "Page 1 of 3")
	assert.Contains(t, c.out.String(), "purchase 1")

	require.Equal(t, subcommands.ExitSuccess, c.run("ledger", "-page", "3"), c.errOut.String())
	assert.Contains(t, c.out.String(), "Page 3 of 3")

	assert.Equal(t, subcommands.ExitUsageError, c.run("ledger", "-page", "4"))
	assert.Contains(t, c.errOut.String(), "page 4 is out of range 1-3")

	require.Equal(t, subcommands.ExitSuccess, c.run("logout"), c.errOut.String())
	assert.Equal(t, subcommands.ExitFailure, c.run("accounts"))
	assert.Contains(t, c.errOut.String(), "arthik login")
}

func TestWrites(t *testing.T) {
	c := newClient(t)
	c.backend.Transactions = nil
	require.Equal(t, subcommands.ExitSuccess, c.run("login", "-p", "secret"), c.errOut.String())

	require.Equal(t, subcommands.ExitSuccess,
		c.run("tx-add", "-from", "Bank Account", "-to", "Food", "-a", "12.50", "-m", "lunch", "-d", "2024-03-02", "-t", "12:30"),
		c.errOut.String())
	assert.Equal(t, "lunch", c.backend.Transactions[0].Description)
	assert.Equal(t, "12.50", c.backend.Transactions[0].Amount.String())

	id := c.backend.Transactions[0].ID
	require.Equal(t, subcommands.ExitSuccess, c.run("tx-edit", "-m", "dinner", id), c.errOut.String())
	assert.Equal(t, "dinner", c.backend.Transactions[0].Description)
	assert.Equal(t, "Food", c.backend.Transactions[0].To, "unset flags keep their value")

	assert.Equal(t, subcommands.ExitUsageError, c.run("tx-add", "-a", "lots"))

	require.Equal(t, subcommands.ExitSuccess, c.run("account-edit", "-name", "Groceries", "Food"), c.errOut.String())
	_, found := arthik.FindAccount(c.backend.Accounts, "Groceries")
	assert.True(t, found)
	_, found = arthik.FindAccount(c.backend.Accounts, "Food")
	assert.False(t, found)

	assert.Equal(t, subcommands.ExitFailure, c.run("account-edit", "-name", "Other", "Nope"))
	assert.Contains(t, c.errOut.String(), `no account "Nope"`)

	require.Equal(t, subcommands.ExitSuccess, c.run("account-delete", "Groceries"), c.errOut.String())
	assert.Len(t, c.backend.Accounts, 1)
}

func TestDeleteIsConfirmed(t *testing.T) {
	c := newClient(t)
	require.Equal(t, subcommands.ExitSuccess, c.run("login", "-p", "secret"), c.errOut.String())

	*assumeYes = false
	stdin = strings.NewReader("n\n")
	assert.Equal(t, subcommands.ExitFailure, c.run("tx-delete", "tx-1"))
	assert.Contains(t, c.errOut.String(), "[y/N]")
	assert.Len(t, c.backend.Transactions, 250)

	stdin = strings.NewReader("y\n")
	assert.Equal(t, subcommands.ExitSuccess, c.run("tx-delete", "tx-1"), c.errOut.String())
	assert.Len(t, c.backend.Transactions, 249)
}

func TestPrefs(t *testing.T) {
	c := newClient(t)
	require.Equal(t, subcommands.ExitSuccess, c.run("prefs", "-hide-amounts", "-accent", "green"), c.errOut.String())
	assert.Contains(t, c.out.String(), "hide amounts: true")
	assert.Contains(t, c.out.String(), "accent:       green")

	// kept for the next command
	require.Equal(t, subcommands.ExitSuccess, c.run("prefs"), c.errOut.String())
	assert.Contains(t, c.out.String(), "hide amounts: true")

	require.Equal(t, subcommands.ExitSuccess, c.run("prefs", "-reset"), c.errOut.String())
	assert.Contains(t, c.out.String(), "hide amounts: false")
}

func TestPlanner(t *testing.T) {
	c := newClient(t)
	require.Equal(t, subcommands.ExitSuccess, c.run("login", "-p", "secret"), c.errOut.String())

	require.Equal(t, subcommands.ExitSuccess,
		c.run("recurrence-add", "-day", "5", "-from", "Bank Account", "-to", "Food", "-a", "800", "-m", "rent"),
		c.errOut.String())
	assert.Contains(t, c.out.String(), "rent")
	require.Len(t, c.backend.Recurrences, 1)
	assert.Equal(t, 5, c.backend.Recurrences[0].NextDate.Day())

	id := c.backend.Recurrences[0].ID
	require.Equal(t, subcommands.ExitSuccess, c.run("recurrence-edit", "-m", "flat rent", id), c.errOut.String())
	assert.Equal(t, "flat rent", c.backend.Recurrences[0].Description)
	assert.Equal(t, 5, c.backend.Recurrences[0].DayOfMonth)

	require.Equal(t, subcommands.ExitSuccess, c.run("recurrence-apply", id), c.errOut.String())
	assert.Len(t, c.backend.Transactions, 251)

	require.Equal(t, subcommands.ExitSuccess, c.run("note-add", "-h", "Ideas", "-m", "save more"), c.errOut.String())
	assert.Contains(t, c.out.String(), "Ideas")
	require.Len(t, c.backend.Notes, 1)

	note := c.backend.Notes[0]
	require.Equal(t, subcommands.ExitSuccess, c.run("note-edit", "-m", "save even more", note.ID), c.errOut.String())
	require.Len(t, c.backend.Notes, 1)
	assert.Equal(t, "save even more", c.backend.Notes[0].Content)
	assert.Equal(t, "Ideas", c.backend.Notes[0].Heading)

	require.Equal(t, subcommands.ExitSuccess, c.run("note-delete", note.ID), c.errOut.String())
	assert.Empty(t, c.backend.Notes)
}
