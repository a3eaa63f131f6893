package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/arthik"
	"github.com/google/subcommands"
)

// accountFlags are the category specific fields of an account form.
type accountFlags struct {
	netWorth    bool
	budget      string
	dueDate     string
	lastPayment string
}

func (c *accountFlags) set(f *flag.FlagSet) {
	f.BoolVar(&c.netWorth, "net-worth", false, "Include the account in the net worth")
	f.StringVar(&c.budget, "budget", "", "Monthly budget (Expenses only)")
	f.StringVar(&c.dueDate, "due", "", "Due date, YYYY-MM-DD (Liabilities only)")
	f.StringVar(&c.lastPayment, "last-payment", "", "Last payment date, YYYY-MM-DD (Liabilities only)")
}

// apply overrides e with the flags set on f.
func (c *accountFlags) apply(f *flag.FlagSet, e arthik.AccountEdit) (arthik.AccountEdit, error) {
	var err error
	f.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "net-worth":
			e.IncludeInNetWorth = c.netWorth
		case "budget":
			e.Budget, err = arthik.ParseAmount("budget", c.budget)
		case "due":
			e.DueDate, err = arthik.ValidateDate("dueDate", c.dueDate)
		case "last-payment":
			e.LastPaymentDate, err = arthik.ValidateDate("lastPaymentDate", c.lastPayment)
		}
	})
	return e, err
}

type accountAddCmd struct {
	accountFlags
	category string
}

func (*accountAddCmd) Name() string     { return "account-add" }
func (*accountAddCmd) Synopsis() string { return "add an account" }
func (*accountAddCmd) Usage() string {
	return `arthik account-add -c <category> [-net-worth] [-budget <amount>] [-due <date>] [-last-payment <date>] <name>

  Adds an account. Categories are Assets, Liabilities, Equity, Revenue and Expenses.
`
}

func (c *accountAddCmd) SetFlags(f *flag.FlagSet) {
	c.accountFlags.set(f)
	f.StringVar(&c.category, "c", "", "Category of the account")
}

func (c *accountAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	category, err := arthik.ParseCategory(c.category)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	edit, err := c.apply(f, arthik.AccountEdit{Name: strings.Join(f.Args(), " ")})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ctrl, _, done := open()
	defer done()
	if !authenticated(ctrl) {
		return subcommands.ExitFailure
	}
	return status(ctrl.Accounts.Create(ctx, edit.Apply(arthik.Account{Category: category})))
}

type accountEditCmd struct {
	accountFlags
	name string
}

func (*accountEditCmd) Name() string     { return "account-edit" }
func (*accountEditCmd) Synopsis() string { return "change an account" }
func (*accountEditCmd) Usage() string {
	return `arthik account-edit [-name <new name>] [-net-worth=<bool>] [-budget <amount>] [-due <date>] [-last-payment <date>] <name>

  Changes the given fields of an account. Category and balance are kept.
`
}

func (c *accountEditCmd) SetFlags(f *flag.FlagSet) {
	c.accountFlags.set(f)
	f.StringVar(&c.name, "name", "", "New name of the account")
}

func (c *accountEditCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	name := strings.Join(f.Args(), " ")

	ctrl, _, done := open()
	defer done()
	if !authenticated(ctrl) || !ctrl.Accounts.Load(ctx) {
		return subcommands.ExitFailure
	}
	old, ok := arthik.FindAccount(ctrl.Env.Store.Accounts(), name)
	if !ok {
		fmt.Fprintf(stderr, "Error: no account %q\n", name)
		return subcommands.ExitFailure
	}
	edit, err := c.apply(f, old.Edit())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.name != "" {
		edit.Name = c.name
	}
	if !ctrl.Accounts.SaveEdit(ctx, name, edit) {
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, "✅ Account updated.")
	return subcommands.ExitSuccess
}

type accountDeleteCmd struct{}

func (*accountDeleteCmd) Name() string     { return "account-delete" }
func (*accountDeleteCmd) Synopsis() string { return "delete an account" }
func (*accountDeleteCmd) Usage() string {
	return `arthik account-delete <name>

  Deletes an account, after confirmation.
`
}

func (c *accountDeleteCmd) SetFlags(f *flag.FlagSet) {}

func (c *accountDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	ctrl, _, done := open()
	defer done()
	if !authenticated(ctrl) {
		return subcommands.ExitFailure
	}
	return status(ctrl.Accounts.Delete(ctx, strings.Join(f.Args(), " ")))
}
