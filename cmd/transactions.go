package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/date"
	"github.com/google/subcommands"
)

// txFlags are the fields of a transaction form.
type txFlags struct {
	from, to    string
	amount      string
	description string
	day, time   string
}

func (c *txFlags) set(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Account the amount is taken from")
	f.StringVar(&c.to, "to", "", "Account the amount goes to")
	f.StringVar(&c.amount, "a", "", "Amount, i.e. 12.50")
	f.StringVar(&c.description, "m", "", "Description")
	f.StringVar(&c.day, "d", "", "Date ("+date.DateFormat+"), defaults to today")
	f.StringVar(&c.time, "t", "", "Time ("+date.TimeFormat+"), defaults to now")
}

// apply overrides in with the flags set on f.
func (c *txFlags) apply(f *flag.FlagSet, in arthik.TransactionInput) (arthik.TransactionInput, error) {
	var err error
	f.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "from":
			in.From = c.from
		case "to":
			in.To = c.to
		case "a":
			in.Amount, err = arthik.ParseAmount("Amount", c.amount)
		case "m":
			in.Description = c.description
		case "d":
			in.Date = c.day
		case "t":
			in.Time = c.time
		}
	})
	return in, err
}

type txAddCmd struct{ txFlags }

func (*txAddCmd) Name() string     { return "tx-add" }
func (*txAddCmd) Synopsis() string { return "record a transaction" }
func (*txAddCmd) Usage() string {
	return `arthik tx-add -from <account> -to <account> -a <amount> -m <description> [-d <date>] [-t <time>]

  Records a transfer of an amount from one account to another.
`
}

func (c *txAddCmd) SetFlags(f *flag.FlagSet) { c.txFlags.set(f) }

func (c *txAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctrl, _, done := open()
	defer done()
	in, err := c.apply(f, ctrl.Transactions.NewInput())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if !authenticated(ctrl) || !ctrl.Transactions.Create(ctx, in) {
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, "✅ Transaction recorded.")
	return subcommands.ExitSuccess
}

type txEditCmd struct{ txFlags }

func (*txEditCmd) Name() string     { return "tx-edit" }
func (*txEditCmd) Synopsis() string { return "change a transaction" }
func (*txEditCmd) Usage() string {
	return `arthik tx-edit [-from <account>] [-to <account>] [-a <amount>] [-m <description>] [-d <date>] [-t <time>] <id>

  Changes the given fields of a transaction. The others are kept.
`
}

func (c *txEditCmd) SetFlags(f *flag.FlagSet) { c.txFlags.set(f) }

func (c *txEditCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)
	ctrl, _, done := open()
	defer done()
	if !authenticated(ctrl) || !ctrl.Transactions.Load(ctx) {
		return subcommands.ExitFailure
	}
	var current *arthik.Transaction
	for _, tx := range ctrl.Env.Store.Transactions() {
		if tx.ID == id {
			current = &tx
			break
		}
	}
	if current == nil {
		fmt.Fprintf(stderr, "Error: no transaction %q\n", id)
		return subcommands.ExitFailure
	}
	in, err := c.apply(f, current.Input())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if !ctrl.Transactions.SaveEdit(ctx, id, in) {
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, "✅ Transaction updated.")
	return subcommands.ExitSuccess
}

type txDeleteCmd struct{}

func (*txDeleteCmd) Name() string     { return "tx-delete" }
func (*txDeleteCmd) Synopsis() string { return "delete a transaction" }
func (*txDeleteCmd) Usage() string {
	return `arthik tx-delete <id>

  Deletes a transaction, after confirmation.
`
}

func (c *txDeleteCmd) SetFlags(f *flag.FlagSet) {}

func (c *txDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	ctrl, _, done := open()
	defer done()
	if !authenticated(ctrl) {
		return subcommands.ExitFailure
	}
	return status(ctrl.Transactions.Delete(ctx, f.Arg(0)))
}
