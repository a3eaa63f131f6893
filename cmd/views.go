package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/chart"
	"github.com/etnz/arthik/controller"
	"github.com/google/subcommands"
)

type dashboardCmd struct {
	width int
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "display the dashboard" }
func (*dashboardCmd) Usage() string {
	return `arthik dashboard [-width <columns>]

  Displays the net worth, the month totals, the quick stats and the charts.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.width, "width", chart.DefaultWidth, "Width of the charts, in columns")
}

func (c *dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctrl, ui, done := open()
	defer done()
	if !authenticated(ctrl) {
		return subcommands.ExitFailure
	}
	ctrl.Env.Charts.SetWidth(c.width)
	// asset distribution is drawn from the accounts.
	if !ctrl.Accounts.Load(ctx) || !ctrl.Dashboard.Load(ctx) {
		return subcommands.ExitFailure
	}
	return ui.print(arthik.TabDashboard, dark(ctrl))
}

type ledgerCmd struct {
	page int
}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "list the transactions" }
func (*ledgerCmd) Usage() string {
	return `arthik ledger [-page <n>]

  Lists one page of transactions, newest first.
`
}

func (c *ledgerCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.page, "page", 1, "Page to display, starting at 1")
}

func (c *ledgerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctrl, ui, done := open()
	defer done()
	if !authenticated(ctrl) {
		return subcommands.ExitFailure
	}
	if !ctrl.Transactions.Open(ctx) {
		return subcommands.ExitFailure
	}
	if c.page != 1 && !ctrl.Transactions.ChangePage(c.page-1) {
		fmt.Fprintf(stderr, "Error: page %d is out of range 1-%d\n", c.page, ctrl.Env.Store.TotalPages())
		return subcommands.ExitUsageError
	}
	return ui.print(arthik.TabLedger, dark(ctrl))
}

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list the accounts by category" }
func (*accountsCmd) Usage() string {
	return `arthik accounts

  Lists the accounts grouped by category, with their balance.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {}

func (c *accountsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctrl, ui, done := open()
	defer done()
	if !authenticated(ctrl) || !ctrl.Accounts.Load(ctx) {
		return subcommands.ExitFailure
	}
	return ui.print(arthik.TabAccounts, dark(ctrl))
}

type plannerCmd struct{}

func (*plannerCmd) Name() string     { return "planner" }
func (*plannerCmd) Synopsis() string { return "list the recurring transactions and the notes" }
func (*plannerCmd) Usage() string {
	return `arthik planner

  Lists the recurring transactions, with their next date, and the notes.
`
}

func (c *plannerCmd) SetFlags(f *flag.FlagSet) {}

func (c *plannerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctrl, ui, done := open()
	defer done()
	if !authenticated(ctrl) {
		return subcommands.ExitFailure
	}
	return showPlanner(ctx, ctrl, ui)
}

// showPlanner loads and prints the planner.
func showPlanner(ctx context.Context, ctrl *controller.Controllers, ui *printer) subcommands.ExitStatus {
	if !ctrl.LoadPlanner(ctx) {
		return subcommands.ExitFailure
	}
	return ui.print(arthik.TabPlanner, dark(ctrl))
}
