// Package nav drives the client from user actions: which tab is shown,
// what it loads, and which controller handles an action.
package nav

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/controller"
)

// Navigator is the tab state machine. It starts on the dashboard.
type Navigator struct {
	c      *controller.Controllers
	resize *Debouncer

	mu    sync.Mutex
	width int
}

// New returns a Navigator over c. Resizes are debounced for quiet, at least
// MinQuietPeriod.
func New(c *controller.Controllers, quiet time.Duration) *Navigator {
	n := &Navigator{c: c}
	n.resize = NewDebouncer(quiet, n.resized)
	return n
}

// Controllers returns the controllers driven by n.
func (n *Navigator) Controllers() *controller.Controllers { return n.c }

// Active returns the active tab, or TabLogin while logged out.
func (n *Navigator) Active() arthik.Tab {
	if !n.c.Authenticated() {
		return arthik.TabLogin
	}
	return n.c.Env.Store.ActiveTab()
}

// Show activates tab and runs its load: the dashboard reloads the dashboard,
// the ledger reloads the transactions from the first page, accounts reload
// the accounts, the planner reloads recurrences and notes at once.
// Logged out, it shows the login view instead.
func (n *Navigator) Show(ctx context.Context, tab arthik.Tab) bool {
	if !slices.Contains(arthik.Tabs(), tab) {
		n.c.Env.UI.Notify(controller.Notice{Level: controller.Failure, Message: fmt.Sprintf("Unknown tab %q", tab)})
		return false
	}
	if !n.c.Authenticated() {
		n.c.Env.UI.ShowLogin("")
		return false
	}
	n.c.Env.Store.SetActiveTab(tab)
	switch tab {
	case arthik.TabDashboard:
		return n.c.Dashboard.Load(ctx)
	case arthik.TabLedger:
		return n.c.Transactions.Open(ctx)
	case arthik.TabAccounts:
		return n.c.Accounts.Load(ctx)
	case arthik.TabPlanner:
		return n.c.LoadPlanner(ctx)
	}
	return false
}

// Cycle shows the tab delta positions away from the active one.
func (n *Navigator) Cycle(ctx context.Context, delta int) bool {
	tabs := arthik.Tabs()
	i := max(slices.Index(tabs, n.c.Env.Store.ActiveTab()), 0)
	i = ((i+delta)%len(tabs) + len(tabs)) % len(tabs)
	return n.Show(ctx, tabs[i])
}

// Render renders the active view from the store, without fetching.
func (n *Navigator) Render() { n.c.Render(n.Active()) }

// Resized records a new width. The dashboard charts are drawn again once the
// resizes stop, if the dashboard is still shown.
func (n *Navigator) Resized(width int) {
	n.mu.Lock()
	n.width = width
	n.mu.Unlock()
	n.resize.Trigger()
}

func (n *Navigator) resized() {
	if n.Active() != arthik.TabDashboard {
		return
	}
	n.mu.Lock()
	width := n.width
	n.mu.Unlock()
	n.c.Dashboard.RenderCharts(width)
}

// Close stops a pending resize.
func (n *Navigator) Close() { n.resize.Stop() }
