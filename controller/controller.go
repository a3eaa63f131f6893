package controller

import (
	"context"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/state"
)

// Controllers groups the controllers sharing one Env.
type Controllers struct {
	Env          *Env
	Accounts     *Accounts
	Transactions *Transactions
	Recurrences  *Recurrences
	Notes        *Notes
	Dashboard    *Dashboard
	Session      *Session
	Settings     *Settings
}

// New returns the controllers of env. The gateway of env gets the forced
// logout as its handler of expired sessions.
func New(env *Env) *Controllers {
	c := &Controllers{Env: env}
	c.Dashboard = &Dashboard{env: env}
	c.Accounts = &Accounts{env: env, dashboard: c.Dashboard}
	c.Transactions = &Transactions{env: env, accounts: c.Accounts, dashboard: c.Dashboard}
	c.Recurrences = &Recurrences{env: env, accounts: c.Accounts, transactions: c.Transactions, dashboard: c.Dashboard}
	c.Notes = &Notes{env: env}
	c.Session = &Session{env: env, accounts: c.Accounts, transactions: c.Transactions, dashboard: c.Dashboard}
	c.Settings = &Settings{env: env}
	env.API.SetUnauthorizedHandler(c.Session.ForceLogout)
	return c
}

// Render renders the view of tab from the store.
func (c *Controllers) Render(tab arthik.Tab) {
	switch tab {
	case arthik.TabDashboard:
		c.Dashboard.Render()
	case arthik.TabLedger:
		c.Transactions.Render()
	case arthik.TabAccounts:
		c.Accounts.Render()
	case arthik.TabPlanner:
		c.Notes.Render()
	case arthik.TabLogin:
		c.Env.UI.ShowLogin("")
	}
}

func (e *Env) snapshot() state.Snapshot { return e.Store.Snapshot() }

// LoadPlanner fetches recurring transfers and notes concurrently, then
// renders the planner.
func (c *Controllers) LoadPlanner(ctx context.Context) bool {
	return c.Env.reload(ctx, c.Recurrences.load(), c.Notes.load())
}

// Authenticated reports whether a session is open.
func (c *Controllers) Authenticated() bool { return c.Env.API.Session().IsAuthenticated() }
