package controller

import (
	"context"
	"sync"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/api"
)

// Session runs login and logout.
type Session struct {
	env          *Env
	accounts     *Accounts
	transactions *Transactions
	dashboard    *Dashboard

	mu sync.Mutex // serializes forced logouts
}

// Login opens a session with password, then loads the first views from
// fresh fetches.
func (c *Session) Login(ctx context.Context, password string) bool {
	if password == "" {
		c.env.notify(Failure, "Please enter a password")
		return false
	}
	if err := c.env.API.Login(ctx, password); err != nil {
		c.env.fail("Login failed. Please try again.", err)
		return false
	}
	c.env.Logger.Info().Msg("logged in")
	c.env.Store.SetActiveTab(arthik.TabDashboard)
	return c.initialLoad(ctx)
}

// initialLoad loads what the first views display.
func (c *Session) initialLoad(ctx context.Context) bool {
	return c.env.reload(ctx, c.accounts.load(), c.dashboard.load(), c.transactions.load())
}

// Resume restores the session saved by a previous run, if any, and loads
// the first views. It shows the login view otherwise.
func (c *Session) Resume(ctx context.Context) bool {
	sess := c.env.API.Session()
	if err := sess.Hydrate(); err != nil {
		c.env.Logger.Warn().Err(err).Msg("cannot restore session")
	}
	if !sess.IsAuthenticated() {
		c.env.UI.ShowLogin("")
		return false
	}
	return c.initialLoad(ctx)
}

// Logout closes the session, once confirmed. Nothing of it survives:
// collections, edit markers and charts are dropped. Preferences are kept.
func (c *Session) Logout() bool {
	if !c.env.UI.Confirm("Are you sure you want to logout?") {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.env.Store.Reset(); err != nil {
		c.env.Logger.Warn().Err(err).Msg("cannot clear session")
	}
	c.env.Logger.Info().Msg("logged out")
	c.env.UI.ShowLogin("")
	return true
}

// ForceLogout ends an expired session. It is the gateway's handler of 401
// responses. Only the first of concurrent calls shows the login view.
func (c *Session) ForceLogout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	wasAuthenticated := c.env.API.Session().IsAuthenticated()
	if err := c.env.Store.Reset(); err != nil {
		c.env.Logger.Warn().Err(err).Msg("cannot clear session")
	}
	if !wasAuthenticated {
		return
	}
	c.env.Logger.Info().Msg("session expired")
	c.env.UI.ShowLogin(api.MsgSessionExpired)
}
