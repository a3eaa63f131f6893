package controller

import (
	"context"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/renderer"
)

// Dashboard loads and renders the dashboard figures and charts.
type Dashboard struct {
	env *Env
}

func (c *Dashboard) load() load {
	return load{
		what:   "Failed to load dashboard data",
		fetch:  fetch(c.env, c.env.API.Dashboard, c.env.Store.SetDashboard),
		render: c.Render,
	}
}

// Load fetches the dashboard payload and renders it.
func (c *Dashboard) Load(ctx context.Context) bool { return c.env.reload(ctx, c.load()) }

// Render renders the stored payload: tiles, then the charts drawn again.
// Nothing is rendered before a first payload was loaded.
func (c *Dashboard) Render() {
	d, ok := c.env.Store.Dashboard()
	if !ok {
		return
	}
	views, err := c.env.Charts.RenderDashboard(d, c.env.Store.Accounts())
	if err != nil {
		c.env.Logger.Warn().Err(err).Msg("cannot draw dashboard charts")
	}
	c.env.UI.Show(arthik.TabDashboard, renderer.Dashboard(d, views, c.env.options()))
}

// RenderCharts redraws the dashboard for a new width.
func (c *Dashboard) RenderCharts(width int) {
	c.env.Charts.SetWidth(width)
	c.Render()
}
