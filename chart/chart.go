// Package chart draws the dashboard charts.
//
// A Renderer turns dashboard data into a chart Config and asks a Backend to
// draw it. The handle returned by the backend is registered in the state
// store, which releases the previous handle of the same chart, so rendering
// twice never leaves two live charts behind.
package chart

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/date"
	"github.com/etnz/arthik/state"
)

// Kind is the shape of a chart.
type Kind string

const (
	Doughnut Kind = "doughnut"
	Bar      Kind = "bar"
	Line     Kind = "line"
	Pie      Kind = "pie"
)

// Series is one named row of values, aligned with Config.Labels.
type Series struct {
	Label  string
	Values []float64
}

// Config describes a chart to draw.
type Config struct {
	Name   arthik.ChartName
	Kind   Kind
	Title  string
	Labels []string
	Series []Series
	Width  int // in columns, 0 for the backend default
}

// Backend draws charts. Handles are opaque to everything but the backend.
type Backend interface {
	Render(Config) (state.Handle, error)
	Release(state.Handle)
}

// View is the displayable outcome of rendering one chart: either a live
// chart or a placeholder message when there was nothing to draw.
type View struct {
	Name        arthik.ChartName
	Title       string
	Chart       state.Handle
	Placeholder string
}

// String returns the chart text, or the placeholder.
func (v View) String() string {
	if v.Chart == nil {
		return v.Placeholder
	}
	if s, ok := v.Chart.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v.Chart)
}

// Placeholder messages.
const (
	NoMonthlyData = "Add transactions to see your monthly overview"
	NoBudgetData  = "Set budgets in expense accounts to see comparison"
	NoAssetData   = "Add assets to see distribution"
	Unavailable   = "Chart unavailable"
)

// ProgressPoints is the number of historical points in the progress chart.
const ProgressPoints = 6

// Renderer renders the dashboard charts into a store.
type Renderer struct {
	backend Backend
	store   *state.Store

	mu    sync.Mutex // guards width and now
	width int
	now   func() time.Time
}

// NewRenderer returns a renderer drawing with backend. The store is set to
// release replaced handles through backend.
func NewRenderer(backend Backend, store *state.Store) *Renderer {
	store.SetReleaser(backend)
	return &Renderer{backend: backend, store: store, now: time.Now}
}

// SetWidth sets the width, in columns, of the next charts.
func (r *Renderer) SetWidth(width int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width = width
}

// SetClock sets the clock dating the "today" point of the progress chart.
func (r *Renderer) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

func (r *Renderer) settings() (width int, now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.now
}

// draw releases the live chart of cfg.Name, then draws cfg, unless
// placeholder is set in which case nothing is drawn.
func (r *Renderer) draw(cfg Config, placeholder string) (View, error) {
	r.store.ReleaseChart(cfg.Name)
	v := View{Name: cfg.Name, Title: cfg.Title}
	if placeholder != "" {
		v.Placeholder = placeholder
		return v, nil
	}
	if cfg.Width == 0 {
		cfg.Width, _ = r.settings()
	}
	h, err := r.backend.Render(cfg)
	if err != nil {
		v.Placeholder = Unavailable
		return v, fmt.Errorf("cannot render %s chart: %w", cfg.Name, err)
	}
	r.store.SetChart(cfg.Name, h)
	v.Chart = h
	return v, nil
}

// MonthlyOverview draws income, expenses and savings of the month.
func (r *Renderer) MonthlyOverview(d arthik.Dashboard) (View, error) {
	cfg := Config{
		Name:   arthik.ChartMonthlyOverview,
		Kind:   Doughnut,
		Title:  "Monthly Overview",
		Labels: []string{"Income", "Expenses", "Savings"},
		Series: []Series{{Values: []float64{
			d.MonthIncome.AsFloat(),
			d.MonthExpenses.AsFloat(),
			d.MonthSavings.Max(arthik.Money{}).AsFloat(),
		}}},
	}
	var placeholder string
	if d.MonthIncome.IsZero() && d.MonthExpenses.IsZero() {
		placeholder = NoMonthlyData
	}
	return r.draw(cfg, placeholder)
}

// Budget compares budget and actual spending per expense category.
func (r *Renderer) Budget(items []arthik.BudgetExpense) (View, error) {
	cfg := Config{Name: arthik.ChartBudget, Kind: Bar, Title: "Budget vs Expenses"}
	budget := Series{Label: "Budget"}
	actual := Series{Label: "Actual"}
	for _, item := range items {
		cfg.Labels = append(cfg.Labels, item.Category)
		budget.Values = append(budget.Values, item.Budget.AsFloat())
		actual.Values = append(actual.Values, item.Actual.AsFloat())
	}
	cfg.Series = []Series{budget, actual}
	var placeholder string
	if len(items) == 0 {
		placeholder = NoBudgetData
	}
	return r.draw(cfg, placeholder)
}

// Progress draws net worth, liabilities and savings over the last
// ProgressPoints months of history. Without history it draws a single point
// for today from the current figures.
func (r *Renderer) Progress(history []arthik.MonthlyReport, current arthik.MonthlyReport) (View, error) {
	points := history
	if len(points) == 0 {
		_, now := r.settings()
		current.Date = date.Of(now())
		points = []arthik.MonthlyReport{current}
	}
	if len(points) > ProgressPoints {
		points = points[len(points)-ProgressPoints:]
	}
	cfg := Config{Name: arthik.ChartProgress, Kind: Line, Title: "Progress"}
	netWorth := Series{Label: "Net Worth"}
	liabilities := Series{Label: "Liabilities"}
	savings := Series{Label: "Monthly Savings"}
	for _, p := range points {
		cfg.Labels = append(cfg.Labels, p.Date.Format("Jan 2006"))
		netWorth.Values = append(netWorth.Values, p.NetWorth.AsFloat())
		liabilities.Values = append(liabilities.Values, p.Liabilities.AsFloat())
		savings.Values = append(savings.Values, p.Savings.AsFloat())
	}
	cfg.Series = []Series{netWorth, liabilities, savings}
	return r.draw(cfg, "")
}

// AssetDistribution draws the share of each Assets account with a positive balance.
func (r *Renderer) AssetDistribution(accounts []arthik.Account) (View, error) {
	cfg := Config{Name: arthik.ChartAssetDistribution, Kind: Pie, Title: "Asset Distribution"}
	var values []float64
	for _, a := range accounts {
		if a.Category != arthik.Assets || !a.CurrentBalance.IsPositive() {
			continue
		}
		cfg.Labels = append(cfg.Labels, a.Name)
		values = append(values, a.CurrentBalance.AsFloat())
	}
	cfg.Series = []Series{{Values: values}}
	var placeholder string
	if len(values) == 0 {
		placeholder = NoAssetData
	}
	return r.draw(cfg, placeholder)
}

// RenderDashboard draws the four charts, in ChartNames order. A failing chart
// does not prevent the others from being drawn.
func (r *Renderer) RenderDashboard(d arthik.Dashboard, accounts []arthik.Account) ([]View, error) {
	current := arthik.MonthlyReport{NetWorth: d.NetWorth, Liabilities: d.TotalLiabilities, Savings: d.MonthSavings}
	views := make([]View, 0, 4)
	var errs []error
	add := func(v View, err error) {
		views = append(views, v)
		errs = append(errs, err)
	}
	add(r.MonthlyOverview(d))
	add(r.Budget(d.BudgetVsExpenses))
	add(r.Progress(d.HistoricalData, current))
	add(r.AssetDistribution(accounts))
	return views, errors.Join(errs...)
}
