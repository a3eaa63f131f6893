package renderer

import (
	"bytes"
	"strings"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/chart"
	md "github.com/nao1215/markdown"
)

// DashboardTiles renders the dashboard figures and the quick stats.
func DashboardTiles(d arthik.Dashboard, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Dashboard")
	doc.PlainText("")
	doc.Table(md.TableSet{
		Header: []string{"Figure", "Amount"},
		Rows: [][]string{
			{"Total Assets", opts.Money(d.TotalAssets)},
			{"Total Liabilities", opts.Money(d.TotalLiabilities)},
			{md.Bold("Net Worth"), md.Bold(opts.Money(d.NetWorth))},
			{"Income this month", opts.Money(d.MonthIncome)},
			{"Expenses this month", opts.Money(d.MonthExpenses)},
			{"Savings this month", opts.Money(d.MonthSavings)},
		},
	})
	doc.PlainText("")

	r := d.Ratios()
	doc.H2("Quick Stats")
	doc.PlainText("")
	doc.Table(md.TableSet{
		Header: []string{"Stat", "Value", "Trend"},
		Rows: [][]string{
			{"Savings Rate", opts.Percent(r.SavingsRate), pick(r.SavingsRate > 20, "Excellent!", "Keep going!")},
			{"Budget Remaining", opts.Money(r.BudgetRemaining), pick(r.BudgetRemaining.IsPositive(), "Within budget", "Over budget")},
			{"Net Worth Growth", signedPercent(r.NetWorthGrowth, opts), pick(r.NetWorthGrowth >= 0, "Growing", "Declining")},
			{"Debt to Asset", opts.Percent(r.DebtToAsset), "Ratio"},
		},
	})
	doc.PlainText("")
	return doc.String()
}

// Dashboard renders the tiles followed by the charts.
func Dashboard(d arthik.Dashboard, charts []chart.View, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.PlainText(DashboardTiles(d, opts))
	for _, v := range charts {
		doc.H2(v.Title)
		doc.PlainText("")
		if v.Chart == nil {
			doc.PlainText(md.Italic(v.Placeholder))
			doc.PlainText("")
			continue
		}
		text := v.String()
		if opts.HideAmounts {
			text = Hidden
		}
		doc.CodeBlocks(md.SyntaxHighlightNone, strings.TrimRight(text, "\n"))
		doc.PlainText("")
	}
	return doc.String()
}

func signedPercent(p arthik.Percent, opts Options) string {
	if opts.HideAmounts {
		return Hidden
	}
	return p.SignedString()
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
