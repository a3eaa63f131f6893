package arthik

import "github.com/etnz/arthik/date"

// Dashboard is the aggregate payload computed by the backend.
type Dashboard struct {
	TotalAssets      Money           `json:"totalAssets"`
	TotalLiabilities Money           `json:"totalLiabilities"`
	NetWorth         Money           `json:"netWorth"`
	MonthIncome      Money           `json:"monthIncome"`
	MonthExpenses    Money           `json:"monthExpenses"`
	MonthSavings     Money           `json:"monthSavings"`
	BudgetVsExpenses []BudgetExpense `json:"budgetVsExpenses"`
	HistoricalData   []MonthlyReport `json:"historicalData"`
	CSRFToken        string          `json:"csrfToken,omitempty"`
}

// BudgetExpense compares the budget of an expense category with what was spent.
type BudgetExpense struct {
	Category string `json:"category"`
	Budget   Money  `json:"budget"`
	Actual   Money  `json:"actual"`
}

// MonthlyReport is one historical point of the progress chart.
type MonthlyReport struct {
	Date        date.Date `json:"date"`
	NetWorth    Money     `json:"netWorth"`
	Liabilities Money     `json:"liabilities"`
	Savings     Money     `json:"savings"`
}

// Ratios are display-only figures derived from an already aggregated Dashboard.
type Ratios struct {
	SavingsRate     Percent
	NetWorthGrowth  Percent
	DebtToAsset     Percent
	BudgetRemaining Money
}

// Ratios derives the quick stats of d.
//
//   - savings rate = monthSavings / monthIncome, 0 without income
//   - growth = (latest - previous) / |previous| over the last two historical points, 0 otherwise
//   - debt to asset = totalLiabilities / totalAssets, 0 without assets
//   - budget remaining = sum(budget) - monthExpenses
func (d Dashboard) Ratios() Ratios {
	var r Ratios
	r.SavingsRate = d.MonthSavings.Ratio(d.MonthIncome)
	if n := len(d.HistoricalData); n >= 2 {
		latest, previous := d.HistoricalData[n-1].NetWorth, d.HistoricalData[n-2].NetWorth
		r.NetWorthGrowth = latest.Sub(previous).Ratio(previous.Abs())
	}
	r.DebtToAsset = d.TotalLiabilities.Ratio(d.TotalAssets)
	var budget Money
	for _, b := range d.BudgetVsExpenses {
		budget = budget.Add(b.Budget)
	}
	r.BudgetRemaining = budget.Sub(d.MonthExpenses)
	return r
}
