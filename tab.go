package arthik

// Tab is a top-level view of the client.
type Tab string

const (
	TabLogin     Tab = "login" // shown while no session exists
	TabDashboard Tab = "dashboard"
	TabLedger    Tab = "ledger"
	TabAccounts  Tab = "accounts"
	TabPlanner   Tab = "planner"
)

// Tabs returns the navigable tabs in display order.
func Tabs() []Tab { return []Tab{TabDashboard, TabLedger, TabAccounts, TabPlanner} }

// ChartName is the logical name of a dashboard chart.
type ChartName string

const (
	ChartMonthlyOverview   ChartName = "monthlyOverview"
	ChartBudget            ChartName = "budget"
	ChartProgress          ChartName = "progress"
	ChartAssetDistribution ChartName = "assetDistribution"
)

// ChartNames returns the fixed set of chart names.
func ChartNames() []ChartName {
	return []ChartName{ChartMonthlyOverview, ChartBudget, ChartProgress, ChartAssetDistribution}
}
