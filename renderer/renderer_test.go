package renderer

import (
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/chart"
	"github.com/etnz/arthik/date"
	"github.com/etnz/arthik/state"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// view is the structure of a rendered markdown document.
type view struct {
	headings map[int][]string
	rows     [][]string // table rows, headers included
	items    []string   // list items
	code     []string   // fenced code blocks
	text     string
}

func plain(n ast.Node, src []byte) string {
	var b strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(src))
			if c.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func parse(t *testing.T, s string) view {
	t.Helper()
	src := []byte(s)
	doc := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))
	v := view{headings: make(map[int][]string), text: s}
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			v.headings[n.Level] = append(v.headings[n.Level], plain(n, src))
			return ast.WalkSkipChildren, nil
		case *extast.TableHeader, *extast.TableRow:
			var cells []string
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				cells = append(cells, plain(c, src))
			}
			v.rows = append(v.rows, cells)
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			v.items = append(v.items, plain(n, src))
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock:
			var b strings.Builder
			for i := 0; i < n.Lines().Len(); i++ {
				line := n.Lines().At(i)
				b.Write(line.Value(src))
			}
			v.code = append(v.code, b.String())
		}
		return ast.WalkContinue, nil
	})
	return v
}

// cellOf returns the cell of column col in the first row whose first cell is key.
func (v view) cellOf(key string, col int) string {
	for _, r := range v.rows {
		if len(r) > col && strings.Contains(r[0], key) {
			return r[col]
		}
	}
	return ""
}

func accounts() []arthik.Account {
	return []arthik.Account{
		{Name: "Groceries", Category: arthik.Expenses, Budget: arthik.M(300), CurrentBalance: arthik.M(120)},
		{Name: "Bank Account", Category: arthik.Assets, IncludeInNetWorth: true, CurrentBalance: arthik.M(1500)},
		{Name: "Credit Card", Category: arthik.Liabilities, IncludeInNetWorth: true, CurrentBalance: arthik.M(250), DueDate: date.New(2024, 4, 5)},
	}
}

func TestAccountsGroupedByCategory(t *testing.T) {
	v := parse(t, Accounts(state.Snapshot{Accounts: accounts()}, Options{Currency: "USD"}))

	want := []string{"Assets", "Liabilities", "Expenses"}
	if !slices.Equal(v.headings[2], want) {
		t.Errorf("category headings = %v; want %v", v.headings[2], want)
	}
	if got := v.cellOf("Bank Account", 1); got != "$1,500.00" {
		t.Errorf("Bank Account balance = %q; want %q", got, "$1,500.00")
	}
	if got := v.cellOf("Credit Card", 3); got != "due 2024-04-05" {
		t.Errorf("Credit Card details = %q; want %q", got, "due 2024-04-05")
	}
	if len(v.headings[3]) != 0 {
		t.Errorf("forms rendered without an edit marker: %v", v.headings[3])
	}
}

func TestAccountsEditForm(t *testing.T) {
	v := parse(t, Accounts(state.Snapshot{Accounts: accounts(), EditingAccountName: "Groceries"}, Options{Currency: "USD"}))
	if !slices.Equal(v.headings[3], []string{"Editing Groceries"}) {
		t.Fatalf("forms = %v; want [Editing Groceries]", v.headings[3])
	}
	if !slices.Contains(v.items, "Budget: $300.00") {
		t.Errorf("expense form items = %v; want a budget", v.items)
	}
	for _, item := range v.items {
		if strings.HasPrefix(item, "Due date") {
			t.Errorf("expense form shows a due date: %v", v.items)
		}
	}

	v = parse(t, Accounts(state.Snapshot{Accounts: accounts(), EditingAccountName: "Credit Card"}, Options{}))
	if !slices.Contains(v.items, "Due date: 2024-04-05") || !slices.Contains(v.items, "Last payment date: none") {
		t.Errorf("liability form items = %v; want due and last payment dates", v.items)
	}
}

func TestAccountsOrphanMarker(t *testing.T) {
	v := parse(t, Accounts(state.Snapshot{Accounts: accounts(), EditingAccountName: "Deleted"}, Options{}))
	if len(v.headings[3]) != 0 {
		t.Errorf("forms = %v; want none for a missing account", v.headings[3])
	}
}

func TestHideAmounts(t *testing.T) {
	v := parse(t, Accounts(state.Snapshot{Accounts: accounts()}, Options{HideAmounts: true}))
	if got := v.cellOf("Bank Account", 1); got != Hidden {
		t.Errorf("hidden balance = %q; want %q", got, Hidden)
	}
	tiles := DashboardTiles(arthik.Dashboard{NetWorth: arthik.M(1000)}, Options{HideAmounts: true})
	if strings.Contains(tiles, "1,000") {
		t.Errorf("DashboardTiles() shows a hidden amount:\n%s", tiles)
	}
}

func TestAccountOptions(t *testing.T) {
	got := AccountOptions(accounts())
	want := []string{"Groceries (Expenses)", "Bank Account (Assets)", "Credit Card (Liabilities)"}
	if !slices.Equal(got, want) {
		t.Errorf("AccountOptions() = %v; want %v", got, want)
	}
}

func ledger(n int) []arthik.Transaction {
	txs := make([]arthik.Transaction, n)
	for i := range txs {
		txs[i] = arthik.Transaction{
			ID:          fmt.Sprintf("tx-%d", i+1),
			From:        "Bank Account",
			To:          "Groceries",
			Description: "weekly | shop",
			Amount:      arthik.M(10),
			Date:        time.Date(2024, 3, 20, 18, 30, 0, 0, time.UTC),
		}
	}
	return txs
}

func TestLedgerPage(t *testing.T) {
	snap := state.Snapshot{Transactions: ledger(250), Page: 2}
	out := Ledger(snap, Options{Currency: "USD"})
	v := parse(t, out)
	if !strings.Contains(out, "Page 2 of 3") {
		t.Errorf("Ledger() has no page indicator:\n%s", out)
	}
	// header + 100 rows
	if len(v.rows) != 101 {
		t.Fatalf("Ledger() rendered %d rows; want 101", len(v.rows))
	}
	// the escaped pipe of the description does not shift the columns
	if got := v.rows[1][5]; got != "tx-101" {
		t.Errorf("first row id = %q; want tx-101", got)
	}
	if got := v.rows[1][0]; got != "20 Mar 2024 18:30" {
		t.Errorf("first row date = %q", got)
	}
}

func TestLedgerEmpty(t *testing.T) {
	out := Ledger(state.Snapshot{Page: 1}, Options{})
	if !strings.Contains(out, "No transactions yet.") || !strings.Contains(out, "Page 1 of 1") {
		t.Errorf("Ledger() of an empty ledger:\n%s", out)
	}
}

func TestLedgerEditForm(t *testing.T) {
	snap := state.Snapshot{Transactions: ledger(3), Page: 1, EditingTransactionID: "tx-2"}
	v := parse(t, Ledger(snap, Options{}))
	if !slices.Equal(v.headings[3], []string{"Editing transaction tx-2"}) {
		t.Fatalf("forms = %v; want one for tx-2", v.headings[3])
	}
	if !slices.Contains(v.items, "Date: 2024-03-20 18:30") {
		t.Errorf("form items = %v; want the prefilled date", v.items)
	}
	// a marker outside the page renders no form
	snap.EditingTransactionID = "tx-99"
	if v := parse(t, Ledger(snap, Options{})); len(v.headings[3]) != 0 {
		t.Errorf("forms = %v; want none", v.headings[3])
	}
}

func TestPlanner(t *testing.T) {
	snap := state.Snapshot{
		Recurrences: []arthik.Recurrence{{ID: "rec-1", DayOfMonth: 15, From: "Bank Account", To: "Rent", Description: "rent", Amount: arthik.M(1200), NextDate: date.New(2024, 4, 15)}},
		Notes: []arthik.Note{
			{ID: "note-1", Heading: "Ideas", Content: "save more", Created: "2024-03-20 10:00:00"},
			{ID: "note-2", Heading: "Car", Content: "service in May"},
		},
		EditingNoteID: "note-2",
	}
	v := parse(t, Planner(snap, Options{}))
	if got := v.cellOf("15", 5); got != "2024-04-15" {
		t.Errorf("next date = %q; want 2024-04-15", got)
	}
	wantNotes := []string{"Ideas", "✎ Car", "Editing note note-2"}
	if !slices.Equal(v.headings[3], wantNotes) {
		t.Errorf("note headings = %v; want %v", v.headings[3], wantNotes)
	}
	if !strings.Contains(v.text, "20 Mar 2024 10:00") {
		t.Errorf("Planner() has no creation date")
	}
}

func TestNoteContentIsText(t *testing.T) {
	snap := state.Snapshot{Notes: []arthik.Note{
		{ID: "note-1", Heading: "Plans", Content: "# Title\n| a | b |\n|---|---|\n- item\n    indented"},
	}}
	out := Notes(snap, Options{})
	v := parse(t, out)
	if len(v.headings[1]) != 0 || !slices.Equal(v.headings[3], []string{"Plans", "New note"}) {
		t.Errorf("headings = %v; want only the note and the form", v.headings)
	}
	if len(v.rows) != 0 || len(v.items) != 0 || len(v.code) != 0 {
		t.Errorf("note content rendered as structure: rows %v, items %v, code %v", v.rows, v.items, v.code)
	}
	for _, want := range []string{`> \# Title`, `> \| a \| b \|`, `> \- item`, "> indented"} {
		if !strings.Contains(out, want) {
			t.Errorf("Notes() has no %q:\n%s", want, out)
		}
	}
}

// alignments returns the column alignments of the first table of s.
func alignments(s string) []extast.Alignment {
	src := []byte(s)
	doc := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))
	var got []extast.Alignment
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if table, ok := n.(*extast.Table); ok && entering && got == nil {
			got = table.Alignments
		}
		return ast.WalkContinue, nil
	})
	return got
}

func TestAmountsAreRightAligned(t *testing.T) {
	l, r := extast.AlignLeft, extast.AlignRight
	recurrences := state.Snapshot{Recurrences: []arthik.Recurrence{{ID: "rec-1", DayOfMonth: 1, Amount: arthik.M(5)}}}
	tests := []struct {
		name string
		out  string
		want []extast.Alignment
	}{
		{"ledger", Ledger(state.Snapshot{Transactions: ledger(1), Page: 1}, Options{}), []extast.Alignment{l, l, l, l, r, l}},
		{"accounts", Accounts(state.Snapshot{Accounts: accounts()}, Options{}), []extast.Alignment{l, r, l, l}},
		{"recurrences", Recurrences(recurrences, Options{}), []extast.Alignment{r, l, l, l, r, l, l}},
	}
	for _, test := range tests {
		if got := alignments(test.out); !slices.Equal(got, test.want) {
			t.Errorf("%s alignments = %v; want %v", test.name, got, test.want)
		}
	}
}

func TestNoteFormOrphan(t *testing.T) {
	got := NoteForm(state.Snapshot{Notes: []arthik.Note{{ID: "note-1"}}, EditingNoteID: "gone"})
	if !strings.Contains(got, "New note") {
		t.Errorf("NoteForm() = %q; want the empty form", got)
	}
}

func TestDashboardTiles(t *testing.T) {
	d := arthik.Dashboard{
		TotalAssets:      arthik.M(200000),
		TotalLiabilities: arthik.M(50000),
		NetWorth:         arthik.M(150000),
		MonthIncome:      arthik.M(80000),
		MonthExpenses:    arthik.M(30000),
		MonthSavings:     arthik.M(20000),
		BudgetVsExpenses: []arthik.BudgetExpense{{Category: "Food", Budget: arthik.M(40000)}},
	}
	v := parse(t, DashboardTiles(d, Options{Currency: "USD"}))
	tests := []struct {
		key  string
		col  int
		want string
	}{
		{"Total Assets", 1, "$200,000.00"},
		{"Net Worth", 1, "$150,000.00"},
		{"Savings Rate", 1, "25.0%"},
		{"Savings Rate", 2, "Excellent!"},
		{"Budget Remaining", 1, "$10,000.00"},
		{"Budget Remaining", 2, "Within budget"},
		{"Net Worth Growth", 1, "0.0%"},
		{"Net Worth Growth", 2, "Growing"},
		{"Debt to Asset", 1, "25.0%"},
	}
	for _, test := range tests {
		if got := v.cellOf(test.key, test.col); got != test.want {
			t.Errorf("%s[%d] = %q; want %q", test.key, test.col, got, test.want)
		}
	}
}

func TestDashboardCharts(t *testing.T) {
	backend := &chart.TextBackend{}
	r := chart.NewRenderer(backend, state.New(nil))
	d := arthik.Dashboard{MonthIncome: arthik.M(100), MonthExpenses: arthik.M(40), MonthSavings: arthik.M(60)}
	views, err := r.RenderDashboard(d, nil)
	if err != nil {
		t.Fatal(err)
	}
	v := parse(t, Dashboard(d, views, Options{}))
	if !slices.Contains(v.headings[2], "Monthly Overview") || !slices.Contains(v.headings[2], "Asset Distribution") {
		t.Errorf("chart headings = %v", v.headings[2])
	}
	if len(v.code) != 2 {
		t.Errorf("Dashboard() has %d charts; want monthly overview and progress", len(v.code))
	}
	if !strings.Contains(v.text, chart.NoAssetData) {
		t.Errorf("Dashboard() has no asset placeholder")
	}
}

func TestLogin(t *testing.T) {
	v := parse(t, Login("Your session has expired. Please login again."))
	if !strings.Contains(v.text, "> Your session has expired") {
		t.Errorf("Login() has no notice:\n%s", v.text)
	}
}
