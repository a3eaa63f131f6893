package renderer

import (
	"bytes"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/state"
	md "github.com/nao1215/markdown"
)

// Accounts renders the accounts grouped by category. The account marked for
// edition is rendered as a form, below its category table.
func Accounts(snap state.Snapshot, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Accounts")
	doc.PlainText("")
	if len(snap.Accounts) == 0 {
		doc.PlainText("No accounts yet.")
		doc.PlainText("")
		return doc.String()
	}
	for _, category := range arthik.Categories() {
		renderCategory(doc, snap, category, opts)
	}
	return doc.String()
}

// renderCategory adds the table of the accounts in category, if any.
func renderCategory(doc *md.Markdown, snap state.Snapshot, category arthik.Category, opts Options) {
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignLeft,
			md.AlignLeft,
		},
		Header: []string{"Name", "Balance", "Net worth", "Details"},
		Rows:   [][]string{},
	}
	var editing *arthik.Account
	for _, a := range snap.Accounts {
		if a.Category != category {
			continue
		}
		name := a.Name
		if a.Name == snap.EditingAccountName {
			name = "✎ " + name
			editing = &a
		}
		table.Rows = append(table.Rows, cells(name, opts.Money(a.CurrentBalance), yesNo(a.IncludeInNetWorth), details(a, opts)))
	}
	if len(table.Rows) == 0 {
		return
	}
	doc.H2(string(category))
	doc.PlainText("")
	doc.Table(table)
	if editing != nil {
		doc.PlainText(AccountForm(editing.Edit(), *editing, opts))
	}
}

// details returns the category specific fields of a.
func details(a arthik.Account, opts Options) string {
	switch a.Category {
	case arthik.Liabilities:
		s := ""
		if !a.DueDate.IsZero() {
			s = "due " + a.DueDate.String()
		}
		if !a.LastPaymentDate.IsZero() {
			if s != "" {
				s += ", "
			}
			s += "last paid " + a.LastPaymentDate.String()
		}
		return s
	case arthik.Expenses:
		if a.Budget.IsZero() {
			return ""
		}
		return "budget " + opts.Money(a.Budget)
	}
	return ""
}

// AccountForm renders the edit form of account a, prefilled with e.
func AccountForm(e arthik.AccountEdit, a arthik.Account, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H3f("Editing %s", inline(a.Name))
	doc.PlainText("")
	doc.BulletList(
		"Name: "+inline(e.Name),
		"Category: "+string(a.Category),
		"Include in net worth: "+yesNo(e.IncludeInNetWorth),
	)
	switch a.Category {
	case arthik.Liabilities:
		doc.BulletList(
			"Due date: "+orNone(e.DueDate.String()),
			"Last payment date: "+orNone(e.LastPaymentDate.String()),
		)
	case arthik.Expenses:
		doc.BulletList("Budget: " + opts.Money(e.Budget))
	}
	doc.PlainText("")
	return doc.String()
}

// AccountOptions returns the labels of the accounts in pickers, in order.
func AccountOptions(accounts []arthik.Account) []string {
	options := make([]string, len(accounts))
	for i, a := range accounts {
		options[i] = a.Option()
	}
	return options
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
