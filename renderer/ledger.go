package renderer

import (
	"bytes"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/state"
	md "github.com/nao1215/markdown"
)

// DateTimeLayout is the layout of transaction dates in views.
const DateTimeLayout = "02 Jan 2006 15:04"

// Ledger renders the current page of transactions, with the page indicator.
// The transaction marked for edition is rendered as a form below the table.
func Ledger(snap state.Snapshot, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Ledger")
	doc.PlainText("")
	page := snap.PageTransactions()
	if len(page) == 0 {
		doc.PlainText("No transactions yet.")
		doc.PlainText("")
	} else {
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignLeft,
			},
			Header: []string{"Date", "From", "To", "Description", "Amount", "ID"},
			Rows:   [][]string{},
		}
		var editing *arthik.Transaction
		for _, tx := range page {
			id := tx.ID
			if tx.ID == snap.EditingTransactionID {
				id = "✎ " + id
				editing = &tx
			}
			table.Rows = append(table.Rows, cells(
				tx.Date.In(opts.location()).Format(DateTimeLayout),
				tx.From,
				tx.To,
				tx.Description,
				opts.Money(tx.Amount),
				id,
			))
		}
		doc.Table(table)
		if editing != nil {
			doc.PlainText(TransactionForm(editing.Input(), opts))
		}
	}
	doc.PlainTextf("Page %d of %d", snap.Page, snap.TotalPages())
	doc.PlainText("")
	return doc.String()
}

// TransactionForm renders a transaction form prefilled with in. An empty ID
// is the creation form.
func TransactionForm(in arthik.TransactionInput, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if in.ID == "" {
		doc.H3("New transaction")
	} else {
		doc.H3f("Editing transaction %s", inline(in.ID))
	}
	doc.PlainText("")
	doc.BulletList(
		"From: "+orNone(inline(in.From)),
		"To: "+orNone(inline(in.To)),
		"Description: "+orNone(inline(in.Description)),
		"Amount: "+opts.Money(in.Amount),
		"Date: "+in.Date+" "+in.Time,
	)
	doc.PlainText("")
	return doc.String()
}
