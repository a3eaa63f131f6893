package controller

import (
	"context"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/date"
	"github.com/etnz/arthik/renderer"
)

// Transactions runs the ledger flows.
type Transactions struct {
	env       *Env
	accounts  *Accounts
	dashboard *Dashboard
}

func (c *Transactions) load() load {
	get := func(ctx context.Context) ([]arthik.Transaction, error) {
		return c.env.API.Transactions(ctx, date.Date{})
	}
	set := func(txs []arthik.Transaction) {
		c.env.Store.SetTransactions(txs)
		c.env.Store.ClampPage()
	}
	return load{
		what:   "Failed to load transactions",
		fetch:  fetch(c.env, get, set),
		render: c.Render,
	}
}

// Load fetches the transactions and renders the current page. The page is
// kept unless the ledger got shorter than it.
func (c *Transactions) Load(ctx context.Context) bool { return c.env.reload(ctx, c.load()) }

// Open loads the ledger from its first page.
func (c *Transactions) Open(ctx context.Context) bool {
	c.env.Store.SetPage(1)
	return c.Load(ctx)
}

// Render renders the current page.
func (c *Transactions) Render() {
	c.env.UI.Show(arthik.TabLedger, renderer.Ledger(c.env.snapshot(), c.env.options()))
}

// ChangePage moves delta pages, or does nothing when out of range.
func (c *Transactions) ChangePage(delta int) bool {
	if !c.env.Store.ChangePage(delta) {
		return false
	}
	c.Render()
	return true
}

// NewInput returns an empty form dated now.
func (c *Transactions) NewInput() arthik.TransactionInput {
	return arthik.NewTransactionInput(c.env.localNow())
}

// afterWrite reloads what a transaction change affects.
func (c *Transactions) afterWrite(ctx context.Context) {
	c.env.reload(ctx, c.load(), c.accounts.load(), c.dashboard.load())
}

func (c *Transactions) save(ctx context.Context, what string, in arthik.TransactionInput) bool {
	in, err := arthik.ValidateTransaction(in)
	if err != nil {
		c.env.fail(what, err)
		return false
	}
	if err := c.env.API.SaveTransaction(ctx, in); err != nil {
		c.env.fail(what, err)
		return false
	}
	return true
}

// Create records a new transaction.
func (c *Transactions) Create(ctx context.Context, in arthik.TransactionInput) bool {
	in.ID = ""
	if !c.save(ctx, "Failed to save transaction", in) {
		return false
	}
	c.afterWrite(ctx)
	return true
}

// Edit renders the transaction id as an edit form, on the current page.
func (c *Transactions) Edit(id string) {
	c.env.Store.SetEditingTransactionID(id)
	c.Render()
}

// Cancel closes the edit form.
func (c *Transactions) Cancel() {
	c.env.Store.SetEditingTransactionID("")
	c.Render()
}

// SaveEdit replaces the transaction id with in.
func (c *Transactions) SaveEdit(ctx context.Context, id string, in arthik.TransactionInput) bool {
	in.ID = id
	if !c.save(ctx, "Failed to update transaction", in) {
		return false
	}
	c.env.Store.SetEditingTransactionID("")
	c.afterWrite(ctx)
	return true
}

// Delete deletes the transaction id, once confirmed.
func (c *Transactions) Delete(ctx context.Context, id string) bool {
	if !c.env.UI.Confirm("Are you sure you want to delete this transaction?") {
		return false
	}
	if err := c.env.API.DeleteTransaction(ctx, id); err != nil {
		c.env.fail("Failed to delete transaction", err)
		return false
	}
	if c.env.Store.EditingTransactionID() == id {
		c.env.Store.SetEditingTransactionID("")
	}
	c.afterWrite(ctx)
	return true
}
