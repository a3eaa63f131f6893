package controller

import (
	"context"
	"fmt"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/renderer"
)

// Accounts runs the account flows.
type Accounts struct {
	env       *Env
	dashboard *Dashboard
}

func (c *Accounts) load() load {
	return load{
		what:   "Failed to load accounts",
		fetch:  fetch(c.env, c.env.API.Accounts, c.env.Store.SetAccounts),
		render: c.Render,
	}
}

// Load fetches the accounts and renders them.
func (c *Accounts) Load(ctx context.Context) bool { return c.env.reload(ctx, c.load()) }

// Render renders the stored accounts.
func (c *Accounts) Render() {
	c.env.UI.Show(arthik.TabAccounts, renderer.Accounts(c.env.snapshot(), c.env.options()))
}

// afterWrite reloads what an account change affects.
func (c *Accounts) afterWrite(ctx context.Context) {
	c.env.reload(ctx, c.load(), c.dashboard.load())
}

// Create adds account a.
func (c *Accounts) Create(ctx context.Context, a arthik.Account) bool {
	a, err := arthik.ValidateAccount(a)
	if err != nil {
		c.env.fail("Failed to add account", err)
		return false
	}
	if err := c.env.API.AddAccount(ctx, a); err != nil {
		c.env.fail("Failed to add account", err)
		return false
	}
	c.afterWrite(ctx)
	c.env.notify(Success, "Account added successfully!")
	return true
}

// Edit renders the account named name as an edit form.
func (c *Accounts) Edit(name string) {
	c.env.Store.SetEditingAccountName(name)
	c.Render()
}

// Cancel closes the edit form.
func (c *Accounts) Cancel() {
	c.env.Store.SetEditingAccountName("")
	c.Render()
}

// SaveEdit replaces the account named oldName by edit applied to it.
//
// The backend has no update of accounts: the account is deleted then created
// again, keeping its category and balance.
func (c *Accounts) SaveEdit(ctx context.Context, oldName string, edit arthik.AccountEdit) bool {
	const what = "Failed to save account changes"
	old, ok := arthik.FindAccount(c.env.Store.Accounts(), oldName)
	if !ok {
		c.env.notify(Failure, fmt.Sprintf("Account %q not found", oldName))
		return false
	}
	updated, err := arthik.ValidateAccount(edit.Apply(old))
	if err != nil {
		c.env.fail(what, err)
		return false
	}
	if err := c.env.API.DeleteAccount(ctx, oldName); err != nil {
		c.env.fail(what, err)
		return false
	}
	if err := c.env.API.AddAccount(ctx, updated); err != nil {
		c.env.fail(what, err)
		// the old account is gone, show what the backend has
		c.afterWrite(ctx)
		return false
	}
	c.env.Store.SetEditingAccountName("")
	c.afterWrite(ctx)
	return true
}

// Delete deletes the account named name, once confirmed.
func (c *Accounts) Delete(ctx context.Context, name string) bool {
	if !c.env.UI.Confirm(fmt.Sprintf("Are you sure you want to delete %q? This cannot be undone.", name)) {
		return false
	}
	if err := c.env.API.DeleteAccount(ctx, name); err != nil {
		c.env.fail("Failed to delete account", err)
		return false
	}
	if c.env.Store.EditingAccountName() == name {
		c.env.Store.SetEditingAccountName("")
	}
	c.afterWrite(ctx)
	return true
}
