package controller

import (
	"context"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/date"
)

// Recurrences runs the recurring transfer flows of the planner.
type Recurrences struct {
	env          *Env
	accounts     *Accounts
	transactions *Transactions
	dashboard    *Dashboard
}

func (c *Recurrences) load() load {
	return load{
		what:   "Failed to load recurrences",
		fetch:  fetch(c.env, c.env.API.Recurrences, c.env.Store.SetRecurrences),
		render: c.Render,
	}
}

// Load fetches the recurring transfers and renders the planner.
func (c *Recurrences) Load(ctx context.Context) bool { return c.env.reload(ctx, c.load()) }

// Render renders the planner.
func (c *Recurrences) Render() { renderPlanner(c.env) }

func (c *Recurrences) save(ctx context.Context, id string, in arthik.RecurrenceInput) bool {
	in, err := arthik.ValidateRecurrence(in)
	if err != nil {
		c.env.fail("Failed to save recurrence", err)
		return false
	}
	r := in.Recurrence(date.Of(c.env.localNow()))
	r.ID = id
	if err := c.env.API.SaveRecurrence(ctx, r); err != nil {
		c.env.fail("Failed to save recurrence", err)
		return false
	}
	return true
}

// Create adds a recurring transfer, first due on the next occurrence of its
// day of month.
func (c *Recurrences) Create(ctx context.Context, in arthik.RecurrenceInput) bool {
	if !c.save(ctx, "", in) {
		return false
	}
	c.env.reload(ctx, c.load())
	return true
}

// Edit renders the recurring transfer id as an edit form.
func (c *Recurrences) Edit(id string) {
	c.env.Store.SetEditingRecurrenceID(id)
	c.Render()
}

// Cancel closes the edit form.
func (c *Recurrences) Cancel() {
	c.env.Store.SetEditingRecurrenceID("")
	c.Render()
}

// SaveEdit replaces the recurring transfer id with in, scheduled again from today.
func (c *Recurrences) SaveEdit(ctx context.Context, id string, in arthik.RecurrenceInput) bool {
	if !c.save(ctx, id, in) {
		return false
	}
	c.env.Store.SetEditingRecurrenceID("")
	c.env.reload(ctx, c.load())
	return true
}

// Delete deletes the recurring transfer id, once confirmed.
func (c *Recurrences) Delete(ctx context.Context, id string) bool {
	if !c.env.UI.Confirm("Are you sure you want to delete this recurring transaction?") {
		return false
	}
	if err := c.env.API.DeleteRecurrence(ctx, id); err != nil {
		c.env.fail("Failed to delete recurrence", err)
		return false
	}
	if c.env.Store.EditingRecurrenceID() == id {
		c.env.Store.SetEditingRecurrenceID("")
	}
	c.env.reload(ctx, c.load())
	return true
}

// Apply asks the backend to record the transaction of id now, once
// confirmed. Every collection it changes is reloaded at once.
func (c *Recurrences) Apply(ctx context.Context, id string) bool {
	if !c.env.UI.Confirm("Apply this recurring transaction now?") {
		return false
	}
	if err := c.env.API.ApplyRecurrence(ctx, id); err != nil {
		c.env.fail("Failed to apply recurrence", err)
		return false
	}
	c.env.notify(Success, "Transaction applied successfully!")
	c.env.reload(ctx, c.load(), c.accounts.load(), c.transactions.load(), c.dashboard.load())
	return true
}
