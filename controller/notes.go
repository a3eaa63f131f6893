package controller

import (
	"context"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/renderer"
)

// CreatedLayout is the layout of the creation time set on new notes.
const CreatedLayout = "2006-01-02 15:04:05"

// Notes runs the note flows of the planner.
type Notes struct {
	env *Env
}

func (c *Notes) load() load {
	return load{
		what:   "Failed to load notes",
		fetch:  fetch(c.env, c.env.API.Notes, c.env.Store.SetNotes),
		render: c.Render,
	}
}

// Load fetches the notes and renders the planner.
func (c *Notes) Load(ctx context.Context) bool { return c.env.reload(ctx, c.load()) }

// Render renders the planner.
func (c *Notes) Render() { renderPlanner(c.env) }

func renderPlanner(e *Env) {
	e.UI.Show(arthik.TabPlanner, renderer.Planner(e.snapshot(), e.options()))
}

// New clears the note form.
func (c *Notes) New() { c.Cancel() }

// Edit fills the note form with the note id.
func (c *Notes) Edit(id string) {
	c.env.Store.SetEditingNoteID(id)
	c.Render()
}

// Cancel clears the note form.
func (c *Notes) Cancel() {
	c.env.Store.SetEditingNoteID("")
	c.Render()
}

// Save writes the note form: it replaces the note being edited, or creates a
// new note when none is, or when the edited note no longer exists.
func (c *Notes) Save(ctx context.Context, in arthik.NoteInput) bool {
	in, err := arthik.ValidateNote(in)
	if err != nil {
		c.env.fail("Failed to save note", err)
		return false
	}
	n := arthik.Note{Heading: in.Heading, Content: in.Content}
	if old, ok := arthik.FindNote(c.env.Store.Notes(), c.env.Store.EditingNoteID()); ok && old.ID != "" {
		n.ID, n.Created = old.ID, old.Created
	} else {
		n.Created = c.env.localNow().Format(CreatedLayout)
	}
	if err := c.env.API.SaveNote(ctx, n); err != nil {
		c.env.fail("Failed to save note", err)
		return false
	}
	c.env.Store.SetEditingNoteID("")
	c.env.reload(ctx, c.load())
	return true
}

// Delete deletes the note id, once confirmed.
func (c *Notes) Delete(ctx context.Context, id string) bool {
	if !c.env.UI.Confirm("Are you sure you want to delete this note?") {
		return false
	}
	if err := c.env.API.DeleteNote(ctx, id); err != nil {
		c.env.fail("Failed to delete note", err)
		return false
	}
	if c.env.Store.EditingNoteID() == id {
		c.env.Store.SetEditingNoteID("")
	}
	c.env.reload(ctx, c.load())
	return true
}
