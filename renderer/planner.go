package renderer

import (
	"bytes"
	"strconv"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/state"
	md "github.com/nao1215/markdown"
)

// Planner renders recurring transfers and notes.
func Planner(snap state.Snapshot, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Planner")
	doc.PlainText("")
	doc.PlainText(Recurrences(snap, opts))
	doc.PlainText(Notes(snap, opts))
	return doc.String()
}

// Recurrences renders the recurring transfers.
func Recurrences(snap state.Snapshot, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Recurring transfers")
	doc.PlainText("")
	if len(snap.Recurrences) == 0 {
		doc.PlainText("No recurring transfers yet.")
		doc.PlainText("")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignLeft,
			md.AlignLeft,
		},
		Header: []string{"Day", "From", "To", "Description", "Amount", "Next", "ID"},
		Rows:   [][]string{},
	}
	var editing *arthik.Recurrence
	for _, r := range snap.Recurrences {
		id := r.ID
		if r.ID == snap.EditingRecurrenceID {
			id = "✎ " + id
			editing = &r
		}
		table.Rows = append(table.Rows, cells(
			strconv.Itoa(r.DayOfMonth),
			r.From,
			r.To,
			r.Description,
			opts.Money(r.Amount),
			r.NextDate.String(),
			id,
		))
	}
	doc.Table(table)
	if editing != nil {
		doc.H3f("Editing recurring transfer %s", inline(editing.ID))
		doc.PlainText("")
		doc.BulletList(
			"Day of month: "+strconv.Itoa(editing.DayOfMonth),
			"From: "+inline(editing.From),
			"To: "+inline(editing.To),
			"Description: "+inline(editing.Description),
			"Amount: "+opts.Money(editing.Amount),
		)
		doc.PlainText("")
	}
	return doc.String()
}

// Notes renders the notes, followed by the note form. The content of a note
// is quoted as text.
func Notes(snap state.Snapshot, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Notes")
	doc.PlainText("")
	if len(snap.Notes) == 0 {
		doc.PlainText("No notes yet.")
		doc.PlainText("")
	}
	for _, n := range snap.Notes {
		heading := inline(n.Heading)
		if n.ID == snap.EditingNoteID {
			heading = "✎ " + heading
		}
		doc.H3(heading)
		doc.PlainText("")
		if t, ok := n.CreatedAt(); ok {
			doc.PlainText(md.Italic(t.In(opts.location()).Format(DateTimeLayout)))
			doc.PlainText("")
		}
		doc.Blockquote(literal(n.Content))
		doc.PlainText("")
	}
	doc.PlainText(NoteForm(snap))
	return doc.String()
}

// NoteForm renders the note form: prefilled with the note marked for edition,
// or empty for a new note. A marker naming a note that no longer exists
// renders the empty form.
func NoteForm(snap state.Snapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	n, ok := arthik.FindNote(snap.Notes, snap.EditingNoteID)
	if snap.EditingNoteID == "" || !ok {
		doc.H3("New note")
		doc.PlainText("")
		return doc.String()
	}
	doc.H3f("Editing note %s", inline(n.ID))
	doc.PlainText("")
	doc.BulletList(
		"Heading: "+inline(n.Heading),
		"Content: "+inline(n.Content),
	)
	doc.PlainText("")
	return doc.String()
}
