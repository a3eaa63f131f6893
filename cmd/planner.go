package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/arthik"
	"github.com/google/subcommands"
)

// recurrenceFlags are the fields of a recurring transaction form.
type recurrenceFlags struct {
	day         int
	from, to    string
	amount      string
	description string
}

func (c *recurrenceFlags) set(f *flag.FlagSet) {
	f.IntVar(&c.day, "day", 0, "Day of the month, 1-31")
	f.StringVar(&c.from, "from", "", "Account the amount is taken from")
	f.StringVar(&c.to, "to", "", "Account the amount goes to")
	f.StringVar(&c.amount, "a", "", "Amount, i.e. 12.50")
	f.StringVar(&c.description, "m", "", "Description")
}

// apply overrides in with the flags set on f.
func (c *recurrenceFlags) apply(f *flag.FlagSet, in arthik.RecurrenceInput) (arthik.RecurrenceInput, error) {
	var err error
	f.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "day":
			in.DayOfMonth = c.day
		case "from":
			in.From = c.from
		case "to":
			in.To = c.to
		case "a":
			in.Amount, err = arthik.ParseAmount("amount", c.amount)
		case "m":
			in.Description = c.description
		}
	})
	return in, err
}

type recurrenceAddCmd struct{ recurrenceFlags }

func (*recurrenceAddCmd) Name() string     { return "recurrence-add" }
func (*recurrenceAddCmd) Synopsis() string { return "add a monthly recurring transaction" }
func (*recurrenceAddCmd) Usage() string {
	return `arthik recurrence-add -day <n> -from <account> -to <account> -a <amount> -m <description>

  Adds a transfer repeated every month on the given day. It is first due on
  the next occurrence of that day.
`
}

func (c *recurrenceAddCmd) SetFlags(f *flag.FlagSet) { c.recurrenceFlags.set(f) }

func (c *recurrenceAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, err := c.apply(f, arthik.RecurrenceInput{})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	ctrl, ui, done := open()
	defer done()
	if !authenticated(ctrl) || !ctrl.Recurrences.Create(ctx, in) {
		return subcommands.ExitFailure
	}
	return showPlanner(ctx, ctrl, ui)
}

type recurrenceEditCmd struct{ recurrenceFlags }

func (*recurrenceEditCmd) Name() string     { return "recurrence-edit" }
func (*recurrenceEditCmd) Synopsis() string { return "change a recurring transaction" }
func (*recurrenceEditCmd) Usage() string {
	return `arthik recurrence-edit [-day <n>] [-from <account>] [-to <account>] [-a <amount>] [-m <description>] <id>

  Changes the given fields of a recurring transaction. Its next date is
  computed again from today.
`
}

func (c *recurrenceEditCmd) SetFlags(f *flag.FlagSet) { c.recurrenceFlags.set(f) }

func (c *recurrenceEditCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)
	ctrl, ui, done := open()
	defer done()
	if !authenticated(ctrl) || !ctrl.Recurrences.Load(ctx) {
		return subcommands.ExitFailure
	}
	var current *arthik.Recurrence
	for _, r := range ctrl.Env.Store.Recurrences() {
		if r.ID == id {
			current = &r
			break
		}
	}
	if current == nil {
		fmt.Fprintf(stderr, "Error: no recurring transaction %q\n", id)
		return subcommands.ExitFailure
	}
	in, err := c.apply(f, current.Input())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if !ctrl.Recurrences.SaveEdit(ctx, id, in) {
		return subcommands.ExitFailure
	}
	return showPlanner(ctx, ctrl, ui)
}

type recurrenceApplyCmd struct{}

func (*recurrenceApplyCmd) Name() string     { return "recurrence-apply" }
func (*recurrenceApplyCmd) Synopsis() string { return "record the transaction of a recurring transaction now" }
func (*recurrenceApplyCmd) Usage() string {
	return `arthik recurrence-apply <id>

  Records the transaction of a recurring transaction now, after confirmation.
`
}

func (c *recurrenceApplyCmd) SetFlags(f *flag.FlagSet) {}

func (c *recurrenceApplyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	ctrl, _, done := open()
	defer done()
	if !authenticated(ctrl) {
		return subcommands.ExitFailure
	}
	return status(ctrl.Recurrences.Apply(ctx, f.Arg(0)))
}

type recurrenceDeleteCmd struct{}

func (*recurrenceDeleteCmd) Name() string     { return "recurrence-delete" }
func (*recurrenceDeleteCmd) Synopsis() string { return "delete a recurring transaction" }
func (*recurrenceDeleteCmd) Usage() string {
	return `arthik recurrence-delete <id>

  Deletes a recurring transaction, after confirmation.
`
}

func (c *recurrenceDeleteCmd) SetFlags(f *flag.FlagSet) {}

func (c *recurrenceDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	ctrl, _, done := open()
	defer done()
	if !authenticated(ctrl) {
		return subcommands.ExitFailure
	}
	return status(ctrl.Recurrences.Delete(ctx, f.Arg(0)))
}

type noteFlags struct {
	heading, content string
}

func (c *noteFlags) set(f *flag.FlagSet) {
	f.StringVar(&c.heading, "h", "", "Heading of the note")
	f.StringVar(&c.content, "m", "", "Content of the note")
}

func (c *noteFlags) apply(f *flag.FlagSet, in arthik.NoteInput) arthik.NoteInput {
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "h":
			in.Heading = c.heading
		case "m":
			in.Content = c.content
		}
	})
	return in
}

type noteAddCmd struct{ noteFlags }

func (*noteAddCmd) Name() string     { return "note-add" }
func (*noteAddCmd) Synopsis() string { return "write a planner note" }
func (*noteAddCmd) Usage() string {
	return `arthik note-add -h <heading> -m <content>

  Writes a new note in the planner.
`
}

func (c *noteAddCmd) SetFlags(f *flag.FlagSet) { c.noteFlags.set(f) }

func (c *noteAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctrl, ui, done := open()
	defer done()
	if !authenticated(ctrl) {
		return subcommands.ExitFailure
	}
	ctrl.Notes.New()
	if !ctrl.Notes.Save(ctx, c.apply(f, arthik.NoteInput{})) {
		return subcommands.ExitFailure
	}
	return showPlanner(ctx, ctrl, ui)
}

type noteEditCmd struct{ noteFlags }

func (*noteEditCmd) Name() string     { return "note-edit" }
func (*noteEditCmd) Synopsis() string { return "change a planner note" }
func (*noteEditCmd) Usage() string {
	return `arthik note-edit [-h <heading>] [-m <content>] <id>

  Changes the heading or the content of a note. Its creation time is kept.
`
}

func (c *noteEditCmd) SetFlags(f *flag.FlagSet) { c.noteFlags.set(f) }

func (c *noteEditCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)
	ctrl, ui, done := open()
	defer done()
	if !authenticated(ctrl) || !ctrl.Notes.Load(ctx) {
		return subcommands.ExitFailure
	}
	note, ok := arthik.FindNote(ctrl.Env.Store.Notes(), id)
	if !ok {
		fmt.Fprintf(stderr, "Error: no note %q\n", id)
		return subcommands.ExitFailure
	}
	ctrl.Notes.Edit(id)
	in := c.apply(f, arthik.NoteInput{Heading: note.Heading, Content: note.Content})
	if !ctrl.Notes.Save(ctx, in) {
		return subcommands.ExitFailure
	}
	return showPlanner(ctx, ctrl, ui)
}

type noteDeleteCmd struct{}

func (*noteDeleteCmd) Name() string     { return "note-delete" }
func (*noteDeleteCmd) Synopsis() string { return "delete a planner note" }
func (*noteDeleteCmd) Usage() string {
	return `arthik note-delete <id>

  Deletes a note, after confirmation.
`
}

func (c *noteDeleteCmd) SetFlags(f *flag.FlagSet) {}

func (c *noteDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	ctrl, _, done := open()
	defer done()
	if !authenticated(ctrl) {
		return subcommands.ExitFailure
	}
	return status(ctrl.Notes.Delete(ctx, f.Arg(0)))
}
