package nav

import (
	"context"
	"fmt"

	"github.com/etnz/arthik"
)

// Kind is the kind of an Action.
type Kind int

const (
	ShowTab Kind = iota
	NextTab
	PreviousTab
	NextPage
	PreviousPage
	Reload

	CreateTransaction
	EditTransaction
	SaveTransaction
	CancelTransaction
	DeleteTransaction

	CreateAccount
	EditAccount
	SaveAccount
	CancelAccount
	DeleteAccount

	CreateRecurrence
	EditRecurrence
	SaveRecurrence
	CancelRecurrence
	DeleteRecurrence
	ApplyRecurrence

	NewNote
	EditNote
	SaveNote
	CancelNote
	DeleteNote

	Login
	Logout

	SetTheme
	ToggleHideAmounts
	ToggleDarkMode
	SetAccent
	ChangePassword
	ResetPreferences

	Resize

	numKinds // keep last
)

var kindNames = [numKinds]string{
	ShowTab:           "show-tab",
	NextTab:           "next-tab",
	PreviousTab:       "previous-tab",
	NextPage:          "next-page",
	PreviousPage:      "previous-page",
	Reload:            "reload",
	CreateTransaction: "create-transaction",
	EditTransaction:   "edit-transaction",
	SaveTransaction:   "save-transaction",
	CancelTransaction: "cancel-transaction",
	DeleteTransaction: "delete-transaction",
	CreateAccount:     "create-account",
	EditAccount:       "edit-account",
	SaveAccount:       "save-account",
	CancelAccount:     "cancel-account",
	DeleteAccount:     "delete-account",
	CreateRecurrence:  "create-recurrence",
	EditRecurrence:    "edit-recurrence",
	SaveRecurrence:    "save-recurrence",
	CancelRecurrence:  "cancel-recurrence",
	DeleteRecurrence:  "delete-recurrence",
	ApplyRecurrence:   "apply-recurrence",
	NewNote:           "new-note",
	EditNote:          "edit-note",
	SaveNote:          "save-note",
	CancelNote:        "cancel-note",
	DeleteNote:        "delete-note",
	Login:             "login",
	Logout:            "logout",
	SetTheme:          "set-theme",
	ToggleHideAmounts: "toggle-hide-amounts",
	ToggleDarkMode:    "toggle-dark-mode",
	SetAccent:         "set-accent",
	ChangePassword:    "change-password",
	ResetPreferences:  "reset-preferences",
	Resize:            "resize",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Action is a user action and its payload. Only the fields of its Kind are read.
type Action struct {
	Kind Kind

	Tab arthik.Tab // ShowTab
	// ID is the transaction, recurrence or note id, or the account name, of
	// the edit, save, delete and apply actions.
	ID string

	Transaction arthik.TransactionInput
	Account     arthik.Account     // CreateAccount
	AccountEdit arthik.AccountEdit // SaveAccount
	Recurrence  arthik.RecurrenceInput
	Note        arthik.NoteInput

	// Text is the password of Login, the theme of SetTheme, the accent of SetAccent.
	Text string
	// Passwords are the old, new and confirmed passwords of ChangePassword.
	Passwords [3]string

	Width int // Resize
}

// Dispatch routes a to its handler and reports whether it went through.
func (n *Navigator) Dispatch(ctx context.Context, a Action) bool {
	c := n.c
	switch a.Kind {
	case ShowTab:
		return n.Show(ctx, a.Tab)
	case NextTab:
		return n.Cycle(ctx, 1)
	case PreviousTab:
		return n.Cycle(ctx, -1)
	case NextPage:
		return c.Transactions.ChangePage(1)
	case PreviousPage:
		return c.Transactions.ChangePage(-1)
	case Reload:
		return n.Show(ctx, n.c.Env.Store.ActiveTab())

	case CreateTransaction:
		return c.Transactions.Create(ctx, a.Transaction)
	case EditTransaction:
		c.Transactions.Edit(a.ID)
		return true
	case SaveTransaction:
		return c.Transactions.SaveEdit(ctx, a.ID, a.Transaction)
	case CancelTransaction:
		c.Transactions.Cancel()
		return true
	case DeleteTransaction:
		return c.Transactions.Delete(ctx, a.ID)

	case CreateAccount:
		return c.Accounts.Create(ctx, a.Account)
	case EditAccount:
		c.Accounts.Edit(a.ID)
		return true
	case SaveAccount:
		return c.Accounts.SaveEdit(ctx, a.ID, a.AccountEdit)
	case CancelAccount:
		c.Accounts.Cancel()
		return true
	case DeleteAccount:
		return c.Accounts.Delete(ctx, a.ID)

	case CreateRecurrence:
		return c.Recurrences.Create(ctx, a.Recurrence)
	case EditRecurrence:
		c.Recurrences.Edit(a.ID)
		return true
	case SaveRecurrence:
		return c.Recurrences.SaveEdit(ctx, a.ID, a.Recurrence)
	case CancelRecurrence:
		c.Recurrences.Cancel()
		return true
	case DeleteRecurrence:
		return c.Recurrences.Delete(ctx, a.ID)
	case ApplyRecurrence:
		return c.Recurrences.Apply(ctx, a.ID)

	case NewNote:
		c.Notes.New()
		return true
	case EditNote:
		c.Notes.Edit(a.ID)
		return true
	case SaveNote:
		return c.Notes.Save(ctx, a.Note)
	case CancelNote:
		c.Notes.Cancel()
		return true
	case DeleteNote:
		return c.Notes.Delete(ctx, a.ID)

	case Login:
		return c.Session.Login(ctx, a.Text)
	case Logout:
		return c.Session.Logout()

	case SetTheme:
		return c.Settings.SetTheme(ctx, a.Text)
	case ToggleHideAmounts:
		return n.rerender(c.Settings.SetHideAmounts(!c.Settings.Preferences().HideAmounts))
	case ToggleDarkMode:
		return c.Settings.SetDarkMode(!c.Settings.Preferences().DarkMode)
	case SetAccent:
		return c.Settings.SetAccent(a.Text)
	case ChangePassword:
		return c.Settings.ChangePassword(ctx, a.Passwords[0], a.Passwords[1], a.Passwords[2])
	case ResetPreferences:
		return n.rerender(c.Settings.ResetPreferences())

	case Resize:
		n.Resized(a.Width)
		return true
	}
	n.c.Env.Logger.Error().Stringer("kind", a.Kind).Msg("unknown action")
	return false
}

// rerender renders the active view again if ok.
func (n *Navigator) rerender(ok bool) bool {
	if ok {
		n.Render()
	}
	return ok
}
