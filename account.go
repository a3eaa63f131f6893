package arthik

import (
	"fmt"

	"github.com/etnz/arthik/date"
)

// Category is the accounting class of an Account. The set is closed.
type Category string

const (
	Assets      Category = "Assets"
	Liabilities Category = "Liabilities"
	Equity      Category = "Equity"
	Revenue     Category = "Revenue"
	Expenses    Category = "Expenses"
)

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{Assets, Liabilities, Equity, Revenue, Expenses}
}

// ParseCategory returns the Category named s.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown account category %q", s)
}

// Account is a named account. Its name is its identity.
// CurrentBalance is computed by the backend and never locally.
type Account struct {
	Name              string    `json:"name"`
	Category          Category  `json:"category"`
	IncludeInNetWorth bool      `json:"includeInNetWorth"`
	CurrentBalance    Money     `json:"currentBalance"`
	DueDate           date.Date `json:"dueDate,omitzero"`         // Liabilities only
	LastPaymentDate   date.Date `json:"lastPaymentDate,omitzero"` // Liabilities only
	Budget            Money     `json:"budget,omitzero"`          // Expenses only
}

// Normalize returns a copy of a where the fields its category does not carry are cleared.
func (a Account) Normalize() Account {
	if a.Category != Liabilities {
		a.DueDate = date.Date{}
		a.LastPaymentDate = date.Date{}
	}
	if a.Category != Expenses {
		a.Budget = Money{}
	}
	return a
}

// Option returns the label of a in account pickers, i.e. "Cash (Assets)".
func (a Account) Option() string { return fmt.Sprintf("%s (%s)", a.Name, a.Category) }

// AccountEdit holds the fields that can be changed in an account edit form.
// Category and balance are carried over from the stored record.
type AccountEdit struct {
	Name              string
	IncludeInNetWorth bool
	DueDate           date.Date
	LastPaymentDate   date.Date
	Budget            Money
}

// Edit returns the edit form of a, prefilled from the stored record.
func (a Account) Edit() AccountEdit {
	return AccountEdit{
		Name:              a.Name,
		IncludeInNetWorth: a.IncludeInNetWorth,
		DueDate:           a.DueDate,
		LastPaymentDate:   a.LastPaymentDate,
		Budget:            a.Budget,
	}
}

// Apply returns the account resulting from applying e to a.
func (e AccountEdit) Apply(a Account) Account {
	a.Name = e.Name
	a.IncludeInNetWorth = e.IncludeInNetWorth
	switch a.Category {
	case Liabilities:
		a.DueDate = e.DueDate
		a.LastPaymentDate = e.LastPaymentDate
	case Expenses:
		a.Budget = e.Budget
	}
	return a.Normalize()
}

// FindAccount returns the account named name.
func FindAccount(accounts []Account, name string) (Account, bool) {
	for _, a := range accounts {
		if a.Name == name {
			return a, true
		}
	}
	return Account{}, false
}
