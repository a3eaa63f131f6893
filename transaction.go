package arthik

import (
	"time"

	"github.com/etnz/arthik/date"
)

// Transaction moves Amount from one account to another.
// Transactions are replaced as a whole, by ID.
type Transaction struct {
	ID          string    `json:"id"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Description string    `json:"description"`
	Amount      Money     `json:"amount"`
	Date        time.Time `json:"date"`
}

// Input returns the edit form of t, prefilled in t's own location.
func (t Transaction) Input() TransactionInput {
	return TransactionInput{
		ID:          t.ID,
		From:        t.From,
		To:          t.To,
		Description: t.Description,
		Amount:      t.Amount,
		Date:        t.Date.Format(date.DateFormat),
		Time:        t.Date.Format(date.TimeFormat),
	}
}

// TransactionInput is the write form of a Transaction.
// An empty ID creates a new transaction, otherwise it replaces the one with that ID.
type TransactionInput struct {
	ID          string `json:"id"`
	From        string `json:"from"`
	To          string `json:"to"`
	Description string `json:"description"`
	Amount      Money  `json:"amount"`
	Date        string `json:"date"` // YYYY-MM-DD
	Time        string `json:"time"` // HH:MM
}

// At returns the instant described by the date and time fields, in loc.
func (in TransactionInput) At(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(date.DateFormat+" "+date.TimeFormat, in.Date+" "+in.Time, loc)
}

// NewTransactionInput returns an empty form with date and time set to now.
func NewTransactionInput(now time.Time) TransactionInput {
	return TransactionInput{
		Date: now.Format(date.DateFormat),
		Time: now.Format(date.TimeFormat),
	}
}
