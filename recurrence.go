package arthik

import "github.com/etnz/arthik/date"

// Recurrence is a monthly transfer template. Applying it asks the backend to
// materialize one Transaction from it.
type Recurrence struct {
	ID          string    `json:"id"`
	DayOfMonth  int       `json:"dayOfMonth"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Description string    `json:"description"`
	Amount      Money     `json:"amount"`
	NextDate    date.Date `json:"nextDate"`
}

// RecurrenceInput is the creation form of a Recurrence.
type RecurrenceInput struct {
	DayOfMonth  int
	From        string
	To          string
	Description string
	Amount      Money
}

// Recurrence returns the new recurrence described by in, scheduled for the
// next occurrence of its day of month on or after today.
func (in RecurrenceInput) Recurrence(today date.Date) Recurrence {
	return Recurrence{
		DayOfMonth:  in.DayOfMonth,
		From:        in.From,
		To:          in.To,
		Description: in.Description,
		Amount:      in.Amount,
		NextDate:    date.NextDayOfMonth(today, in.DayOfMonth),
	}
}

// Input returns the edit form of r.
func (r Recurrence) Input() RecurrenceInput {
	return RecurrenceInput{
		DayOfMonth:  r.DayOfMonth,
		From:        r.From,
		To:          r.To,
		Description: r.Description,
		Amount:      r.Amount,
	}
}
