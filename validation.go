package arthik

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/etnz/arthik/date"
	"github.com/shopspring/decimal"
)

// Input limits enforced before anything is sent to the backend.
const (
	MaxInputLength       = 500
	MaxDescriptionLength = 1000
	MaxNoteContentLength = 2 * MaxDescriptionLength
	MinPasswordLength    = 6
)

// MaxAmount is the largest amount accepted in a form.
var MaxAmount = M(decimal.RequireFromString("999999999.99"))

// InputError is a precondition failure of a form: caught locally, shown as
// is, never sent to the backend.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string { return e.Message }

func invalid(field, format string, args ...any) error {
	return &InputError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ValidateInput trims s and checks it is present and at most max characters long.
func ValidateInput(field, s string, max int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid(field, "Input is required")
	}
	if utf8.RuneCountInString(s) > max {
		return "", invalid(field, "Input exceeds maximum length of %d characters", max)
	}
	return s, nil
}

// ParseAmount parses a typed amount, reporting failures as an InputError.
func ParseAmount(field, s string) (Money, error) {
	m, err := ParseMoney(strings.TrimSpace(s))
	if err != nil {
		return Money{}, invalid(field, "Invalid amount")
	}
	return m, nil
}

// ValidateAmount checks 0 <= m <= MaxAmount.
func ValidateAmount(field string, m Money) error {
	if m.IsNegative() {
		return invalid(field, "Amount cannot be negative")
	}
	if m.GreaterThan(MaxAmount) {
		return invalid(field, "Amount exceeds maximum allowed value")
	}
	return nil
}

// ValidateTransaction returns a copy of in with the description trimmed, or the first validation failure.
func ValidateTransaction(in TransactionInput) (TransactionInput, error) {
	if in.From == "" {
		return in, invalid("from", "Please select From account")
	}
	if in.To == "" {
		return in, invalid("to", "Please select To account")
	}
	if err := ValidateAmount("amount", in.Amount); err != nil {
		return in, err
	}
	desc, err := ValidateInput("description", in.Description, MaxDescriptionLength)
	if err != nil {
		return in, err
	}
	in.Description = desc
	if in.Date == "" || in.Time == "" {
		return in, invalid("date", "Please select date and time")
	}
	if _, err := in.At(time.UTC); err != nil {
		return in, invalid("date", "Please select date and time")
	}
	return in, nil
}

// ValidateAccount returns a normalized copy of a, or the first validation failure.
func ValidateAccount(a Account) (Account, error) {
	name, err := ValidateInput("name", a.Name, MaxInputLength)
	if err != nil {
		return a, err
	}
	a.Name = name
	if a.Category == "" {
		return a, invalid("category", "Please select account type")
	}
	if _, err := ParseCategory(string(a.Category)); err != nil {
		return a, invalid("category", "Please select account type")
	}
	if !a.Budget.IsZero() {
		if err := ValidateAmount("budget", a.Budget); err != nil {
			return a, err
		}
	}
	return a.Normalize(), nil
}

// ValidateRecurrence returns a copy of in with the description trimmed, or the first validation failure.
func ValidateRecurrence(in RecurrenceInput) (RecurrenceInput, error) {
	if in.DayOfMonth < 1 || in.DayOfMonth > 31 {
		return in, invalid("dayOfMonth", "Please enter a valid day of month (1-31)")
	}
	if in.From == "" || in.To == "" {
		return in, invalid("from", "Please select both From and To accounts")
	}
	desc, err := ValidateInput("description", in.Description, MaxDescriptionLength)
	if err != nil {
		return in, err
	}
	in.Description = desc
	if err := ValidateAmount("amount", in.Amount); err != nil {
		return in, err
	}
	return in, nil
}

// ValidateNote returns a trimmed copy of in, or the first validation failure.
func ValidateNote(in NoteInput) (NoteInput, error) {
	heading, err := ValidateInput("heading", in.Heading, MaxInputLength)
	if err != nil {
		return in, err
	}
	content, err := ValidateInput("content", in.Content, MaxNoteContentLength)
	if err != nil {
		return in, err
	}
	return NoteInput{Heading: heading, Content: content}, nil
}

// ValidatePassword checks a new password against its confirmation.
func ValidatePassword(newPassword, confirm string) error {
	if newPassword != confirm {
		return invalid("newPassword", "New passwords do not match!")
	}
	if utf8.RuneCountInString(newPassword) < MinPasswordLength {
		return invalid("newPassword", "Password must be at least %d characters long", MinPasswordLength)
	}
	return nil
}

// ValidateDate parses an optional form date; the empty string is the zero Date.
func ValidateDate(field, s string) (date.Date, error) {
	if strings.TrimSpace(s) == "" {
		return date.Date{}, nil
	}
	d, err := date.Parse(s)
	if err != nil {
		return date.Date{}, invalid(field, "Invalid date %q, use YYYY-MM-DD", s)
	}
	return d, nil
}
