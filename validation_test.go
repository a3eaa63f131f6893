package arthik

import (
	"errors"
	"strings"
	"testing"
)

func validTransaction() TransactionInput {
	return TransactionInput{
		From:        "Bank Account",
		To:          "Food & Dining",
		Description: "groceries",
		Amount:      M(250.5),
		Date:        "2024-03-20",
		Time:        "18:30",
	}
}

func TestValidateTransaction(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(*TransactionInput)
		wantErr string
	}{
		{"valid", func(*TransactionInput) {}, ""},
		{"negative", func(in *TransactionInput) { in.Amount = M(-5) }, "Amount cannot be negative"},
		{"too large", func(in *TransactionInput) { in.Amount = M(1000000000) }, "Amount exceeds maximum allowed value"},
		{"max", func(in *TransactionInput) { in.Amount = MaxAmount }, ""},
		{"zero", func(in *TransactionInput) { in.Amount = M(0) }, ""},
		{"description 1001", func(in *TransactionInput) { in.Description = strings.Repeat("x", 1001) }, "Input exceeds maximum length of 1000 characters"},
		{"description 1000", func(in *TransactionInput) { in.Description = strings.Repeat("x", 1000) }, ""},
		{"blank description", func(in *TransactionInput) { in.Description = "   " }, "Input is required"},
		{"no from", func(in *TransactionInput) { in.From = "" }, "Please select From account"},
		{"no to", func(in *TransactionInput) { in.To = "" }, "Please select To account"},
		{"no time", func(in *TransactionInput) { in.Time = "" }, "Please select date and time"},
		{"bad date", func(in *TransactionInput) { in.Date = "20/03/2024" }, "Please select date and time"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			in := validTransaction()
			test.edit(&in)
			_, err := ValidateTransaction(in)
			if test.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateTransaction() unexpected error: %v", err)
				}
				return
			}
			var inputErr *InputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("ValidateTransaction() error = %v; want an *InputError", err)
			}
			if inputErr.Message != test.wantErr {
				t.Errorf("ValidateTransaction() error = %q; want %q", inputErr.Message, test.wantErr)
			}
		})
	}
}

func TestValidateTransactionTrims(t *testing.T) {
	in := validTransaction()
	in.Description = "  rent  "
	got, err := ValidateTransaction(in)
	if err != nil {
		t.Fatalf("ValidateTransaction() unexpected error: %v", err)
	}
	if got.Description != "rent" {
		t.Errorf("ValidateTransaction().Description = %q; want %q", got.Description, "rent")
	}
}

func TestValidateAccount(t *testing.T) {
	acc, err := ValidateAccount(Account{Name: " Groceries ", Category: Expenses, Budget: M(300), DueDate: MustDate("2024-01-01")})
	if err != nil {
		t.Fatalf("ValidateAccount() unexpected error: %v", err)
	}
	if acc.Name != "Groceries" {
		t.Errorf("ValidateAccount().Name = %q", acc.Name)
	}
	if !acc.DueDate.IsZero() {
		t.Errorf("ValidateAccount() kept a due date on an Expenses account")
	}
	if !acc.Budget.Equal(M(300)) {
		t.Errorf("ValidateAccount().Budget = %v; want 300", acc.Budget)
	}

	if _, err := ValidateAccount(Account{Name: "x", Category: "Savings"}); err == nil {
		t.Errorf("ValidateAccount() accepted an unknown category")
	}
	if _, err := ValidateAccount(Account{Name: "x", Category: Expenses, Budget: M(-1)}); err == nil {
		t.Errorf("ValidateAccount() accepted a negative budget")
	}
	if _, err := ValidateAccount(Account{Name: strings.Repeat("n", 501), Category: Assets}); err == nil {
		t.Errorf("ValidateAccount() accepted a 501 characters name")
	}
}

func TestValidateRecurrence(t *testing.T) {
	valid := RecurrenceInput{DayOfMonth: 15, From: "Bank Account", To: "Rent", Description: "rent", Amount: M(1200)}
	if _, err := ValidateRecurrence(valid); err != nil {
		t.Errorf("ValidateRecurrence() unexpected error: %v", err)
	}
	for _, day := range []int{0, 32, -1} {
		in := valid
		in.DayOfMonth = day
		if _, err := ValidateRecurrence(in); err == nil {
			t.Errorf("ValidateRecurrence() accepted day %d", day)
		}
	}
	in := valid
	in.To = ""
	if _, err := ValidateRecurrence(in); err == nil {
		t.Errorf("ValidateRecurrence() accepted a missing To account")
	}
}

func TestValidateNote(t *testing.T) {
	if _, err := ValidateNote(NoteInput{Heading: "ideas", Content: strings.Repeat("c", 2000)}); err != nil {
		t.Errorf("ValidateNote() unexpected error: %v", err)
	}
	if _, err := ValidateNote(NoteInput{Heading: "ideas", Content: strings.Repeat("c", 2001)}); err == nil {
		t.Errorf("ValidateNote() accepted 2001 characters of content")
	}
	if _, err := ValidateNote(NoteInput{Heading: strings.Repeat("h", 501), Content: "c"}); err == nil {
		t.Errorf("ValidateNote() accepted a 501 characters heading")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("secret1", "secret2"); err == nil {
		t.Errorf("ValidatePassword() accepted a mismatch")
	}
	if err := ValidatePassword("abc", "abc"); err == nil {
		t.Errorf("ValidatePassword() accepted a short password")
	}
	if err := ValidatePassword("secret", "secret"); err != nil {
		t.Errorf("ValidatePassword() unexpected error: %v", err)
	}
}

func TestParseAmount(t *testing.T) {
	if _, err := ParseAmount("amount", "12,5"); err == nil {
		t.Errorf("ParseAmount() accepted %q", "12,5")
	}
	m, err := ParseAmount("amount", " 12.50 ")
	if err != nil {
		t.Fatalf("ParseAmount() unexpected error: %v", err)
	}
	if !m.Equal(M(12.5)) {
		t.Errorf("ParseAmount() = %v; want 12.50", m)
	}
}
