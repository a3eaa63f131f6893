package arthik

import (
	"encoding/json"
	"testing"
)

func TestMoneyJSON(t *testing.T) {
	acc := Account{Name: "Cash", Category: Assets, IncludeInNetWorth: true, CurrentBalance: INR(12.5)}
	data, err := json.Marshal(acc)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	want := `{"name":"Cash","category":"Assets","includeInNetWorth":true,"currentBalance":12.5}`
	if string(data) != want {
		t.Errorf("Marshal() = %s; want %s", data, want)
	}

	var got Account
	if err := json.Unmarshal([]byte(`{"name":"Card","category":"Liabilities","currentBalance":"-3.10","dueDate":"2024-05-01","budget":null}`), &got); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	if !got.CurrentBalance.Equal(INR(-3.1)) || got.DueDate != MustDate("2024-05-01") || !got.Budget.IsZero() {
		t.Errorf("Unmarshal() = %+v", got)
	}
}

func TestMoneyFormat(t *testing.T) {
	tests := []struct {
		m    Money
		cur  string
		want string
	}{
		{INR(1234.5), "USD", "$1,234.50"},
		{INR(-20), "USD", "-$20.00"},
		{INR(0.004), "USD", "$0.00"},
	}
	for _, test := range tests {
		if got := test.m.Format(test.cur); got != test.want {
			t.Errorf("%v.Format(%q) = %q; want %q", test.m, test.cur, got, test.want)
		}
	}
	if got := INR(2).String(); got != "2.00" {
		t.Errorf("String() = %q; want %q", got, "2.00")
	}
}

func TestPercentString(t *testing.T) {
	if got := Percent(12.345).String(); got != "12.3%" {
		t.Errorf("String() = %q", got)
	}
	if got := Percent(-0.01).SignedString(); got != "0.0%" {
		t.Errorf("SignedString() = %q", got)
	}
	if got := Percent(4).SignedString(); got != "+4.0%" {
		t.Errorf("SignedString() = %q", got)
	}
}
