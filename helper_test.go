package arthik

import "github.com/etnz/arthik/date"

// MustDate is a helper for test to create dates from const
func MustDate(s string) date.Date { return date.MustParse(s) }

// INR is a helper for test to create money from const
func INR(v float64) Money { return M(v) }
