// Package renderer maps the application state to markdown views.
//
// Every function here is pure: it reads a state.Snapshot (or a payload) and
// returns the text to display. Nothing is fetched and nothing is stored.
package renderer

import (
	"time"

	"github.com/etnz/arthik"
)

// Hidden replaces every amount when amounts are hidden.
const Hidden = "••••"

// Options are the display settings of a rendering.
type Options struct {
	Currency    string // ISO code, arthik.DefaultCurrency when empty
	HideAmounts bool
	Location    *time.Location // of displayed dates, UTC when nil
}

// Money formats m in the display currency.
func (o Options) Money(m arthik.Money) string {
	if o.HideAmounts {
		return Hidden
	}
	return m.Format(o.Currency)
}

// Percent formats p, hidden like amounts.
func (o Options) Percent(p arthik.Percent) string {
	if o.HideAmounts {
		return Hidden
	}
	return p.String()
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
