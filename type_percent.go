package arthik

import "fmt"

// Percent is a display-only ratio expressed in percent.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.1f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.1f%%", p)
	if res == "+0.0%" || res == "-0.0%" {
		return "0.0%"
	}
	return res
}
