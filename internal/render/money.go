// Package render formats extraction values and integrity findings for
// terminal output.
package render

import (
	"github.com/sells-group/dealdesk-cli/internal/moneyfmt"
)

// Money formats a figure (thousands of dollars in source documents) with
// grouped digits, e.g. -1234.5 -> "-$1,234.5".
func Money(v float64) string {
	return moneyfmt.Money(v)
}

// Percent formats a rate such as 0.0675 as "6.75%".
func Percent(v float64) string {
	return moneyfmt.Percent(v)
}
