// Package moneyfmt formats monetary figures and rates. It sits below both
// the render and integrity packages so each can use it without importing
// the other.
package moneyfmt

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Money formats a figure (thousands of dollars in source documents) with
// grouped digits, e.g. -1234.5 -> "-$1,234.5".
func Money(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = math.Abs(v)
	}
	return printer.Sprintf("%s$%v", sign, number.Decimal(v,
		number.MaxFractionDigits(1),
		number.MinFractionDigits(0),
	))
}

// Percent formats a rate such as 0.0675 as "6.75%".
func Percent(v float64) string {
	return printer.Sprintf("%v%%", number.Decimal(v*100,
		number.MaxFractionDigits(2),
		number.MinFractionDigits(0),
	))
}
