package utils

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.AmericanEnglish)

// RoundWhole rounds half up to a whole currency unit, so -2.5 becomes -2.
func RoundWhole(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

// FormatMoney renders a whole-dollar amount with thousands separators, e.g. "$191,587".
func FormatMoney(v float64) string {
	n := RoundWhole(v)
	if n < 0 {
		return moneyPrinter.Sprintf("-$%d", -n)
	}
	return moneyPrinter.Sprintf("$%d", n)
}

// FormatRange renders "low – high" for display.
func FormatRange(low, high float64) string {
	return FormatMoney(low) + " – " + FormatMoney(high)
}
