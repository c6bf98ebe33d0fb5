// Package price turns the raw sold-price input (in crores) into the text
// shown on the card.
package price

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Unit is the denomination printed after the amount.
type Unit string

const (
	UnitNone  Unit = ""
	UnitLakh  Unit = "LAKH"
	UnitCrore Unit = "CR"
)

// LakhsPerCrore is the conversion between the two denominations
const LakhsPerCrore = 100

// Formatted is a display amount and its unit
type Formatted struct {
	Value string
	Unit  Unit
}

// String joins value and unit: "2 CR", "50 LAKH" or "0".
func (f Formatted) String() string {
	if f.Unit == UnitNone {
		return f.Value
	}
	return f.Value + " " + string(f.Unit)
}

// Zero is what every unparsable or zero input formats to
var Zero = Formatted{Value: "0", Unit: UnitNone}

// leading decimal literal, the same prefix a lenient float parser accepts
var numberPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Parse reads the leading decimal number of raw. Surrounding whitespace is
// ignored and trailing garbage after the number is dropped.
func Parse(raw string) (float64, bool) {
	match := numberPrefix.FindString(strings.TrimSpace(raw))
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Format maps a raw price string to its display form. It never fails:
// anything that does not parse, or parses to zero, becomes Zero.
func Format(raw string) Formatted {
	v, ok := Parse(raw)
	if !ok || v == 0 {
		return Zero
	}

	if v < 1 {
		lakhs := math.Round(v * LakhsPerCrore)
		if lakhs == 0 {
			lakhs = 0 // drop the sign of -0
		}
		return Formatted{
			Value: strconv.FormatFloat(lakhs, 'f', 0, 64),
			Unit:  UnitLakh,
		}
	}

	return Formatted{
		Value: formatCrores(v),
		Unit:  UnitCrore,
	}
}

// exponentFrom is where crore amounts switch to exponent notation
const exponentFrom = 1e21

// formatCrores prints the shortest form of v, in plain digits below
// exponentFrom and as 1.5e+21 from there on.
func formatCrores(v float64) string {
	if v >= exponentFrom {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// QuickPrice is a preset price button
type QuickPrice struct {
	Label string
	Value string
}

// QuickPrices are the presets offered next to the price input
var QuickPrices = []QuickPrice{
	{Label: "50L", Value: "0.50"},
	{Label: "1 CR", Value: "1"},
	{Label: "2 CR", Value: "2"},
	{Label: "5 CR", Value: "5"},
	{Label: "10 CR", Value: "10"},
	{Label: "15 CR", Value: "15"},
	{Label: "18 CR", Value: "18"},
	{Label: "24.75 CR", Value: "24.75"},
}

// FormatReserve renders a catalog reserve price, which is stored in lakhs
func FormatReserve(lakhs float64) string {
	return "₹" + strconv.FormatFloat(lakhs, 'f', -1, 64) + "L Base"
}
