package utils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	rxPriceJunk = regexp.MustCompile(`[$,'%\s\x{00A0}\x{202F}]`)
	rxDoubleDot = regexp.MustCompile(`\.{2,}`)
	rxLeadNum   = regexp.MustCompile(`^-?\d*\.?\d+`)
)

// ParsePrice parses sheet prices such as "$1,299.99", "1'299", "449..99" or "12 %".
// Anything unparsable yields zero and false.
func ParsePrice(s string) (decimal.Decimal, bool) {
	s = rxPriceJunk.ReplaceAllString(strings.TrimSpace(s), "")
	s = rxDoubleDot.ReplaceAllString(s, ".")
	if s == "" {
		return decimal.Zero, false
	}
	// keep the leading number like parseFloat would ("19.99USD" -> 19.99)
	m := rxLeadNum.FindString(s)
	if m == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParsePercent parses "15%", "'20", " 30 % " into whole percents; fractions are truncated.
func ParsePercent(s string) (int, bool) {
	d, ok := ParsePrice(s)
	if !ok {
		return 0, false
	}
	return int(d.IntPart()), true
}

// Cents rounds to two decimal places and returns a float for JSON output.
func Cents(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
