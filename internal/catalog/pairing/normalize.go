package pairing

import (
	"regexp"
	"sort"
	"strings"
)

// Units that get glued to the preceding number: "100 W" -> "100w", "3800 watt" -> "3800watt".
const unitWord = `w|watt|watts|wh|kwh|kw|ah|v|volt|lb|lbs|oz|gal|qt|l|in|ft|mm|cm`

var (
	decComma        = regexp.MustCompile(`(\d),(\d{3})\b`)
	punct           = regexp.MustCompile(`[^\p{L}\p{N}\s.]+`)
	strayDots       = regexp.MustCompile(`(^|\s)\.+|\.+(\s|$)`)
	reAttachNumUnit = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s+(` + unitWord + `)\b`)
	reModelNumber   = regexp.MustCompile(`\b[a-z]*\d+(?:\.\d+)?[a-z]*\b`)
)

// normalize turns a product name into its comparison form:
// lower case, no punctuation, numbers glued to their units.
func normalize(s string) string {
	if s == "" {
		return ""
	}
	out := strings.ToLower(s)
	out = decComma.ReplaceAllString(out, "$1$2") // 1,500 -> 1500
	out = punct.ReplaceAllString(out, " ")
	out = strayDots.ReplaceAllString(out, " ")
	return attachNumberUnits(out)
}

func attachNumberUnits(s string) string {
	prev := ""
	out := collapseSpaces(s)
	for out != prev {
		prev = out
		out = collapseSpaces(reAttachNumUnit.ReplaceAllString(out, "$1$2"))
	}
	return out
}

func tokenSort(s string) string {
	f := strings.Fields(s)
	sort.Strings(f)
	return strings.Join(f, " ")
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// modelNumbers is the sorted multiset of tokens carrying digits ("1000", "100w", "eu2200i").
// Two names may only pair when these agree exactly.
func modelNumbers(norm string) []string {
	mm := reModelNumber.FindAllString(norm, -1)
	sort.Strings(mm)
	return mm
}

func equalNumbers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
