package pairing

import (
	"regexp"
	"strings"
)

var (
	rePowerStation = regexp.MustCompile(`(?:yeti|explorer|eb|ac|river|delta|portable power)\s*(\d+[xpros]*)`)
	reGenerator    = regexp.MustCompile(`(?:eu|gp|dg|champion|honda|predator)\s*(\d+[wi]*)`)
	reSolarWatts   = regexp.MustCompile(`(\d+)\s?w\b`)
	reLeadWordNum  = regexp.MustCompile(`(\w+).*?(\d+)`)
)

// modelKey extracts a retailer-independent product line key such as "1000"
// (Explorer 1000), "2200i" (EU2200i), "solar100w" or "renogy-100".
// Names without any digit have no key.
func modelKey(name string) string {
	n := strings.ToLower(name)
	if m := rePowerStation.FindStringSubmatch(n); m != nil {
		return m[1]
	}
	if m := reGenerator.FindStringSubmatch(n); m != nil {
		return m[1]
	}
	if m := reSolarWatts.FindStringSubmatch(n); m != nil {
		return "solar" + m[1] + "w"
	}
	if m := reLeadWordNum.FindStringSubmatch(n); m != nil {
		return m[1] + "-" + m[2]
	}
	return ""
}
