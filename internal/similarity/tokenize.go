package similarity

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kljensen/snowball"
)

var (
	nonWord    = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	identifier = regexp.MustCompile(`^[a-z]*\d+[a-z]*$`)
)

// profile is everything the scorer needs from one product name.
type profile struct {
	words map[string]struct{} // token-overlap set, stop words removed
	marks map[string]struct{} // brands and model identifiers
}

// splitName case-folds s, turns punctuation into whitespace and drops
// single-letter leftovers such as the "s" of "Cabela's".
func splitName(s string) []string {
	f := strings.Fields(nonWord.ReplaceAllString(strings.ToLower(s), " "))
	out := f[:0]
	for _, t := range f {
		if utf8.RuneCountInString(t) == 1 && !unicode.IsDigit([]rune(t)[0]) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func joinTokens(t []string) string { return strings.Join(t, " ") }

func (m *Matcher) profile(name string) profile {
	tokens := splitName(name)
	p := profile{
		words: make(map[string]struct{}, len(tokens)),
		marks: make(map[string]struct{}),
	}
	for _, t := range tokens {
		if _, stop := m.cfg.StopWords[t]; stop {
			continue
		}
		if identifier.MatchString(t) {
			p.marks[t] = struct{}{}
		}
		p.words[m.stem(t)] = struct{}{}
	}
	if len(m.cfg.Brands) > 0 && len(tokens) > 0 {
		padded := " " + joinTokens(tokens) + " "
		for b := range m.cfg.Brands {
			if strings.Contains(padded, " "+b+" ") {
				p.marks[b] = struct{}{}
			}
		}
	}
	return p
}

// stem reduces alphabetic tokens to their English stem when stemming is on.
// Tokens carrying digits are model numbers and stay untouched.
func (m *Matcher) stem(t string) string {
	if !m.cfg.Stemming {
		return t
	}
	for _, r := range t {
		if !unicode.IsLetter(r) {
			return t
		}
	}
	s, err := snowball.Stem(t, "english", true)
	if err != nil || s == "" {
		return t
	}
	return s
}
