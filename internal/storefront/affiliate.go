package storefront

import (
	"net/url"
	"strings"
	"unicode"
)

// Links builds retailer search URLs carrying the affiliate tags.
type Links struct {
	AmazonTag  string
	CabelasTag string
}

// For returns the search link for product at retailer; unknown retailers get Amazon.
func (l Links) For(product, retailer string) string {
	switch strings.ToLower(strings.TrimSpace(retailer)) {
	case "cabelas", "cabela's":
		return "https://www.cabelas.com/shop/en/search?" + query("q", product, "affiliate", l.CabelasTag)
	case "planar":
		return "https://www.planarheaters.com/products?" + query("search", product)
	case "mec":
		return "https://www.mec.ca/en/search?" + query("q", product)
	case "rei":
		return "https://www.rei.com/search?" + query("q", product)
	}
	return "https://www.amazon.com/s?" + query("k", product, "tag", l.AmazonTag)
}

// ForAll maps every retailer, as written, to its link for product.
func (l Links) ForAll(product string, retailers []string) map[string]string {
	out := make(map[string]string, len(retailers))
	for _, r := range retailers {
		out[r] = l.For(product, r)
	}
	return out
}

// ParseRetailers splits a "Retails At" cell such as "Amazon, REI 🛒".
func ParseRetailers(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		r := strings.TrimFunc(part, func(c rune) bool { return !isNameRune(c) })
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}

func isNameRune(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '\'' || c == '&' || c == '.'
}

// query keeps the key order given, empty values are left out.
func query(kv ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(kv[i])
		b.WriteByte('=')
		b.WriteString(strings.ReplaceAll(url.QueryEscape(kv[i+1]), "+", "%20"))
	}
	return b.String()
}
