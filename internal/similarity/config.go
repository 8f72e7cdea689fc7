package similarity

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput marks contract violations: a negative limit or a broken Config.
// Callers should fix the call site rather than retry.
var ErrInvalidInput = errors.New("invalid input")

const weightTolerance = 1e-6

// Weights of the four signals. They must sum to 1 so that the combined score stays in [0,1].
type Weights struct {
	TokenOverlap float64 `json:"tokenOverlap" yaml:"token_overlap" toml:"token_overlap"`
	Category     float64 `json:"category" yaml:"category" toml:"category"`
	Brand        float64 `json:"brand" yaml:"brand" toml:"brand"`
	Price        float64 `json:"price" yaml:"price" toml:"price"`
}

func (w Weights) Sum() float64 { return w.TokenOverlap + w.Category + w.Brand + w.Price }

// Config holds every tunable of the matcher. Word lists are lower-case;
// brands may span several words ("goal zero").
type Config struct {
	StopWords    map[string]struct{}
	Brands       map[string]struct{}
	Weights      Weights
	MinScore     float64
	DefaultLimit int
	Stemming     bool
}

// DefaultWeights favour lexical evidence; price is the weakest signal.
func DefaultWeights() Weights {
	return Weights{TokenOverlap: 0.5, Category: 0.2, Brand: 0.2, Price: 0.1}
}

func DefaultConfig() Config {
	return Config{
		StopWords:    SetOf(defaultStopWords...),
		Brands:       SetOf(defaultBrands...),
		Weights:      DefaultWeights(),
		MinScore:     0.35,
		DefaultLimit: 4,
	}
}

// Validate checks the invariants the scorer relies on.
// MinScore must exceed the category weight so a shared category can never produce a match by itself.
func (c Config) Validate() error {
	w := c.Weights
	for name, v := range map[string]float64{
		"token_overlap": w.TokenOverlap, "category": w.Category, "brand": w.Brand, "price": w.Price,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: weight %s must be a non-negative number, got %v", ErrInvalidInput, name, v)
		}
	}
	if math.Abs(w.Sum()-1) > weightTolerance {
		return fmt.Errorf("%w: weights must sum to 1, got %.6f", ErrInvalidInput, w.Sum())
	}
	if c.MinScore < 0 || c.MinScore > 1 || math.IsNaN(c.MinScore) {
		return fmt.Errorf("%w: min score must be within [0,1], got %v", ErrInvalidInput, c.MinScore)
	}
	if c.MinScore <= w.Category {
		return fmt.Errorf("%w: min score %v must be above the category weight %v", ErrInvalidInput, c.MinScore, w.Category)
	}
	if c.DefaultLimit < 0 {
		return fmt.Errorf("%w: default limit must be >= 0, got %d", ErrInvalidInput, c.DefaultLimit)
	}
	return nil
}

// SetOf builds a word set, lower-casing and normalising every entry the same way names are.
func SetOf(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		if n := joinTokens(splitName(w)); n != "" {
			m[n] = struct{}{}
		}
	}
	return m
}

var defaultStopWords = []string{
	// articles and glue words
	"a", "an", "the", "and", "or", "with", "for", "of", "in", "on", "to", "by", "at", "from",
	"is", "are", "was", "were", "be", "has", "have", "will",
	// sizes and units
	"inch", "inches", "cm", "mm", "ft", "oz", "lb", "lbs", "small", "medium", "large", "xl", "xxl",
	"pack", "pcs", "piece", "set", "size",
	// colors
	"black", "white", "red", "blue", "green", "gray", "grey", "orange", "yellow", "brown", "tan", "camo",
	// retailer and marketing terms
	"new", "used", "sale", "deal", "deals", "best", "premium", "edition", "version", "pro",
	"amazon", "cabela", "cabelas", "bass", "shops", "free", "shipping",
}

var defaultBrands = []string{
	// power
	"jackery", "goal zero", "bluetti", "ecoflow", "anker", "renogy", "battle born", "dakota lithium",
	"champion", "honda", "predator", "generac", "westinghouse", "duromax",
	// optics
	"bushnell", "leupold", "vortex", "nikon", "zeiss", "aimpoint", "trijicon", "holosun", "sig sauer", "primary arms",
	// outdoor
	"carhartt", "coleman", "camp chef", "jetboil", "msr", "planar", "webasto", "lifestraw", "sawyer", "garmin",
}
