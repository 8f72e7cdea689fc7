package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"deals-service/internal/similarity"
)

// matcherFile is the shape of the matcher tunables file, YAML or TOML by
// extension. Unset fields keep the defaults; the extra_* lists extend the
// default word lists.
type matcherFile struct {
	StopWords      []string            `yaml:"stop_words" toml:"stop_words"`
	ExtraStopWords []string            `yaml:"extra_stop_words" toml:"extra_stop_words"`
	Brands         []string            `yaml:"brands" toml:"brands"`
	ExtraBrands    []string            `yaml:"extra_brands" toml:"extra_brands"`
	Weights        *similarity.Weights `yaml:"weights" toml:"weights"`
	MinScore       *float64            `yaml:"min_score" toml:"min_score"`
	DefaultLimit   *int                `yaml:"default_limit" toml:"default_limit"`
	Stemming       *bool               `yaml:"stemming" toml:"stemming"`
}

// MatcherConfig builds the similarity configuration: defaults, then the
// MATCHER_CONFIG file, then MATCH_* variables. The result is validated.
func MatcherConfig(c Config) (similarity.Config, error) {
	mc := similarity.DefaultConfig()

	if c.MatcherConfig != "" {
		data, err := os.ReadFile(c.MatcherConfig)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Warn().Str("path", c.MatcherConfig).Msg("matcher config not found, using defaults")
		case err != nil:
			return mc, fmt.Errorf("read matcher config: %w", err)
		default:
			if err := overlayMatcher(&mc, data, filepath.Ext(c.MatcherConfig)); err != nil {
				return mc, fmt.Errorf("matcher config %s: %w", c.MatcherConfig, err)
			}
		}
	}

	if c.MatchMinScore != nil {
		mc.MinScore = *c.MatchMinScore
	}
	if c.MatchDefaultLimit != nil {
		mc.DefaultLimit = *c.MatchDefaultLimit
	}
	if err := mc.Validate(); err != nil {
		return mc, err
	}
	return mc, nil
}

func overlayMatcher(mc *similarity.Config, data []byte, ext string) error {
	var f matcherFile
	unmarshal := yaml.Unmarshal
	if strings.EqualFold(ext, ".toml") {
		unmarshal = toml.Unmarshal
	}
	if err := unmarshal(data, &f); err != nil {
		return err
	}
	if f.StopWords != nil {
		mc.StopWords = similarity.SetOf(f.StopWords...)
	}
	for w := range similarity.SetOf(f.ExtraStopWords...) {
		mc.StopWords[w] = struct{}{}
	}
	if f.Brands != nil {
		mc.Brands = similarity.SetOf(f.Brands...)
	}
	for b := range similarity.SetOf(f.ExtraBrands...) {
		mc.Brands[b] = struct{}{}
	}
	if f.Weights != nil {
		mc.Weights = *f.Weights
	}
	if f.MinScore != nil {
		mc.MinScore = *f.MinScore
	}
	if f.DefaultLimit != nil {
		mc.DefaultLimit = *f.DefaultLimit
	}
	if f.Stemming != nil {
		mc.Stemming = *f.Stemming
	}
	return nil
}
