package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	MaxUploadMB  int
	LogFile      string

	SheetsAPIKey       string
	SheetsID           string
	SheetsAmazonRange  string
	SheetsCabelasRange string
	FeedAmazonFile     string
	FeedCabelasFile    string
	FeedWatch          bool
	RefreshMinInterval time.Duration
	SnapshotDB         string

	MatcherConfig     string
	MatchMinScore     *float64
	MatchDefaultLimit *int
	MatchCacheSize    int
	MatchCacheTTL     time.Duration

	ArticlesFile string
	DisplaySeed  uint64
	PriceHiding  bool
	AmazonTag    string
	CabelasTag   string
}

// Load reads the environment, after an optional .env file in the working directory.
func Load() Config {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "32"))
	cacheSize, _ := strconv.Atoi(getenv("MATCH_CACHE_SIZE", "512"))
	seed, _ := strconv.ParseUint(getenv("DISPLAY_SEED", "0"), 10, 64)
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return Config{
		Host:         getenv("HOST", "127.0.0.1"),
		Port:         port,
		AllowOrigins: origins,
		LogLevel:     getenv("LOG_LEVEL", "info"),
		MaxUploadMB:  mb,
		LogFile:      getenv("LOG_FILE", "logs/deals-service.log"),

		SheetsAPIKey:       os.Getenv("SHEETS_API_KEY"),
		SheetsID:           os.Getenv("SHEETS_ID"),
		SheetsAmazonRange:  getenv("SHEETS_AMAZON_RANGE", "Sheet1!A2:L1000"),
		SheetsCabelasRange: getenv("SHEETS_CABELAS_RANGE", "Sheet2!A2:L1000"),
		FeedAmazonFile:     os.Getenv("FEED_AMAZON_FILE"),
		FeedCabelasFile:    os.Getenv("FEED_CABELAS_FILE"),
		FeedWatch:          getbool("FEED_WATCH", false),
		RefreshMinInterval: getduration("REFRESH_MIN_INTERVAL", time.Minute),
		SnapshotDB:         getenv("SNAPSHOT_DB", "data/catalog.db"),

		MatcherConfig:     os.Getenv("MATCHER_CONFIG"),
		MatchMinScore:     getfloatp("MATCH_MIN_SCORE"),
		MatchDefaultLimit: getintp("MATCH_DEFAULT_LIMIT"),
		MatchCacheSize:    cacheSize,
		MatchCacheTTL:     getduration("MATCH_CACHE_TTL", 10*time.Minute),

		ArticlesFile: os.Getenv("ARTICLES_FILE"),
		DisplaySeed:  seed,
		PriceHiding:  getbool("PRICE_HIDING", true),
		AmazonTag:    getenv("AMAZON_TAG", "offgriddisc-20"),
		CabelasTag:   getenv("CABELAS_TAG", "offgrid-cabelas"),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// HasSheets reports whether the Google Sheets feed is configured.
func (c Config) HasSheets() bool { return c.SheetsAPIKey != "" && c.SheetsID != "" }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getbool(k string, def bool) bool {
	b, err := strconv.ParseBool(os.Getenv(k))
	if err != nil {
		return def
	}
	return b
}

func getduration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil {
		return def
	}
	return d
}

func getfloatp(k string) *float64 {
	f, err := strconv.ParseFloat(os.Getenv(k), 64)
	if err != nil {
		return nil
	}
	return &f
}

func getintp(k string) *int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return nil
	}
	return &n
}
