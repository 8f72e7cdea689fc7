// Package articles serves the buying-guide articles and picks the catalog
// deals each one features.
package articles

// SortBy orders the deals shown under an article.
type SortBy string

const (
	SortDiscount  SortBy = "discount"
	SortPrice     SortBy = "price"
	SortRelevance SortBy = "relevance"
)

const defaultMaxResults = 12

type Content struct {
	Intro       string `yaml:"intro" json:"intro"`
	BuyersGuide string `yaml:"buyers_guide" json:"buyersGuide,omitempty"`
	Conclusion  string `yaml:"conclusion" json:"conclusion"`
}

// Products selects catalog deals: any deal whose name contains one of Keywords.
type Products struct {
	Keywords   []string `yaml:"keywords" json:"productKeywords"`
	MaxResults int      `yaml:"max_results" json:"maxResults"`
	SortBy     SortBy   `yaml:"sort_by" json:"sortBy"`
}

type Schema struct {
	Type         string `yaml:"type" json:"type"`
	Author       string `yaml:"author" json:"author,omitempty"`
	Organization string `yaml:"organization" json:"organization,omitempty"`
}

type SEO struct {
	MetaTitle       string `yaml:"meta_title" json:"metaTitle"`
	MetaDescription string `yaml:"meta_description" json:"metaDescription"`
	Schema          Schema `yaml:"schema" json:"schema"`
}

type Article struct {
	Slug        string   `yaml:"slug" json:"slug"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Category    string   `yaml:"category" json:"category"`
	Keywords    []string `yaml:"keywords" json:"keywords"`
	LastUpdated string   `yaml:"last_updated" json:"lastUpdated,omitempty"`
	Featured    bool     `yaml:"featured" json:"featured"`
	Content     Content  `yaml:"content" json:"content"`
	Products    Products `yaml:"products" json:"products"`
	SEO         SEO      `yaml:"seo" json:"seo"`
}
