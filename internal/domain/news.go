package domain

// MaxNewsArticles is the most articles a news lookup returns
const MaxNewsArticles = 5

// DefaultNewsCountry is used when the caller does not pick a country
const DefaultNewsCountry = "us"

// NewsQuery struct - Parameters of a headlines lookup
type NewsQuery struct {
	Query    *string
	Category *string
	Country  string
}

// NewsArticle is a single normalized headline
type NewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
	ImageURL    string `json:"image_url"`
}
