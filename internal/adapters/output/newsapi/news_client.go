package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sfy45/Gen-UI/configs"
	"github.com/sfy45/Gen-UI/internal/domain"
	"github.com/sfy45/Gen-UI/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure NewsClientAdapter implements NewsGateway interface
var _ output.NewsGateway = (*NewsClientAdapter)(nil)

const defaultBaseURL = "https://newsapi.org/v2"

// NewsClientAdapter struct - Output adapter for the NewsAPI top-headlines endpoint
type NewsClientAdapter struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	pageSize   int
}

// NewNewsClientAdapter func - Creates new NewsAPI client adapter
func NewNewsClientAdapter(config configs.News) *NewsClientAdapter {
	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if config.Timeout <= 0 {
		timeout = 10 * time.Second
	}

	pageSize := config.PageSize
	if pageSize <= 0 || pageSize > domain.MaxNewsArticles {
		pageSize = domain.MaxNewsArticles
	}

	return &NewsClientAdapter{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL:  baseURL,
		apiKey:   config.APIKey,
		pageSize: pageSize,
	}
}

// Configured reports whether an API key is set
func (a *NewsClientAdapter) Configured() bool {
	return a.apiKey != ""
}

// TopHeadlines queries /top-headlines and keeps the first articles in source order
func (a *NewsClientAdapter) TopHeadlines(ctx context.Context, query domain.NewsQuery) ([]domain.NewsArticle, error) {
	if !a.Configured() {
		return nil, fmt.Errorf("%w: news service unavailable (API key missing)", domain.ErrServiceUnavailable)
	}

	country := query.Country
	if country == "" {
		country = domain.DefaultNewsCountry
	}

	params := url.Values{}
	params.Set("apiKey", a.apiKey)
	params.Set("country", country)
	params.Set("pageSize", strconv.Itoa(a.pageSize))
	if query.Query != nil {
		params.Set("q", *query.Query)
	}
	if query.Category != nil {
		params.Set("category", *query.Category)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/top-headlines?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create news request: %v", domain.ErrInternal, err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch news data: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: news provider status %d - %s", domain.ErrUpstream, resp.StatusCode, string(body))
	}

	var data topHeadlinesResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: failed to parse news response: %v", domain.ErrUpstream, err)
	}

	n := len(data.Articles)
	if n > a.pageSize {
		n = a.pageSize
	}
	articles := make([]domain.NewsArticle, 0, n)
	for _, article := range data.Articles[:n] {
		articles = append(articles, domain.NewsArticle{
			Title:       article.Title,
			Description: article.Description,
			URL:         article.URL,
			Source:      article.Source.Name,
			PublishedAt: article.PublishedAt,
			ImageURL:    article.URLToImage,
		})
	}

	logrus.Infof("Fetched %d news articles (total results: %d)", len(articles), data.TotalResults)

	return articles, nil
}

// topHeadlinesResponse is the NewsAPI /top-headlines payload
type topHeadlinesResponse struct {
	Status       string `json:"status"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}
