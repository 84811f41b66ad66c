package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sfy45/Gen-UI/configs"
	"github.com/sfy45/Gen-UI/internal/domain"
	"github.com/sfy45/Gen-UI/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure WeatherClientAdapter implements WeatherGateway interface
var _ output.WeatherGateway = (*WeatherClientAdapter)(nil)

const defaultBaseURL = "http://api.openweathermap.org/data/2.5"

// WeatherClientAdapter struct - Output adapter for the OpenWeather current weather API
type WeatherClientAdapter struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewWeatherClientAdapter func - Creates new OpenWeather client adapter
func NewWeatherClientAdapter(config configs.Weather) *WeatherClientAdapter {
	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if config.Timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &WeatherClientAdapter{
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
		baseURL: baseURL,
		apiKey:  config.APIKey,
	}
}

// Configured reports whether an API key is set
func (a *WeatherClientAdapter) Configured() bool {
	return a.apiKey != ""
}

// CurrentWeather queries /weather in metric units
func (a *WeatherClientAdapter) CurrentWeather(ctx context.Context, city string) (*domain.WeatherResult, error) {
	if !a.Configured() {
		return nil, fmt.Errorf("%w: weather service unavailable (API key missing)", domain.ErrServiceUnavailable)
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", a.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/weather?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create weather request: %v", domain.ErrInternal, err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch weather data: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: city '%s' not found", domain.ErrNotFound, city)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: weather provider status %d - %s", domain.ErrUpstream, resp.StatusCode, string(body))
	}

	var data currentWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: failed to parse weather response: %v", domain.ErrUpstream, err)
	}

	result := &domain.WeatherResult{
		City:        data.Name,
		Country:     data.Sys.Country,
		Temperature: data.Main.Temp,
		FeelsLike:   data.Main.FeelsLike,
		Humidity:    data.Main.Humidity,
		WindSpeed:   data.Wind.Speed,
	}
	if len(data.Weather) > 0 {
		result.Description = data.Weather[0].Description
		result.Icon = data.Weather[0].Icon
	}

	logrus.Infof("Fetched weather for %s, %s", result.City, result.Country)

	return result, nil
}

// currentWeatherResponse is the subset of the OpenWeather /weather payload we read
type currentWeatherResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}
