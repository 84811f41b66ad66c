package domain

// WeatherResult is the normalized current weather for a city
type WeatherResult struct {
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Description string  `json:"description"`
	Temperature float64 `json:"temperature"` // °C
	FeelsLike   float64 `json:"feels_like"`  // °C
	Humidity    int     `json:"humidity"`    // %
	WindSpeed   float64 `json:"wind_speed"`
	Icon        string  `json:"icon"`
}
