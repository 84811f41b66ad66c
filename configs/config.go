package configs

import (
	"errors"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config struct
type Config struct {
	App      `mapstructure:"app"`
	Weather  `mapstructure:"weather"`
	News     `mapstructure:"news"`
	AI       `mapstructure:"ai"`
	LMStudio `mapstructure:"lmstudio"`
	Session  `mapstructure:"session"`
	Redis    `mapstructure:"redis"`
}

// App struct
type App struct {
	Debug bool   `mapstructure:"debug"`
	Env   string `mapstructure:"env"`
	Port  string `mapstructure:"port"`
}

// Weather struct - OpenWeather current weather API
type Weather struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

// News struct - NewsAPI top headlines
type News struct {
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
	Country  string `mapstructure:"country"`
	PageSize int    `mapstructure:"page_size"`
	Timeout  int    `mapstructure:"timeout"` // seconds
}

// AI struct - Conversation provider selection and generation settings
type AI struct {
	Provider     string  `mapstructure:"provider"` // gemini | lmstudio
	APIKey       string  `mapstructure:"api_key"`
	Model        string  `mapstructure:"model"`
	Temperature  float64 `mapstructure:"temperature"`
	SystemPrompt string  `mapstructure:"system_prompt"`
}

// LMStudio struct
type LMStudio struct {
	BaseURL    string `mapstructure:"base_url"`
	Model      string `mapstructure:"model"`
	Timeout    int    `mapstructure:"timeout"` // seconds
	MaxRetries int    `mapstructure:"max_retries"`
}

// Session struct - 0 disables the bound
type Session struct {
	Timeout  int `mapstructure:"timeout"` // minutes
	MaxTurns int `mapstructure:"max_turns"`
}

// Redis struct - empty Addr disables the result cache
type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // seconds
}

// ProviderGemini and ProviderLMStudio are the accepted ai.provider values
const (
	ProviderGemini   = "gemini"
	ProviderLMStudio = "lmstudio"
)

var config Config

// InitViper func
func InitViper(path, env string) {
	getConfig(path, env)
}

// GetViper func
func GetViper() *Config {
	return &config
}

func setDefaults(env string) {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.env", env)
	viper.SetDefault("app.port", "8000")

	viper.SetDefault("weather.api_key", "")
	viper.SetDefault("weather.base_url", "http://api.openweathermap.org/data/2.5")
	viper.SetDefault("weather.timeout", 10)

	viper.SetDefault("news.api_key", "")
	viper.SetDefault("news.base_url", "https://newsapi.org/v2")
	viper.SetDefault("news.country", "us")
	viper.SetDefault("news.page_size", 5)
	viper.SetDefault("news.timeout", 10)

	viper.SetDefault("ai.provider", ProviderGemini)
	viper.SetDefault("ai.api_key", "")
	viper.SetDefault("ai.model", "gemini-1.5-flash-latest")
	viper.SetDefault("ai.temperature", 0.7)
	viper.SetDefault("ai.system_prompt", "You are a helpful assistant. Keep answers short and friendly.")

	viper.SetDefault("lmstudio.base_url", "http://localhost:1234")
	viper.SetDefault("lmstudio.model", "")
	viper.SetDefault("lmstudio.timeout", 60)
	viper.SetDefault("lmstudio.max_retries", 3)

	viper.SetDefault("session.timeout", 0)
	viper.SetDefault("session.max_turns", 0)

	viper.SetDefault("redis.addr", "")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.ttl", 600)
}

func getConfig(path, env string) {
	setDefaults(env)

	viper.SetConfigName("config")
	viper.AddConfigPath(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Credential names used by existing deployments
	viper.BindEnv("weather.api_key", "WEATHER_API_KEY", "OPENWEATHER_API_KEY")
	viper.BindEnv("news.api_key", "NEWS_API_KEY")
	viper.BindEnv("ai.api_key", "AI_API_KEY", "GOOGLE_AI_API_KEY")

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case errors.As(err, &notFound):
		logrus.Warnf("No config file found in %s, using defaults and environment", path)
	case err != nil:
		panic(err)
	default:
		viper.WatchConfig()
		viper.OnConfigChange(func(e fsnotify.Event) {
			logrus.Infof("Config file has changed: %s", e.Name)
		})
	}

	config = Config{}
	err = viper.Unmarshal(&config)
	if err != nil {
		logrus.Fatalln(err)
	}
}
