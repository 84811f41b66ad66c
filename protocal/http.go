package protocal

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/sfy45/Gen-UI/configs"
	httpAdapter "github.com/sfy45/Gen-UI/internal/adapters/input/http"
	"github.com/sfy45/Gen-UI/internal/adapters/output/cached"
	"github.com/sfy45/Gen-UI/internal/adapters/output/gemini"
	"github.com/sfy45/Gen-UI/internal/adapters/output/lmstudio"
	"github.com/sfy45/Gen-UI/internal/adapters/output/memory"
	"github.com/sfy45/Gen-UI/internal/adapters/output/newsapi"
	"github.com/sfy45/Gen-UI/internal/adapters/output/openweather"
	redisAdapter "github.com/sfy45/Gen-UI/internal/adapters/output/redis"
	"github.com/sfy45/Gen-UI/internal/application"
	"github.com/sfy45/Gen-UI/internal/ports/output"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

type config struct {
	ENV string `mapstructure:"env"`
}

// ServeHTTP func
func ServeHTTP() error {
	var cfg config
	flag.StringVar(&cfg.ENV, "env", "", "the environment to use")
	flag.Parse()
	configs.InitViper("./configs", cfg.ENV)
	conf := configs.GetViper()

	if conf.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	logrus.Infof("Starting Gen-UI API Gateway (env: %s)", conf.App.Env)
	warnMissingCredentials(conf)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept,Authorization",
	}))

	ctx := context.Background()
	var closers []io.Closer

	// Wire up the hexagonal architecture layers
	// Output adapters (providers)
	var weather output.WeatherGateway = openweather.NewWeatherClientAdapter(conf.Weather)
	var news output.NewsGateway = newsapi.NewNewsClientAdapter(conf.News)

	if conf.Redis.Addr != "" {
		cache, err := redisAdapter.NewResultCache(ctx, conf.Redis)
		if err != nil {
			logrus.Warnf("Result cache disabled: %v", err)
		} else {
			closers = append(closers, cache)
			ttl := time.Duration(conf.Redis.TTL) * time.Second
			weather = cached.NewWeatherGateway(weather, cache, ttl)
			news = cached.NewNewsGateway(news, cache, ttl)
		}
	}

	conversation, err := newConversationGateway(ctx, conf)
	if err != nil {
		return err
	}
	if closer, ok := conversation.(io.Closer); ok {
		closers = append(closers, closer)
	}

	// Output adapter (session store)
	sessions := memory.NewMemorySessionStore(time.Duration(conf.Session.Timeout)*time.Minute, conf.Session.MaxTurns)

	// Application service (use case)
	srv := application.NewChatService(
		application.NewDefaultIntentClassifier(),
		weather,
		news,
		conversation,
		sessions,
		conf.News.Country,
	)
	// Input adapter (HTTP handler)
	hdl := httpAdapter.New(srv)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		for range c {
			logrus.Info("Gracefull shut down ...")
			if err := app.Shutdown(); err != nil {
				logrus.Errorf("Error when shutdown server: %v", err)
			}
			for _, closer := range closers {
				if err := closer.Close(); err != nil {
					logrus.Errorf("Error when closing adapter: %v", err)
				}
			}
		}
	}()

	app.Get("/swagger/*", swagger.HandlerDefault) // default
	app.Get("/", hdl.Root)

	api := app.Group("/api", httpAdapter.RequestLogger())
	{
		api.Get("/health", hdl.HealthCheck)
		api.Post("/chat", hdl.Chat)
		api.Delete("/chat/:session_id", hdl.EndSession)
		api.Post("/weather", hdl.Weather)
		api.Post("/news", hdl.News)
	}

	logrus.Infof("Listening on port: %s", conf.App.Port)
	return app.Listen(":" + conf.App.Port)
}

// newConversationGateway picks the conversation provider named by ai.provider
func newConversationGateway(ctx context.Context, conf *configs.Config) (output.ConversationGateway, error) {
	switch conf.AI.Provider {
	case configs.ProviderLMStudio:
		return lmstudio.NewLMStudioClientAdapter(conf.LMStudio, conf.AI), nil
	case configs.ProviderGemini, "":
		adapter, err := gemini.NewConversationClientAdapter(ctx, conf.AI)
		if err != nil {
			return nil, err
		}
		return adapter, nil
	default:
		return nil, fmt.Errorf("unknown ai.provider %q", conf.AI.Provider)
	}
}

func warnMissingCredentials(conf *configs.Config) {
	if conf.Weather.APIKey == "" {
		logrus.Warn("OPENWEATHER_API_KEY is not set. Weather feature will be limited.")
	}
	if conf.News.APIKey == "" {
		logrus.Warn("NEWS_API_KEY is not set. News feature will be limited.")
	}
	if conf.AI.Provider != configs.ProviderLMStudio && conf.AI.APIKey == "" {
		logrus.Warn("GOOGLE_AI_API_KEY is not set. AI feature will be limited.")
	}
}
