package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sfy45/Gen-UI/internal/domain"
	"github.com/sfy45/Gen-UI/internal/ports/input"
	"github.com/sfy45/Gen-UI/internal/ports/output"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure ChatService implements the input port
var _ input.ChatService = (*ChatService)(nil)

const (
	weatherCityPrompt = "Please specify a city for weather information. For example, 'Weather in London'."
	timeReply         = "Certainly! Here is the current server time:"
	newsHeader        = "Here are the latest headlines:\n\n"
	noNewsReply       = "I couldn't find any news articles matching your query."
)

// ChatService struct - Application service that classifies messages and dispatches them
type ChatService struct {
	classifier   *IntentClassifier
	weather      output.WeatherGateway
	news         output.NewsGateway
	conversation output.ConversationGateway
	sessions     output.SessionStore
	newsCountry  string

	now   func() time.Time
	newID func() string
}

// NewChatService func - Creates new chat service.
// newsCountry is used when a news lookup names no country; empty means domain.DefaultNewsCountry.
func NewChatService(
	classifier *IntentClassifier,
	weather output.WeatherGateway,
	news output.NewsGateway,
	conversation output.ConversationGateway,
	sessions output.SessionStore,
	newsCountry string,
) *ChatService {
	if newsCountry == "" {
		newsCountry = domain.DefaultNewsCountry
	}
	return &ChatService{
		classifier:   classifier,
		weather:      weather,
		news:         news,
		conversation: conversation,
		sessions:     sessions,
		newsCountry:  newsCountry,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// Chat func - Use case: classify a free-text message and dispatch it
func (s *ChatService) Chat(ctx context.Context, request domain.ChatRequest) (*domain.ResponseEnvelope, error) {
	intent := s.classifier.Classify(request.Message)
	logrus.Debugf("Classified message as %s", intent.Kind)

	switch intent.Kind {
	case domain.IntentWeather:
		if intent.City == nil {
			return textEnvelope(weatherCityPrompt), nil
		}
		return s.Weather(ctx, *intent.City)

	case domain.IntentTime:
		return s.currentTime(), nil

	case domain.IntentNews:
		return s.News(ctx, domain.NewsQuery{Query: intent.Query, Category: intent.Category})

	case domain.IntentConversation:
		return s.converse(ctx, intent.Text, request.SessionID)

	default:
		return nil, fmt.Errorf("%w: unhandled intent %q", domain.ErrInternal, intent.Kind)
	}
}

// Weather func - Use case: current weather for a city
func (s *ChatService) Weather(ctx context.Context, city string) (*domain.ResponseEnvelope, error) {
	result, err := s.weather.CurrentWeather(ctx, city)
	if err != nil {
		logrus.Errorf("Failed to fetch weather for %q: %v", city, err)
		return nil, err
	}

	text := fmt.Sprintf(
		"The current weather in %s is %s with a temperature of %s°C (feels like %s°C). Humidity is %d%%.",
		result.City, result.Description, formatNumber(result.Temperature), formatNumber(result.FeelsLike), result.Humidity,
	)
	return &domain.ResponseEnvelope{
		Response:       text,
		Kind:           domain.ResponseKindWeather,
		AdditionalData: result,
	}, nil
}

// News func - Use case: latest headlines
func (s *ChatService) News(ctx context.Context, query domain.NewsQuery) (*domain.ResponseEnvelope, error) {
	if query.Country == "" {
		query.Country = s.newsCountry
	}

	articles, err := s.news.TopHeadlines(ctx, query)
	if err != nil {
		logrus.Errorf("Failed to fetch news: %v", err)
		return nil, err
	}

	if len(articles) == 0 {
		return textEnvelope(noNewsReply), nil
	}

	var b strings.Builder
	b.WriteString(newsHeader)
	for i, article := range articles {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, article.Title, article.Source)
	}

	return &domain.ResponseEnvelope{
		Response:       b.String(),
		Kind:           domain.ResponseKindNews,
		AdditionalData: domain.NewsPayload{Articles: articles},
	}, nil
}

// EndSession func - Use case: drop a conversation session
func (s *ChatService) EndSession(sessionID string) error {
	logrus.Infof("Ending session %s", sessionID)
	return s.sessions.DeleteSession(sessionID)
}

// Health func - Reports which providers are configured
func (s *ChatService) Health() domain.ServiceHealth {
	return domain.ServiceHealth{
		AI:      s.conversation.Configured(),
		Weather: s.weather.Configured(),
		News:    s.news.Configured(),
	}
}

func (s *ChatService) currentTime() *domain.ResponseEnvelope {
	return &domain.ResponseEnvelope{
		Response: timeReply,
		Kind:     domain.ResponseKindTime,
		AdditionalData: domain.TimePayload{
			Time:     domain.FormatUTC(s.now()),
			Timezone: domain.TimezoneUTC,
		},
	}
}

// converse runs one conversational turn under the session's turn lock:
// read history, call the gateway, append the turn.
func (s *ChatService) converse(ctx context.Context, message string, sessionID *string) (*domain.ResponseEnvelope, error) {
	id := s.newID()
	if sessionID != nil && *sessionID != "" {
		id = *sessionID
	}

	session, unlock := s.sessions.LockSession(id)
	defer unlock()

	history := session.GetHistory()
	logrus.Infof("Calling conversation gateway | session_id: %s | history: %d messages", id, len(history))

	reply, err := s.conversation.Reply(ctx, message, history)
	if err != nil {
		if errors.Is(err, domain.ErrServiceUnavailable) {
			logrus.Errorf("Conversation gateway unavailable: %v", err)
			return nil, err
		}
		logrus.Errorf("Error generating AI response: %v", err)
		return &domain.ResponseEnvelope{
			Response:       fmt.Sprintf("AI error: %v", err),
			Kind:           domain.ResponseKindText,
			AdditionalData: domain.SessionPayload{SessionID: id},
			Degraded:       true,
		}, nil
	}

	// Append to the locked session; if it was deleted mid-turn the turn goes with it.
	session.AddTurn(
		domain.ChatMessage{Role: domain.ChatMessageRoleUser, Content: message},
		domain.ChatMessage{Role: domain.ChatMessageRoleAssistant, Content: reply.Content},
	)

	return &domain.ResponseEnvelope{
		Response:       reply.Content,
		Kind:           domain.ResponseKindText,
		AdditionalData: domain.SessionPayload{SessionID: id},
	}, nil
}

func textEnvelope(text string) *domain.ResponseEnvelope {
	return &domain.ResponseEnvelope{Response: text, Kind: domain.ResponseKindText}
}

// formatNumber renders a measurement without trailing zeros (18 -> "18", 18.5 -> "18.5")
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
