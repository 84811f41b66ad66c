package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/sfy45/Gen-UI/configs"
	"github.com/sfy45/Gen-UI/internal/domain"
	"github.com/sfy45/Gen-UI/internal/ports/output"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// Compile-time check to ensure ConversationClientAdapter implements ConversationGateway interface
var _ output.ConversationGateway = (*ConversationClientAdapter)(nil)

const defaultModel = "gemini-1.5-flash-latest"

// chatModel is the part of *genai.GenerativeModel the adapter needs, so tests can fake it
type chatModel interface {
	send(ctx context.Context, history []*genai.Content, message string) (*genai.GenerateContentResponse, error)
}

type generativeModel struct {
	model *genai.GenerativeModel
}

func (m *generativeModel) send(ctx context.Context, history []*genai.Content, message string) (*genai.GenerateContentResponse, error) {
	cs := m.model.StartChat()
	cs.History = history
	return cs.SendMessage(ctx, genai.Text(message))
}

// ConversationClientAdapter struct - Output adapter for Google Gemini chat
type ConversationClientAdapter struct {
	client    *genai.Client
	model     chatModel
	modelName string
}

// NewConversationClientAdapter func - Creates new Gemini adapter.
// Without an API key the adapter is created unconfigured and every Reply fails
// with domain.ErrServiceUnavailable.
func NewConversationClientAdapter(ctx context.Context, config configs.AI) (*ConversationClientAdapter, error) {
	modelName := config.Model
	if modelName == "" {
		modelName = defaultModel
	}
	adapter := &ConversationClientAdapter{modelName: modelName}

	if config.APIKey == "" {
		return adapter, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(float32(config.Temperature))
	if config.SystemPrompt != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(config.SystemPrompt)}}
	}

	adapter.client = client
	adapter.model = &generativeModel{model: model}

	logrus.Infof("Gemini conversation adapter initialized with model: %s", modelName)

	return adapter, nil
}

// Configured reports whether a Gemini client was created
func (a *ConversationClientAdapter) Configured() bool {
	return a.model != nil
}

// Reply sends the message in a chat seeded with the session history
func (a *ConversationClientAdapter) Reply(ctx context.Context, message string, history []domain.ChatMessage) (*domain.ConversationReply, error) {
	if !a.Configured() {
		return nil, fmt.Errorf("%w: AI service unavailable (API key missing)", domain.ErrServiceUnavailable)
	}

	logrus.Infof("Calling Gemini with %d history messages", len(history))

	resp, err := a.model.send(ctx, toContents(history), message)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, fmt.Errorf("%w: empty Gemini response", domain.ErrUpstream)
	}

	return &domain.ConversationReply{Content: text, Model: a.modelName}, nil
}

// Close releases the underlying client
func (a *ConversationClientAdapter) Close() error {
	if a.client == nil {
		return nil
	}
	return a.client.Close()
}

// toContents maps history to Gemini roles; system messages are not part of chat history
func toContents(history []domain.ChatMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		var role string
		switch msg.Role {
		case domain.ChatMessageRoleUser:
			role = "user"
		case domain.ChatMessageRoleAssistant:
			role = "model"
		default:
			continue
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	return contents
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}
