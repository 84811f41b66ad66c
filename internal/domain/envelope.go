package domain

// ResponseKind is the envelope discriminator
type ResponseKind string

const (
	ResponseKindText    ResponseKind = "text"
	ResponseKindWeather ResponseKind = "weather"
	ResponseKindTime    ResponseKind = "time"
	ResponseKindNews    ResponseKind = "news"
)

// ResponseEnvelope is the uniform response returned by every handler.
// AdditionalData is nil for plain conversational text without a session.
type ResponseEnvelope struct {
	Response       string       `json:"response"`
	Kind           ResponseKind `json:"type"`
	AdditionalData interface{}  `json:"additional_data,omitempty"`

	// Degraded marks a conversational reply that reports a provider failure
	// instead of a genuine model answer.
	Degraded bool `json:"-"`
}

// TimePayload is the additional data of a time envelope
type TimePayload struct {
	Time     string `json:"time"`
	Timezone string `json:"timezone"`
}

// NewsPayload is the additional data of a news envelope
type NewsPayload struct {
	Articles []NewsArticle `json:"articles"`
}

// SessionPayload is the additional data of a conversational envelope
type SessionPayload struct {
	SessionID string `json:"session_id"`
}

// ServiceHealth reports whether each provider's credential is configured
type ServiceHealth struct {
	AI      bool `json:"ai"`
	Weather bool `json:"weather"`
	News    bool `json:"news"`
}
