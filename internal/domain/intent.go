package domain

// IntentKind represents the classified purpose of an inbound message
type IntentKind string

const (
	// IntentWeather - Weather query
	IntentWeather IntentKind = "weather"
	// IntentTime - Current time query
	IntentTime IntentKind = "time"
	// IntentNews - News headlines query
	IntentNews IntentKind = "news"
	// IntentConversation - Anything else, answered by the language model
	IntentConversation IntentKind = "conversation"
)

// IntentResult is the output of classification. Exactly one Kind is active;
// the parameter fields that do not belong to Kind are always nil.
// Parameters are nil when absent and never point to an empty string.
type IntentResult struct {
	Kind IntentKind

	City     *string // Weather
	Query    *string // News
	Category *string // News
	Text     string  // Conversation, original casing
}

// WeatherIntent builds a Weather intent; an empty city is treated as absent
func WeatherIntent(city string) IntentResult {
	return IntentResult{Kind: IntentWeather, City: optional(city)}
}

// TimeIntent builds a Time intent
func TimeIntent() IntentResult {
	return IntentResult{Kind: IntentTime}
}

// NewsIntent builds a News intent; empty parameters are treated as absent
func NewsIntent(query, category string) IntentResult {
	return IntentResult{Kind: IntentNews, Query: optional(query), Category: optional(category)}
}

// ConversationIntent builds a Conversation intent carrying the verbatim text
func ConversationIntent(text string) IntentResult {
	return IntentResult{Kind: IntentConversation, Text: text}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
