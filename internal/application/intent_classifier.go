package application

import (
	"strings"

	"github.com/sfy45/Gen-UI/internal/domain"
)

// IntentRule is one entry of the classification rule list.
// Match and Build receive the lowercased message; Build also gets the original text.
type IntentRule struct {
	Name  string
	Match func(lower string) bool
	Build func(original, lower string) domain.IntentResult
}

// IntentClassifier evaluates its rules in order; the first match wins.
// Messages matching no rule are classified as conversation.
type IntentClassifier struct {
	rules []IntentRule
}

// NewIntentClassifier creates a classifier with the given ordered rules
func NewIntentClassifier(rules ...IntentRule) *IntentClassifier {
	return &IntentClassifier{rules: rules}
}

// NewDefaultIntentClassifier creates a classifier with the weather, time and news rules
func NewDefaultIntentClassifier() *IntentClassifier {
	return NewIntentClassifier(WeatherRule, TimeRule, NewsRule)
}

// Rules returns a copy of the rule list in evaluation order
func (c *IntentClassifier) Rules() []IntentRule {
	rules := make([]IntentRule, len(c.rules))
	copy(rules, c.rules)
	return rules
}

// Classify decides which intent the message targets and extracts its parameters
func (c *IntentClassifier) Classify(message string) domain.IntentResult {
	lower := strings.ToLower(message)
	for _, rule := range c.rules {
		if rule.Match(lower) {
			return rule.Build(message, lower)
		}
	}
	return domain.ConversationIntent(message)
}

// WeatherRule matches "weather in ..." or any message containing both "weather" and "in ".
// The city is whatever follows the first "in ".
var WeatherRule = IntentRule{
	Name: "weather",
	Match: func(lower string) bool {
		return strings.HasPrefix(lower, "weather in ") ||
			(strings.Contains(lower, "weather") && strings.Contains(lower, "in "))
	},
	Build: func(_, lower string) domain.IntentResult {
		return domain.WeatherIntent(after(lower, "in "))
	},
}

// TimeRule matches any message containing "time"
var TimeRule = IntentRule{
	Name: "time",
	Match: func(lower string) bool {
		return strings.Contains(lower, "time")
	},
	Build: func(_, _ string) domain.IntentResult {
		return domain.TimeIntent()
	},
}

// NewsRule matches "news" or "headlines". "about " yields a query and takes
// precedence over "in ", which yields a category.
var NewsRule = IntentRule{
	Name: "news",
	Match: func(lower string) bool {
		return strings.Contains(lower, "news") || strings.Contains(lower, "headlines")
	},
	Build: func(_, lower string) domain.IntentResult {
		if strings.Contains(lower, "about ") {
			return domain.NewsIntent(after(lower, "about "), "")
		}
		return domain.NewsIntent("", after(lower, "in "))
	},
}

// after returns the trimmed text following the first occurrence of sep, or "" if sep is absent
func after(s, sep string) string {
	_, rest, found := strings.Cut(s, sep)
	if !found {
		return ""
	}
	return strings.TrimSpace(rest)
}
