package http

import "strings"

type (
	// ChatRequest struct - HTTP request DTO for POST /api/chat
	ChatRequest struct {
		Message   string  `json:"message" validate:"required" form:"message"`
		SessionID *string `json:"session_id" validate:"omitempty,max=128" form:"session_id"`
	}

	// WeatherRequest struct - HTTP request DTO for POST /api/weather
	WeatherRequest struct {
		City string `json:"city" validate:"required,notblank" form:"city"`
	}

	// NewsRequest struct - HTTP request DTO for POST /api/news
	NewsRequest struct {
		Query    *string `json:"query" validate:"omitempty" form:"query"`
		Category *string `json:"category" validate:"omitempty" form:"category"`
		Country  *string `json:"country" validate:"omitempty,len=2" form:"country"`
	}
)

// optional trims s and maps a blank value to nil
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
