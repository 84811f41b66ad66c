package http

import (
	"errors"
	"net/http"

	"github.com/sfy45/Gen-UI/internal/domain"
)

var (
	// Success response
	Success = Status{Code: http.StatusOK, Message: []string{"Success"}}
	// BadRequest response
	BadRequest = Status{Code: http.StatusBadRequest, Message: []string{"Sorry, Not responding because of incorrect syntax"}}
	// NotFound response
	NotFound = Status{Code: http.StatusNotFound, Message: []string{"Sorry, The requested data could not be found"}}
	// ServiceUnavailable response
	ServiceUnavailable = Status{Code: http.StatusServiceUnavailable, Message: []string{"Sorry, This feature is not configured"}}
	// BadGateway response
	BadGateway = Status{Code: http.StatusBadGateway, Message: []string{"Sorry, An upstream provider failed"}}
	// InternalServerError response
	InternalServerError = Status{Code: http.StatusInternalServerError, Message: []string{"Internal Server Error"}}
)

// ResponseBody struct - Generic HTTP error wrapper
type ResponseBody struct {
	Status Status      `json:"status,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Detail string      `json:"detail,omitempty"`
}

// Status struct
type Status struct {
	Code    int      `json:"code,omitempty"`
	Message []string `json:"message,omitempty"`
}

type (
	// RootResponse struct - Body of GET /
	RootResponse struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	}

	// HealthResponse struct - Body of GET /api/health
	HealthResponse struct {
		Status    string               `json:"status"`
		Timestamp string               `json:"timestamp"`
		Services  domain.ServiceHealth `json:"services"`
	}

	// DeleteSessionResponse struct - Body of DELETE /api/chat/:session_id
	DeleteSessionResponse struct {
		Status    string `json:"status"`
		SessionID string `json:"session_id"`
	}
)

// statusFor maps the domain error taxonomy to an HTTP status
func statusFor(err error) Status {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrSessionNotFound):
		return NotFound
	case errors.Is(err, domain.ErrServiceUnavailable):
		return ServiceUnavailable
	case errors.Is(err, domain.ErrUpstream):
		return BadGateway
	default:
		return InternalServerError
	}
}
