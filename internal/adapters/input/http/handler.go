package http

import (
	"errors"
	"strings"
	"time"

	"github.com/sfy45/Gen-UI/internal/domain"
	"github.com/sfy45/Gen-UI/internal/ports/input"
	"github.com/sfy45/Gen-UI/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// HTTPHandler struct - Primary/Driving adapter for HTTP
type HTTPHandler struct {
	srv       input.ChatService
	validator validator.Validator
	now       func() time.Time
}

// New func - Creates new HTTP handler
func New(srv input.ChatService) *HTTPHandler {
	return &HTTPHandler{
		srv:       srv,
		validator: validator.New(),
		now:       time.Now,
	}
}

// Root godoc
// @Summary Service banner
// @Tags System
// @Produce json
// @Success 200 {object} RootResponse
// @Router / [get]
func (hdl *HTTPHandler) Root(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(RootResponse{
		Message: "Welcome to Gen-UI API Gateway",
		Status:  "operational",
	})
}

// HealthCheck godoc
// @Summary Provider configuration status
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(HealthResponse{
		Status:    "healthy",
		Timestamp: hdl.now().Format(time.RFC3339),
		Services:  hdl.srv.Health(),
	})
}

// Chat godoc
// @Summary Send a chat message
// @Description Classifies the message as weather, time, news or conversation and answers it
// @Tags Chat
// @Accept application/json
// @Produce json
// @param Chat body ChatRequest true "Chat"
// @Success 200 {object} domain.ResponseEnvelope
// @Failure 400 {object} ResponseBody
// @Failure 503 {object} ResponseBody
// @Router /api/chat [post]
func (hdl *HTTPHandler) Chat(c *fiber.Ctx) error {
	var request ChatRequest
	if ok, err := hdl.parse(c, &request); !ok {
		return err
	}

	envelope, err := hdl.srv.Chat(c.UserContext(), domain.ChatRequest{
		Message:   request.Message,
		SessionID: request.SessionID,
	})
	if err != nil {
		return hdl.fail(c, err)
	}
	if envelope.Degraded {
		logrus.Warnf("Returning degraded conversational reply: %s", envelope.Response)
	}
	return c.Status(fiber.StatusOK).JSON(envelope)
}

// EndSession godoc
// @Summary Drop a conversation session
// @Tags Chat
// @Produce json
// @param session_id path string true "Session ID"
// @Success 200 {object} DeleteSessionResponse
// @Router /api/chat/{session_id} [delete]
func (hdl *HTTPHandler) EndSession(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")
	if strings.TrimSpace(sessionID) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.srv.EndSession(sessionID); err != nil {
		return hdl.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(DeleteSessionResponse{Status: "deleted", SessionID: sessionID})
}

// Weather godoc
// @Summary Current weather for a city
// @Tags Weather
// @Accept application/json
// @Produce json
// @param Weather body WeatherRequest true "Weather"
// @Success 200 {object} domain.ResponseEnvelope
// @Failure 404 {object} ResponseBody
// @Failure 503 {object} ResponseBody
// @Router /api/weather [post]
func (hdl *HTTPHandler) Weather(c *fiber.Ctx) error {
	var request WeatherRequest
	if ok, err := hdl.parse(c, &request); !ok {
		return err
	}

	envelope, err := hdl.srv.Weather(c.UserContext(), strings.TrimSpace(request.City))
	if err != nil {
		return hdl.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(envelope)
}

// News godoc
// @Summary Latest headlines
// @Tags News
// @Accept application/json
// @Produce json
// @param News body NewsRequest true "News"
// @Success 200 {object} domain.ResponseEnvelope
// @Failure 503 {object} ResponseBody
// @Router /api/news [post]
func (hdl *HTTPHandler) News(c *fiber.Ctx) error {
	var request NewsRequest
	if ok, err := hdl.parse(c, &request); !ok {
		return err
	}

	query := domain.NewsQuery{Query: optional(request.Query), Category: optional(request.Category)}
	if country := optional(request.Country); country != nil {
		query.Country = strings.ToLower(*country)
	}

	envelope, err := hdl.srv.News(c.UserContext(), query)
	if err != nil {
		return hdl.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(envelope)
}

// parse decodes and validates the body. When ok is false the 400 response has been written.
func (hdl *HTTPHandler) parse(c *fiber.Ctx, request interface{}) (bool, error) {
	if err := c.BodyParser(request); err != nil {
		logrus.Errorln(err)
		return false, c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest, Detail: err.Error()})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		msg := ResponseBody{
			Status: BadRequest,
			Detail: err.Error(),
		}
		var fieldErrs validator.FieldErrors
		if errors.As(err, &fieldErrs) {
			msg.Status.Message = fieldErrs
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(msg)
	}
	return true, nil
}

func (hdl *HTTPHandler) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	logrus.Errorf("Request failed with %d: %v", status.Code, err)
	return c.Status(status.Code).JSON(ResponseBody{Status: status, Detail: err.Error()})
}
