package app

import (
	"context"
	"fmt"
	"time"

	"qsite/pkg/config"

	"github.com/gofiber/fiber/v2"
)

// Carrier 簡訊商 API
type Carrier interface {
	Send(ctx context.Context, to, text string) error
}

// CarrierMessage carrier request body
type CarrierMessage struct {
	To   string `json:"to"`
	From string `json:"from"`
	Text string `json:"text"`
}

// HTTPCarrier post CarrierMessage to the carrier http api
type HTTPCarrier struct {
	url     string
	apiKey  string
	sender  string
	timeout time.Duration
}

// NewHTTPCarrier create HTTPCarrier
func NewHTTPCarrier(c config.CarrierConfig) *HTTPCarrier {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPCarrier{url: c.URL, apiKey: c.APIKey, sender: c.Sender, timeout: timeout}
}

// Send 2xx 以外都視為失敗
func (h *HTTPCarrier) Send(ctx context.Context, to, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	agent := fiber.Post(h.url)
	agent.Set(fiber.HeaderAuthorization, "Bearer "+h.apiKey)
	agent.Timeout(h.timeout)
	agent.JSON(CarrierMessage{To: to, From: h.sender, Text: text})

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("carrier request: %w", errs[0])
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return fmt.Errorf("carrier status %d: %s", code, string(body))
	}
	return nil
}
