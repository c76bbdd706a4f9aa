package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const brevoURL = "https://api.brevo.com/v3/smtp/email"

// Sender delivers one rendered email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// BrevoSender delivers email through the Brevo transactional API.
type BrevoSender struct {
	client      *http.Client
	apiKey      string
	senderName  string
	senderEmail string
	endpoint    string
}

func NewBrevoSender(apiKey, senderName, senderEmail string) *BrevoSender {
	return &BrevoSender{
		client:      &http.Client{Timeout: 15 * time.Second},
		apiKey:      apiKey,
		senderName:  senderName,
		senderEmail: senderEmail,
		endpoint:    brevoURL,
	}
}

type brevoAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoEmail struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
	TextContent string         `json:"textContent,omitempty"`
}

// Send posts the message to Brevo. Rate-limit and server-side failures are
// retried once after a short backoff.
func (s *BrevoSender) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(brevoEmail{
		Sender:      brevoAddress{Name: s.senderName, Email: s.senderEmail},
		To:          []brevoAddress{{Email: msg.To}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
		TextContent: msg.Text,
	})
	if err != nil {
		return fmt.Errorf("encode brevo payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= 2; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("build brevo request: %w", err)
		}
		req.Header.Set("api-key", s.apiKey)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("brevo request failed: %w", err)
			if attempt == 1 {
				if !backoff(ctx, 500*time.Millisecond) {
					return ctx.Err()
				}
				continue
			}
			return lastErr
		}

		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return nil

		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("brevo returned %d: %s", resp.StatusCode, body)
			if attempt == 1 {
				slog.Warn("brevo send failed, retrying",
					"status", resp.StatusCode, "to", msg.To)
				if !backoff(ctx, 1600*time.Millisecond) {
					return ctx.Err()
				}
				continue
			}
			return lastErr

		default:
			// 4xx other than 429 will not improve on retry.
			return fmt.Errorf("brevo rejected message: %d: %s", resp.StatusCode, body)
		}
	}
	return lastErr
}

func backoff(ctx context.Context, d time.Duration) bool {
	select {
	case <-time.After(d):
		return true
	case <-ctx.Done():
		return false
	}
}
