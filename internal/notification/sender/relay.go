package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gatehouse/internal/notification/models"
)

// RelaySender posts notifications as JSON to an HTTP mail relay.
type RelaySender struct {
	url    string
	client *http.Client
}

func NewRelay(url string, timeout time.Duration) *RelaySender {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RelaySender{url: url, client: &http.Client{Timeout: timeout}}
}

func (s *RelaySender) Send(ctx context.Context, msg models.Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", msg.ID)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post to relay: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode >= 300 {
		return fmt.Errorf("relay responded %d", resp.StatusCode)
	}
	return nil
}
