package alarm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Event describes a finished timer.
type Event struct {
	Note       string    `json:"note,omitempty"`
	Mode       string    `json:"mode"`
	Seconds    uint64    `json:"seconds"`
	BeganAt    time.Time `json:"began_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// notify POSTs ev as JSON to the configured webhook.
func (a *Alarm) notify(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.opts.Webhook, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("invalid webhook URL %q: %w", a.opts.Webhook, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "countdown")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post event: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	a.log.Debug("webhook delivered", "url", a.opts.Webhook, "status", resp.StatusCode)
	return nil
}
