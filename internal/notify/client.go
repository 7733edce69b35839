package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/opsdesk/ticketera/internal/model"
)

// Client POSTs saved tickets to a webhook URL, best-effort: failures are
// logged and dropped, never surfaced to the operator.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient returns a client. With an empty URL every call is a no-op.
func NewClient(url string) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type savedPayload struct {
	Operator  string `json:"operator"`
	OpenedAt  string `json:"opened_at"`
	ClosedAt  string `json:"closed_at"`
	Origin    string `json:"origin"`
	Reference string `json:"reference"`
	Reason    string `json:"reason"`
	Details   string `json:"details"`
}

// TicketSaved delivers one saved record to the webhook.
func (c *Client) TicketSaved(ctx context.Context, rec *model.Record) {
	if c.url == "" {
		return
	}
	body, err := json.Marshal(savedPayload{
		Operator:  rec.Operator,
		OpenedAt:  rec.OpenedAt.Format(model.TimeLayout),
		ClosedAt:  rec.ClosedAt.Format(model.TimeLayout),
		Origin:    rec.Origin,
		Reference: rec.Reference,
		Reason:    rec.Reason,
		Details:   rec.Details,
	})
	if err != nil {
		log.Printf("notify: marshal: %v", err)
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		log.Printf("notify: new request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("notify: request: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		log.Printf("notify: status %d for ticket by %s", resp.StatusCode, rec.Operator)
	}
}

// TicketSavedAsync runs TicketSaved in its own goroutine so the save response
// is never held up by the webhook.
func (c *Client) TicketSavedAsync(rec *model.Record) {
	if c.url == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.TicketSaved(ctx, rec)
	}()
}
