// Package notify holds the outbound side effects: webhook posts and the
// WhatsApp send API. Everything here is fire-and-forget with a typed result
// and no retries.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// sourceTag identifies this system in outbound webhook payloads.
const sourceTag = "satupintu"

// Dispatcher performs the outbound calls. APIRoot overrides the WhatsApp
// endpoint, which tests point at a local server.
type Dispatcher struct {
	httpc   *http.Client
	apiRoot string
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		httpc:   &http.Client{Timeout: 15 * time.Second},
		apiRoot: defaultWhatsAppAPIRoot,
	}
}

// SendWebhook posts the payload, wrapped with a timestamp and source tag, to
// the configured URL. Errors are logged, not surfaced; the return value only
// says whether the post was accepted.
func (d *Dispatcher) SendWebhook(ctx context.Context, url string, payload interface{}) bool {
	if strings.TrimSpace(url) == "" {
		return false
	}

	body, err := json.Marshal(map[string]interface{}{
		"source":    sourceTag,
		"timestamp": time.Now().Format(time.RFC3339),
		"payload":   payload,
	})
	if err != nil {
		log.Printf("Webhook payload could not be encoded: %v", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Printf("Webhook request could not be built: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpc.Do(req)
	if err != nil {
		log.Printf("Webhook post failed: %v", err)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		log.Printf("Webhook post rejected: status=%d", resp.StatusCode)
		return false
	}
	return true
}
