package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/stitbu/satupintu/internal/model"
)

const defaultWhatsAppAPIRoot = "https://api.fonnte.com"

// Result is the outcome of one WhatsApp dispatch.
type Result struct {
	Success bool   `json:"success"`
	Detail  string `json:"detail"`
}

// SendWhatsApp posts a message to the third-party send API as a multipart
// form with a bearer token. The API's own success flag is relayed back;
// transport failures map to a generic connection error.
func (d *Dispatcher) SendWhatsApp(ctx context.Context, token, target, message string) Result {
	if strings.TrimSpace(token) == "" || strings.TrimSpace(target) == "" {
		return Result{Success: false, Detail: "WA Not Configured"}
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	_ = form.WriteField("target", target)
	_ = form.WriteField("message", message)
	if err := form.Close(); err != nil {
		return Result{Success: false, Detail: "Connection Error"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.apiRoot+"/send", &body)
	if err != nil {
		return Result{Success: false, Detail: "Connection Error"}
	}
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := d.httpc.Do(req)
	if err != nil {
		return Result{Success: false, Detail: "Connection Error"}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	var ack struct {
		Status bool   `json:"status"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(respBody, &ack); err != nil {
		return Result{Success: false, Detail: "Connection Error"}
	}
	if !ack.Status {
		detail := ack.Reason
		if detail == "" {
			detail = "Rejected by WhatsApp API"
		}
		return Result{Success: false, Detail: detail}
	}
	return Result{Success: true, Detail: "Sent"}
}

// DeviceStatus checks the WhatsApp device's validity and returns the API's
// raw JSON reply.
func (d *Dispatcher) DeviceStatus(ctx context.Context, token string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.apiRoot+"/device", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", token)

	resp, err := d.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("device status request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("device status response unreadable: %w", err)
	}
	return json.RawMessage(body), nil
}

// SendDailyReport formats the fixed daily summary for a user and routes it
// through the WhatsApp sender. Without both a token and a destination number
// in the preferences it reports inertly and issues no network call.
func (d *Dispatcher) SendDailyReport(ctx context.Context, tasks []model.Task, user model.User, prefs model.UserPreferences) Result {
	if strings.TrimSpace(prefs.FonnteToken) == "" || strings.TrimSpace(prefs.WhatsAppNumber) == "" {
		return Result{Success: false, Detail: "WA Not Configured"}
	}

	completed, pending := 0, 0
	for _, task := range tasks {
		if task.IsCompleted {
			completed++
		} else {
			pending++
		}
	}

	message := fmt.Sprintf(
		"Daily Report\nName: %s\nDivision: %s\nCompleted: %d\nPending: %d",
		user.DisplayName, user.Division, completed, pending,
	)
	return d.SendWhatsApp(ctx, prefs.FonnteToken, prefs.WhatsAppNumber, message)
}

// ShareLink builds a wa.me deep link with pre-filled text. Phone numbers
// arrive in whatever format the user typed; wa.me only accepts digits, so
// everything else is stripped. Opening the link is a navigation action with
// no observable failure mode.
func ShareLink(phone, text string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return "https://wa.me/" + digits.String() + "?text=" + url.QueryEscape(text)
}
