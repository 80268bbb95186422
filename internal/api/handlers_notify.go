package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/stitbu/satupintu/internal/notify"
)

type sendWhatsAppRequest struct {
	Target  string `json:"target"`
	Message string `json:"message"`
}

func (h *APIHandler) SendWhatsAppHandler(w http.ResponseWriter, r *http.Request) {
	var req sendWhatsAppRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	prefs, err := h.data.Preferences()
	if err != nil {
		log.Printf("Error loading preferences: %v", err)
		http.Error(w, "Failed to load preferences", http.StatusInternalServerError)
		return
	}

	result := h.notifier.SendWhatsApp(r.Context(), prefs.FonnteToken, req.Target, req.Message)
	writeJSON(w, http.StatusOK, result)
}

func (h *APIHandler) DailyReportHandler(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)

	prefs, err := h.data.Preferences()
	if err != nil {
		log.Printf("Error loading preferences: %v", err)
		http.Error(w, "Failed to load preferences", http.StatusInternalServerError)
		return
	}
	tasks, err := h.data.Tasks(r.Context())
	if err != nil {
		log.Printf("Error loading tasks for report: %v", err)
		http.Error(w, "Failed to load tasks", http.StatusInternalServerError)
		return
	}

	result := h.notifier.SendDailyReport(r.Context(), tasks, *user, prefs)
	writeJSON(w, http.StatusOK, result)
}

func (h *APIHandler) DeviceStatusHandler(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.data.Preferences()
	if err != nil {
		log.Printf("Error loading preferences: %v", err)
		http.Error(w, "Failed to load preferences", http.StatusInternalServerError)
		return
	}

	status, err := h.notifier.DeviceStatus(r.Context(), prefs.FonnteToken)
	if err != nil {
		log.Printf("Device status check failed: %v", err)
		writeJSON(w, http.StatusOK, notify.Result{Success: false, Detail: "Connection Error"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(status)
}

type webhookTestRequest struct {
	Payload json.RawMessage `json:"payload"`
}

func (h *APIHandler) SendWebhookHandler(w http.ResponseWriter, r *http.Request) {
	var req webhookTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	prefs, err := h.data.Preferences()
	if err != nil {
		log.Printf("Error loading preferences: %v", err)
		http.Error(w, "Failed to load preferences", http.StatusInternalServerError)
		return
	}
	if prefs.WebhookURL == "" {
		writeJSON(w, http.StatusOK, map[string]bool{"delivered": false})
		return
	}

	delivered := h.notifier.SendWebhook(r.Context(), prefs.WebhookURL, req.Payload)
	writeJSON(w, http.StatusOK, map[string]bool{"delivered": delivered})
}

type shareLinkRequest struct {
	Phone string `json:"phone"`
	Text  string `json:"text"`
}

func (h *APIHandler) ShareLinkHandler(w http.ResponseWriter, r *http.Request) {
	var req shareLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": notify.ShareLink(req.Phone, req.Text)})
}
