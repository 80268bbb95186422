package api

import (
	"encoding/json"
	"net/http"

	"github.com/stitbu/satupintu/internal/model"
)

// The AI endpoints are thin shells over the typed gateway helpers; every one
// of them degrades to the helper's documented default instead of failing.

type textRequest struct {
	Text string `json:"text"`
}

func decodeText(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return "", false
	}
	if req.Text == "" {
		http.Error(w, "A text field is required", http.StatusBadRequest)
		return "", false
	}
	return req.Text, true
}

func (h *APIHandler) ParseTaskHandler(w http.ResponseWriter, r *http.Request) {
	text, ok := decodeText(w, r)
	if !ok {
		return
	}
	task, parsed := h.llm.ParseTask(r.Context(), text)
	writeJSON(w, http.StatusOK, map[string]interface{}{"task": task, "parsed": parsed})
}

func (h *APIHandler) SummarizeChannelHandler(w http.ResponseWriter, r *http.Request) {
	channel := r.URL.Query().Get("channel")
	if channel == "" {
		http.Error(w, "A channel query parameter is required", http.StatusBadRequest)
		return
	}

	messages, err := h.data.Messages(r.Context())
	if err != nil {
		http.Error(w, "Failed to load messages", http.StatusInternalServerError)
		return
	}
	inChannel := make([]model.ChatMessage, 0, len(messages))
	for _, msg := range messages {
		if msg.ChannelID == channel {
			inChannel = append(inChannel, msg)
		}
	}

	summary := h.llm.SummarizeThread(r.Context(), inChannel)
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (h *APIHandler) ScoreLeadHandler(w http.ResponseWriter, r *http.Request) {
	text, ok := decodeText(w, r)
	if !ok {
		return
	}
	score, reason := h.llm.ScoreLead(r.Context(), text)
	writeJSON(w, http.StatusOK, map[string]interface{}{"score": score, "reason": reason})
}

func (h *APIHandler) GenerateSubtasksHandler(w http.ResponseWriter, r *http.Request) {
	text, ok := decodeText(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.llm.GenerateSubtasks(r.Context(), text))
}

func (h *APIHandler) ParseDocumentHandler(w http.ResponseWriter, r *http.Request) {
	text, ok := decodeText(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.llm.ParseDocument(r.Context(), text))
}

func (h *APIHandler) ParseBulkTasksHandler(w http.ResponseWriter, r *http.Request) {
	text, ok := decodeText(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.llm.ParseBulkTasks(r.Context(), text))
}

type outreachRequest struct {
	LeadName string `json:"leadName"`
	Context  string `json:"context"`
}

func (h *APIHandler) DraftOutreachHandler(w http.ResponseWriter, r *http.Request) {
	var req outreachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	draft := h.llm.DraftOutreach(r.Context(), req.LeadName, req.Context)
	writeJSON(w, http.StatusOK, map[string]string{"draft": draft})
}

type recoveryRequest struct {
	DebtorName  string  `json:"debtorName"`
	Amount      float64 `json:"amount"`
	DaysOverdue int     `json:"daysOverdue"`
}

func (h *APIHandler) RecommendRecoveryHandler(w http.ResponseWriter, r *http.Request) {
	var req recoveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	advice := h.llm.RecommendRecoveryAction(r.Context(), req.DebtorName, req.Amount, req.DaysOverdue)
	writeJSON(w, http.StatusOK, map[string]string{"recommendation": advice})
}

func (h *APIHandler) PolishAnnouncementHandler(w http.ResponseWriter, r *http.Request) {
	text, ok := decodeText(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"polished": h.llm.PolishAnnouncement(r.Context(), text)})
}

type draftWARequest struct {
	Purpose   string `json:"purpose"`
	Recipient string `json:"recipient"`
}

func (h *APIHandler) DraftWhatsAppHandler(w http.ResponseWriter, r *http.Request) {
	var req draftWARequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	draft := h.llm.DraftWhatsAppMessage(r.Context(), req.Purpose, req.Recipient)
	writeJSON(w, http.StatusOK, map[string]string{"draft": draft})
}
