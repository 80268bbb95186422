package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/stitbu/satupintu/internal/model"
	"github.com/stitbu/satupintu/internal/remote"
)

func (h *APIHandler) ListDivisionsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.Divisions())
}

func (h *APIHandler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.data.Users()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		http.Error(w, "Failed to list users", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

type stickyNoteRequest struct {
	Note string `json:"note"`
}

func (h *APIHandler) UpdateStickyNoteHandler(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)

	var req stickyNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.data.UpdateStickyNote(user.ID, req.Note); err != nil {
		log.Printf("Error updating sticky note for %s: %v", user.ID, err)
		http.Error(w, "Failed to update note", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) GetPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.data.Preferences()
	if err != nil {
		log.Printf("Error loading preferences: %v", err)
		http.Error(w, "Failed to load preferences", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (h *APIHandler) SavePreferencesHandler(w http.ResponseWriter, r *http.Request) {
	var prefs model.UserPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.data.SavePreferences(prefs); err != nil {
		log.Printf("Error saving preferences: %v", err)
		http.Error(w, "Failed to save preferences", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) ListActivityHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := h.data.ActivityLog()
	if err != nil {
		log.Printf("Error reading activity log: %v", err)
		http.Error(w, "Failed to read activity log", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

type reconfigureRequest struct {
	URL     string `json:"url"`
	AnonKey string `json:"anonKey"`
}

// ReconfigureRemoteHandler swaps the remote connection at runtime; this is an
// admin action, not a hot path.
func (h *APIHandler) ReconfigureRemoteHandler(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)
	if user.Role != model.RoleAdmin {
		http.Error(w, "Admin role required", http.StatusForbidden)
		return
	}

	var req reconfigureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.data.ReconfigureRemote(remote.Params{URL: req.URL, AnonKey: req.AnonKey}); err != nil {
		log.Printf("Error reconfiguring remote: %v", err)
		http.Error(w, "Failed to reconfigure remote", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
