package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/stitbu/satupintu/internal/model"
)

func (h *APIHandler) ListMessagesHandler(w http.ResponseWriter, r *http.Request) {
	messages, err := h.data.Messages(r.Context())
	if err != nil {
		log.Printf("Error listing messages: %v", err)
		http.Error(w, "Failed to list messages", http.StatusInternalServerError)
		return
	}

	if channel := r.URL.Query().Get("channel"); channel != "" {
		filtered := make([]model.ChatMessage, 0, len(messages))
		for _, msg := range messages {
			if msg.ChannelID == channel {
				filtered = append(filtered, msg)
			}
		}
		messages = filtered
	}
	writeJSON(w, http.StatusOK, messages)
}

type PostMessageRequest struct {
	ChannelID   string `json:"channelId"`
	RecipientID string `json:"recipientId"`
	Content     string `json:"content"`
}

func (h *APIHandler) PostMessageHandler(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)

	var req PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		http.Error(w, "Message content cannot be empty", http.StatusBadRequest)
		return
	}

	channelID := req.ChannelID
	if req.RecipientID != "" {
		channelID = model.DirectChannelID(user.ID, req.RecipientID)
	}
	if channelID == "" {
		channelID = model.GeneralChannelID
	}
	if !model.CanPostToChannel(user.Role, user.Division, channelID) {
		http.Error(w, "Not allowed to post to this channel", http.StatusForbidden)
		return
	}
	if isGroupChannel(channelID) {
		groups, err := h.data.ChatGroups(r.Context())
		if err != nil {
			log.Printf("Error loading groups for channel %s: %v", channelID, err)
			http.Error(w, "Failed to verify channel", http.StatusInternalServerError)
			return
		}
		var group *model.ChatGroup
		for i := range groups {
			if groups[i].ID == channelID {
				group = &groups[i]
				break
			}
		}
		if group == nil {
			http.Error(w, "Unknown channel", http.StatusNotFound)
			return
		}
		if !model.CanPostToGroup(user.Role, user.ID, *group) {
			http.Error(w, "Not a member of this group", http.StatusForbidden)
			return
		}
	}

	msg, err := h.data.SendMessage(r.Context(), model.ChatMessage{
		SenderID:   user.ID,
		SenderName: user.DisplayName,
		ChannelID:  channelID,
		Content:    req.Content,
	})
	if err != nil {
		log.Printf("Error sending message for user %s: %v", user.ID, err)
		http.Error(w, "Failed to send message", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// Group channels are whatever remains after the fixed channel kinds.
func isGroupChannel(channelID string) bool {
	return channelID != model.GeneralChannelID &&
		!model.IsDirectChannel(channelID) &&
		!model.ValidDivision(channelID)
}

func (h *APIHandler) ListGroupsHandler(w http.ResponseWriter, r *http.Request) {
	groups, err := h.data.ChatGroups(r.Context())
	if err != nil {
		log.Printf("Error listing groups: %v", err)
		http.Error(w, "Failed to list groups", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

type CreateGroupRequest struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"memberIds"`
}

func (h *APIHandler) CreateGroupHandler(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)

	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Group name is required", http.StatusBadRequest)
		return
	}

	members := req.MemberIDs
	found := false
	for _, id := range members {
		if id == user.ID {
			found = true
			break
		}
	}
	if !found {
		members = append(members, user.ID)
	}

	group, err := h.data.CreateChatGroup(r.Context(), model.ChatGroup{
		Name:      req.Name,
		MemberIDs: members,
		CreatorID: user.ID,
	})
	if err != nil {
		log.Printf("Error creating group for user %s: %v", user.ID, err)
		http.Error(w, "Failed to create group", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}
