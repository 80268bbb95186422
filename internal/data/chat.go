package data

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stitbu/satupintu/internal/model"
	"github.com/stitbu/satupintu/internal/remote"
)

// Messages returns the chat history, preferring the remote store with the
// same fallback rules as Tasks.
func (s *Service) Messages(ctx context.Context) ([]model.ChatMessage, error) {
	if !s.remote.IsConfigured() {
		s.setFetch(FetchUnconfigured)
		return s.local.GetMessages()
	}

	rows, err := s.remote.Select(ctx, TableMessages, remote.SelectOptions{OrderBy: "created_at"})
	if err != nil {
		s.setFetch(classify(err))
		return s.local.GetMessages()
	}

	s.setFetch(FetchRemote)
	messages := make([]model.ChatMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, rowToMessage(row))
	}
	return messages, nil
}

// SendMessage appends the message locally and mirrors it remotely. Messages
// are append-only; there is no update or delete path.
func (s *Service) SendMessage(ctx context.Context, msg model.ChatMessage) (model.ChatMessage, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	messages, err := s.local.GetMessages()
	if err != nil {
		return model.ChatMessage{}, err
	}
	messages = append(messages, msg)
	if err := s.local.SaveMessages(messages); err != nil {
		return model.ChatMessage{}, err
	}

	if s.remote.IsConfigured() {
		mirror("sendMessage", s.remote.Insert(ctx, TableMessages, messageToRow(msg)))
	}
	return msg, nil
}

// ChatGroups returns all groups with the standard fallback rules.
func (s *Service) ChatGroups(ctx context.Context) ([]model.ChatGroup, error) {
	if !s.remote.IsConfigured() {
		s.setFetch(FetchUnconfigured)
		return s.local.GetGroups()
	}

	rows, err := s.remote.Select(ctx, TableGroups, remote.SelectOptions{OrderBy: "created_at"})
	if err != nil {
		s.setFetch(classify(err))
		return s.local.GetGroups()
	}

	s.setFetch(FetchRemote)
	groups := make([]model.ChatGroup, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, rowToGroup(row))
	}
	return groups, nil
}

// CreateChatGroup appends the group locally and mirrors it remotely. Groups
// are append-only from this layer's perspective.
func (s *Service) CreateChatGroup(ctx context.Context, group model.ChatGroup) (model.ChatGroup, error) {
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now()
	}

	groups, err := s.local.GetGroups()
	if err != nil {
		return model.ChatGroup{}, err
	}
	groups = append(groups, group)
	if err := s.local.SaveGroups(groups); err != nil {
		return model.ChatGroup{}, err
	}

	if s.remote.IsConfigured() {
		mirror("createChatGroup", s.remote.Insert(ctx, TableGroups, groupToRow(group)))
	}
	return group, nil
}
