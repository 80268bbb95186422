package data

import (
	"encoding/json"
	"time"

	"github.com/stitbu/satupintu/internal/model"
	"github.com/stitbu/satupintu/internal/remote"
)

// The remote store keeps snake_case column names; these helpers translate to
// and from the camelCase entity shape.

func taskToRow(t model.Task) remote.Row {
	row := remote.Row{
		"id":           t.ID,
		"title":        t.Title,
		"creator_id":   t.CreatorID,
		"is_completed": t.IsCompleted,
		"priority":     string(t.Priority),
		"created_at":   t.CreatedAt.Format(time.RFC3339),
	}
	if t.Description != "" {
		row["description"] = t.Description
	}
	if t.AssigneeID != "" {
		row["assignee_id"] = t.AssigneeID
	}
	if t.DueDate != "" {
		row["due_date"] = t.DueDate
	}
	if t.OriginDivision != "" {
		row["origin_division"] = t.OriginDivision
	}
	if t.TargetDivision != "" {
		row["target_division"] = t.TargetDivision
	}
	if t.ReminderAt != nil {
		row["reminder_at"] = t.ReminderAt.Format(time.RFC3339)
		row["reminded"] = t.Reminded
	}
	if t.AttachmentURL != "" {
		row["attachment_url"] = t.AttachmentURL
	}
	if len(t.Subtasks) > 0 {
		row["subtasks"] = subtasksToValue(t.Subtasks)
	}
	return row
}

func rowToTask(row remote.Row) model.Task {
	task := model.Task{
		ID:             rowString(row, "id"),
		Title:          rowString(row, "title"),
		Description:    rowString(row, "description"),
		CreatorID:      rowString(row, "creator_id"),
		AssigneeID:     rowString(row, "assignee_id"),
		IsCompleted:    rowBool(row, "is_completed"),
		Priority:       model.Priority(rowString(row, "priority")),
		DueDate:        rowString(row, "due_date"),
		OriginDivision: rowString(row, "origin_division"),
		TargetDivision: rowString(row, "target_division"),
		Reminded:       rowBool(row, "reminded"),
		AttachmentURL:  rowString(row, "attachment_url"),
		CreatedAt:      rowTime(row, "created_at"),
	}
	if ts := rowTime(row, "reminder_at"); !ts.IsZero() {
		task.ReminderAt = &ts
	}
	if raw, ok := row["subtasks"]; ok && raw != nil {
		task.Subtasks = valueToSubtasks(raw)
	}
	return task
}

// updateToPatch translates only the fields present in the partial update;
// omitted fields stay untouched on the remote row.
func updateToPatch(u model.TaskUpdate) remote.Row {
	patch := remote.Row{}
	if u.Title != nil {
		patch["title"] = *u.Title
	}
	if u.Description != nil {
		patch["description"] = *u.Description
	}
	if u.AssigneeID != nil {
		patch["assignee_id"] = *u.AssigneeID
	}
	if u.IsCompleted != nil {
		patch["is_completed"] = *u.IsCompleted
	}
	if u.Priority != nil {
		patch["priority"] = string(*u.Priority)
	}
	if u.DueDate != nil {
		patch["due_date"] = *u.DueDate
	}
	if u.TargetDivision != nil {
		patch["target_division"] = *u.TargetDivision
	}
	if u.ReminderAt != nil {
		patch["reminder_at"] = u.ReminderAt.Format(time.RFC3339)
	}
	if u.Reminded != nil {
		patch["reminded"] = *u.Reminded
	}
	if u.AttachmentURL != nil {
		patch["attachment_url"] = *u.AttachmentURL
	}
	if u.Subtasks != nil {
		patch["subtasks"] = subtasksToValue(*u.Subtasks)
	}
	return patch
}

func messageToRow(m model.ChatMessage) remote.Row {
	return remote.Row{
		"id":          m.ID,
		"sender_id":   m.SenderID,
		"sender_name": m.SenderName,
		"channel_id":  m.ChannelID,
		"content":     m.Content,
		"created_at":  m.Timestamp.Format(time.RFC3339),
	}
}

func rowToMessage(row remote.Row) model.ChatMessage {
	return model.ChatMessage{
		ID:         rowString(row, "id"),
		SenderID:   rowString(row, "sender_id"),
		SenderName: rowString(row, "sender_name"),
		ChannelID:  rowString(row, "channel_id"),
		Content:    rowString(row, "content"),
		Timestamp:  rowTime(row, "created_at"),
	}
}

func groupToRow(g model.ChatGroup) remote.Row {
	return remote.Row{
		"id":         g.ID,
		"name":       g.Name,
		"member_ids": g.MemberIDs,
		"creator_id": g.CreatorID,
		"created_at": g.CreatedAt.Format(time.RFC3339),
	}
}

func rowToGroup(row remote.Row) model.ChatGroup {
	group := model.ChatGroup{
		ID:        rowString(row, "id"),
		Name:      rowString(row, "name"),
		CreatorID: rowString(row, "creator_id"),
		CreatedAt: rowTime(row, "created_at"),
	}
	if raw, ok := row["member_ids"]; ok && raw != nil {
		if items, ok := raw.([]interface{}); ok {
			for _, item := range items {
				if id, ok := item.(string); ok {
					group.MemberIDs = append(group.MemberIDs, id)
				}
			}
		}
	}
	return group
}

func rowString(row remote.Row, key string) string {
	if v, ok := row[key].(string); ok {
		return v
	}
	return ""
}

func rowBool(row remote.Row, key string) bool {
	if v, ok := row[key].(bool); ok {
		return v
	}
	return false
}

func rowTime(row remote.Row, key string) time.Time {
	raw, ok := row[key].(string)
	if !ok || raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// Subtasks travel as a JSON value inside the row; round-trip through
// encoding/json so the remote's loosely typed array decodes cleanly.
func subtasksToValue(subtasks []model.Subtask) interface{} {
	raw, err := json.Marshal(subtasks)
	if err != nil {
		return []interface{}{}
	}
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return []interface{}{}
	}
	return value
}

func valueToSubtasks(value interface{}) []model.Subtask {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	var subtasks []model.Subtask
	if err := json.Unmarshal(raw, &subtasks); err != nil {
		return nil
	}
	return subtasks
}
