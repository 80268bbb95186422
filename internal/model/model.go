package model

import "time"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleStaff   Role = "STAFF"
	RolePartner Role = "PARTNER"
)

// GeneralChannelID is the portal-wide channel every user can post to.
const GeneralChannelID = "GENERAL"

type Subtask struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"isCompleted"`
}

// Task is the portal work item. IsCompleted is an independent flag; it is
// never derived from the subtask list.
type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	CreatorID      string     `json:"creatorId"`
	AssigneeID     string     `json:"assigneeId,omitempty"`
	IsCompleted    bool       `json:"isCompleted"`
	Priority       Priority   `json:"priority"`
	DueDate        string     `json:"dueDate,omitempty"`
	OriginDivision string     `json:"originDivision,omitempty"`
	TargetDivision string     `json:"targetDivision,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	ReminderAt     *time.Time `json:"reminderAt,omitempty"`
	Reminded       bool       `json:"reminded,omitempty"`
	AttachmentURL  string     `json:"attachmentUrl,omitempty"`
	Subtasks       []Subtask  `json:"subtasks,omitempty"`
}

// TaskUpdate carries a partial update. Nil fields are left untouched, both on
// the local mirror and on the remote row.
type TaskUpdate struct {
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	AssigneeID     *string    `json:"assigneeId,omitempty"`
	IsCompleted    *bool      `json:"isCompleted,omitempty"`
	Priority       *Priority  `json:"priority,omitempty"`
	DueDate        *string    `json:"dueDate,omitempty"`
	TargetDivision *string    `json:"targetDivision,omitempty"`
	ReminderAt     *time.Time `json:"reminderAt,omitempty"`
	Reminded       *bool      `json:"reminded,omitempty"`
	AttachmentURL  *string    `json:"attachmentUrl,omitempty"`
	Subtasks       *[]Subtask `json:"subtasks,omitempty"`
}

// ChatMessage is append-only; the data layer exposes no update or delete.
type ChatMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	ChannelID  string    `json:"channelId"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}

// ChatGroup is append-only from the data layer's perspective.
type ChatGroup struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	MemberIDs []string  `json:"memberIds"`
	CreatorID string    `json:"creatorId"`
	CreatedAt time.Time `json:"createdAt"`
}

type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	DisplayName  string `json:"displayName"`
	Role         Role   `json:"role"`
	Division     string `json:"division"`
	StickyNote   string `json:"stickyNote,omitempty"`
	PasswordHash string `json:"-"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// UserPreferences are per-install settings, stored locally only.
type UserPreferences struct {
	Theme          string `json:"theme"`
	Notifications  bool   `json:"notifications"`
	Language       string `json:"language"`
	WhatsAppNumber string `json:"whatsappNumber,omitempty"`
	WebhookURL     string `json:"webhookUrl,omitempty"`
	FonnteToken    string `json:"fonnteToken,omitempty"`
}

type ActivityLog struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}
