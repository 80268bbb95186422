package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/stitbu/satupintu/internal/model"
)

// Fallbacks for helpers whose reply could not be used.
const (
	FallbackLeadScore  = 50
	FallbackLeadReason = "Automatic scoring unavailable; defaulting to neutral."
)

// ParseTask extracts a structured task from free text. An unusable reply
// yields the zero task and ok=false.
func (s *Service) ParseTask(ctx context.Context, text string) (model.Task, bool) {
	prompt := fmt.Sprintf(
		`Extract a task from the following text. Reply with JSON holding "title", "description", "priority" (high, medium, or low), and "dueDate" (YYYY-MM-DD or empty). Text: %q`,
		text,
	)
	reply := s.Generate(ctx, prompt, "You turn free text into structured work items for an operations portal.", true)
	parsed, ok := safeJSON(reply)
	if !ok || parsed.Get("title").String() == "" {
		return model.Task{}, false
	}

	task := model.Task{
		Title:       parsed.Get("title").String(),
		Description: parsed.Get("description").String(),
		DueDate:     parsed.Get("dueDate").String(),
		Priority:    normalizePriority(parsed.Get("priority").String()),
	}
	return task, true
}

// SummarizeThread condenses a channel's messages into a short briefing.
func (s *Service) SummarizeThread(ctx context.Context, messages []model.ChatMessage) string {
	var transcript strings.Builder
	for _, msg := range messages {
		fmt.Fprintf(&transcript, "%s: %s\n", msg.SenderName, msg.Content)
	}
	prompt := fmt.Sprintf("Summarize this team chat in at most three sentences, focusing on decisions and action items:\n%s", transcript.String())
	return s.Generate(ctx, prompt, "You write crisp summaries for busy managers.", false)
}

// ScoreLead rates a sales lead 0-100 with a one-line reason. Malformed
// replies fall back to a neutral score.
func (s *Service) ScoreLead(ctx context.Context, description string) (int, string) {
	prompt := fmt.Sprintf(
		`Score this marketing lead from 0 to 100 for conversion likelihood. Reply with JSON holding "score" (number) and "reason" (one sentence). Lead: %q`,
		description,
	)
	reply := s.Generate(ctx, prompt, "You qualify inbound leads for a small services firm.", true)
	parsed, ok := safeJSON(reply)
	if !ok || !parsed.Get("score").Exists() {
		return FallbackLeadScore, FallbackLeadReason
	}

	score := int(parsed.Get("score").Int())
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	reason := parsed.Get("reason").String()
	if reason == "" {
		reason = FallbackLeadReason
	}
	return score, reason
}

// GenerateSubtasks breaks a task into an ordered list of sub-steps. An
// unusable reply yields an empty list.
func (s *Service) GenerateSubtasks(ctx context.Context, title string) []model.Subtask {
	prompt := fmt.Sprintf(
		`Break the task %q into 3 to 6 concrete sub-steps. Reply with a JSON array of strings, in execution order.`,
		title,
	)
	reply := s.Generate(ctx, prompt, "You plan operational work into small actionable steps.", true)
	parsed, ok := safeJSON(reply)
	if !ok || !parsed.IsArray() {
		return []model.Subtask{}
	}

	subtasks := []model.Subtask{}
	parsed.ForEach(func(_, item gjson.Result) bool {
		step := strings.TrimSpace(item.String())
		if step != "" {
			subtasks = append(subtasks, model.Subtask{ID: uuid.NewString(), Title: step})
		}
		return true
	})
	return subtasks
}

// DraftOutreach writes first-contact copy for a lead.
func (s *Service) DraftOutreach(ctx context.Context, leadName, leadContext string) string {
	prompt := fmt.Sprintf("Draft a short, friendly outreach message to %s. Context: %s", leadName, leadContext)
	return s.Generate(ctx, prompt, "You write warm, professional outreach messages in under 80 words.", false)
}

// DraftWhatsAppMessage writes a WhatsApp-ready message for the given purpose.
func (s *Service) DraftWhatsAppMessage(ctx context.Context, purpose, recipient string) string {
	prompt := fmt.Sprintf("Write a WhatsApp message to %s for this purpose: %s. Keep it informal but polite, no salutation needed.", recipient, purpose)
	return s.Generate(ctx, prompt, "You write concise WhatsApp messages for an Indonesian operations team.", false)
}

// ParseDocument pulls structured fields out of a pasted document or ID-card
// style text blob. An unusable reply yields an empty map.
func (s *Service) ParseDocument(ctx context.Context, text string) map[string]string {
	prompt := fmt.Sprintf(
		`Extract fields from this document text. Reply with a flat JSON object; use keys like "name", "idNumber", "birthDate", "address", "phone" when present. Text: %q`,
		text,
	)
	reply := s.Generate(ctx, prompt, "You extract structured data from scanned documents.", true)
	parsed, ok := safeJSON(reply)
	if !ok || !parsed.IsObject() {
		return map[string]string{}
	}

	fields := map[string]string{}
	parsed.ForEach(func(key, value gjson.Result) bool {
		fields[key.String()] = value.String()
		return true
	})
	return fields
}

// RecommendRecoveryAction suggests a debt-recovery approach for a ledger entry.
func (s *Service) RecommendRecoveryAction(ctx context.Context, debtorName string, amount float64, daysOverdue int) string {
	prompt := fmt.Sprintf(
		"Recommend a recovery approach for a debt of %.2f owed by %s, %d days overdue. Two sentences maximum.",
		amount, debtorName, daysOverdue,
	)
	return s.Generate(ctx, prompt, "You advise a small finance team on polite but effective collections.", false)
}

// PolishAnnouncement improves a broadcast's tone. With the gateway disabled
// the draft comes back unchanged.
func (s *Service) PolishAnnouncement(ctx context.Context, draft string) string {
	if !s.Enabled() {
		return draft
	}
	prompt := fmt.Sprintf("Rewrite this internal announcement so it is clear and friendly, keeping the same meaning and language: %q", draft)
	polished := s.Generate(ctx, prompt, "You edit internal communications.", false)
	if polished == requestFailed {
		return draft
	}
	return polished
}

// BulkTask is one item parsed out of a pasted chat transcript, tagged with a
// best-guess target division.
type BulkTask struct {
	Title    string `json:"title"`
	Division string `json:"division"`
}

// ParseBulkTasks turns a pasted transcript into task-like items. Malformed
// replies yield an empty list, never an error.
func (s *Service) ParseBulkTasks(ctx context.Context, transcript string) []BulkTask {
	divisionIDs := []string{}
	for _, d := range model.Divisions() {
		divisionIDs = append(divisionIDs, d.ID)
	}
	prompt := fmt.Sprintf(
		`Extract actionable tasks from this chat transcript. Reply with a JSON array of objects holding "title" and "division" (one of %s, best guess). Transcript: %q`,
		strings.Join(divisionIDs, ", "), transcript,
	)
	reply := s.Generate(ctx, prompt, "You mine chat logs for work items.", true)
	parsed, ok := safeJSON(reply)
	if !ok || !parsed.IsArray() {
		return []BulkTask{}
	}

	tasks := []BulkTask{}
	parsed.ForEach(func(_, item gjson.Result) bool {
		title := strings.TrimSpace(item.Get("title").String())
		if title == "" {
			return true
		}
		division := item.Get("division").String()
		if !model.ValidDivision(division) {
			division = ""
		}
		tasks = append(tasks, BulkTask{Title: title, Division: division})
		return true
	})
	return tasks
}

func normalizePriority(raw string) model.Priority {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high":
		return model.PriorityHigh
	case "low":
		return model.PriorityLow
	default:
		return model.PriorityMedium
	}
}
