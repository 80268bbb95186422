package llm

import (
	"strings"

	"github.com/tidwall/gjson"
)

// stripFences removes a Markdown code fence the model sometimes wraps around
// JSON replies.
func stripFences(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

// safeJSON validates a model reply and returns a parse result; ok is false
// when the reply is not valid JSON, in which case callers fall back to their
// documented defaults.
func safeJSON(reply string) (gjson.Result, bool) {
	cleaned := stripFences(reply)
	if !gjson.Valid(cleaned) {
		return gjson.Result{}, false
	}
	return gjson.Parse(cleaned), true
}
