package llm

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	defaultModelName = "gemini-1.5-flash-latest"

	missingKeyNotice = "AI features are unavailable: no API key is configured."
	requestFailed    = "The AI service could not be reached. Please try again."
)

// Service wraps the generative text API. A missing API key is a soft state:
// the service constructs fine and every call degrades to its typed default.
type Service struct {
	client *genai.Client
	model  string
}

func NewService(ctx context.Context, apiKey string) *Service {
	s := &Service{model: defaultModelName}
	if strings.TrimSpace(apiKey) == "" {
		log.Println("No AI API key configured; text-processing helpers will return defaults.")
		return s
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		log.Printf("Failed to create GenAI client, AI helpers disabled: %v", err)
		return s
	}
	s.client = client
	return s
}

func (s *Service) Close() {
	if s.client != nil {
		if err := s.client.Close(); err != nil {
			log.Printf("Error closing GenAI client: %v", err)
		}
	}
}

// Enabled reports whether a usable API client exists.
func (s *Service) Enabled() bool {
	return s.client != nil
}

// Generate is the low-level primitive: one prompt, an optional system
// instruction, and a flag requesting JSON output. It never returns an error
// to the caller; failures become "{}" in JSON mode or a fixed notice string.
func (s *Service) Generate(ctx context.Context, prompt, system string, jsonMode bool) string {
	reply, err := s.generate(ctx, prompt, system, jsonMode)
	if err != nil {
		log.Printf("LLM request failed: %v", err)
		if jsonMode {
			return "{}"
		}
		if !s.Enabled() {
			return missingKeyNotice
		}
		return requestFailed
	}
	return reply
}

func (s *Service) generate(ctx context.Context, prompt, system string, jsonMode bool) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("no API key configured")
	}

	model := s.client.GenerativeModel(s.model)
	if system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}
	if jsonMode {
		model.GenerationConfig.ResponseMIMEType = "application/json"
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content request failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("response contained no text parts")
	}
	return strings.TrimSpace(text.String()), nil
}
