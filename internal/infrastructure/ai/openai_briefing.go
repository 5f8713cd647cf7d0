package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"

	"resqnet/internal/domain/entity"
	"resqnet/internal/domain/service"
)

const maxPromptLength = 15000 // rough character cap for the disaster payload

// OpenAIBriefingService implements service.BriefingService with chat completions.
type OpenAIBriefingService struct {
	client *openai.Client
	model  string
}

var _ service.BriefingService = (*OpenAIBriefingService)(nil)

// NewOpenAIBriefingService builds the adapter. baseURL is optional and mostly
// used to point at a compatible gateway or a test server.
func NewOpenAIBriefingService(apiKey, model, baseURL string) *OpenAIBriefingService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIBriefingService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// SummarizeBriefing asks for a two-sentence situational briefing over the given disasters.
func (s *OpenAIBriefingService) SummarizeBriefing(ctx context.Context, disasters []entity.Disaster) (string, error) {
	data, err := json.Marshal(disasters)
	if err != nil {
		return "", fmt.Errorf("encode disasters: %w", err)
	}
	payload := truncate(string(data), maxPromptLength)

	prompt := fmt.Sprintf("Analyze these disaster reports and provide a 2-sentence situational briefing for emergency response teams. Focus on urgency and resource allocation priorities.\nData: %s", payload)

	return s.complete(ctx, prompt, 150)
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// RateSeverity classifies a report description. Replies that are not one of
// the four ratings are reported as errors so the caller falls back.
func (s *OpenAIBriefingService) RateSeverity(ctx context.Context, description string) (entity.Severity, error) {
	prompt := fmt.Sprintf("Rate the severity of this disaster report as 'Low', 'Medium', 'High', or 'Critical' based on the text: %q. Reply with only the single word rating.", description)

	reply, err := s.complete(ctx, prompt, 5)
	if err != nil {
		return "", err
	}
	return entity.ParseSeverity(reply)
}

func (s *OpenAIBriefingService) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are an assistant supporting disaster response coordinators. Answer concisely.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   maxTokens,
			N:           1,
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("openai chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai returned empty response or choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
