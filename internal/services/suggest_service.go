package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// The prompt asks for three questions in one delimited string so the response
// splits without any structured-output plumbing.
const suggestionPrompt = "Create a list of three open-ended and engaging questions formatted as a single string. " +
	"Each question should be separated by '||'. These questions are for an anonymous social messaging platform " +
	"and should be suitable for a diverse audience. Avoid personal or sensitive topics, focusing instead on " +
	"universal themes that encourage friendly interaction. For example, your output should be structured like " +
	"this: 'What's a hobby you've recently started?||If you could have dinner with any historical figure, " +
	"who would it be?||What's a simple thing that makes you happy?'. Ensure that questions are intriguing, " +
	"foster curiosity, and contribute to a positive and welcoming conversational environment."

const suggestionTimeout = 30 * time.Second

// SuggestService asks Gemini for message prompts a sender can pick from.
type SuggestService struct {
	client *genai.Client
	model  string
}

func NewSuggestService(ctx context.Context, apiKey, model string) (*SuggestService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &SuggestService{client: client, model: model}, nil
}

func (s *SuggestService) SuggestMessages(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, suggestionTimeout)
	defer cancel()

	result, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(suggestionPrompt), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate suggestions: %w", err)
	}

	return splitSuggestions(result.Text()), nil
}

func splitSuggestions(text string) []string {
	var suggestions []string
	for _, part := range strings.Split(text, "||") {
		part = strings.TrimSpace(part)
		if part != "" {
			suggestions = append(suggestions, part)
		}
	}
	return suggestions
}
