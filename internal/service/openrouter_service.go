package service

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/screenhq/resume-screener/internal/config"
	"github.com/tidwall/gjson"
)

const openRouterEndpoint = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouterService scores resumes through the OpenRouter chat-completions
// API. Selected with SCORING_PROVIDER=openrouter.
type OpenRouterService struct {
	APIKey string
	Model  string
	client *resty.Client
}

func NewOpenRouterService() (*OpenRouterService, error) {
	openRouterConfig := config.LoadOpenRouterConfig()
	if openRouterConfig.APIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY not set")
	}

	return &OpenRouterService{
		APIKey: openRouterConfig.APIKey,
		Model:  openRouterConfig.Model,
		client: resty.New(),
	}, nil
}

func (s *OpenRouterService) Evaluate(ctx context.Context, jobDescription, resumeText string) (string, error) {
	prompt := BuildScoringPrompt(jobDescription, resumeText)

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model": s.Model,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
		}).
		Post(openRouterEndpoint)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("openrouter returned status %d", resp.StatusCode())
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no response from LLM")
	}

	return text, nil
}
