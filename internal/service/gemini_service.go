package service

import (
	"context"
	"fmt"

	"github.com/screenhq/resume-screener/internal/config"
	"google.golang.org/genai"
)

// GeminiService scores resumes through the Gemini API. It is the default
// ScoringProvider.
type GeminiService struct {
	Client *genai.Client
	Model  string
}

func NewGeminiService(ctx context.Context) (*GeminiService, error) {
	geminiConfig := config.LoadGeminiConfig()
	if geminiConfig.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  geminiConfig.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiService{
		Client: client,
		Model:  geminiConfig.Model,
	}, nil
}

func (s *GeminiService) Evaluate(ctx context.Context, jobDescription, resumeText string) (string, error) {
	prompt := BuildScoringPrompt(jobDescription, resumeText)

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.1)),
	}

	result, err := s.Client.Models.GenerateContent(ctx, s.Model, genai.Text(prompt), genConfig)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil ||
		len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	return result.Text(), nil
}
