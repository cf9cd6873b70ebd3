package advisor

import (
	"context"
	"fmt"
	"log"

	"github.com/kgob/backend/internal/models"
)

// Service turns assessment results into narrative exit-planning guidance.
type Service struct {
	client LLMClient
	model  string
}

func NewService(client LLMClient, model string) *Service {
	return &Service{client: client, model: model}
}

func (s *Service) ModelName() string {
	return s.model
}

// GenerateRecommendations asks the advisor backend for guidance based on a
// completed assessment result, optionally informed by wealth gap figures.
func (s *Service) GenerateRecommendations(ctx context.Context, result *models.AssessmentResult, gap *models.WealthGapResult) (*models.Recommendations, error) {
	if result == nil {
		return nil, fmt.Errorf("no assessment result to advise on")
	}

	userPrompt := BuildUserPrompt(result, gap)

	resp, err := s.client.Generate(ctx, SystemPrompt(), userPrompt)
	if err != nil {
		return nil, fmt.Errorf("advisor generation failed: %w", err)
	}

	log.Printf("[advisor] %s recommendations generated (prompt=%d output=%d tokens)",
		result.AssessmentKey, resp.PromptTokens, resp.OutputTokens)

	recs, err := ParseResponse(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("advisor response rejected: %w", err)
	}

	recs.ModelUsed = s.model
	return recs, nil
}
