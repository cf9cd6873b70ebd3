package advisor

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/kgob/backend/internal/models"
)

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

func ParseResponse(responseBody string) (*models.Recommendations, error) {
	cleaned := stripCodeFences(responseBody)

	var recs models.Recommendations
	if err := json.Unmarshal([]byte(cleaned), &recs); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateRecommendations(&recs); err != nil {
		return nil, err
	}

	return &recs, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

var validTimeframes = map[string]bool{"30 days": true, "90 days": true, "12 months": true}

func validateRecommendations(recs *models.Recommendations) error {
	var errs []string

	if strings.TrimSpace(recs.Summary) == "" {
		errs = append(errs, "empty summary")
	}

	if len(recs.Priorities) == 0 {
		errs = append(errs, "no priorities")
	}

	for i, p := range recs.Priorities {
		if strings.TrimSpace(p.Title) == "" {
			errs = append(errs, fmt.Sprintf("priority %d: empty title", i+1))
		}
		if strings.TrimSpace(p.Detail) == "" {
			errs = append(errs, fmt.Sprintf("priority %d: empty detail", i+1))
		}
		if !validTimeframes[p.Timeframe] {
			log.Printf("WARNING: priority %d has nonstandard timeframe %q", i+1, p.Timeframe)
		}
	}

	for i, s := range recs.Strengths {
		if strings.TrimSpace(s) == "" {
			errs = append(errs, fmt.Sprintf("strength %d: empty", i+1))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}

	return nil
}
