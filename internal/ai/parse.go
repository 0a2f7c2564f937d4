package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"paper2plan/internal/domain"
)

// stripCodeFence removes a surrounding markdown code fence, which local
// models tend to add around JSON answers.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:] // language tag
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func parseExtracted(text string) (domain.ExtractedData, error) {
	var data domain.ExtractedData
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &data); err != nil {
		return domain.ExtractedData{}, fmt.Errorf("unparsable extraction: %w", err)
	}
	return data, nil
}

func parseSuggestions(text string) ([]domain.SuggestedEvent, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var payload struct {
		NewEvents []domain.SuggestedEvent `json:"newEvents"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &payload); err != nil {
		return nil, fmt.Errorf("unparsable schedule: %w", err)
	}
	return payload.NewEvents, nil
}
