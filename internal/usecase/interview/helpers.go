package interview

import (
	"strings"

	"github.com/futig/interview-backend/internal/config"
	"github.com/futig/interview-backend/internal/entity"
)

const (
	defaultJobTitle   = "Job Position"
	jobTitleScanLines = 5
)

var jobTitleKeywords = []string{"position", "title", "role", "job"}

// detectJobTitle returns the first of the leading lines that looks like a title.
func detectJobTitle(jobDescription string) string {
	lines := strings.SplitN(jobDescription, "\n", jobTitleScanLines+1)
	if len(lines) > jobTitleScanLines {
		lines = lines[:jobTitleScanLines]
	}

	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, keyword := range jobTitleKeywords {
			if strings.Contains(lower, keyword) {
				return strings.TrimSpace(line)
			}
		}
	}
	return defaultJobTitle
}

func appendTurn(history []entity.ConversationTurn, turn entity.ConversationTurn) []entity.ConversationTurn {
	conversation := make([]entity.ConversationTurn, 0, len(history)+1)
	conversation = append(conversation, history...)
	return append(conversation, turn)
}

func toGenerationConfig(gc config.GenerationConfig) entity.GenerationConfig {
	return entity.GenerationConfig{
		Temperature:     gc.Temperature,
		TopP:            gc.TopP,
		TopK:            gc.TopK,
		MaxOutputTokens: gc.MaxOutputTokens,
	}
}
