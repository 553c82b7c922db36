package llm

import (
	"context"
	"strings"

	"github.com/futig/interview-backend/internal/entity"
	"go.uber.org/zap"
)

// Prompt phrases the mock looks for to decide what to answer.
const assessmentMarker = "FINAL_RECOMMENDATION:"

var questionMarkers = []string{
	"ask the following question:",
	"follow-up question:",
}

const mockAssessment = `1. CONCLUSION: Thank you for your time today. We will be in touch with next steps soon.

2. OVERALL_ASSESSMENT: The candidate communicated clearly and gave relevant examples from past work.

3. STRENGTHS:
- Clear communication
- Relevant hands-on experience
- Structured problem solving

4. AREAS_FOR_IMPROVEMENT:
- Could quantify impact more often
- Limited exposure to large scale systems

5. TECHNICAL_EVALUATION: Solid grasp of the core technologies listed in the job description.

6. BEHAVIORAL_EVALUATION: Collaborative and comfortable discussing trade-offs.

7. FINAL_RECOMMENDATION: Recommend. The candidate meets the core requirements of the role.`

// MockConnector returns canned interviewer replies without calling any service.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MockConnector{
		logger: logger.With(zap.String("connector", "llm_mock")),
	}
}

func (m *MockConnector) Name() string {
	return "mock"
}

func (m *MockConnector) Generate(ctx context.Context, system, prompt string, gc entity.GenerationConfig) (string, error) {
	m.logger.Info("[MOCK] generating interviewer reply", zap.Int("prompt_length", len(prompt)))

	if strings.Contains(prompt, assessmentMarker) {
		return mockAssessment, nil
	}

	for _, marker := range questionMarkers {
		idx := strings.LastIndex(prompt, marker)
		if idx < 0 {
			continue
		}
		rest := strings.TrimSpace(prompt[idx+len(marker):])
		question, _, _ := strings.Cut(rest, "\n")
		if question = strings.TrimSpace(question); question != "" {
			return "Thanks for sharing that. " + question, nil
		}
	}

	return "Thanks for sharing that. Could you tell me more about a recent project you are proud of?", nil
}
