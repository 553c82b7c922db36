package interview

import (
	"fmt"
	"strings"

	"github.com/futig/interview-backend/internal/entity"
)

// toSessionState rebuilds the interview state from the request.
// Empty difficulty and focus default to medium and mixed.
func toSessionState(req *entity.InterviewTurnRequest) (*entity.SessionState, error) {
	difficulty := entity.Difficulty(strings.ToLower(strings.TrimSpace(req.Difficulty)))
	if difficulty == "" {
		difficulty = entity.DifficultyMedium
	}
	if err := difficulty.Validate(); err != nil {
		return nil, err
	}

	focus := entity.Focus(strings.ToLower(strings.TrimSpace(req.Focus)))
	if focus == "" {
		focus = entity.FocusMixed
	}
	if err := focus.Validate(); err != nil {
		return nil, err
	}

	history := make([]entity.ConversationTurn, 0, len(req.PreviousConversation))
	for i, turn := range req.PreviousConversation {
		role, err := entity.NormalizeRole(turn.Role)
		if err != nil {
			return nil, fmt.Errorf("previous_conversation[%d]: %w", i, err)
		}
		history = append(history, entity.ConversationTurn{Role: role, Content: turn.Content})
	}

	return &entity.SessionState{
		Context: entity.InterviewContext{
			ResumeText:     req.ResumeText,
			JobDescription: req.JobDescription,
			Difficulty:     difficulty,
			Focus:          focus,
		},
		History: history,
	}, nil
}

// toTurnResponse converts the outcome; structured fields are set only on completion.
func toTurnResponse(out *entity.TurnOutcome) *entity.InterviewTurnResponse {
	resp := &entity.InterviewTurnResponse{
		Message:      out.Message,
		Conversation: out.Conversation,
		IsComplete:   out.IsComplete(),
	}

	if resp.IsComplete && out.Result != nil {
		resp.InterviewFeedbackDTO = &entity.InterviewFeedbackDTO{
			Feedback:             out.Feedback,
			Strengths:            nonNil(out.Result.Strengths),
			Weaknesses:           nonNil(out.Result.Weaknesses),
			TechnicalEvaluation:  out.Result.TechnicalEvaluation,
			BehavioralEvaluation: out.Result.BehavioralEvaluation,
			FinalRecommendation:  out.Result.FinalRecommendation,
		}
	}

	return resp
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
