package entity

// ConversationTurnDTO is the wire form of a turn; Role is free text until validated.
type ConversationTurnDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type InterviewTurnRequest struct {
	ResumeText           string                `json:"resume_text"`
	JobDescription       string                `json:"job_description"`
	Difficulty           string                `json:"difficulty"`
	Focus                string                `json:"focus"`
	PreviousConversation []ConversationTurnDTO `json:"previous_conversation"`
}

// InterviewFeedbackDTO carries the structured fields of the final turn.
// It is embedded by pointer so the fields disappear from JSON until the interview completes.
type InterviewFeedbackDTO struct {
	Feedback             string   `json:"feedback"`
	Strengths            []string `json:"strengths"`
	Weaknesses           []string `json:"weaknesses"`
	TechnicalEvaluation  string   `json:"technical_evaluation"`
	BehavioralEvaluation string   `json:"behavioral_evaluation"`
	FinalRecommendation  string   `json:"final_recommendation"`
}

type InterviewTurnResponse struct {
	Message      string             `json:"message"`
	Conversation []ConversationTurn `json:"conversation"`
	IsComplete   bool               `json:"is_complete"`
	*InterviewFeedbackDTO
}

// TurnOutcome is what the interview usecase returns for one request.
type TurnOutcome struct {
	Message      string
	Conversation []ConversationTurn
	Plan         *TurnPlan
	Result       *InterviewResult
	Feedback     string
}

// IsComplete reports whether the turn was the terminal one.
func (o *TurnOutcome) IsComplete() bool {
	return o.Plan != nil && o.Plan.Type == TurnTypeFinal
}

type ReportRequest struct {
	InterviewResult
}
