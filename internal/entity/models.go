package entity

import (
	"fmt"
	"strings"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d *Difficulty) Validate() error {
	switch *d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidDifficulty, *d)
	}
}

type Focus string

const (
	FocusTechnical  Focus = "technical"
	FocusBehavioral Focus = "behavioral"
	FocusMixed      Focus = "mixed"
)

func (f *Focus) Validate() error {
	switch *f {
	case FocusTechnical, FocusBehavioral, FocusMixed:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidFocus, *f)
	}
}

type Role string

const (
	RoleInterviewer Role = "interviewer"
	RoleCandidate   Role = "candidate"
)

// roleAliases maps roles sent by chat-style clients onto interview roles.
var roleAliases = map[string]Role{
	"interviewer": RoleInterviewer,
	"assistant":   RoleInterviewer,
	"candidate":   RoleCandidate,
	"user":        RoleCandidate,
}

// NormalizeRole resolves a caller supplied role, accepting chat-style aliases.
func NormalizeRole(raw string) (Role, error) {
	role, ok := roleAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, raw)
	}
	return role, nil
}

// TurnType is the phase of the interview the next interviewer utterance belongs to.
type TurnType string

const (
	TurnTypeFirst    TurnType = "FIRST"
	TurnTypeFollowUp TurnType = "FOLLOW_UP"
	TurnTypeFinal    TurnType = "FINAL"
)

// InterviewContext is fixed for the lifetime of an interview and is rebuilt
// from the same request fields on every turn.
type InterviewContext struct {
	ResumeText     string
	JobDescription string
	Difficulty     Difficulty
	Focus          Focus
}

type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SessionState is reconstructed from caller-supplied data on each request.
// Nothing in it outlives the request.
type SessionState struct {
	Context        InterviewContext
	History        []ConversationTurn
	UsingRetrieval bool
}

// TurnIndex is the number of turns already exchanged.
func (s *SessionState) TurnIndex() int {
	return len(s.History)
}

// LastCandidateUtterance returns the most recent candidate turn content or "".
func (s *SessionState) LastCandidateUtterance() string {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Role == RoleCandidate {
			return s.History[i].Content
		}
	}
	return ""
}

type CandidateQuestion struct {
	Text           string
	RelevanceScore float64
	IsFallback     bool
}

// QuestionSource tells where the question of a turn came from.
type QuestionSource string

const (
	QuestionSourceRetrieved  QuestionSource = "retrieved"
	QuestionSourceFallback   QuestionSource = "fallback"
	QuestionSourceScripted   QuestionSource = "scripted"
	QuestionSourceGenerated  QuestionSource = "generated"
	QuestionSourceAssessment QuestionSource = "assessment"
)

// TurnPlan is the selector's decision for one turn.
type TurnPlan struct {
	Type     TurnType
	Source   QuestionSource
	Question *CandidateQuestion
	Prompt   string
}

// InterviewResult is the structured assessment produced on the final turn.
type InterviewResult struct {
	Conclusion           string   `json:"conclusion"`
	OverallAssessment    string   `json:"overall_assessment"`
	Strengths            []string `json:"strengths"`
	Weaknesses           []string `json:"weaknesses"`
	TechnicalEvaluation  string   `json:"technical_evaluation"`
	BehavioralEvaluation string   `json:"behavioral_evaluation"`
	FinalRecommendation  string   `json:"final_recommendation"`
}

// HasLists reports whether at least one of the list sections was parsed.
func (r *InterviewResult) HasLists() bool {
	return len(r.Strengths) > 0 || len(r.Weaknesses) > 0
}

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatPDF      ResultFormat = "pdf"
	FormatDOCX     ResultFormat = "docx"
)

func (rf *ResultFormat) Validate() error {
	switch *rf {
	case FormatMarkdown, FormatPDF, FormatDOCX:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, *rf)
	}
}
