package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/futig/interview-backend/internal/config"
	"github.com/futig/interview-backend/internal/entity"
)

// Validator checks request limits that do not depend on providers.
// History length is not bounded: any history at or past the terminal
// threshold yields the final turn.
type Validator struct {
	maxTextLength int
}

func NewValidator(cfg config.InterviewConfig) *Validator {
	return &Validator{
		maxTextLength: cfg.MaxTextLength,
	}
}

// ValidateInterviewTurn validates InterviewTurnRequest
func (v *Validator) ValidateInterviewTurn(req *entity.InterviewTurnRequest) error {
	if strings.TrimSpace(req.ResumeText) == "" {
		return fmt.Errorf("%w: resume_text", entity.ErrMissingField)
	}

	if strings.TrimSpace(req.JobDescription) == "" {
		return fmt.Errorf("%w: job_description", entity.ErrMissingField)
	}

	if err := v.checkLength("resume_text", req.ResumeText); err != nil {
		return err
	}

	if err := v.checkLength("job_description", req.JobDescription); err != nil {
		return err
	}

	for i, turn := range req.PreviousConversation {
		if err := v.checkLength(fmt.Sprintf("previous_conversation[%d].content", i), turn.Content); err != nil {
			return err
		}
	}

	return nil
}

// ValidateReport validates a report export request
func (v *Validator) ValidateReport(req *entity.ReportRequest) error {
	if strings.TrimSpace(req.Conclusion) == "" &&
		strings.TrimSpace(req.OverallAssessment) == "" &&
		len(req.Strengths) == 0 &&
		len(req.Weaknesses) == 0 {
		return fmt.Errorf("%w: report has no content", entity.ErrMissingField)
	}

	return nil
}

func (v *Validator) checkLength(field, value string) error {
	if v.maxTextLength <= 0 {
		return nil
	}
	if n := utf8.RuneCountInString(value); n > v.maxTextLength {
		return fmt.Errorf("%s is too long: %d characters, limit is %d", field, n, v.maxTextLength)
	}
	return nil
}
