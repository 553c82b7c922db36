package interview

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/futig/interview-backend/internal/config"
	"github.com/futig/interview-backend/internal/entity"
	"github.com/futig/interview-backend/internal/pkg/formatter"
	"github.com/futig/interview-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type stubUsecase struct {
	outcome *entity.TurnOutcome
	err     error
	state   *entity.SessionState
}

func (s *stubUsecase) ConductTurn(ctx context.Context, state *entity.SessionState) (*entity.TurnOutcome, error) {
	s.state = state
	if s.err != nil {
		return nil, s.err
	}
	return s.outcome, nil
}

func newTestRouter(uc InterviewUsecase) http.Handler {
	cfg := config.InterviewConfig{MaxTextLength: 50000}
	h := NewHandler(uc, formatter.NewFactory(config.ReportConfig{}), validator.NewValidator(cfg))
	r := chi.NewRouter()
	RegisterRoutes(r, h)
	return r
}

func post(t *testing.T, router http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const turnBody = `{
	"resume_text": "Go developer",
	"job_description": "Backend role",
	"difficulty": "Hard",
	"focus": "",
	"previous_conversation": [
		{"role": "assistant", "content": "Hello"},
		{"role": "user", "content": "Hi"}
	]
}`

func TestConductTurnIncomplete(t *testing.T) {
	uc := &stubUsecase{outcome: &entity.TurnOutcome{
		Message:      "Next question",
		Conversation: []entity.ConversationTurn{{Role: entity.RoleInterviewer, Content: "Next question"}},
		Plan:         &entity.TurnPlan{Type: entity.TurnTypeFollowUp},
	}}

	rec := post(t, newTestRouter(uc), "/interview", turnBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["message"] != "Next question" || body["is_complete"] != false {
		t.Fatalf("unexpected body: %v", body)
	}
	for _, key := range []string{"feedback", "strengths", "weaknesses", "technical_evaluation", "behavioral_evaluation", "final_recommendation"} {
		if _, ok := body[key]; ok {
			t.Fatalf("%s must be absent before completion", key)
		}
	}

	st := uc.state
	if st.Context.Difficulty != entity.DifficultyHard || st.Context.Focus != entity.FocusMixed {
		t.Fatalf("unexpected context: %+v", st.Context)
	}
	if st.History[0].Role != entity.RoleInterviewer || st.History[1].Role != entity.RoleCandidate {
		t.Fatalf("roles were not normalized: %+v", st.History)
	}
}

func TestConductTurnComplete(t *testing.T) {
	uc := &stubUsecase{outcome: &entity.TurnOutcome{
		Message: "Thanks",
		Plan:    &entity.TurnPlan{Type: entity.TurnTypeFinal},
		Result: &entity.InterviewResult{
			Conclusion:          "Thanks",
			FinalRecommendation: "Consider",
		},
		Feedback: "Recommendation: Consider",
	}}

	rec := post(t, newTestRouter(uc), "/interview", turnBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["is_complete"] != true || body["final_recommendation"] != "Consider" {
		t.Fatalf("unexpected body: %v", body)
	}
	strengths, ok := body["strengths"].([]any)
	if !ok || len(strengths) != 0 {
		t.Fatalf("strengths must be an empty array, got %v", body["strengths"])
	}
	if _, ok := body["weaknesses"].([]any); !ok {
		t.Fatalf("weaknesses must be an array, got %v", body["weaknesses"])
	}
}

func TestConductTurnValidationErrors(t *testing.T) {
	cases := map[string]string{
		"malformed":      `{"resume_text":`,
		"missing resume": `{"job_description":"x"}`,
		"bad difficulty": `{"resume_text":"a","job_description":"b","difficulty":"extreme"}`,
		"bad focus":      `{"resume_text":"a","job_description":"b","focus":"sales"}`,
		"bad role":       `{"resume_text":"a","job_description":"b","previous_conversation":[{"role":"system","content":"x"}]}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			uc := &stubUsecase{}
			rec := post(t, newTestRouter(uc), "/interview", body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if uc.state != nil {
				t.Fatalf("usecase must not be called")
			}
		})
	}
}

func TestConductTurnConfigurationError(t *testing.T) {
	uc := &stubUsecase{err: entity.ErrGenerationNotConfigured}

	rec := post(t, newTestRouter(uc), "/interview", turnBody)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not configured") {
		t.Fatalf("expected a distinct configuration message, got %s", rec.Body.String())
	}
}

func TestExportReportMarkdown(t *testing.T) {
	body := `{"conclusion":"Thanks","strengths":["Go"],"weaknesses":[]}`

	rec := post(t, newTestRouter(&stubUsecase{}), "/interview/report?format=markdown", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="interview-feedback.md"` {
		t.Fatalf("unexpected disposition: %q", got)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("- Go")) {
		t.Fatalf("unexpected report: %s", rec.Body.String())
	}
}

func TestExportReportErrors(t *testing.T) {
	router := newTestRouter(&stubUsecase{})

	if rec := post(t, router, "/interview/report?format=html", `{"conclusion":"x"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("unsupported format: status = %d", rec.Code)
	}
	if rec := post(t, router, "/interview/report", `{}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("empty report: status = %d", rec.Code)
	}
}
