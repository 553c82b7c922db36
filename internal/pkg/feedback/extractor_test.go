package feedback

import (
	"reflect"
	"strings"
	"testing"
)

const fullAssessment = `1. CONCLUSION: Thank you for taking the time to speak with us today.

2. OVERALL_ASSESSMENT: Strong communicator with relevant backend experience.

3. STRENGTHS:
-   Clear explanations of past projects  
* Good knowledge of Go concurrency
• Calm under pressure

4. AREAS_FOR_IMPROVEMENT:
- Limited experience with Kubernetes
- Could give more measurable outcomes

5. TECHNICAL_EVALUATION: Solid fundamentals, some gaps in distributed systems.

6. BEHAVIORAL_EVALUATION: Collaborative and reflective.

7. FINAL_RECOMMENDATION: Recommend. Good fit for the team.`

func TestExtractFullAssessment(t *testing.T) {
	ext := Extract(fullAssessment)
	r := ext.Result

	if r.Conclusion != "Thank you for taking the time to speak with us today." {
		t.Fatalf("unexpected conclusion: %q", r.Conclusion)
	}
	if r.OverallAssessment != "Strong communicator with relevant backend experience." {
		t.Fatalf("unexpected overall assessment: %q", r.OverallAssessment)
	}

	wantStrengths := []string{
		"Clear explanations of past projects",
		"Good knowledge of Go concurrency",
		"Calm under pressure",
	}
	if !reflect.DeepEqual(r.Strengths, wantStrengths) {
		t.Fatalf("strengths = %q, want %q", r.Strengths, wantStrengths)
	}

	wantWeaknesses := []string{
		"Limited experience with Kubernetes",
		"Could give more measurable outcomes",
	}
	if !reflect.DeepEqual(r.Weaknesses, wantWeaknesses) {
		t.Fatalf("weaknesses = %q, want %q", r.Weaknesses, wantWeaknesses)
	}

	if r.TechnicalEvaluation != "Solid fundamentals, some gaps in distributed systems." {
		t.Fatalf("unexpected technical evaluation: %q", r.TechnicalEvaluation)
	}
	if r.BehavioralEvaluation != "Collaborative and reflective." {
		t.Fatalf("unexpected behavioral evaluation: %q", r.BehavioralEvaluation)
	}
	if r.FinalRecommendation != "Recommend. Good fit for the team." {
		t.Fatalf("unexpected recommendation: %q", r.FinalRecommendation)
	}

	if ext.Message != fullAssessment {
		t.Fatalf("message should keep the raw text when lists were parsed")
	}

	wantFeedback := strings.Join([]string{
		"Strong communicator with relevant backend experience.",
		"Technical Assessment: Solid fundamentals, some gaps in distributed systems.",
		"Behavioral Assessment: Collaborative and reflective.",
		"Recommendation: Recommend. Good fit for the team.",
	}, "\n\n")
	if ext.Feedback != wantFeedback {
		t.Fatalf("feedback = %q, want %q", ext.Feedback, wantFeedback)
	}
}

func TestExtractNumberedLists(t *testing.T) {
	raw := `STRENGTHS:
1. Ownership of delivery
2) Mentoring juniors
   across two teams

AREAS_FOR_IMPROVEMENT:
1. Public speaking`

	r := Extract(raw).Result

	want := []string{"Ownership of delivery", "Mentoring juniors across two teams"}
	if !reflect.DeepEqual(r.Strengths, want) {
		t.Fatalf("strengths = %q, want %q", r.Strengths, want)
	}
	if !reflect.DeepEqual(r.Weaknesses, []string{"Public speaking"}) {
		t.Fatalf("unexpected weaknesses: %q", r.Weaknesses)
	}
}

func TestExtractBulletsWinOverNumbering(t *testing.T) {
	raw := "STRENGTHS:\nIntro line\n1. numbered\n- bullet one\n- bullet two\n"

	got := Extract(raw).Result.Strengths
	want := []string{"bullet one", "bullet two"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("strengths = %q, want %q", got, want)
	}
}

func TestExtractConclusionOnly(t *testing.T) {
	ext := Extract("CONCLUSION: Thanks for your time, we will be in touch.")
	r := ext.Result

	if ext.Message != "Thanks for your time, we will be in touch." {
		t.Fatalf("unexpected message: %q", ext.Message)
	}
	if r.OverallAssessment != "" || r.TechnicalEvaluation != "" || r.BehavioralEvaluation != "" || r.FinalRecommendation != "" {
		t.Fatalf("expected empty narrative fields: %+v", r)
	}
	if r.Strengths == nil || r.Weaknesses == nil || len(r.Strengths) != 0 || len(r.Weaknesses) != 0 {
		t.Fatalf("expected empty non-nil lists: %+v", r)
	}
}

func TestExtractUnstructuredText(t *testing.T) {
	raw := "The model ignored the format entirely."
	ext := Extract(raw)

	if ext.Result.Conclusion != raw || ext.Message != raw || ext.Feedback != raw {
		t.Fatalf("unexpected extraction: %+v", ext)
	}
}

func TestExtractEmptyText(t *testing.T) {
	ext := Extract("   ")
	if ext.Message != "" || ext.Result.Conclusion != "" {
		t.Fatalf("unexpected extraction: %+v", ext)
	}
	if ext.Result.Strengths == nil || ext.Result.Weaknesses == nil {
		t.Fatalf("lists must never be nil")
	}
}

func TestExtractMarkdownHeadings(t *testing.T) {
	raw := `Here is my analysis.

## 1. **CONCLUSION:** Thanks for joining.

## 2. **OVERALL ASSESSMENT:** Good overall.

## 3. **STRENGTHS:**
- APIs

## 4. **AREAS FOR IMPROVEMENT:**
- Testing`

	r := Extract(raw).Result
	if r.Conclusion != "Thanks for joining." {
		t.Fatalf("unexpected conclusion: %q", r.Conclusion)
	}
	if r.OverallAssessment != "Good overall." {
		t.Fatalf("unexpected overall assessment: %q", r.OverallAssessment)
	}
	if !reflect.DeepEqual(r.Strengths, []string{"APIs"}) || !reflect.DeepEqual(r.Weaknesses, []string{"Testing"}) {
		t.Fatalf("unexpected lists: %q / %q", r.Strengths, r.Weaknesses)
	}
}

func TestExtractKeepsFirstOccurrence(t *testing.T) {
	raw := "TECHNICAL_EVALUATION: first\nTECHNICAL_EVALUATION: second"
	if got := Extract(raw).Result.TechnicalEvaluation; got != "first" {
		t.Fatalf("technical evaluation = %q, want first", got)
	}
}

func TestExtractMissingConclusionUsesLeadingText(t *testing.T) {
	raw := "Thanks for the chat!\n\n1. STRENGTHS:\n- Curiosity"
	ext := Extract(raw)
	if ext.Result.Conclusion != "Thanks for the chat!" {
		t.Fatalf("unexpected conclusion: %q", ext.Result.Conclusion)
	}
	if ext.Message != raw {
		t.Fatalf("message should not collapse when strengths were parsed")
	}
}
