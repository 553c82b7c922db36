package formatter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/futig/interview-backend/internal/config"
	"github.com/futig/interview-backend/internal/entity"
)

func sampleResult() *entity.InterviewResult {
	return &entity.InterviewResult{
		Conclusion:          "Thanks for your time.",
		OverallAssessment:   "Strong candidate.",
		Strengths:           []string{"Clear answers", "Go expertise"},
		Weaknesses:          []string{},
		TechnicalEvaluation: "Solid.",
		FinalRecommendation: "Recommend",
	}
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdownFormatter("Interview Feedback").Format(sampleResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `# Interview Feedback

## Overall Assessment

Strong candidate.

## Strengths

- Clear answers
- Go expertise

## Technical Evaluation

Solid.

## Final Recommendation

Recommend

## Conclusion

Thanks for your time.
`
	if string(out) != want {
		t.Fatalf("unexpected markdown:\n%s", out)
	}
}

func TestPDFFormatterProducesDocument(t *testing.T) {
	result := sampleResult()
	result.BehavioralEvaluation = "Team player – calm under pressure"

	out, err := NewPDFFormatter("Interview Feedback", "").Format(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF document")
	}
}

func TestFactory(t *testing.T) {
	f := NewFactory(config.ReportConfig{})

	cases := []struct {
		format entity.ResultFormat
		ext    string
	}{
		{entity.FormatMarkdown, ".md"},
		{entity.FormatPDF, ".pdf"},
		{entity.FormatDOCX, ".docx"},
	}
	for _, tc := range cases {
		fm, err := f.Create(tc.format)
		if err != nil {
			t.Fatalf("create %s: %v", tc.format, err)
		}
		if fm.FileExtension() != tc.ext {
			t.Fatalf("%s extension = %q", tc.format, fm.FileExtension())
		}
	}

	if _, err := f.Create("html"); !errors.Is(err, entity.ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format error, got %v", err)
	}

	md, _ := f.Create(entity.FormatMarkdown)
	out, _ := md.Format(&entity.InterviewResult{})
	if !strings.HasPrefix(string(out), "# Interview Feedback") {
		t.Fatalf("default title not applied: %q", out)
	}
}
