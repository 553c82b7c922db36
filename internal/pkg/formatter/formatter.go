package formatter

import (
	"fmt"
	"strings"

	"github.com/futig/interview-backend/internal/config"
	"github.com/futig/interview-backend/internal/entity"
)

const defaultTitle = "Interview Feedback"

type Formatter interface {
	Format(result *entity.InterviewResult) ([]byte, error)
	ContentType() string
	FileExtension() string
}

// section is one block of the rendered report: either text or a bullet list.
type section struct {
	heading string
	text    string
	items   []string
}

type Factory struct {
	title    string
	fontPath string
}

func NewFactory(cfg config.ReportConfig) *Factory {
	title := strings.TrimSpace(cfg.Title)
	if title == "" {
		title = defaultTitle
	}
	return &Factory{title: title, fontPath: cfg.FontPath}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(f.title), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(f.title), nil
	case entity.FormatPDF:
		return NewPDFFormatter(f.title, f.fontPath), nil
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, format)
	}
}

// buildSections lists the non-empty parts of the result in report order.
func buildSections(r *entity.InterviewResult) []section {
	all := []section{
		{heading: "Overall Assessment", text: r.OverallAssessment},
		{heading: "Strengths", items: r.Strengths},
		{heading: "Areas for Improvement", items: r.Weaknesses},
		{heading: "Technical Evaluation", text: r.TechnicalEvaluation},
		{heading: "Behavioral Evaluation", text: r.BehavioralEvaluation},
		{heading: "Final Recommendation", text: r.FinalRecommendation},
		{heading: "Conclusion", text: r.Conclusion},
	}

	sections := make([]section, 0, len(all))
	for _, s := range all {
		s.text = strings.TrimSpace(s.text)
		if s.text == "" && len(s.items) == 0 {
			continue
		}
		sections = append(sections, s)
	}
	return sections
}
