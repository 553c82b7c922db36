package formatter

import (
	"bytes"
	"fmt"

	"github.com/futig/interview-backend/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct {
	title string
}

func NewMarkdownFormatter(title string) *MarkdownFormatter {
	return &MarkdownFormatter{title: title}
}

func (mf *MarkdownFormatter) Format(result *entity.InterviewResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", mf.title)

	for _, s := range buildSections(result) {
		fmt.Fprintf(&buf, "\n## %s\n\n", s.heading)
		if s.text != "" {
			fmt.Fprintf(&buf, "%s\n", s.text)
		}
		for _, item := range s.items {
			fmt.Fprintf(&buf, "- %s\n", item)
		}
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
