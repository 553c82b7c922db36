package formatter

import (
	"bytes"

	"github.com/futig/interview-backend/internal/entity"
	"github.com/unidoc/unioffice/common/license"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

// SetDOCXLicense registers a metered UniOffice key. An empty key is ignored.
func SetDOCXLicense(key string) error {
	if key == "" {
		return nil
	}
	return license.SetMeteredKey(key)
}

type DOCXFormatter struct {
	title string
}

func NewDOCXFormatter(title string) *DOCXFormatter {
	return &DOCXFormatter{title: title}
}

func (mf *DOCXFormatter) Format(result *entity.InterviewResult) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titlePar.AddRun().AddText(mf.title)

	for _, s := range buildSections(result) {
		headingPar := doc.AddParagraph()
		headingPar.SetStyle("Heading2")
		headingPar.AddRun().AddText(s.heading)

		if s.text != "" {
			doc.AddParagraph().AddRun().AddText(s.text)
		}
		for _, item := range s.items {
			doc.AddParagraph().AddRun().AddText("• " + item)
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
