package formatter

import (
	"bytes"
	"os"

	"github.com/futig/interview-backend/internal/entity"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// Source-relative path (useful when running from repo root with `go run`).
	pdfFontSourcePath = "internal/pkg/formatter/ttf/DejaVuSans.ttf"

	pdfFallbackFont = "Arial"
)

type PDFFormatter struct {
	title    string
	fontPath string
}

func NewPDFFormatter(title, fontPath string) *PDFFormatter {
	return &PDFFormatter{title: title, fontPath: fontPath}
}

// resolveFontPath tries the configured font path, then the source layout.
func (mf *PDFFormatter) resolveFontPath() string {
	for _, path := range []string{mf.fontPath, pdfFontSourcePath} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func (mf *PDFFormatter) Format(result *entity.InterviewResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	fontName := pdfFallbackFont
	// Core fonts are cp1252 only, so text is translated when no TTF is available.
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	if fontPath := mf.resolveFontPath(); fontPath != "" {
		// Register regular and bold styles under the same family name
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
		translate = func(s string) string { return s }
	}

	pdf.SetFont(fontName, "B", 20)
	pdf.Cell(0, 10, translate(mf.title))
	pdf.Ln(14)

	for _, s := range buildSections(result) {
		pdf.SetFont(fontName, "B", 14)
		pdf.Cell(0, 8, translate(s.heading))
		pdf.Ln(9)

		pdf.SetFont(fontName, "", 12)
		_, lineHeight := pdf.GetFontSize()
		if s.text != "" {
			pdf.MultiCell(0, lineHeight*1.5, translate(s.text), "", "", false)
		}
		for _, item := range s.items {
			pdf.MultiCell(0, lineHeight*1.5, translate("- "+item), "", "", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (mf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
