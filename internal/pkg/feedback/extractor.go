// Package feedback turns the free-form final assessment produced by the
// interviewer model into a structured interview result.
package feedback

import (
	"regexp"
	"strings"

	"github.com/futig/interview-backend/internal/entity"
)

type section string

const (
	sectionConclusion  section = "CONCLUSION"
	sectionOverall     section = "OVERALL_ASSESSMENT"
	sectionStrengths   section = "STRENGTHS"
	sectionImprovement section = "AREAS_FOR_IMPROVEMENT"
	sectionTechnical   section = "TECHNICAL_EVALUATION"
	sectionBehavioral  section = "BEHAVIORAL_EVALUATION"
	sectionRecommend   section = "FINAL_RECOMMENDATION"
)

// rule binds a section label to the result field it fills.
type rule struct {
	section section
	list    bool
	assign  func(r *entity.InterviewResult, text string, items []string)
}

var rules = []rule{
	{sectionConclusion, false, func(r *entity.InterviewResult, text string, _ []string) { r.Conclusion = text }},
	{sectionOverall, false, func(r *entity.InterviewResult, text string, _ []string) { r.OverallAssessment = text }},
	{sectionStrengths, true, func(r *entity.InterviewResult, _ string, items []string) { r.Strengths = items }},
	{sectionImprovement, true, func(r *entity.InterviewResult, _ string, items []string) { r.Weaknesses = items }},
	{sectionTechnical, false, func(r *entity.InterviewResult, text string, _ []string) { r.TechnicalEvaluation = text }},
	{sectionBehavioral, false, func(r *entity.InterviewResult, text string, _ []string) { r.BehavioralEvaluation = text }},
	{sectionRecommend, false, func(r *entity.InterviewResult, text string, _ []string) { r.FinalRecommendation = text }},
}

var (
	// Labels may be written with spaces instead of underscores and wrapped in bold markers.
	labelRe = regexp.MustCompile(
		`\b(CONCLUSION|OVERALL[ _]ASSESSMENT|STRENGTHS|AREAS[ _]FOR[ _]IMPROVEMENT|` +
			`TECHNICAL[ _]EVALUATION|BEHAVIORAL[ _]EVALUATION|FINAL[ _]RECOMMENDATION)\**:\**`,
	)
	// Numbering or heading prefix of the following section left at the end of a span.
	trailingNumberRe = regexp.MustCompile(`(?:^|\n)[\s#*]*\d+\.[\s#*]*$`)
	bulletRe         = regexp.MustCompile(`^\s*(?:[-•]|\*(?:\s|$))\s*(.*)$`)
	numberedRe       = regexp.MustCompile(`^\s*\d+[.)]\s*(.*)$`)
)

// Extraction is the parsed assessment together with the caller facing texts.
type Extraction struct {
	Result entity.InterviewResult
	// Message is the raw text, or only the conclusion when no list could be parsed.
	Message string
	// Feedback is the composite summary of the narrative sections.
	Feedback string
}

// Extract parses raw. It never fails: missing sections stay empty.
func Extract(raw string) *Extraction {
	raw = strings.TrimSpace(raw)
	spans, firstLabel := splitSections(raw)

	result := entity.InterviewResult{
		Strengths:  []string{},
		Weaknesses: []string{},
	}
	for _, rl := range rules {
		text, ok := spans[rl.section]
		if !ok {
			continue
		}
		var items []string
		if rl.list {
			items = splitList(text)
		}
		rl.assign(&result, text, items)
	}

	if _, ok := spans[sectionConclusion]; !ok {
		result.Conclusion = cleanSpan(raw[:firstLabel])
	}

	ext := &Extraction{
		Result:   result,
		Message:  raw,
		Feedback: composeFeedback(&result, raw),
	}
	if !result.HasLists() && result.Conclusion != "" {
		ext.Message = result.Conclusion
	}

	return ext
}

// splitSections maps each label to the text up to the next label.
// Only the first occurrence of a label is kept. The second value is the
// offset of the first label, or len(raw) when there is none.
func splitSections(raw string) (map[section]string, int) {
	matches := labelRe.FindAllStringSubmatchIndex(raw, -1)
	spans := make(map[section]string, len(matches))

	for i, m := range matches {
		label := section(strings.ReplaceAll(raw[m[2]:m[3]], " ", "_"))
		if _, seen := spans[label]; seen {
			continue
		}
		end := len(raw)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		spans[label] = cleanSpan(raw[m[1]:end])
	}

	if len(matches) == 0 {
		return spans, len(raw)
	}
	return spans, matches[0][0]
}

func cleanSpan(s string) string {
	s = trailingNumberRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// splitList splits a block into items, preferring bullets over numbering.
// Unmarked lines continue the current item; lines before the first marker are ignored.
func splitList(block string) []string {
	if items := collectItems(block, bulletRe); len(items) > 0 {
		return items
	}
	if items := collectItems(block, numberedRe); len(items) > 0 {
		return items
	}
	return []string{}
}

func collectItems(block string, marker *regexp.Regexp) []string {
	var (
		items   []string
		current *strings.Builder
	)

	flush := func() {
		if current == nil {
			return
		}
		if item := strings.TrimSpace(current.String()); item != "" {
			items = append(items, item)
		}
		current = nil
	}

	for _, line := range strings.Split(block, "\n") {
		if m := marker.FindStringSubmatch(line); m != nil {
			flush()
			current = &strings.Builder{}
			current.WriteString(strings.TrimSpace(m[1]))
			continue
		}
		if current == nil {
			continue
		}
		if text := strings.TrimSpace(line); text != "" {
			if current.Len() > 0 {
				current.WriteString(" ")
			}
			current.WriteString(text)
		}
	}
	flush()

	return items
}

func composeFeedback(r *entity.InterviewResult, raw string) string {
	var parts []string
	if r.OverallAssessment != "" {
		parts = append(parts, r.OverallAssessment)
	}
	if r.TechnicalEvaluation != "" {
		parts = append(parts, "Technical Assessment: "+r.TechnicalEvaluation)
	}
	if r.BehavioralEvaluation != "" {
		parts = append(parts, "Behavioral Assessment: "+r.BehavioralEvaluation)
	}
	if r.FinalRecommendation != "" {
		parts = append(parts, "Recommendation: "+r.FinalRecommendation)
	}

	if len(parts) == 0 {
		return raw
	}
	return strings.Join(parts, "\n\n")
}
