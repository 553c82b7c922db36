package interview

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/futig/interview-backend/internal/entity"
)

const systemPrompt = "You are an experienced job interviewer having a natural conversation with a candidate. " +
	"Your responses should be conversational, engaging, and flow naturally. Avoid sounding robotic or overly formal. " +
	"Respond directly to what the candidate says and ask thoughtful follow-up questions."

const conversationalClosing = "Make your response feel like a natural conversation rather than a scripted interview. " +
	"Show that you're actively listening to their answers."

const assessmentRequest = `The interview is now complete. Please provide a comprehensive analysis in the following format:

1. CONCLUSION: A brief thank you and conclusion to the interview.

2. OVERALL_ASSESSMENT: A paragraph evaluating the candidate's overall performance, communication skills, and job fit.

3. STRENGTHS: A list of 3-5 specific strengths demonstrated in the interview with brief explanations.

4. AREAS_FOR_IMPROVEMENT: A list of 2-4 specific areas for improvement with actionable suggestions.

5. TECHNICAL_EVALUATION: An assessment of the candidate's technical knowledge and skills relevant to the position.

6. BEHAVIORAL_EVALUATION: An assessment of the candidate's soft skills, problem-solving approach, and cultural fit.

7. FINAL_RECOMMENDATION: A clear hiring recommendation (Strongly Recommend, Recommend, Consider, or Do Not Recommend) with brief justification.

Format each section with clear headings and provide specific examples from the interview to support your analysis.`

// contextBlock is prepended to every prompt of the interview.
func contextBlock(ic entity.InterviewContext) string {
	return fmt.Sprintf(`You are an AI-powered interview coach. Your job is to simulate a realistic job interview experience
for the candidate based on their resume and the job description they provided.

Resume:
%s

Job Description:
%s

Interview Difficulty: %s
Focus Area: %s`,
		ic.ResumeText, ic.JobDescription, capitalize(string(ic.Difficulty)), capitalize(string(ic.Focus)))
}

func firstPrompt(ic entity.InterviewContext, question *entity.CandidateQuestion) string {
	var b strings.Builder
	b.WriteString(contextBlock(ic))
	b.WriteString("\n\nYou are starting a new interview. Introduce yourself briefly as the interviewer and ")
	if question != nil {
		fmt.Fprintf(&b, "ask the following question: %s\n\nKeep your response concise.", question.Text)
		return b.String()
	}
	fmt.Fprintf(&b,
		"ask your first question related to the job description and candidate's resume. "+
			"The question should be relevant to %s skills at a %s difficulty level. Keep your response concise.",
		ic.Focus, ic.Difficulty)
	return b.String()
}

func followUpPrompt(state *entity.SessionState, question *entity.CandidateQuestion) string {
	var b strings.Builder
	writeConversation(&b, state)
	b.WriteString("Respond to what they said in a conversational way, acknowledging specific points they made")
	if question != nil {
		fmt.Fprintf(&b, ", and then naturally transition to asking this follow-up question: %s\n\n", question.Text)
	} else {
		fmt.Fprintf(&b,
			". Then ask a natural follow-up question that builds on something specific they mentioned, "+
				"probing deeper into their experience with %s at a %s difficulty level. ",
			state.Context.Focus, state.Context.Difficulty)
	}
	b.WriteString(conversationalClosing)
	return b.String()
}

func assessmentPrompt(ic entity.InterviewContext) string {
	return contextBlock(ic) + "\n\n" + assessmentRequest
}

func writeConversation(b *strings.Builder, state *entity.SessionState) {
	b.WriteString(contextBlock(state.Context))
	b.WriteString("\n\nConversation history:\n")
	for i, turn := range state.History {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(b, "%s: %s", capitalize(string(turn.Role)), turn.Content)
	}
	fmt.Fprintf(b, "\n\nThe candidate just said: \"%s\"\n\n", state.LastCandidateUtterance())
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// runePrefix returns at most n runes of s.
func runePrefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}
