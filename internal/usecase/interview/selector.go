package interview

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/futig/interview-backend/internal/config"
	"github.com/futig/interview-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	firstQueryFormat    = "interview question about %s skills for job"
	followUpQueryFormat = "follow-up interview question about %s based on previous answer: %s"

	fallbackCategoryGeneral = "general"

	questionLabel = "Question:"
	answerLabel   = "Sample Answer:"
)

// Selector decides what the interviewer asks next and builds the prompt for it.
type Selector struct {
	retriever RetrievalProvider
	cfg       config.InterviewConfig
	bank      config.QuestionBank
	overrides map[int]string
	intn      func(n int) int
}

func NewSelector(retriever RetrievalProvider, cfg config.InterviewConfig, bank config.QuestionBank) (*Selector, error) {
	overrides := map[int]string{}
	if cfg.ScriptedOverrides {
		var err error
		if overrides, err = bank.Overrides(); err != nil {
			return nil, err
		}
	}

	return &Selector{
		retriever: retriever,
		cfg:       cfg,
		bank:      bank,
		overrides: overrides,
		intn:      rand.IntN,
	}, nil
}

// Plan returns the turn plan for the given state. It never fails: retrieval
// problems degrade to the fallback table or a model generated question.
func (s *Selector) Plan(ctx context.Context, state *entity.SessionState) *entity.TurnPlan {
	turnType := DecideTurnType(state.TurnIndex(), s.cfg.TerminalThreshold)

	if turnType == entity.TurnTypeFinal {
		return &entity.TurnPlan{
			Type:   turnType,
			Source: entity.QuestionSourceAssessment,
			Prompt: assessmentPrompt(state.Context),
		}
	}

	if forced, ok := s.overrides[state.TurnIndex()]; ok && turnType == entity.TurnTypeFollowUp {
		return &entity.TurnPlan{
			Type:     turnType,
			Source:   entity.QuestionSourceScripted,
			Question: &entity.CandidateQuestion{Text: forced, RelevanceScore: 1},
		}
	}

	question, source := s.selectQuestion(ctx, state, turnType)

	plan := &entity.TurnPlan{
		Type:     turnType,
		Source:   source,
		Question: question,
	}
	if turnType == entity.TurnTypeFirst {
		plan.Prompt = firstPrompt(state.Context, question)
	} else {
		plan.Prompt = followUpPrompt(state, question)
	}

	return plan
}

func (s *Selector) selectQuestion(
	ctx context.Context,
	state *entity.SessionState,
	turnType entity.TurnType,
) (*entity.CandidateQuestion, entity.QuestionSource) {
	if state.UsingRetrieval {
		if q := s.retrieve(ctx, state, turnType); q != nil {
			return q, entity.QuestionSourceRetrieved
		}
	}

	if !s.cfg.FallbackTableEnabled {
		return nil, entity.QuestionSourceGenerated
	}

	return s.fallback(state.Context.Focus), entity.QuestionSourceFallback
}

func (s *Selector) retrieve(ctx context.Context, state *entity.SessionState, turnType entity.TurnType) *entity.CandidateQuestion {
	query := s.buildQuery(state, turnType)

	retrieveCtx, cancel := context.WithTimeout(ctx, s.cfg.ProviderTimeout)
	defer cancel()

	passages, err := s.retriever.Retrieve(
		retrieveCtx,
		query,
		entity.RetrievalContext{
			JobDescription: state.Context.JobDescription,
			ResumeText:     state.Context.ResumeText,
		},
		s.cfg.NumResults,
		s.cfg.DiversityBias,
	)
	if err != nil {
		ctxzap.Warn(ctx, "question retrieval failed, using fallback", zap.Error(err))
		return nil
	}

	best := pickBest(passages)
	if best == nil {
		ctxzap.Info(ctx, "no usable retrieved question, using fallback", zap.Int("passage_count", len(passages)))
	}
	return best
}

func (s *Selector) buildQuery(state *entity.SessionState, turnType entity.TurnType) string {
	focus := string(state.Context.Focus)
	if turnType == entity.TurnTypeFirst {
		return fmt.Sprintf(firstQueryFormat, focus)
	}
	last := runePrefix(state.LastCandidateUtterance(), s.cfg.QueryPrefixLength)
	return fmt.Sprintf(followUpQueryFormat, focus, last)
}

// fallback picks uniformly from the table entry for focus, or the general one.
func (s *Selector) fallback(focus entity.Focus) *entity.CandidateQuestion {
	questions, ok := s.bank.Fallback[string(focus)]
	if !ok || len(questions) == 0 {
		questions = s.bank.Fallback[fallbackCategoryGeneral]
	}

	text := s.bank.GenericQuestion
	if len(questions) > 0 {
		text = questions[s.intn(len(questions))]
	}

	return &entity.CandidateQuestion{Text: text, IsFallback: true}
}

// pickBest returns the highest scoring passage with a usable question.
// Ties keep the first one seen.
func pickBest(passages []entity.RetrievedPassage) *entity.CandidateQuestion {
	var best *entity.CandidateQuestion
	for _, p := range passages {
		text := extractQuestion(p.Text)
		if text == "" {
			continue
		}
		if best == nil || p.Score > best.RelevanceScore {
			best = &entity.CandidateQuestion{Text: text, RelevanceScore: p.Score}
		}
	}
	return best
}

// extractQuestion strips the "Question:" / "Sample Answer:" framing of indexed questions.
func extractQuestion(text string) string {
	if _, after, ok := strings.Cut(text, questionLabel); ok {
		text = after
	}
	if before, _, ok := strings.Cut(text, answerLabel); ok {
		text = before
	}
	return strings.TrimSpace(text)
}
