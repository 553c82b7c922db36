package interview

import (
	"context"
	"fmt"

	"github.com/futig/interview-backend/internal/config"
	"github.com/futig/interview-backend/internal/entity"
	"github.com/futig/interview-backend/internal/pkg/feedback"
	"github.com/futig/interview-backend/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// InterviewUsecase runs one stateless interview turn per call.
type InterviewUsecase struct {
	selector  *Selector
	executor  *Executor
	retriever RetrievalProvider
	cfg       config.InterviewConfig
}

// NewUsecase creates a new interview use case
func NewUsecase(
	selector *Selector,
	executor *Executor,
	retriever RetrievalProvider,
	cfg config.InterviewConfig,
) *InterviewUsecase {
	return &InterviewUsecase{
		selector:  selector,
		executor:  executor,
		retriever: retriever,
		cfg:       cfg,
	}
}

// ConductTurn produces the next interviewer turn for the caller supplied state.
// Only a missing generation provider is reported as an error.
func (uc *InterviewUsecase) ConductTurn(ctx context.Context, state *entity.SessionState) (*entity.TurnOutcome, error) {
	if !uc.executor.Configured() {
		return nil, entity.ErrGenerationNotConfigured
	}

	ctx = logger.WithAction(ctx, "conduct_turn")
	ctx = logger.AddFields(ctx,
		zap.Int("turn_index", state.TurnIndex()),
		zap.String("focus", string(state.Context.Focus)),
		zap.String("difficulty", string(state.Context.Difficulty)),
	)

	// The final turn never retrieves, so it skips the probe.
	if DecideTurnType(state.TurnIndex(), uc.cfg.TerminalThreshold) != entity.TurnTypeFinal {
		state.UsingRetrieval = uc.prepareRetrieval(ctx, state)
	}

	plan := uc.selector.Plan(ctx, state)
	ctx = logger.AddFields(ctx,
		zap.String("turn_type", string(plan.Type)),
		zap.String("question_source", string(plan.Source)),
	)
	ctxzap.Info(ctx, "turn planned", zap.Bool("using_retrieval", state.UsingRetrieval))

	var message string
	if plan.Source == entity.QuestionSourceScripted {
		message = plan.Question.Text
	} else {
		message = uc.executor.Execute(ctx, plan.Prompt, toGenerationConfig(uc.cfg.Generation))
	}

	outcome := &entity.TurnOutcome{Plan: plan, Message: message}

	if plan.Type == entity.TurnTypeFinal {
		ext := feedback.Extract(message)
		if !ext.Result.HasLists() {
			ctxzap.Warn(ctx, "assessment lists could not be parsed",
				zap.String("response_preview", logger.TruncateForLog(message, 200)),
			)
		}
		outcome.Message = ext.Message
		outcome.Result = &ext.Result
		outcome.Feedback = ext.Feedback
	}

	outcome.Conversation = appendTurn(state.History, entity.ConversationTurn{
		Role:    entity.RoleInterviewer,
		Content: outcome.Message,
	})

	ctxzap.Info(ctx, "turn completed", zap.Bool("is_complete", outcome.IsComplete()))
	return outcome, nil
}

// prepareRetrieval checks the retrieval provider and seeds it on the first turn.
func (uc *InterviewUsecase) prepareRetrieval(ctx context.Context, state *entity.SessionState) bool {
	probeCtx, cancel := context.WithTimeout(ctx, uc.cfg.RetrievalProbeTimeout)
	defer cancel()

	if !uc.retriever.Available(probeCtx) {
		ctxzap.Debug(ctx, "retrieval unavailable, using fallback mode")
		return false
	}

	if state.TurnIndex() > 0 {
		return true
	}

	if err := uc.seedRetrieval(ctx, state.Context); err != nil {
		ctxzap.Warn(ctx, "failed to index interview context, using fallback mode", zap.Error(err))
		return false
	}
	return true
}

func (uc *InterviewUsecase) seedRetrieval(ctx context.Context, ic entity.InterviewContext) error {
	indexCtx, cancel := context.WithTimeout(ctx, uc.cfg.ProviderTimeout)
	defer cancel()

	jobTitle := detectJobTitle(ic.JobDescription)
	if _, err := uc.retriever.Index(indexCtx, ic.JobDescription, map[string]string{
		"title": jobTitle,
		"type":  "job_description",
	}); err != nil {
		return fmt.Errorf("index job description: %w", err)
	}

	if _, err := uc.retriever.Index(indexCtx, ic.ResumeText, map[string]string{
		"title": "Resume",
		"type":  "resume",
	}); err != nil {
		return fmt.Errorf("index resume: %w", err)
	}

	ctxzap.Info(ctx, "interview context indexed", zap.String("job_title", jobTitle))
	return nil
}
