package interview

import (
	"context"
	"time"

	"github.com/futig/interview-backend/internal/entity"
	"github.com/futig/interview-backend/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// FallbackUtterance is returned when no generation provider produced a reply.
const FallbackUtterance = "I'm having trouble connecting to my AI service right now. Could you please try again in a moment?"

// Executor obtains the interviewer utterance from the configured providers in order.
type Executor struct {
	providers []GenerationProvider
	timeout   time.Duration
}

// NewExecutor keeps the non-nil providers; the first is primary, the next is secondary.
func NewExecutor(timeout time.Duration, providers ...GenerationProvider) *Executor {
	e := &Executor{timeout: timeout}
	for _, p := range providers {
		if p != nil {
			e.providers = append(e.providers, p)
		}
	}
	return e
}

// Configured reports whether at least one provider is available.
func (e *Executor) Configured() bool {
	return len(e.providers) > 0
}

// Execute never fails; it returns FallbackUtterance when every provider failed.
func (e *Executor) Execute(ctx context.Context, prompt string, gc entity.GenerationConfig) string {
	for i, p := range e.providers {
		// Only the primary and one secondary attempt are made.
		if i > 1 {
			break
		}

		text, err := e.generate(ctx, p, prompt, gc)
		if err == nil {
			return text
		}

		ctxzap.Warn(ctx, "generation provider failed",
			zap.String("provider", p.Name()),
			zap.Int("attempt", i+1),
			zap.Error(err),
		)
	}

	ctxzap.Error(ctx, "all generation providers failed, returning fallback utterance",
		zap.Int("provider_count", len(e.providers)),
	)
	return FallbackUtterance
}

func (e *Executor) generate(ctx context.Context, p GenerationProvider, prompt string, gc entity.GenerationConfig) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	ctx = logger.AddFields(ctx, zap.String("provider", p.Name()))
	text, err := p.Generate(ctx, systemPrompt, prompt, gc)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", entity.ErrEmptyGeneration
	}

	ctxzap.Debug(ctx, "interviewer utterance generated", zap.String("preview", logger.TruncateForLog(text, 120)))
	return text, nil
}
