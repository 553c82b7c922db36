package interview

import (
	"context"

	"github.com/futig/interview-backend/internal/entity"
	"github.com/futig/interview-backend/internal/pkg/formatter"
)

type InterviewUsecase interface {
	ConductTurn(ctx context.Context, state *entity.SessionState) (*entity.TurnOutcome, error)
}

type FormatterFactory interface {
	Create(format entity.ResultFormat) (formatter.Formatter, error)
}
