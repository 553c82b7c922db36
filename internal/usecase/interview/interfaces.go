package interview

import (
	"context"

	"github.com/futig/interview-backend/internal/entity"
)

type GenerationProvider interface {
	Name() string
	Generate(ctx context.Context, system, prompt string, cfg entity.GenerationConfig) (string, error)
}

type RetrievalProvider interface {
	Available(ctx context.Context) bool
	Retrieve(ctx context.Context, query string, rc entity.RetrievalContext, numResults int, diversityBias float64) ([]entity.RetrievedPassage, error)
	Index(ctx context.Context, document string, metadata map[string]string) (string, error)
}
