package rag

import (
	"context"

	"github.com/futig/interview-backend/internal/entity"
)

// NullConnector is used when no retrieval service is configured.
type NullConnector struct{}

func NewNullConnector() *NullConnector {
	return &NullConnector{}
}

func (NullConnector) Available(ctx context.Context) bool {
	return false
}

func (NullConnector) Retrieve(context.Context, string, entity.RetrievalContext, int, float64) ([]entity.RetrievedPassage, error) {
	return nil, entity.ErrRetrievalUnavailable
}

func (NullConnector) Index(context.Context, string, map[string]string) (string, error) {
	return "", entity.ErrRetrievalUnavailable
}
