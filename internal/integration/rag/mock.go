package rag

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/futig/interview-backend/internal/entity"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type mockDocument struct {
	id   string
	text string
}

var sampleQuestions = []struct {
	question string
	answer   string
}{
	{
		"Walk me through how you would design a REST API for a high traffic service.",
		"Start from resources and access patterns, then cover caching, pagination, versioning and rate limiting.",
	},
	{
		"Tell me about a time you disagreed with a teammate on a technical decision.",
		"Describe the context, how you listened, the data you brought and what you agreed on.",
	},
	{
		"How do you make sure the code you ship is reliable?",
		"Automated tests at several levels, code review, observability and gradual rollouts.",
	},
	{
		"Describe a project where you had to learn a new technology quickly.",
		"Explain how you found good sources, built a prototype and asked for feedback early.",
	},
	{
		"What skills from your previous role are most relevant to this job?",
		"Map two or three concrete experiences to the requirements in the job description.",
	},
}

// MockConnector is an in memory corpus seeded with sample interview questions.
type MockConnector struct {
	logger *zap.Logger

	mu   sync.RWMutex
	docs []mockDocument
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &MockConnector{logger: logger.With(zap.String("connector", "rag_mock"))}
	for _, q := range sampleQuestions {
		m.docs = append(m.docs, mockDocument{
			id:   docIDPrefix + uuid.NewString(),
			text: fmt.Sprintf("Question: %s\nSample Answer: %s", q.question, q.answer),
		})
	}
	return m
}

func (m *MockConnector) Available(ctx context.Context) bool {
	return true
}

func (m *MockConnector) Retrieve(
	ctx context.Context,
	query string,
	rc entity.RetrievalContext,
	numResults int,
	diversityBias float64,
) ([]entity.RetrievedPassage, error) {
	m.logger.Info("[MOCK] querying retrieval corpus", zap.String("query", query))

	terms := strings.Fields(strings.ToLower(query))

	m.mu.RLock()
	passages := make([]entity.RetrievedPassage, 0, len(m.docs))
	for _, doc := range m.docs {
		// Only question documents are returned, mirroring a metadata filtered corpus.
		if !strings.HasPrefix(doc.text, "Question:") {
			continue
		}
		passages = append(passages, entity.RetrievedPassage{Text: doc.text, Score: overlap(terms, doc.text)})
	}
	m.mu.RUnlock()

	sort.SliceStable(passages, func(i, j int) bool {
		return passages[i].Score > passages[j].Score
	})

	if numResults > 0 && len(passages) > numResults {
		passages = passages[:numResults]
	}
	return passages, nil
}

func (m *MockConnector) Index(ctx context.Context, text string, metadata map[string]string) (string, error) {
	id := docIDPrefix + uuid.NewString()
	m.logger.Info("[MOCK] indexing document",
		zap.String("document_id", id),
		zap.String("type", metadata["type"]),
	)

	m.mu.Lock()
	m.docs = append(m.docs, mockDocument{id: id, text: text})
	m.mu.Unlock()

	return id, nil
}

func overlap(terms []string, text string) float64 {
	if len(terms) == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	hits := 0
	for _, t := range terms {
		if len(t) > 3 && strings.Contains(lower, t) {
			hits++
		}
	}
	return float64(hits) / float64(len(terms))
}
