package interview

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/futig/interview-backend/internal/config"
	"github.com/futig/interview-backend/internal/entity"
)

type fakeRetriever struct {
	mu        sync.Mutex
	available bool
	passages  []entity.RetrievedPassage
	err       error
	indexErr  error

	probes  int
	queries []string
	indexed []map[string]string
}

func (f *fakeRetriever) Available(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probes++
	return f.available
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query string, rc entity.RetrievalContext, numResults int, diversityBias float64) ([]entity.RetrievedPassage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return f.passages, f.err
}

func (f *fakeRetriever) Index(ctx context.Context, document string, metadata map[string]string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.indexed = append(f.indexed, metadata)
	if f.indexErr != nil {
		return "", f.indexErr
	}
	return "doc-1", nil
}

type fakeGenerator struct {
	mu      sync.Mutex
	name    string
	reply   string
	err     error
	prompts []string
	systems []string
	configs []entity.GenerationConfig
}

func (f *fakeGenerator) Name() string {
	return f.name
}

func (f *fakeGenerator) Generate(ctx context.Context, system, prompt string, cfg entity.GenerationConfig) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.systems = append(f.systems, system)
	f.configs = append(f.configs, cfg)
	return f.reply, f.err
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

var errProvider = errors.New("provider down")

func testInterviewConfig() config.InterviewConfig {
	return config.InterviewConfig{
		TerminalThreshold:     10,
		NumResults:            3,
		DiversityBias:         0.3,
		QueryPrefixLength:     100,
		ScriptedOverrides:     true,
		FallbackTableEnabled:  true,
		ProviderTimeout:       time.Second,
		RetrievalProbeTimeout: time.Second,
		MaxTextLength:         50000,
		Generation: config.GenerationConfig{
			Temperature:     0.8,
			TopP:            0.95,
			TopK:            40,
			MaxOutputTokens: 800,
		},
	}
}

func testContext(focus entity.Focus) entity.InterviewContext {
	return entity.InterviewContext{
		ResumeText:     "Go developer with five years of experience",
		JobDescription: "Job Title: Senior Backend Engineer\nWe build APIs",
		Difficulty:     entity.DifficultyMedium,
		Focus:          focus,
	}
}

// history builds n alternating turns starting with the interviewer.
func history(n int) []entity.ConversationTurn {
	turns := make([]entity.ConversationTurn, 0, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			turns = append(turns, entity.ConversationTurn{Role: entity.RoleInterviewer, Content: "question"})
		} else {
			turns = append(turns, entity.ConversationTurn{Role: entity.RoleCandidate, Content: "answer"})
		}
	}
	return turns
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
