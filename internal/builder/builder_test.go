package builder

import (
	"context"
	"testing"

	"github.com/futig/interview-backend/internal/config"
	"github.com/futig/interview-backend/internal/integration/llm"
	"github.com/futig/interview-backend/internal/integration/rag"
	"go.uber.org/zap"
)

func TestSetupConnectorsMocks(t *testing.T) {
	cfg := &config.Config{EnableMocks: true}

	providers, retriever, err := setupConnectors(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(providers) != 1 {
		t.Fatalf("providers = %d, want 1", len(providers))
	}
	if _, ok := providers[0].(*llm.MockConnector); !ok {
		t.Fatalf("provider = %T, want mock", providers[0])
	}
	if _, ok := retriever.(*rag.MockConnector); !ok {
		t.Fatalf("retriever = %T, want mock", retriever)
	}
}

func TestSetupConnectorsWithoutCredentials(t *testing.T) {
	providers, retriever, err := setupConnectors(context.Background(), &config.Config{}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(providers) != 0 {
		t.Fatalf("providers = %d, want none", len(providers))
	}
	if _, ok := retriever.(*rag.NullConnector); !ok {
		t.Fatalf("retriever = %T, want null connector", retriever)
	}
}

func TestSetupConnectorsOpenAIOnly(t *testing.T) {
	cfg := &config.Config{}
	cfg.OpenAICfg.Token = "sk-test"
	cfg.OpenAICfg.Url = "https://api.example.com"

	providers, _, err := setupConnectors(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(providers) != 1 || providers[0].Name() != "openai" {
		t.Fatalf("unexpected providers: %v", providers)
	}
}
