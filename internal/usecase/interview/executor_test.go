package interview

import (
	"context"
	"testing"
	"time"

	"github.com/futig/interview-backend/internal/entity"
)

var sampling = entity.GenerationConfig{Temperature: 0.8, TopP: 0.95, TopK: 40, MaxOutputTokens: 800}

func TestExecuteUsesPrimary(t *testing.T) {
	primary := &fakeGenerator{name: "primary", reply: "Hello"}
	secondary := &fakeGenerator{name: "secondary", reply: "Hi"}

	out := NewExecutor(time.Second, primary, secondary).Execute(context.Background(), "prompt", sampling)

	if out != "Hello" {
		t.Fatalf("unexpected output: %q", out)
	}
	if secondary.calls() != 0 {
		t.Fatalf("secondary must not be called")
	}
	if primary.systems[0] != systemPrompt || primary.configs[0] != sampling {
		t.Fatalf("system instruction or sampling options not passed")
	}
}

func TestExecuteFallsBackToSecondary(t *testing.T) {
	primary := &fakeGenerator{name: "primary", err: errProvider}
	secondary := &fakeGenerator{name: "secondary", reply: "From secondary"}

	out := NewExecutor(time.Second, primary, secondary).Execute(context.Background(), "prompt", sampling)

	if out != "From secondary" {
		t.Fatalf("unexpected output: %q", out)
	}
	if secondary.prompts[0] != primary.prompts[0] || secondary.systems[0] != primary.systems[0] {
		t.Fatalf("secondary must receive the same prompt and system instruction")
	}
}

func TestExecuteReturnsFallbackUtterance(t *testing.T) {
	primary := &fakeGenerator{name: "primary", err: errProvider}
	secondary := &fakeGenerator{name: "secondary", reply: ""}
	third := &fakeGenerator{name: "third", reply: "never"}

	out := NewExecutor(time.Second, primary, secondary, third).Execute(context.Background(), "prompt", sampling)

	if out != FallbackUtterance {
		t.Fatalf("expected fallback utterance, got %q", out)
	}
	if primary.calls() != 1 || secondary.calls() != 1 || third.calls() != 0 {
		t.Fatalf("expected exactly one primary and one secondary attempt")
	}
}

func TestExecuteSkipsNilProviders(t *testing.T) {
	secondary := &fakeGenerator{name: "secondary", reply: "ok"}
	e := NewExecutor(time.Second, nil, secondary)

	if !e.Configured() {
		t.Fatalf("expected executor to be configured")
	}
	if out := e.Execute(context.Background(), "prompt", sampling); out != "ok" {
		t.Fatalf("unexpected output: %q", out)
	}
	if NewExecutor(time.Second, nil, nil).Configured() {
		t.Fatalf("executor without providers must not be configured")
	}
}

type blockingGenerator struct{}

func (blockingGenerator) Name() string { return "blocking" }

func (blockingGenerator) Generate(ctx context.Context, _, _ string, _ entity.GenerationConfig) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestExecuteTreatsTimeoutAsFailure(t *testing.T) {
	secondary := &fakeGenerator{name: "secondary", reply: "after timeout"}
	e := NewExecutor(10*time.Millisecond, blockingGenerator{}, secondary)

	if out := e.Execute(context.Background(), "prompt", sampling); out != "after timeout" {
		t.Fatalf("unexpected output: %q", out)
	}
}
