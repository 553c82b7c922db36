package logger

import (
	"context"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestTruncateForLog(t *testing.T) {
	cases := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{name: "short", input: "hello", limit: 10, want: "hello"},
		{name: "trimmed", input: "  hello  ", limit: 10, want: "hello"},
		{name: "truncated", input: "abcdef", limit: 3, want: "abc..."},
		{name: "runes", input: "привет", limit: 2, want: "пр..."},
		{name: "zero limit", input: "abc", limit: 0, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateForLog(tc.input, tc.limit); got != tc.want {
				t.Fatalf("TruncateForLog(%q, %d) = %q, want %q", tc.input, tc.limit, got, tc.want)
			}
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud", "json"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestWithActionAddsField(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := ctxzap.ToContext(context.Background(), zap.New(core))

	ctx = WithAction(ctx, "ConductTurn")
	ctx = AddFields(ctx, zap.String("focus", "technical"))
	ctxzap.Info(ctx, "hello")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["action"] != "ConductTurn" {
		t.Errorf("action = %v, want ConductTurn", fields["action"])
	}
	if fields["focus"] != "technical" {
		t.Errorf("focus = %v, want technical", fields["focus"])
	}
}
