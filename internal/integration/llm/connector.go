package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/futig/interview-backend/internal/config"
	"github.com/futig/interview-backend/internal/entity"
	"github.com/futig/interview-backend/internal/integration/common"
	"github.com/futig/interview-backend/internal/pkg/logger"
	pkgRetry "github.com/futig/interview-backend/internal/pkg/retry"
	pkghttp "github.com/futig/interview-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const providerName = "openai"

// Connector talks to an OpenAI compatible chat completions endpoint.
type Connector struct {
	config    config.OpenAIConfig
	connector *pkghttp.Connector
	retry     pkgRetry.RetryConfig
}

func NewConnector(
	cfg config.OpenAIConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger, pkghttp.WithAuthToken(cfg.Token)),
		config:    cfg,
		retry:     *pkgRetry.DefaultRetryConfig(),
	}
}

func (c *Connector) Name() string {
	return providerName
}

// Generate sends the system and user messages and returns the first choice.
func (c *Connector) Generate(ctx context.Context, system, prompt string, gc entity.GenerationConfig) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	ctx = logger.AddFields(ctx,
		zap.String("ai_provider", providerName),
		zap.String("ai_model", c.config.Model),
	)

	messages := make([]entity.ChatMessage, 0, 2)
	if system = strings.TrimSpace(system); system != "" {
		messages = append(messages, entity.ChatMessage{Role: "system", Content: system})
	}
	messages = append(messages, entity.ChatMessage{Role: "user", Content: prompt})

	req := &entity.ChatCompletionRequest{
		Model:       c.config.Model,
		Messages:    messages,
		Temperature: gc.Temperature,
		TopP:        gc.TopP,
		MaxTokens:   gc.MaxOutputTokens,
	}

	ctxzap.Debug(ctx, "requesting chat completion", zap.Int("message_count", len(messages)))

	resp, err := pkgRetry.Do(ctx, &c.retry, pkghttp.IsTemporary, func() (*entity.ChatCompletionResponse, error) {
		var resp entity.ChatCompletionResponse
		if err := c.connector.DoRequest(ctx, http.MethodPost, c.config.CompletionsEndpoint, req, &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("chat completion failed: %s", resp.Error.Message)
	}

	for _, choice := range resp.Choices {
		if text := strings.TrimSpace(choice.Message.Content); text != "" {
			ctxzap.Debug(ctx, "chat completion received",
				zap.String("finish_reason", choice.FinishReason),
				zap.Int("result_length", len(text)),
			)
			return text, nil
		}
	}

	return "", entity.ErrEmptyGeneration
}
