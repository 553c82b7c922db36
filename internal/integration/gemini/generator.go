package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/futig/interview-backend/internal/config"
	"github.com/futig/interview-backend/internal/entity"
	"github.com/futig/interview-backend/internal/pkg/logger"
	pkgRetry "github.com/futig/interview-backend/internal/pkg/retry"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel  = "gemini-2.5-flash"
	providerName  = "gemini"
	logPreviewLen = 200
)

// modelsClient is the subset of genai.Models used by the generator.
type modelsClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator wraps the Google GenAI client as a generation provider.
type Generator struct {
	models  modelsClient
	model   string
	retry   pkgRetry.RetryConfig
	timeout time.Duration
}

// NewGenerator creates a Generator for the Gemini API backend.
func NewGenerator(ctx context.Context, cfg config.GeminiConfig) (*Generator, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGenerator(client.Models, cfg), nil
}

func newGenerator(models modelsClient, cfg config.GeminiConfig) *Generator {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	return &Generator{models: models, model: model, retry: cfg.Retry, timeout: cfg.Timeout}
}

func (g *Generator) Name() string {
	return providerName
}

func (g *Generator) Model() string {
	return g.model
}

// Generate sends the prompt with the system instruction and sampling options
// and returns the concatenated text of the response.
func (g *Generator) Generate(ctx context.Context, system, prompt string, gc entity.GenerationConfig) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	ctx = logger.AddFields(ctx,
		zap.String("ai_provider", providerName),
		zap.String("ai_model", g.model),
	)

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	cfg := buildContentConfig(system, gc)

	ctxzap.Debug(ctx, "gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, logPreviewLen)),
	)

	output, err := pkgRetry.Do(ctx, &g.retry, isTemporary, func() (string, error) {
		resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
		if err != nil {
			ctxzap.Warn(ctx, "gemini generate content failed", zap.Error(err))
			return "", fmt.Errorf("generate content: %w", err)
		}
		return collectText(resp)
	})
	if err != nil {
		return "", err
	}

	ctxzap.Debug(ctx, "gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", logger.TruncateForLog(output, logPreviewLen)),
	)

	return output, nil
}

func buildContentConfig(system string, gc entity.GenerationConfig) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(gc.Temperature),
		TopP:            genai.Ptr(gc.TopP),
		TopK:            genai.Ptr(float32(gc.TopK)),
		MaxOutputTokens: gc.MaxOutputTokens,
	}

	if system = strings.TrimSpace(system); system != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	return cfg
}

func collectText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", entity.ErrEmptyGeneration
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
		// Only the first candidate with content is used.
		if builder.Len() > 0 {
			break
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", entity.ErrEmptyGeneration
	}

	return output, nil
}

// isTemporary reports whether a Gemini failure may succeed on retry.
func isTemporary(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code == http.StatusTooManyRequests || apiErrPtr.Code >= http.StatusInternalServerError
	}

	return false
}
