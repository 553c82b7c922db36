package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/interview-backend/internal/api"
	interviewapi "github.com/futig/interview-backend/internal/api/interview"
	"github.com/futig/interview-backend/internal/config"
	"github.com/futig/interview-backend/internal/integration/gemini"
	"github.com/futig/interview-backend/internal/integration/llm"
	"github.com/futig/interview-backend/internal/integration/rag"
	"github.com/futig/interview-backend/internal/pkg/formatter"
	pkglogger "github.com/futig/interview-backend/internal/pkg/logger"
	"github.com/futig/interview-backend/internal/pkg/validator"
	"github.com/futig/interview-backend/internal/usecase/interview"
	"go.uber.org/zap"
)

// Build loads configuration and wires providers, use cases and the HTTP server.
func Build(ctx context.Context) (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	providers, retriever, err := setupConnectors(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := formatter.SetDOCXLicense(cfg.ReportCfg.UnidocLicense); err != nil {
		return nil, fmt.Errorf("set docx license: %w", err)
	}

	// Initialize use cases
	selector, err := interview.NewSelector(retriever, cfg.InterviewCfg, cfg.QuestionBank)
	if err != nil {
		return nil, fmt.Errorf("create question selector: %w", err)
	}
	executor := interview.NewExecutor(cfg.InterviewCfg.ProviderTimeout, providers...)
	interviewUC := interview.NewUsecase(selector, executor, retriever, cfg.InterviewCfg)

	if !executor.Configured() {
		logger.Warn("No generation provider credentials configured, interview turns will fail")
	}
	logger.Info("Use cases initialized")

	// Setup API handlers
	interviewHandler := interviewapi.NewHandler(
		interviewUC,
		formatter.NewFactory(cfg.ReportCfg),
		validator.NewValidator(cfg.InterviewCfg),
	)
	logger.Info("API handlers initialized")

	router := api.SetupRouter(interviewHandler, cfg.RequestTimeout, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}

// setupConnectors picks the generation providers in preference order and the retrieval provider.
func setupConnectors(
	ctx context.Context,
	cfg *config.Config,
	logger *zap.Logger,
) ([]interview.GenerationProvider, interview.RetrievalProvider, error) {
	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		return []interview.GenerationProvider{llm.NewMockConnector(logger)}, rag.NewMockConnector(logger), nil
	}

	logger.Info("Using real connectors for external services")

	var providers []interview.GenerationProvider
	if cfg.GeminiCfg.APIKey != "" {
		generator, err := gemini.NewGenerator(ctx, cfg.GeminiCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("create gemini generator: %w", err)
		}
		providers = append(providers, generator)
		logger.Info("Gemini generation enabled", zap.String("model", generator.Model()))
	}
	if cfg.OpenAICfg.Configured() {
		providers = append(providers, llm.NewConnector(cfg.OpenAICfg, logger))
		logger.Info("OpenAI generation enabled", zap.String("model", cfg.OpenAICfg.Model))
	}

	var retriever interview.RetrievalProvider = rag.NewNullConnector()
	if cfg.RetrievalCfg.Configured() && cfg.RetrievalCfg.CustomerID != "" {
		retriever = rag.NewConnector(cfg.RetrievalCfg, logger)
		logger.Info("Retrieval enabled", zap.String("corpus_id", cfg.RetrievalCfg.CorpusID))
	} else {
		logger.Info("Retrieval credentials missing, using fallback questions only")
	}

	return providers, retriever, nil
}

func setupLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := pkglogger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("environment", cfg.Environment)), nil
}
