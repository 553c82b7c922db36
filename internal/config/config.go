package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/interview-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr     string        `env:"SERVER_ADDR" envDefault:":8001"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"90s"`

	// Logging configuration
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Interview policy
	InterviewCfg InterviewConfig `envPrefix:"INTERVIEW_"`

	// External service configurations
	GeminiCfg    GeminiConfig    `envPrefix:"GEMINI_"`
	OpenAICfg    OpenAIConfig    `envPrefix:"OPENAI_"`
	RetrievalCfg RetrievalConfig `envPrefix:"RETRIEVAL_"`

	// Report export configuration
	ReportCfg ReportConfig `envPrefix:"REPORT_"`

	// Question bank (loaded from YAML file)
	QuestionBank QuestionBank

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// InterviewConfig holds the turn policy knobs.
type InterviewConfig struct {
	TerminalThreshold     int           `env:"TERMINAL_THRESHOLD" envDefault:"10"`
	NumResults            int           `env:"NUM_RESULTS" envDefault:"3"`
	DiversityBias         float64       `env:"DIVERSITY_BIAS" envDefault:"0.3"`
	QueryPrefixLength     int           `env:"QUERY_PREFIX_LENGTH" envDefault:"100"`
	ScriptedOverrides     bool          `env:"SCRIPTED_OVERRIDES_ENABLED" envDefault:"true"`
	FallbackTableEnabled  bool          `env:"FALLBACK_TABLE_ENABLED" envDefault:"true"`
	QuestionBankPath      string        `env:"QUESTION_BANK_PATH" envDefault:"internal/config/interview_questions.yaml"`
	ProviderTimeout       time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"30s"`
	RetrievalProbeTimeout time.Duration `env:"RETRIEVAL_PROBE_TIMEOUT" envDefault:"10s"`
	MaxTextLength         int           `env:"MAX_TEXT_LENGTH" envDefault:"50000"`
	Generation            GenerationConfig
}

// GenerationConfig holds the default sampling options.
type GenerationConfig struct {
	Temperature     float32 `env:"TEMPERATURE" envDefault:"0.8"`
	TopP            float32 `env:"TOP_P" envDefault:"0.95"`
	TopK            int32   `env:"TOP_K" envDefault:"40"`
	MaxOutputTokens int32   `env:"MAX_OUTPUT_TOKENS" envDefault:"800"`
}

type GeminiConfig struct {
	APIKey  string               `env:"API_KEY"`
	Model   string               `env:"MODEL" envDefault:"gemini-2.5-flash"`
	Retry   pkgRetry.RetryConfig `envPrefix:"RETRY_"`
	Timeout time.Duration        `env:"TIMEOUT" envDefault:"30s"`
}

type OpenAIConfig struct {
	HTTPClientConfig
	Model               string `env:"MODEL" envDefault:"gpt-3.5-turbo"`
	CompletionsEndpoint string `env:"COMPLETIONS_ENDPOINT" envDefault:"/v1/chat/completions"`
}

type RetrievalConfig struct {
	HTTPClientConfig
	CustomerID      string               `env:"CUSTOMER_ID"`
	CorpusID        string               `env:"CORPUS_ID" envDefault:"4"`
	IndexEndpoint   string               `env:"INDEX_ENDPOINT" envDefault:"/v1/index"`
	QueryEndpoint   string               `env:"QUERY_ENDPOINT" envDefault:"/v1/query"`
	ProbeTTL        time.Duration        `env:"PROBE_TTL" envDefault:"5m"`
	ProbeFailureTTL time.Duration        `env:"PROBE_FAILURE_TTL" envDefault:"30s"`
	IndexCacheTTL   time.Duration        `env:"INDEX_CACHE_TTL" envDefault:"1h"`
	Retry           pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"30s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"30s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

// Configured reports whether credentials and a base URL are present.
func (c HTTPClientConfig) Configured() bool {
	return strings.TrimSpace(c.Token) != "" && strings.TrimSpace(c.Url) != ""
}

type ReportConfig struct {
	Title         string `env:"TITLE" envDefault:"Interview Feedback"`
	FontPath      string `env:"FONT_PATH" envDefault:"ttf/DejaVuSans.ttf"`
	UnidocLicense string `env:"UNIDOC_LICENSE_KEY"`
}

// QuestionBank holds the fixed questions used when retrieval yields nothing
// and the scripted questions forced at fixed turn counts.
type QuestionBank struct {
	Fallback          map[string][]string `yaml:"fallback"`
	ScriptedOverrides map[string]string   `yaml:"scripted_overrides"`
	GenericQuestion   string              `yaml:"generic_question"`
}

// Overrides converts the string keyed override table into turn counts.
func (qb QuestionBank) Overrides() (map[int]string, error) {
	result := make(map[int]string, len(qb.ScriptedOverrides))
	for key, question := range qb.ScriptedOverrides {
		turn, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || turn < 1 {
			return nil, fmt.Errorf("invalid scripted override turn %q", key)
		}
		result[turn] = question
	}
	return result, nil
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	cfg.Environment = *envFlag

	if err := loadQuestionBank(cfg); err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}

	return cfg, nil
}

// Parse reads the configuration from the process environment and validates it.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.QuestionBank = DefaultQuestionBank()
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	ic := cfg.InterviewCfg
	if ic.TerminalThreshold < 1 || ic.TerminalThreshold > 100 {
		errors = append(errors, fmt.Sprintf("INTERVIEW_TERMINAL_THRESHOLD must be between 1 and 100, got %d", ic.TerminalThreshold))
	}

	if ic.NumResults < 1 || ic.NumResults > 20 {
		errors = append(errors, fmt.Sprintf("INTERVIEW_NUM_RESULTS must be between 1 and 20, got %d", ic.NumResults))
	}

	if ic.DiversityBias < 0 || ic.DiversityBias > 1 {
		errors = append(errors, fmt.Sprintf("INTERVIEW_DIVERSITY_BIAS must be between 0 and 1, got %v", ic.DiversityBias))
	}

	if ic.QueryPrefixLength < 1 {
		errors = append(errors, fmt.Sprintf("INTERVIEW_QUERY_PREFIX_LENGTH must be positive, got %d", ic.QueryPrefixLength))
	}

	gen := ic.Generation
	if gen.Temperature < 0 || gen.Temperature > 2 {
		errors = append(errors, fmt.Sprintf("INTERVIEW_TEMPERATURE must be between 0 and 2, got %v", gen.Temperature))
	}

	if gen.TopP <= 0 || gen.TopP > 1 {
		errors = append(errors, fmt.Sprintf("INTERVIEW_TOP_P must be in (0, 1], got %v", gen.TopP))
	}

	if gen.TopK < 1 {
		errors = append(errors, fmt.Sprintf("INTERVIEW_TOP_K must be positive, got %d", gen.TopK))
	}

	if gen.MaxOutputTokens < 1 {
		errors = append(errors, fmt.Sprintf("INTERVIEW_MAX_OUTPUT_TOKENS must be positive, got %d", gen.MaxOutputTokens))
	}

	if ic.ProviderTimeout <= 0 {
		errors = append(errors, "INTERVIEW_PROVIDER_TIMEOUT must be positive")
	}

	rc := cfg.RetrievalCfg
	if rc.ProbeTTL <= 0 {
		errors = append(errors, fmt.Sprintf("RETRIEVAL_PROBE_TTL must be positive, got %v", rc.ProbeTTL))
	}

	if rc.ProbeFailureTTL <= 0 || rc.ProbeFailureTTL > rc.ProbeTTL {
		errors = append(errors, fmt.Sprintf("RETRIEVAL_PROBE_FAILURE_TTL must be positive and at most RETRIEVAL_PROBE_TTL(%v), got %v", rc.ProbeTTL, rc.ProbeFailureTTL))
	}

	if rc.IndexCacheTTL <= 0 {
		errors = append(errors, fmt.Sprintf("RETRIEVAL_INDEX_CACHE_TTL must be positive, got %v", rc.IndexCacheTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// DefaultQuestionBank returns the built-in question bank.
func DefaultQuestionBank() QuestionBank {
	return QuestionBank{
		Fallback: map[string][]string{
			"technical": {
				"Can you explain your experience with the technologies mentioned in your resume?",
				"How would you solve a problem where you need to process large amounts of data efficiently?",
				"Tell me about a technical challenge you faced and how you overcame it.",
			},
			"behavioral": {
				"Describe a situation where you had to work under pressure to meet a deadline.",
				"Tell me about a time when you had to collaborate with a difficult team member.",
				"How do you prioritize tasks when you have multiple competing deadlines?",
			},
			"general": {
				"Why are you interested in this position?",
				"What do you consider your greatest professional achievement?",
				"Where do you see yourself in 5 years?",
			},
		},
		ScriptedOverrides: map[string]string{
			"2": "Thank you for sharing that. Now I'd like to know about your experience working in teams. Can you describe a project where you collaborated with others on data analysis or statistical work?",
			"4": "Let's shift gears a bit. Can you tell me about your experience with data analysis tools or programming languages that you've used for statistical analysis?",
		},
		GenericQuestion: "Tell me about your experience and how it relates to this position.",
	}
}

func loadQuestionBank(cfg *Config) error {
	path := filepath.Clean(cfg.InterviewCfg.QuestionBankPath)

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Printf("Warning: question bank file not found at %s, using default questions\n", path)
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read question bank file: %w", err)
	}

	bank, err := ParseQuestionBank(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	cfg.QuestionBank = bank
	fmt.Printf("Loaded question bank from %s\n", path)
	return nil
}

// ParseQuestionBank decodes a YAML (or JSON) question bank, filling missing parts from the defaults.
func ParseQuestionBank(data []byte) (QuestionBank, error) {
	if len(data) == 0 {
		return QuestionBank{}, fmt.Errorf("question bank file is empty")
	}

	var bank QuestionBank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return QuestionBank{}, fmt.Errorf("parse question bank: %w", err)
	}

	defaults := DefaultQuestionBank()
	if len(bank.Fallback) == 0 {
		bank.Fallback = defaults.Fallback
	}
	if _, ok := bank.Fallback["general"]; !ok {
		bank.Fallback["general"] = defaults.Fallback["general"]
	}
	if bank.ScriptedOverrides == nil {
		bank.ScriptedOverrides = defaults.ScriptedOverrides
	}
	if strings.TrimSpace(bank.GenericQuestion) == "" {
		bank.GenericQuestion = defaults.GenericQuestion
	}

	if _, err := bank.Overrides(); err != nil {
		return QuestionBank{}, err
	}

	return bank, nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
