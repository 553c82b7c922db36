package entity

import "errors"

// Domain errors
var (
	// Configuration errors
	ErrGenerationNotConfigured = errors.New("no generation provider configured")

	// Provider errors
	ErrRetrievalUnavailable = errors.New("retrieval provider unavailable")
	ErrEmptyGeneration      = errors.New("generation provider returned empty response")

	// Validation errors
	ErrMissingField      = errors.New("required field is missing")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrInvalidFocus      = errors.New("invalid focus")
	ErrInvalidRole       = errors.New("invalid conversation role")
	ErrUnsupportedFormat = errors.New("unsupported report format")
)
