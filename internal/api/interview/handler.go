package interview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/futig/interview-backend/internal/entity"
	"github.com/futig/interview-backend/internal/pkg/logger"
	"github.com/futig/interview-backend/internal/pkg/response"
	"github.com/futig/interview-backend/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const reportFilename = "interview-feedback"

type Handler struct {
	usecase    InterviewUsecase
	formatters FormatterFactory
	validator  *validator.Validator
}

func NewHandler(
	usecase InterviewUsecase,
	formatters FormatterFactory,
	validator *validator.Validator,
) *Handler {
	return &Handler{
		usecase:    usecase,
		formatters: formatters,
		validator:  validator,
	}
}

// ConductTurn handles POST /interview - Produce the next interviewer turn
func (h *Handler) ConductTurn(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ConductTurn")

	var req entity.InterviewTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateInterviewTurn(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed: "+err.Error(), err)
		return
	}

	state, err := toSessionState(&req)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed: "+err.Error(), err)
		return
	}

	ctxzap.Debug(ctx, "conducting interview turn", zap.Int("history_length", len(state.History)))

	outcome, err := h.usecase.ConductTurn(ctx, state)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toTurnResponse(outcome))
}

// ExportReport handles POST /interview/report?format= - Render feedback as a file
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ExportReport")

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.FormatMarkdown)
	}

	format := entity.ResultFormat(formatParam)
	if err := format.Validate(); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "format must be one of: markdown, pdf, docx", err)
		return
	}
	ctx = logger.AddFields(ctx, zap.String("format", string(format)))

	var req entity.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateReport(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed: "+err.Error(), err)
		return
	}

	fmtr, err := h.formatters.Create(format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	data, err := fmtr.Format(&req.InterviewResult)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to format report", err)
		return
	}

	ctxzap.Info(ctx, "interview report rendered", zap.Int("size", len(data)))
	response.Attachment(w, fmtr.ContentType(), reportFilename+fmtr.FileExtension(), data)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message, zap.Error(err))
	}
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrGenerationNotConfigured):
		h.respondError(ctx, w, http.StatusInternalServerError, "interview service is not configured: no generation provider credentials", err)
	case errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidDifficulty),
		errors.Is(err, entity.ErrInvalidFocus),
		errors.Is(err, entity.ErrInvalidRole),
		errors.Is(err, entity.ErrUnsupportedFormat):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
