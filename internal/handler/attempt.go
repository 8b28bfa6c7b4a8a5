package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/AmCoder2104/exam-portal-api/internal/middleware"
	"github.com/AmCoder2104/exam-portal-api/internal/model"
	"github.com/AmCoder2104/exam-portal-api/internal/payload"
	"github.com/AmCoder2104/exam-portal-api/internal/usecase"
	"github.com/AmCoder2104/exam-portal-api/shared/validation"
)

// AttemptHandler serves the test attempt lifecycle endpoints.
type AttemptHandler struct {
	attemptUsecase usecase.AttemptUsecase
	validator      *validation.Validator
	logger         *zerolog.Logger
}

// NewAttemptHandler creates a new AttemptHandler.
func NewAttemptHandler(
	attemptUsecase usecase.AttemptUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *AttemptHandler {
	return &AttemptHandler{
		attemptUsecase: attemptUsecase,
		validator:      validator,
		logger:         logger,
	}
}

// Start handles POST /api/attempts.
func (h *AttemptHandler) Start(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req payload.StartAttemptRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Validate(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	attempt, err := h.attemptUsecase.Start(r.Context(), caller, usecase.StartAttemptParams{
		TestID:    req.TestID,
		IPAddress: r.RemoteAddr,
		Device:    req.Device,
		Browser:   r.UserAgent(),
	})
	if err != nil {
		if errors.Is(err, usecase.ErrTestNotFound) {
			respondError(w, http.StatusNotFound, "test not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to start attempt")
		respondError(w, http.StatusInternalServerError, "failed to start attempt")
		return
	}

	respondJSON(w, http.StatusCreated, payload.NewAttemptResponse(attempt))
}

// SubmitAnswer handles POST /api/attempts/{id}/answers. Correctness is
// decided server-side against the stored question.
func (h *AttemptHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req payload.SubmitAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Validate(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	attempt, err := h.attemptUsecase.SubmitAnswer(r.Context(), caller, chi.URLParam(r, "id"), usecase.SubmitAnswerParams{
		QuestionID:     req.QuestionID,
		SelectedOption: req.SelectedOption,
	})
	if err != nil {
		h.respondAttemptError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.NewAttemptResponse(attempt))
}

// RecordSuspicious handles POST /api/attempts/{id}/suspicious.
func (h *AttemptHandler) RecordSuspicious(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req payload.SuspiciousActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Validate(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.attemptUsecase.RecordSuspicious(r.Context(), caller, chi.URLParam(r, "id"), usecase.SuspiciousParams{
		Type:    req.Type,
		Details: req.Details,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidActivityType) {
			respondError(w, http.StatusBadRequest, "invalid suspicious activity type")
			return
		}

		h.respondAttemptError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Complete handles POST /api/attempts/{id}/complete.
func (h *AttemptHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.finalize(w, r, model.AttemptStatusCompleted)
}

// Abandon handles POST /api/attempts/{id}/abandon.
func (h *AttemptHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	h.finalize(w, r, model.AttemptStatusAbandoned)
}

// Get handles GET /api/attempts/{id}.
func (h *AttemptHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	attempt, err := h.attemptUsecase.Get(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		h.respondAttemptError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.NewAttemptResponse(attempt))
}

func (h *AttemptHandler) finalize(w http.ResponseWriter, r *http.Request, status string) {
	caller, ok := callerFromContext(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var (
		attempt *model.TestAttempt
		err     error
	)
	if status == model.AttemptStatusCompleted {
		attempt, err = h.attemptUsecase.Complete(r.Context(), caller, chi.URLParam(r, "id"))
	} else {
		attempt, err = h.attemptUsecase.Abandon(r.Context(), caller, chi.URLParam(r, "id"))
	}
	if err != nil {
		h.respondAttemptError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.NewAttemptResponse(attempt))
}

func (h *AttemptHandler) respondAttemptError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrAttemptNotFound):
		respondError(w, http.StatusNotFound, "test attempt not found")
	case errors.Is(err, usecase.ErrNotAttemptOwner):
		respondError(w, http.StatusForbidden, "attempt belongs to another user")
	case errors.Is(err, usecase.ErrAttemptFinished):
		respondError(w, http.StatusConflict, "attempt is no longer in progress")
	case errors.Is(err, usecase.ErrQuestionNotFound):
		respondError(w, http.StatusNotFound, "question not found")
	case errors.Is(err, usecase.ErrAlreadyAnswered):
		respondError(w, http.StatusConflict, "question already answered in this attempt")
	default:
		h.logger.Error().Err(err).Msg("attempt operation failed")
		respondError(w, http.StatusInternalServerError, "attempt operation failed")
	}
}

func callerFromContext(r *http.Request) (usecase.Caller, bool) {
	claims, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		return usecase.Caller{}, false
	}

	return usecase.Caller{
		ID:   claims.Subject,
		Role: claims.Role,
	}, true
}
