package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/AmCoder2104/exam-portal-api/internal/middleware"
	"github.com/AmCoder2104/exam-portal-api/internal/payload"
	"github.com/AmCoder2104/exam-portal-api/internal/usecase"
	"github.com/AmCoder2104/exam-portal-api/shared/authz"
	"github.com/AmCoder2104/exam-portal-api/shared/validation"
)

// QuestionHandler serves question listing and management endpoints.
type QuestionHandler struct {
	questionUsecase usecase.QuestionUsecase
	validator       *validation.Validator
	logger          *zerolog.Logger
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(
	questionUsecase usecase.QuestionUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *QuestionHandler {
	return &QuestionHandler{
		questionUsecase: questionUsecase,
		validator:       validator,
		logger:          logger,
	}
}

// List handles GET /api/questions?subject=. Candidates receive the
// questions without the correct answers; answers are scored server-side.
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	subject := r.URL.Query().Get("subject")

	questions, err := h.questionUsecase.ListBySubject(r.Context(), subject)
	if err != nil {
		if errors.Is(err, usecase.ErrSubjectRequired) {
			respondError(w, http.StatusBadRequest, "subject parameter is required")
			return
		}

		h.logger.Error().Err(err).Str("subject", subject).Msg("failed to list questions")
		respondError(w, http.StatusInternalServerError, "failed to fetch questions")
		return
	}

	includeAnswers := false
	if claims, ok := middleware.SessionFromContext(r.Context()); ok {
		includeAnswers = authz.Allowed(claims.Role, authz.ManagementArea)
	}

	respondJSON(w, http.StatusOK, payload.NewQuestionListResponse(questions, includeAnswers))
}

// Create handles POST /api/questions (admin and examiner only; enforced by
// route middleware).
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Validate(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	question, err := h.questionUsecase.Create(r.Context(), usecase.CreateQuestionParams{
		Subject:       req.Subject,
		Text:          req.Text,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidQuestion) {
			respondError(w, http.StatusBadRequest, "correct answer must reference one of the options")
			return
		}

		h.logger.Error().Err(err).Msg("failed to create question")
		respondError(w, http.StatusInternalServerError, "failed to create question")
		return
	}

	respondJSON(w, http.StatusCreated, payload.NewQuestionResponse(question, true))
}
