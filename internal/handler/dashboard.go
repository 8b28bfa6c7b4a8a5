package handler

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/AmCoder2104/exam-portal-api/internal/model"
	"github.com/AmCoder2104/exam-portal-api/internal/payload"
	"github.com/AmCoder2104/exam-portal-api/internal/repository"
)

// DashboardHandler serves the read-only query endpoints behind the
// dashboard: user listing, results, and statistics. These query the real
// store; nothing here is mocked.
type DashboardHandler struct {
	userRepo     repository.UserRepository
	questionRepo repository.QuestionRepository
	testRepo     repository.TestRepository
	attemptRepo  repository.TestAttemptRepository
	logger       *zerolog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(
	userRepo repository.UserRepository,
	questionRepo repository.QuestionRepository,
	testRepo repository.TestRepository,
	attemptRepo repository.TestAttemptRepository,
	logger *zerolog.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		userRepo:     userRepo,
		questionRepo: questionRepo,
		testRepo:     testRepo,
		attemptRepo:  attemptRepo,
		logger:       logger,
	}
}

// ListUsers handles GET /api/users (admin only; enforced by route middleware).
func (h *DashboardHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := repository.FilterUsersParams{
		Limit:  queryUint(r, "limit", 50),
		Offset: queryUint(r, "offset", 0),
	}
	if role := r.URL.Query().Get("role"); role != "" {
		params.Role = &role
	}

	users, err := h.userRepo.ListUsers(r.Context(), params)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list users")
		respondError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	respondJSON(w, http.StatusOK, payload.NewUserListResponse(users))
}

// ListTests handles GET /api/tests. Any authenticated user can browse the
// available tests to pick one to take.
func (h *DashboardHandler) ListTests(w http.ResponseWriter, r *http.Request) {
	params := repository.FilterTestsParams{
		Limit:  queryUint(r, "limit", 50),
		Offset: queryUint(r, "offset", 0),
	}
	if subject := r.URL.Query().Get("subject"); subject != "" {
		params.Subject = &subject
	}

	tests, err := h.testRepo.ListTests(r.Context(), params)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list tests")
		respondError(w, http.StatusInternalServerError, "failed to list tests")
		return
	}

	respondJSON(w, http.StatusOK, payload.NewTestListResponse(tests))
}

// ListResults handles GET /api/results (admin and examiner). It returns
// completed attempts, newest first.
func (h *DashboardHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	status := model.AttemptStatusCompleted
	params := repository.FilterAttemptsParams{
		Status: &status,
		Limit:  queryUint(r, "limit", 50),
		Offset: queryUint(r, "offset", 0),
	}
	if userID := r.URL.Query().Get("userId"); userID != "" {
		params.UserID = &userID
	}
	if testID := r.URL.Query().Get("testId"); testID != "" {
		params.TestID = &testID
	}

	attempts, err := h.attemptRepo.ListAttempts(r.Context(), params)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list results")
		respondError(w, http.StatusInternalServerError, "failed to list results")
		return
	}

	results := make([]payload.AttemptResponse, 0, len(attempts))
	for _, attempt := range attempts {
		results = append(results, payload.NewAttemptResponse(attempt))
	}

	respondJSON(w, http.StatusOK, results)
}

// Stats handles GET /api/stats with collection counts for the dashboard.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.userRepo.CountUsers(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to count users")
		respondError(w, http.StatusInternalServerError, "failed to compute statistics")
		return
	}

	questions, err := h.questionRepo.CountQuestions(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to count questions")
		respondError(w, http.StatusInternalServerError, "failed to compute statistics")
		return
	}

	tests, err := h.testRepo.CountTests(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to count tests")
		respondError(w, http.StatusInternalServerError, "failed to compute statistics")
		return
	}

	attempts, err := h.attemptRepo.CountAttempts(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to count attempts")
		respondError(w, http.StatusInternalServerError, "failed to compute statistics")
		return
	}

	respondJSON(w, http.StatusOK, payload.StatsResponse{
		Users:     users,
		Questions: questions,
		Tests:     tests,
		Attempts:  attempts,
	})
}

func queryUint(r *http.Request, name string, fallback uint64) uint64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fallback
	}

	return value
}
