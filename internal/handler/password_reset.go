package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/AmCoder2104/exam-portal-api/internal/config"
	"github.com/AmCoder2104/exam-portal-api/internal/payload"
	"github.com/AmCoder2104/exam-portal-api/internal/usecase"
	"github.com/AmCoder2104/exam-portal-api/shared/auth"
	"github.com/AmCoder2104/exam-portal-api/shared/validation"
)

// PasswordResetHandler serves the password reset flow.
type PasswordResetHandler struct {
	resetUsecase usecase.PasswordResetUsecase
	jwtAuth      auth.JWTAuthenticator
	cfg          *config.Config
	validator    *validation.Validator
	logger       *zerolog.Logger
}

// NewPasswordResetHandler creates a new PasswordResetHandler.
func NewPasswordResetHandler(
	resetUsecase usecase.PasswordResetUsecase,
	jwtAuth auth.JWTAuthenticator,
	cfg *config.Config,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *PasswordResetHandler {
	return &PasswordResetHandler{
		resetUsecase: resetUsecase,
		jwtAuth:      jwtAuth,
		cfg:          cfg,
		validator:    validator,
		logger:       logger,
	}
}

// Request handles POST /api/auth/password-reset/request. It responds with
// 200 whether or not the email exists.
func (h *PasswordResetHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req payload.RequestPasswordResetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Validate(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.resetUsecase.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.logger.Error().Err(err).Msg("failed to request password reset")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Reset handles POST /api/auth/password-reset/reset. The token from the
// email link is verified and its JTI checked against the store.
func (h *PasswordResetHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req payload.ResetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Validate(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	jti, err := h.resetTokenJTI(req.Token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid password reset token")
		return
	}

	if err := h.resetUsecase.ResetPassword(r.Context(), jti, req.NewPassword); err != nil {
		h.respondResetError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Validate handles GET /api/auth/password-reset/validate?token= so the
// frontend can check a link before showing the reset form.
func (h *PasswordResetHandler) Validate(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, http.StatusBadRequest, "token parameter is required")
		return
	}

	jti, err := h.resetTokenJTI(token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid password reset token")
		return
	}

	if err := h.resetUsecase.ValidatePasswordResetToken(r.Context(), jti); err != nil {
		h.respondResetError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

func (h *PasswordResetHandler) resetTokenJTI(token string) (string, error) {
	claims := &auth.PasswordResetClaims{}
	if _, err := h.jwtAuth.ValidateTokenWithClaims(token, h.cfg.Token.PasswordResetSecret, claims); err != nil {
		return "", err
	}

	if claims.JTI == "" {
		return "", usecase.ErrInvalidToken
	}

	return claims.JTI, nil
}

func (h *PasswordResetHandler) respondResetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrTokenNotFound):
		respondError(w, http.StatusNotFound, "password reset token not found")
	case errors.Is(err, usecase.ErrTokenAlreadyUsed):
		respondError(w, http.StatusConflict, "password reset token has already been used")
	case errors.Is(err, usecase.ErrTokenExpired):
		respondError(w, http.StatusUnauthorized, "password reset token has expired")
	case errors.Is(err, usecase.ErrInvalidToken):
		respondError(w, http.StatusUnauthorized, "invalid password reset token")
	default:
		h.logger.Error().Err(err).Msg("failed to reset password")
		respondError(w, http.StatusInternalServerError, "something went wrong")
	}
}
