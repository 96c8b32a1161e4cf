// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tomtom215/focusgraph/internal/auth"
	"github.com/tomtom215/focusgraph/internal/database"
	"github.com/tomtom215/focusgraph/internal/logging"
	"github.com/tomtom215/focusgraph/internal/models"
)

// RegisterRequest is the payload for POST /api/v1/auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest is the payload for POST /api/v1/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the signed token and the user's public identity.
type AuthResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// Register creates a new account and returns a token for it.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	started := h.now()

	var req RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to process password", err)
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		Role:         models.RoleUser,
		CreatedAt:    h.now().UTC(),
	}

	if err := h.store.CreateUser(r.Context(), user); err != nil {
		respondStoreError(w, err)
		return
	}

	token, err := h.jwtManager.GenerateToken(user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to issue token", err)
		return
	}

	logging.Info().Str("user_id", user.ID).Str("username", sanitizeLogValue(user.Username)).Msg("user registered")
	respondData(w, http.StatusCreated, AuthResponse{Token: token, User: user.Public()}, started)
}

// Login verifies credentials and returns a fresh token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	started := h.now()

	var req LoginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// Same answer as a wrong password; do not leak which usernames
			// exist.
			respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Invalid username or password", nil)
			return
		}
		respondStoreError(w, err)
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		log := logging.FromContext(r.Context())
		log.Warn().Str("username", sanitizeLogValue(req.Username)).Msg("failed login attempt")
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Invalid username or password", nil)
		return
	}

	token, err := h.jwtManager.GenerateToken(user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to issue token", err)
		return
	}

	respondData(w, http.StatusOK, AuthResponse{Token: token, User: user.Public()}, started)
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	started := h.now()

	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	user, err := h.store.GetUser(r.Context(), claims.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondData(w, http.StatusOK, user, started)
}
