// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tomtom215/focusgraph/internal/metrics"
	"github.com/tomtom215/focusgraph/internal/models"
)

// ReflectionRequest is the payload for creating a reflection.
type ReflectionRequest struct {
	SessionID string   `json:"session_id" validate:"required,uuid4"`
	Learnings string   `json:"learnings" validate:"required,max=2000"`
	Rating    int      `json:"rating" validate:"omitempty,min=1,max=5"`
	Tags      []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=40"`
}

// ReflectionUpdateRequest is the payload for editing a reflection. The
// session binding is immutable.
type ReflectionUpdateRequest struct {
	Learnings string   `json:"learnings" validate:"required,max=2000"`
	Rating    int      `json:"rating" validate:"omitempty,min=1,max=5"`
	Tags      []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=40"`
}

// ListReflections returns the authenticated user's reflections, newest
// first.
func (h *Handler) ListReflections(w http.ResponseWriter, r *http.Request) {
	started := h.now()
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	reflections, err := h.store.ListReflectionsByUser(r.Context(), claims.UserID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if reflections == nil {
		reflections = []models.Reflection{}
	}
	respondData(w, http.StatusOK, reflections, started)
}

// CreateReflection attaches a reflection to one of the user's sessions and
// publishes it to the activity feed.
func (h *Handler) CreateReflection(w http.ResponseWriter, r *http.Request) {
	started := h.now()
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	var req ReflectionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	now := h.now().UTC()
	reflection := models.Reflection{
		ID:        uuid.New().String(),
		UserID:    claims.UserID,
		SessionID: req.SessionID,
		Learnings: req.Learnings,
		Rating:    req.Rating,
		Tags:      req.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	opStart := time.Now()
	err := h.store.CreateReflection(r.Context(), &reflection)
	metrics.RecordStoreOperation("create_reflection", time.Since(opStart), err)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateUserViews(claims.UserID)
	h.publishFeedEvent(r, claims, models.FeedReflectionAdded, nil)

	respondData(w, http.StatusCreated, reflection, started)
}

// UpdateReflection edits a reflection the authenticated user owns.
func (h *Handler) UpdateReflection(w http.ResponseWriter, r *http.Request) {
	started := h.now()
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	var req ReflectionUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	reflection := models.Reflection{
		ID:        chi.URLParam(r, "id"),
		UserID:    claims.UserID,
		Learnings: req.Learnings,
		Rating:    req.Rating,
		Tags:      req.Tags,
		UpdatedAt: h.now().UTC(),
	}

	opStart := time.Now()
	err := h.store.UpdateReflection(r.Context(), &reflection)
	metrics.RecordStoreOperation("update_reflection", time.Since(opStart), err)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateUserViews(claims.UserID)
	respondData(w, http.StatusOK, reflection, started)
}

// DeleteReflection removes a reflection the authenticated user owns.
func (h *Handler) DeleteReflection(w http.ResponseWriter, r *http.Request) {
	started := h.now()
	claims, ok := mustClaims(w, r)
	if !ok {
		return
	}

	opStart := time.Now()
	err := h.store.DeleteReflection(r.Context(), claims.UserID, chi.URLParam(r, "id"))
	metrics.RecordStoreOperation("delete_reflection", time.Since(opStart), err)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	h.invalidateUserViews(claims.UserID)
	respondData(w, http.StatusOK, map[string]string{"deleted": chi.URLParam(r, "id")}, started)
}
