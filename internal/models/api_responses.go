// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package models

import "time"

// APIResponse is the standardized response wrapper used by every HTTP
// endpoint. Data carries the payload on success; Error is populated on
// failure with Status set to "error".
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// Fields:
//   - Timestamp: server time when the response was generated
//   - QueryTimeMS: aggregation/store time in milliseconds (0 if cached)
//   - Cached: whether the response was served from the TTL cache
//   - Partial: whether an upstream fetch failed and was substituted with an
//     empty collection (dashboard composition only)
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	Partial     bool      `json:"partial,omitempty"`
}

// APIError represents an error response with structured detail.
//
// Common error codes:
//   - VALIDATION_ERROR: invalid input parameters
//   - STORE_ERROR: persistence failure
//   - AUTHENTICATION_ERROR: invalid/missing credentials
//   - AUTHORIZATION_ERROR: insufficient permissions
//   - NOT_FOUND: resource doesn't exist
//   - CONFLICT: uniqueness violation (duplicate username or reflection)
//   - RATE_LIMIT_EXCEEDED: too many requests
//   - SERVICE_UNAVAILABLE: a dependency is down or disabled
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
