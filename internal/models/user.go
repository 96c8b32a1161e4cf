// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package models

import "time"

// User represents a registered account.
// The password hash never leaves the server; the json tag strips it from
// every API response.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// User roles. Admin unlocks server-wide operations (none of the analytics
// endpoints require it; it exists for operational endpoints).
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// PublicUser is the identity projection joined into leaderboard entries and
// feed events.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public returns the identity projection of u.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}
