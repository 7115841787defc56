// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// User is an account row in the relational store. Usernames are unique;
// login is an idempotent upsert keyed on the username.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// SavedSearch is a persisted snapshot of a RecommendationRequest tied to
// a user. The core never mutates saved searches; it only shapes the
// fields the snapshot carries.
type SavedSearch struct {
	ID                    int64     `json:"id"`
	UserID                int64     `json:"user_id"`
	CreatedAt             time.Time `json:"created_at"`
	RecommendationRequest `yaml:",inline"`
}
