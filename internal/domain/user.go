package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	DOB          *time.Time `json:"dob,omitempty"`
	Location     *string    `json:"location,omitempty"`
	ProfilePic   *string    `json:"profile_pic,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Profile is a user record together with both sides of the follow graph.
// IsFollowing is relative to the authenticated viewer and stays false for
// anonymous reads.
type Profile struct {
	User
	Followers      []uuid.UUID `json:"followers"`
	Following      []uuid.UUID `json:"following"`
	FollowersCount int         `json:"followers_count"`
	FollowingCount int         `json:"following_count"`
	IsFollowing    bool        `json:"is_following"`
}

// Author is the display-safe projection of a user embedded in rendered
// tweets. Credential and contact fields never appear here.
type Author struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	ProfilePic *string   `json:"profile_pic,omitempty"`
}
