package domain

import (
	"time"

	"github.com/google/uuid"
)

type Tweet struct {
	ID        uuid.UUID  `json:"id"`
	AuthorID  uuid.UUID  `json:"author_id"`
	Content   string     `json:"content"`
	Image     *string    `json:"image,omitempty"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	IsReply   bool       `json:"is_reply"`
	CreatedAt time.Time  `json:"created_at"`
}

// Engagement holds the like/retweet membership sets and the reply count of a
// single tweet as read from the store.
type Engagement struct {
	Likes        []uuid.UUID
	RetweetBy    []uuid.UUID
	RepliesCount int
}

// TweetView is the read-side shape returned to clients: the tweet enriched
// with its author projection, engagement sets, derived counts and the
// viewer-relative flags. Counts are always set cardinalities, never stored.
type TweetView struct {
	Tweet
	Author       Author      `json:"author"`
	Likes        []uuid.UUID `json:"likes"`
	RetweetBy    []uuid.UUID `json:"retweet_by"`
	LikesCount   int         `json:"likes_count"`
	RetweetCount int         `json:"retweet_count"`
	RepliesCount int         `json:"replies_count"`
	Liked        bool        `json:"liked"`
	Retweeted    bool        `json:"retweeted"`
}
