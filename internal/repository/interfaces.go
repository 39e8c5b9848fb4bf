package repository

import (
	"context"

	"github.com/google/uuid"

	"chirp/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
}

// FollowRepository owns the follow graph. A relationship is a single row, so
// both the following and the followers view of it change together or not at
// all.
type FollowRepository interface {
	// Add inserts the relationship and reports whether it was newly created.
	Add(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	// Remove deletes the relationship; removing an absent one is not an error.
	Remove(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	Exists(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	Followers(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Following(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// TweetRepository owns tweets and their engagement sets. The Add/Remove pairs
// are atomic conditional set operations: Add reports whether the member was
// actually inserted, Remove whether it was actually deleted, so concurrent
// toggles never double-apply.
type TweetRepository interface {
	Create(ctx context.Context, tweet *domain.Tweet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error)
	ListTimeline(ctx context.Context) ([]domain.Tweet, error)
	ListReplies(ctx context.Context, parentID uuid.UUID) ([]domain.Tweet, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Tweet, error)

	AddLike(ctx context.Context, tweetID, userID uuid.UUID) (bool, error)
	RemoveLike(ctx context.Context, tweetID, userID uuid.UUID) (bool, error)
	Likers(ctx context.Context, tweetID uuid.UUID) ([]uuid.UUID, error)

	AddRetweet(ctx context.Context, tweetID, userID uuid.UUID) (bool, error)
	RemoveRetweet(ctx context.Context, tweetID, userID uuid.UUID) (bool, error)
	Retweeters(ctx context.Context, tweetID uuid.UUID) ([]uuid.UUID, error)

	Engagement(ctx context.Context, tweetID uuid.UUID) (*domain.Engagement, error)
}
