package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"chirp/internal/domain"
	"chirp/internal/repository"
)

var (
	ErrTweetNotFound = errors.New("tweet not found")
	ErrEmptyContent  = errors.New("tweet content cannot be empty")
)

// TweetService owns tweets, replies and the like/retweet sets.
type TweetService struct {
	tweetRepo repository.TweetRepository
}

func NewTweetService(tweetRepo repository.TweetRepository) *TweetService {
	return &TweetService{tweetRepo: tweetRepo}
}

type PostTweetInput struct {
	Content string  `json:"content"`
	Image   *string `json:"image,omitempty"`
}

type PostReplyInput struct {
	Content string `json:"content"`
}

func (s *TweetService) Post(ctx context.Context, authorID uuid.UUID, input PostTweetInput) (*domain.Tweet, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrEmptyContent
	}

	tweet := &domain.Tweet{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Content:   input.Content,
		Image:     input.Image,
		CreatedAt: time.Now(),
	}

	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, fmt.Errorf("creating tweet: %w", err)
	}

	return tweet, nil
}

// Reply posts a reply under parentID. The parent pointer is fixed at creation
// and the reply keeps its position in the parent's reply sequence forever.
func (s *TweetService) Reply(ctx context.Context, authorID, parentID uuid.UUID, input PostReplyInput) (*domain.Tweet, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrEmptyContent
	}

	parent, err := s.tweetRepo.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, ErrTweetNotFound
	}

	reply := &domain.Tweet{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Content:   input.Content,
		ParentID:  &parentID,
		IsReply:   true,
		CreatedAt: time.Now(),
	}

	if err := s.tweetRepo.Create(ctx, reply); err != nil {
		return nil, fmt.Errorf("creating reply: %w", err)
	}

	return reply, nil
}

// ToggleLike flips userID's membership in the tweet's like set and returns
// the resulting set. The add is an atomic conditional insert; only when the
// user was already a member does the toggle fall through to the remove, so
// two racing calls resolve to one add and one remove instead of both
// applying.
func (s *TweetService) ToggleLike(ctx context.Context, userID, tweetID uuid.UUID) ([]uuid.UUID, error) {
	if err := s.ensureExists(ctx, tweetID); err != nil {
		return nil, err
	}

	added, err := s.tweetRepo.AddLike(ctx, tweetID, userID)
	if err != nil {
		return nil, fmt.Errorf("toggling like: %w", err)
	}
	if !added {
		if _, err := s.tweetRepo.RemoveLike(ctx, tweetID, userID); err != nil {
			return nil, fmt.Errorf("toggling like: %w", err)
		}
	}

	return s.tweetRepo.Likers(ctx, tweetID)
}

// ToggleRetweet is the same toggle contract as ToggleLike over the retweet
// set.
func (s *TweetService) ToggleRetweet(ctx context.Context, userID, tweetID uuid.UUID) ([]uuid.UUID, error) {
	if err := s.ensureExists(ctx, tweetID); err != nil {
		return nil, err
	}

	added, err := s.tweetRepo.AddRetweet(ctx, tweetID, userID)
	if err != nil {
		return nil, fmt.Errorf("toggling retweet: %w", err)
	}
	if !added {
		if _, err := s.tweetRepo.RemoveRetweet(ctx, tweetID, userID); err != nil {
			return nil, fmt.Errorf("toggling retweet: %w", err)
		}
	}

	return s.tweetRepo.Retweeters(ctx, tweetID)
}

func (s *TweetService) Get(ctx context.Context, tweetID uuid.UUID) (*domain.Tweet, error) {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if tweet == nil {
		return nil, ErrTweetNotFound
	}
	return tweet, nil
}

// Timeline returns top-level tweets newest-first. Replies never appear here,
// they are reached through their parent.
func (s *TweetService) Timeline(ctx context.Context) ([]domain.Tweet, error) {
	return s.tweetRepo.ListTimeline(ctx)
}

// Replies returns a parent's replies oldest-first, in the order they were
// posted.
func (s *TweetService) Replies(ctx context.Context, parentID uuid.UUID) ([]domain.Tweet, error) {
	if err := s.ensureExists(ctx, parentID); err != nil {
		return nil, err
	}
	return s.tweetRepo.ListReplies(ctx, parentID)
}

// ByAuthor returns everything a user posted, replies included, newest-first.
func (s *TweetService) ByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Tweet, error) {
	return s.tweetRepo.ListByAuthor(ctx, authorID)
}

func (s *TweetService) ensureExists(ctx context.Context, tweetID uuid.UUID) error {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if tweet == nil {
		return ErrTweetNotFound
	}
	return nil
}
