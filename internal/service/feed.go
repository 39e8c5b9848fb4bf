package service

import (
	"context"

	"github.com/google/uuid"

	"chirp/internal/domain"
	"chirp/internal/repository"
)

// FeedService is the read-side composition layer. It enriches stored tweets
// with author projections and derived engagement counts and performs no
// mutation.
type FeedService struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
}

func NewFeedService(tweetRepo repository.TweetRepository, userRepo repository.UserRepository) *FeedService {
	return &FeedService{
		tweetRepo: tweetRepo,
		userRepo:  userRepo,
	}
}

// RenderTweet builds the client-facing view of a tweet. viewerID may be nil;
// the viewer-relative flags are then false. An author that no longer resolves
// is rendered as a placeholder identity instead of failing the whole feed.
func (s *FeedService) RenderTweet(ctx context.Context, tweet *domain.Tweet, viewerID *uuid.UUID) (*domain.TweetView, error) {
	author, err := s.resolveAuthor(ctx, tweet.AuthorID)
	if err != nil {
		return nil, err
	}

	eng, err := s.tweetRepo.Engagement(ctx, tweet.ID)
	if err != nil {
		return nil, err
	}

	if eng.Likes == nil {
		eng.Likes = []uuid.UUID{}
	}
	if eng.RetweetBy == nil {
		eng.RetweetBy = []uuid.UUID{}
	}

	view := &domain.TweetView{
		Tweet:        *tweet,
		Author:       author,
		Likes:        eng.Likes,
		RetweetBy:    eng.RetweetBy,
		LikesCount:   len(eng.Likes),
		RetweetCount: len(eng.RetweetBy),
		RepliesCount: eng.RepliesCount,
	}

	if viewerID != nil {
		view.Liked = containsID(eng.Likes, *viewerID)
		view.Retweeted = containsID(eng.RetweetBy, *viewerID)
	}

	return view, nil
}

// RenderList applies RenderTweet to each tweet, preserving order.
func (s *FeedService) RenderList(ctx context.Context, tweets []domain.Tweet, viewerID *uuid.UUID) ([]domain.TweetView, error) {
	views := make([]domain.TweetView, 0, len(tweets))
	for i := range tweets {
		view, err := s.RenderTweet(ctx, &tweets[i], viewerID)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *FeedService) resolveAuthor(ctx context.Context, authorID uuid.UUID) (domain.Author, error) {
	user, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return domain.Author{}, err
	}
	if user == nil {
		// Display fallback, the feed keeps rendering.
		return domain.Author{ID: authorID, Username: "unknown", Name: "Unknown"}, nil
	}

	return domain.Author{
		ID:         user.ID,
		Username:   user.Username,
		Name:       user.Name,
		ProfilePic: user.ProfilePic,
	}, nil
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
