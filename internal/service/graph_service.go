package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"chirp/internal/domain"
	"chirp/internal/repository"
)

var (
	ErrSelfFollow   = errors.New("cannot follow yourself")
	ErrUserNotFound = errors.New("user not found")
)

// GraphService owns the follow graph. A follow is stored as a single
// relationship row, so the "A follows B" and "B is followed by A" views can
// never disagree.
type GraphService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewGraphService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *GraphService {
	return &GraphService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

func (s *GraphService) Follow(ctx context.Context, actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return ErrSelfFollow
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	if _, err := s.followRepo.Add(ctx, actorID, targetID); err != nil {
		return fmt.Errorf("creating follow: %w", err)
	}
	return nil
}

// Unfollow removes the relationship. Unfollowing someone the actor never
// followed is a no-op, not an error.
func (s *GraphService) Unfollow(ctx context.Context, actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return ErrSelfFollow
	}

	if _, err := s.followRepo.Remove(ctx, actorID, targetID); err != nil {
		return fmt.Errorf("removing follow: %w", err)
	}
	return nil
}

func (s *GraphService) IsFollowing(ctx context.Context, actorID, targetID uuid.UUID) (bool, error) {
	return s.followRepo.Exists(ctx, actorID, targetID)
}

// Profile resolves a user together with both sides of their follow graph.
// viewerID may be nil for anonymous reads; IsFollowing is then false.
func (s *GraphService) Profile(ctx context.Context, userID uuid.UUID, viewerID *uuid.UUID) (*domain.Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	followers, err := s.followRepo.Followers(ctx, userID)
	if err != nil {
		return nil, err
	}

	following, err := s.followRepo.Following(ctx, userID)
	if err != nil {
		return nil, err
	}

	if followers == nil {
		followers = []uuid.UUID{}
	}
	if following == nil {
		following = []uuid.UUID{}
	}

	profile := &domain.Profile{
		User:           *user,
		Followers:      followers,
		Following:      following,
		FollowersCount: len(followers),
		FollowingCount: len(following),
	}

	if viewerID != nil && *viewerID != userID {
		isFollowing, err := s.followRepo.Exists(ctx, *viewerID, userID)
		if err != nil {
			return nil, err
		}
		profile.IsFollowing = isFollowing
	}

	return profile, nil
}

// UpdateProfileInput carries the editable profile attributes. Nil fields are
// left unchanged.
type UpdateProfileInput struct {
	Name       *string `json:"name,omitempty"`
	DOB        *string `json:"dob,omitempty"`
	Location   *string `json:"location,omitempty"`
	ProfilePic *string `json:"profile_pic,omitempty"`
}

func (s *GraphService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.DOB != nil {
		dob, err := parseDOB(*input.DOB)
		if err == nil {
			user.DOB = dob
		}
	}
	if input.Location != nil {
		user.Location = input.Location
	}
	if input.ProfilePic != nil {
		user.ProfilePic = input.ProfilePic
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	return user, nil
}

func parseDOB(s string) (*time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
