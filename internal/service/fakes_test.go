package service_test

import (
	"context"

	"github.com/google/uuid"

	"chirp/internal/domain"
)

// In-memory fakes of the repository ports. They mirror the store's contract:
// Add/Remove report whether the row actually changed, lists keep insertion
// order, timelines come back newest-first.

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	u := *user
	r.users[user.ID] = &u
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	if existing, ok := r.users[user.ID]; ok {
		existing.Name = user.Name
		existing.DOB = user.DOB
		existing.Location = user.Location
		existing.ProfilePic = user.ProfilePic
	}
	return nil
}

type followPair struct {
	follower uuid.UUID
	followee uuid.UUID
}

type fakeFollowRepo struct {
	pairs []followPair
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{}
}

func (r *fakeFollowRepo) Add(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	for _, p := range r.pairs {
		if p.follower == followerID && p.followee == followeeID {
			return false, nil
		}
	}
	r.pairs = append(r.pairs, followPair{follower: followerID, followee: followeeID})
	return true, nil
}

func (r *fakeFollowRepo) Remove(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	for i, p := range r.pairs {
		if p.follower == followerID && p.followee == followeeID {
			r.pairs = append(r.pairs[:i], r.pairs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFollowRepo) Exists(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	for _, p := range r.pairs {
		if p.follower == followerID && p.followee == followeeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFollowRepo) Followers(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, p := range r.pairs {
		if p.followee == userID {
			ids = append(ids, p.follower)
		}
	}
	return ids, nil
}

func (r *fakeFollowRepo) Following(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, p := range r.pairs {
		if p.follower == userID {
			ids = append(ids, p.followee)
		}
	}
	return ids, nil
}

type fakeTweetRepo struct {
	tweets   []domain.Tweet
	likes    map[uuid.UUID][]uuid.UUID
	retweets map[uuid.UUID][]uuid.UUID
}

func newFakeTweetRepo() *fakeTweetRepo {
	return &fakeTweetRepo{
		likes:    make(map[uuid.UUID][]uuid.UUID),
		retweets: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (r *fakeTweetRepo) Create(ctx context.Context, tweet *domain.Tweet) error {
	r.tweets = append(r.tweets, *tweet)
	return nil
}

func (r *fakeTweetRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	for i := range r.tweets {
		if r.tweets[i].ID == id {
			copied := r.tweets[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeTweetRepo) ListTimeline(ctx context.Context) ([]domain.Tweet, error) {
	var out []domain.Tweet
	for i := len(r.tweets) - 1; i >= 0; i-- {
		if !r.tweets[i].IsReply {
			out = append(out, r.tweets[i])
		}
	}
	return out, nil
}

func (r *fakeTweetRepo) ListReplies(ctx context.Context, parentID uuid.UUID) ([]domain.Tweet, error) {
	var out []domain.Tweet
	for _, t := range r.tweets {
		if t.ParentID != nil && *t.ParentID == parentID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTweetRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Tweet, error) {
	var out []domain.Tweet
	for i := len(r.tweets) - 1; i >= 0; i-- {
		if r.tweets[i].AuthorID == authorID {
			out = append(out, r.tweets[i])
		}
	}
	return out, nil
}

func (r *fakeTweetRepo) AddLike(ctx context.Context, tweetID, userID uuid.UUID) (bool, error) {
	return addMember(r.likes, tweetID, userID), nil
}

func (r *fakeTweetRepo) RemoveLike(ctx context.Context, tweetID, userID uuid.UUID) (bool, error) {
	return removeMember(r.likes, tweetID, userID), nil
}

func (r *fakeTweetRepo) Likers(ctx context.Context, tweetID uuid.UUID) ([]uuid.UUID, error) {
	return r.likes[tweetID], nil
}

func (r *fakeTweetRepo) AddRetweet(ctx context.Context, tweetID, userID uuid.UUID) (bool, error) {
	return addMember(r.retweets, tweetID, userID), nil
}

func (r *fakeTweetRepo) RemoveRetweet(ctx context.Context, tweetID, userID uuid.UUID) (bool, error) {
	return removeMember(r.retweets, tweetID, userID), nil
}

func (r *fakeTweetRepo) Retweeters(ctx context.Context, tweetID uuid.UUID) ([]uuid.UUID, error) {
	return r.retweets[tweetID], nil
}

func (r *fakeTweetRepo) Engagement(ctx context.Context, tweetID uuid.UUID) (*domain.Engagement, error) {
	replies, _ := r.ListReplies(ctx, tweetID)
	return &domain.Engagement{
		Likes:        r.likes[tweetID],
		RetweetBy:    r.retweets[tweetID],
		RepliesCount: len(replies),
	}, nil
}

func addMember(sets map[uuid.UUID][]uuid.UUID, tweetID, userID uuid.UUID) bool {
	for _, id := range sets[tweetID] {
		if id == userID {
			return false
		}
	}
	sets[tweetID] = append(sets[tweetID], userID)
	return true
}

func removeMember(sets map[uuid.UUID][]uuid.UUID, tweetID, userID uuid.UUID) bool {
	members := sets[tweetID]
	for i, id := range members {
		if id == userID {
			sets[tweetID] = append(members[:i], members[i+1:]...)
			return true
		}
	}
	return false
}
