package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chirp/internal/domain"
)

type TweetRepo struct {
	pool *pgxpool.Pool
}

func NewTweetRepo(pool *pgxpool.Pool) *TweetRepo {
	return &TweetRepo{pool: pool}
}

const tweetColumns = "id, author_id, content, image, parent_id, is_reply, created_at"

func (r *TweetRepo) Create(ctx context.Context, tweet *domain.Tweet) error {
	query := `
		INSERT INTO tweets (id, author_id, content, image, parent_id, is_reply, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		tweet.ID, tweet.AuthorID, tweet.Content, tweet.Image,
		tweet.ParentID, tweet.IsReply, tweet.CreatedAt,
	)
	return err
}

func (r *TweetRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	var t domain.Tweet
	err := r.pool.QueryRow(ctx,
		"SELECT "+tweetColumns+" FROM tweets WHERE id = $1", id,
	).Scan(
		&t.ID, &t.AuthorID, &t.Content, &t.Image, &t.ParentID, &t.IsReply, &t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &t, err
}

func (r *TweetRepo) ListTimeline(ctx context.Context) ([]domain.Tweet, error) {
	return r.scanTweets(ctx,
		"SELECT "+tweetColumns+" FROM tweets WHERE is_reply = FALSE ORDER BY created_at DESC, seq DESC",
	)
}

// ListReplies returns a parent's replies in append order; seq is assigned at
// insert so this matches the order replies were posted.
func (r *TweetRepo) ListReplies(ctx context.Context, parentID uuid.UUID) ([]domain.Tweet, error) {
	return r.scanTweets(ctx,
		"SELECT "+tweetColumns+" FROM tweets WHERE parent_id = $1 ORDER BY seq ASC",
		parentID,
	)
}

func (r *TweetRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Tweet, error) {
	return r.scanTweets(ctx,
		"SELECT "+tweetColumns+" FROM tweets WHERE author_id = $1 ORDER BY created_at DESC, seq DESC",
		authorID,
	)
}

func (r *TweetRepo) AddLike(ctx context.Context, tweetID, userID uuid.UUID) (bool, error) {
	return r.addMember(ctx, "tweet_likes", tweetID, userID)
}

func (r *TweetRepo) RemoveLike(ctx context.Context, tweetID, userID uuid.UUID) (bool, error) {
	return r.removeMember(ctx, "tweet_likes", tweetID, userID)
}

func (r *TweetRepo) Likers(ctx context.Context, tweetID uuid.UUID) ([]uuid.UUID, error) {
	return r.scanMembers(ctx, "tweet_likes", tweetID)
}

func (r *TweetRepo) AddRetweet(ctx context.Context, tweetID, userID uuid.UUID) (bool, error) {
	return r.addMember(ctx, "tweet_retweets", tweetID, userID)
}

func (r *TweetRepo) RemoveRetweet(ctx context.Context, tweetID, userID uuid.UUID) (bool, error) {
	return r.removeMember(ctx, "tweet_retweets", tweetID, userID)
}

func (r *TweetRepo) Retweeters(ctx context.Context, tweetID uuid.UUID) ([]uuid.UUID, error) {
	return r.scanMembers(ctx, "tweet_retweets", tweetID)
}

func (r *TweetRepo) Engagement(ctx context.Context, tweetID uuid.UUID) (*domain.Engagement, error) {
	likes, err := r.Likers(ctx, tweetID)
	if err != nil {
		return nil, err
	}

	retweets, err := r.Retweeters(ctx, tweetID)
	if err != nil {
		return nil, err
	}

	var replies int
	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM tweets WHERE parent_id = $1`, tweetID,
	).Scan(&replies)
	if err != nil {
		return nil, err
	}

	return &domain.Engagement{
		Likes:        likes,
		RetweetBy:    retweets,
		RepliesCount: replies,
	}, nil
}

// addMember and removeMember report whether the row actually changed, which
// is what makes the service-level toggles safe under concurrent calls.
func (r *TweetRepo) addMember(ctx context.Context, table string, tweetID, userID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO `+table+` (tweet_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		tweetID, userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TweetRepo) removeMember(ctx context.Context, table string, tweetID, userID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM `+table+` WHERE tweet_id = $1 AND user_id = $2`,
		tweetID, userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TweetRepo) scanMembers(ctx context.Context, table string, tweetID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id FROM `+table+` WHERE tweet_id = $1`, tweetID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *TweetRepo) scanTweets(ctx context.Context, query string, args ...any) ([]domain.Tweet, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tweets []domain.Tweet
	for rows.Next() {
		var t domain.Tweet
		if err := rows.Scan(
			&t.ID, &t.AuthorID, &t.Content, &t.Image, &t.ParentID, &t.IsReply, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		tweets = append(tweets, t)
	}
	return tweets, rows.Err()
}
