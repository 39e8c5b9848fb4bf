package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chirp/internal/service"
)

func newFeedFixture(t *testing.T) (*service.FeedService, *service.TweetService, *fakeUserRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	tweetRepo := newFakeTweetRepo()
	return service.NewFeedService(tweetRepo, userRepo), service.NewTweetService(tweetRepo), userRepo
}

func TestRenderTweetCountsAndFlags(t *testing.T) {
	feed, tweets, userRepo := newFeedFixture(t)
	ctx := context.Background()

	author := seedUser(t, userRepo, "author")
	liker := seedUser(t, userRepo, "liker")

	tweet, err := tweets.Post(ctx, author, service.PostTweetInput{Content: "hello"})
	require.NoError(t, err)

	_, err = tweets.ToggleLike(ctx, liker, tweet.ID)
	require.NoError(t, err)
	_, err = tweets.Reply(ctx, author, tweet.ID, service.PostReplyInput{Content: "hi"})
	require.NoError(t, err)

	view, err := feed.RenderTweet(ctx, tweet, &liker)
	require.NoError(t, err)

	assert.Equal(t, "author", view.Author.Username)
	assert.Equal(t, 1, view.LikesCount)
	assert.Equal(t, 0, view.RetweetCount)
	assert.Equal(t, 1, view.RepliesCount)
	assert.True(t, view.Liked)
	assert.False(t, view.Retweeted)
}

func TestRenderTweetAnonymousViewer(t *testing.T) {
	feed, tweets, userRepo := newFeedFixture(t)
	ctx := context.Background()

	author := seedUser(t, userRepo, "author")
	liker := seedUser(t, userRepo, "liker")

	tweet, err := tweets.Post(ctx, author, service.PostTweetInput{Content: "hello"})
	require.NoError(t, err)
	_, err = tweets.ToggleLike(ctx, liker, tweet.ID)
	require.NoError(t, err)

	view, err := feed.RenderTweet(ctx, tweet, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, view.LikesCount)
	assert.False(t, view.Liked)
	assert.False(t, view.Retweeted)
}

func TestRenderTweetPlaceholderAuthor(t *testing.T) {
	feed, tweets, _ := newFeedFixture(t)
	ctx := context.Background()

	// Author id that resolves to nothing.
	tweet, err := tweets.Post(ctx, uuid.New(), service.PostTweetInput{Content: "orphan"})
	require.NoError(t, err)

	view, err := feed.RenderTweet(ctx, tweet, nil)
	require.NoError(t, err)
	assert.Equal(t, "unknown", view.Author.Username)
	assert.Equal(t, "Unknown", view.Author.Name)
}

// End-to-end walk over the services: post, like, un-like, reply.
func TestEngagementScenario(t *testing.T) {
	feed, tweets, userRepo := newFeedFixture(t)
	ctx := context.Background()

	u1 := seedUser(t, userRepo, "u1")
	u2 := seedUser(t, userRepo, "u2")

	tweet, err := tweets.Post(ctx, u1, service.PostTweetInput{Content: "hello"})
	require.NoError(t, err)

	timeline, err := tweets.Timeline(ctx)
	require.NoError(t, err)
	views, err := feed.RenderList(ctx, timeline, &u2)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, 0, views[0].LikesCount)

	_, err = tweets.ToggleLike(ctx, u2, tweet.ID)
	require.NoError(t, err)

	view, err := feed.RenderTweet(ctx, tweet, &u2)
	require.NoError(t, err)
	assert.Equal(t, 1, view.LikesCount)
	assert.True(t, view.Liked)

	_, err = tweets.ToggleLike(ctx, u2, tweet.ID)
	require.NoError(t, err)

	view, err = feed.RenderTweet(ctx, tweet, &u2)
	require.NoError(t, err)
	assert.Equal(t, 0, view.LikesCount)
	assert.False(t, view.Liked)

	_, err = tweets.Reply(ctx, u1, tweet.ID, service.PostReplyInput{Content: "hi"})
	require.NoError(t, err)

	replies, err := tweets.Replies(ctx, tweet.ID)
	require.NoError(t, err)
	replyViews, err := feed.RenderList(ctx, replies, &u2)
	require.NoError(t, err)
	require.Len(t, replyViews, 1)
	assert.Equal(t, "hi", replyViews[0].Content)
	assert.True(t, replyViews[0].IsReply)

	// The reply never surfaces on the timeline.
	timeline, err = tweets.Timeline(ctx)
	require.NoError(t, err)
	require.Len(t, timeline, 1)
	assert.Equal(t, tweet.ID, timeline[0].ID)
}
