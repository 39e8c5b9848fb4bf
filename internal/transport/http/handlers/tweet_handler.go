package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"chirp/internal/metrics"
	"chirp/internal/service"
	"chirp/internal/transport/http/middleware"
	"chirp/pkg/validator"
)

type TweetHandler struct {
	tweetService *service.TweetService
	feedService  *service.FeedService
	metrics      *metrics.Metrics
	log          *logrus.Logger
}

func NewTweetHandler(tweetService *service.TweetService, feedService *service.FeedService, m *metrics.Metrics, log *logrus.Logger) *TweetHandler {
	return &TweetHandler{
		tweetService: tweetService,
		feedService:  feedService,
		metrics:      m,
		log:          log,
	}
}

func (h *TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input service.PostTweetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateTweet(input.Content); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	tweet, err := h.tweetService.Post(r.Context(), userID, input)
	if err != nil {
		if errors.Is(err, service.ErrEmptyContent) {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Tweet content is required")
			return
		}
		h.log.WithError(err).Error("posting tweet failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	view, err := h.feedService.RenderTweet(r.Context(), tweet, &userID)
	if err != nil {
		h.log.WithError(err).Error("rendering tweet failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	h.metrics.TweetsPosted.Inc()
	writeJSON(w, http.StatusCreated, view)
}

// Timeline returns top-level tweets, newest first. Replies are reachable only
// through their parent.
func (h *TweetHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetOptionalUserID(r.Context())

	tweets, err := h.tweetService.Timeline(r.Context())
	if err != nil {
		h.log.WithError(err).Error("loading timeline failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	views, err := h.feedService.RenderList(r.Context(), tweets, viewerID)
	if err != nil {
		h.log.WithError(err).Error("rendering timeline failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (h *TweetHandler) Get(w http.ResponseWriter, r *http.Request) {
	tweetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid tweet ID")
		return
	}

	viewerID := middleware.GetOptionalUserID(r.Context())

	tweet, err := h.tweetService.Get(r.Context(), tweetID)
	if err != nil {
		if errors.Is(err, service.ErrTweetNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Tweet not found")
			return
		}
		h.log.WithError(err).Error("loading tweet failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	view, err := h.feedService.RenderTweet(r.Context(), tweet, viewerID)
	if err != nil {
		h.log.WithError(err).Error("rendering tweet failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *TweetHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	tweetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid tweet ID")
		return
	}

	likes, err := h.tweetService.ToggleLike(r.Context(), userID, tweetID)
	if err != nil {
		if errors.Is(err, service.ErrTweetNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Tweet not found")
			return
		}
		h.log.WithError(err).Error("toggling like failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	if likes == nil {
		likes = []uuid.UUID{}
	}

	h.metrics.LikesToggled.Inc()
	writeJSON(w, http.StatusOK, map[string]any{"likes": likes})
}

func (h *TweetHandler) Retweet(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	tweetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid tweet ID")
		return
	}

	retweetBy, err := h.tweetService.ToggleRetweet(r.Context(), userID, tweetID)
	if err != nil {
		if errors.Is(err, service.ErrTweetNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Tweet not found")
			return
		}
		h.log.WithError(err).Error("toggling retweet failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	if retweetBy == nil {
		retweetBy = []uuid.UUID{}
	}

	h.metrics.RetweetsToggled.Inc()
	writeJSON(w, http.StatusOK, map[string]any{"retweet_by": retweetBy})
}

// Replies lists a parent's replies in the order they were posted.
func (h *TweetHandler) Replies(w http.ResponseWriter, r *http.Request) {
	tweetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid tweet ID")
		return
	}

	viewerID := middleware.GetOptionalUserID(r.Context())

	replies, err := h.tweetService.Replies(r.Context(), tweetID)
	if err != nil {
		if errors.Is(err, service.ErrTweetNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Tweet not found")
			return
		}
		h.log.WithError(err).Error("loading replies failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	views, err := h.feedService.RenderList(r.Context(), replies, viewerID)
	if err != nil {
		h.log.WithError(err).Error("rendering replies failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (h *TweetHandler) Reply(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	parentID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid tweet ID")
		return
	}

	var input service.PostReplyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateTweet(input.Content); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	reply, err := h.tweetService.Reply(r.Context(), userID, parentID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTweetNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Tweet not found")
		case errors.Is(err, service.ErrEmptyContent):
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Reply content is required")
		default:
			h.log.WithError(err).Error("posting reply failed")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	view, err := h.feedService.RenderTweet(r.Context(), reply, &userID)
	if err != nil {
		h.log.WithError(err).Error("rendering reply failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	h.metrics.RepliesPosted.Inc()
	writeJSON(w, http.StatusCreated, view)
}

// ByAuthor returns everything a user posted, replies included.
func (h *TweetHandler) ByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	viewerID := middleware.GetOptionalUserID(r.Context())

	tweets, err := h.tweetService.ByAuthor(r.Context(), authorID)
	if err != nil {
		h.log.WithError(err).Error("loading user tweets failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	views, err := h.feedService.RenderList(r.Context(), tweets, viewerID)
	if err != nil {
		h.log.WithError(err).Error("rendering user tweets failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, views)
}
