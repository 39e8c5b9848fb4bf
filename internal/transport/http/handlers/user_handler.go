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

type UserHandler struct {
	graphService *service.GraphService
	metrics      *metrics.Metrics
	log          *logrus.Logger
}

func NewUserHandler(graphService *service.GraphService, m *metrics.Metrics, log *logrus.Logger) *UserHandler {
	return &UserHandler{graphService: graphService, metrics: m, log: log}
}

// Profile returns the authenticated user's own profile.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	profile, err := h.graphService.Profile(r.Context(), userID, &userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		h.log.WithError(err).Error("loading profile failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input service.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateProfileUpdate(input.Name); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	user, err := h.graphService.UpdateProfile(r.Context(), userID, input)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		h.log.WithError(err).Error("updating profile failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Get returns a public profile. When the request carries a valid token the
// is_following flag is relative to that viewer.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	viewerID := middleware.GetOptionalUserID(r.Context())

	profile, err := h.graphService.Profile(r.Context(), targetID, viewerID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		h.log.WithError(err).Error("loading user failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())
	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	if err := h.graphService.Follow(r.Context(), actorID, targetID); err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFollow):
			writeError(w, http.StatusBadRequest, "SELF_FOLLOW", "You cannot follow yourself")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			h.log.WithError(err).Error("follow failed")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	h.metrics.Follows.Inc()
	writeJSON(w, http.StatusOK, map[string]bool{"following": true})
}

func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())
	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	if err := h.graphService.Unfollow(r.Context(), actorID, targetID); err != nil {
		if errors.Is(err, service.ErrSelfFollow) {
			writeError(w, http.StatusBadRequest, "SELF_FOLLOW", "You cannot unfollow yourself")
			return
		}
		h.log.WithError(err).Error("unfollow failed")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	h.metrics.Unfollows.Inc()
	writeJSON(w, http.StatusOK, map[string]bool{"following": false})
}
