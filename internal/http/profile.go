package http

import (
	"errors"
	"net/http"

	"github.com/waypoint-labs/waypoint/internal/domain"
	"github.com/waypoint-labs/waypoint/internal/service"
	"github.com/waypoint-labs/waypoint/pkg/httpx"
	"github.com/waypoint-labs/waypoint/pkg/slogx"
)

type ProfileHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Profile Endpoint
//	@Description	Returns the authenticated user's profile. An Admin caller receives every
//	@Description	registered profile instead. Password hashes never appear in either shape.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	domain.Profile	"id, name, email, role (array for Admin callers)"
//	@Failure		401	{object}	http.APIError	"missing_token, invalid_token, expired_token"
//	@Failure		404	{object}	http.APIError	"user_not_found"
//	@Failure		500	{object}	http.APIError	"server_error"
//	@Router			/profile [get].
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		ErrInvalidToken.Write(w)
		return
	}

	if domain.Role(httpx.RoleFromContext(ctx)) == domain.RoleAdmin {
		profiles, err := h.UserService.ListAll(ctx)
		if err != nil {
			log.Error("failed to list profiles", "err", err)
			ErrServer.Write(w)
			return
		}
		httpx.NoCache(w)
		httpx.WriteJSON(w, http.StatusOK, profiles)
		return
	}

	profile, err := h.UserService.Profile(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			ErrUserNotFound.Write(w)
		default:
			log.Error("failed to load profile", "user_id", userID, "err", err)
			ErrServer.Write(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, profile)
}
