package http

import (
	"errors"
	"net/http"

	"github.com/waypoint-labs/waypoint/internal/service"
	"github.com/waypoint-labs/waypoint/pkg/httpx"
	"github.com/waypoint-labs/waypoint/pkg/slogx"
)

type RolesHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Role Lookup Endpoint
//	@Description	Returns the caller's current role as stored, re-read from the database rather
//	@Description	than echoed from the token. A role change shows up here before the token expires.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	http.RolesResponse	"user_id, role"
//	@Failure		401	{object}	http.APIError		"missing_token, invalid_token, expired_token"
//	@Failure		404	{object}	http.APIError		"user_not_found"
//	@Failure		500	{object}	http.APIError		"server_error"
//	@Router			/auth/roles [get].
func (h *RolesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		ErrInvalidToken.Write(w)
		return
	}

	profile, err := h.UserService.Profile(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			ErrUserNotFound.Write(w)
		default:
			log.Error("failed to load role", "user_id", userID, "err", err)
			ErrServer.Write(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, RolesResponse{
		UserID: profile.ID,
		Role:   profile.Role,
	})
}
