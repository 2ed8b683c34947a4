package http

import (
	"errors"
	"net/http"

	"github.com/waypoint-labs/waypoint/internal/service"
	"github.com/waypoint-labs/waypoint/pkg/httpx"
	"github.com/waypoint-labs/waypoint/pkg/slogx"
)

type VerifyHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Token Verification Endpoint
//	@Description	Verify a bearer token's signature, expiry and subject in one call. Intended for
//	@Description	other services that need to check tokens without sharing the signing secret.
//	@Description	Failures return valid=false with a structured reason rather than a bare error.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		http.VerifyRequest	true	"token"
//	@Success		200		{object}	http.VerifyResponse	"valid, user_id, role"
//	@Failure		400		{object}	http.APIError		"validation_error"
//	@Failure		401		{object}	http.VerifyResponse	"valid=false, invalid_token or expired_token"
//	@Failure		404		{object}	http.VerifyResponse	"valid=false, user_not_found"
//	@Failure		500		{object}	http.APIError		"server_error"
//	@Router			/auth/verify [post].
func (h *VerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req VerifyRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		ErrValidation.WithDescription(httpx.FieldErrors(err)).Write(w)
		return
	}

	identity, err := h.TokenService.Verify(ctx, req.Token)
	if err != nil {
		var apiErr *APIError
		switch {
		case errors.Is(err, service.ErrExpiredToken):
			apiErr = ErrExpiredToken
		case errors.Is(err, service.ErrUserNotFound):
			apiErr = ErrUserNotFound
		case errors.Is(err, service.ErrInvalidToken):
			apiErr = ErrInvalidToken
		default:
			log.Error("token verification failed", "err", err)
			ErrServer.Write(w)
			return
		}

		httpx.NoCache(w)
		httpx.WriteJSON(w, apiErr.StatusCode, VerifyResponse{
			Valid:            false,
			Error:            apiErr.Code,
			ErrorDescription: apiErr.Description,
		})
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, VerifyResponse{
		Valid:  true,
		UserID: identity.UserID,
		Role:   string(identity.Role),
	})
}
