package http

import (
	"errors"
	"net/http"

	"github.com/waypoint-labs/waypoint/internal/service"
	"github.com/waypoint-labs/waypoint/pkg/httpx"
	"github.com/waypoint-labs/waypoint/pkg/slogx"
)

type LoginHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Authenticate with an email and password and receive a signed bearer token.
//	@Description	Unknown email and wrong password return the same error so accounts cannot be enumerated.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		http.LoginRequest	true	"email, password"
//	@Success		200		{object}	http.LoginResponse	"message, token, role"
//	@Failure		400		{object}	http.APIError		"validation_error"
//	@Failure		401		{object}	http.APIError		"invalid_credentials"
//	@Failure		500		{object}	http.APIError		"server_error"
//	@Router			/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req LoginRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		ErrValidation.WithDescription(httpx.FieldErrors(err)).Write(w)
		return
	}

	user, err := h.UserService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			ErrInvalidCredentials.Write(w)
		default:
			log.Error("failed to authenticate user", "err", err)
			ErrServer.Write(w)
		}
		return
	}

	token, err := h.TokenService.Issue(user)
	if err != nil {
		log.Error("failed to issue token", "user_id", user.ID, "err", err)
		ErrServer.Write(w)
		return
	}

	log.Info("user logged in", "user_id", user.ID)

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
		Role:    user.Role,
	})
}
