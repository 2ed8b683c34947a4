package http

import (
	"errors"
	"net/http"

	"github.com/waypoint-labs/waypoint/internal/domain"
	"github.com/waypoint-labs/waypoint/internal/service"
	"github.com/waypoint-labs/waypoint/pkg/cryptox"
	"github.com/waypoint-labs/waypoint/pkg/httpx"
	"github.com/waypoint-labs/waypoint/pkg/slogx"
)

type RegisterHandler struct {
	UserService *service.UserService

	// AdminSecret gates registration of Admin accounts. Empty means Admin
	// registration is disabled entirely.
	AdminSecret string
}

// ServeHTTP godoc
//
//	@Summary		Register Endpoint
//	@Description	Create a new user account with a name, email, password and role.
//	@Description	Registering an Admin additionally requires the correct admin_secret_key.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		http.RegisterRequest	true	"name, email, password, role, admin_secret_key (Admin only)"
//	@Success		201		{object}	http.RegisterResponse	"message, user_id"
//	@Failure		400		{object}	http.APIError			"validation_error"
//	@Failure		401		{object}	http.APIError			"admin_secret_required"
//	@Failure		403		{object}	http.APIError			"admin_secret_mismatch"
//	@Failure		409		{object}	http.APIError			"duplicate_email"
//	@Failure		500		{object}	http.APIError			"server_error"
//	@Router			/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req RegisterRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		ErrValidation.WithDescription(httpx.FieldErrors(err)).Write(w)
		return
	}

	role := domain.Role(req.Role)
	if role == domain.RoleAdmin {
		if req.AdminSecretKey == "" {
			ErrAdminSecretMissing.Write(w)
			return
		}
		if h.AdminSecret == "" || !cryptox.SecretsEqual(req.AdminSecretKey, h.AdminSecret) {
			ErrAdminSecretMismatch.Write(w)
			return
		}
	}

	userID, err := h.UserService.Register(ctx, req.Name, req.Email, req.Password, role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEmail):
			ErrDuplicateEmail.Write(w)
		default:
			log.Error("failed to register user", "email", req.Email, "err", err)
			ErrServer.Write(w)
		}
		return
	}

	log.Info("user registered", "user_id", userID, "role", role)

	httpx.WriteJSON(w, http.StatusCreated, RegisterResponse{
		Message: "User registered successfully",
		UserID:  userID,
	})
}
