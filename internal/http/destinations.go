package http

import (
	"errors"
	"net/http"

	"github.com/waypoint-labs/waypoint/internal/service"
	"github.com/waypoint-labs/waypoint/pkg/httpx"
	"github.com/waypoint-labs/waypoint/pkg/slogx"
)

type DestinationsHandler struct {
	DestinationService *service.DestinationService
}

// HandleList godoc
//
//	@Summary		List Destinations Endpoint
//	@Description	Returns every travel destination. Available to any authenticated user.
//	@Tags			Destinations
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		domain.Destination	"id, name, description, location, created_at"
//	@Failure		401	{object}	http.APIError		"missing_token, invalid_token, expired_token"
//	@Failure		500	{object}	http.APIError		"server_error"
//	@Router			/destinations [get].
func (h *DestinationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	destinations, err := h.DestinationService.List(ctx)
	if err != nil {
		log.Error("failed to list destinations", "err", err)
		ErrServer.Write(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, destinations)
}

// HandleCreate godoc
//
//	@Summary		Create Destination Endpoint
//	@Description	Create a new travel destination. Admin only.
//	@Tags			Destinations
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		http.CreateDestinationRequest	true	"name, description, location"
//	@Success		201		{object}	http.CreateDestinationResponse	"message, destination_id"
//	@Failure		400		{object}	http.APIError					"validation_error"
//	@Failure		401		{object}	http.APIError					"missing_token, invalid_token, expired_token"
//	@Failure		403		{object}	http.APIError					"forbidden"
//	@Failure		500		{object}	http.APIError					"server_error"
//	@Router			/destinations [post].
func (h *DestinationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req CreateDestinationRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		ErrValidation.WithDescription(httpx.FieldErrors(err)).Write(w)
		return
	}

	id, err := h.DestinationService.Create(ctx, req.Name, req.Description, req.Location)
	if err != nil {
		log.Error("failed to create destination", "name", req.Name, "err", err)
		ErrServer.Write(w)
		return
	}

	log.Info("destination created", "destination_id", id, "created_by", httpx.UserIDFromContext(ctx))

	httpx.WriteJSON(w, http.StatusCreated, CreateDestinationResponse{
		Message:       "Destination created successfully",
		DestinationID: id,
	})
}

// HandleDelete godoc
//
//	@Summary		Delete Destination Endpoint
//	@Description	Delete a travel destination by ID. Admin only.
//	@Tags			Destinations
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string				true	"Destination ID"
//	@Success		200	{object}	http.MessageResponse	"message"
//	@Failure		401	{object}	http.APIError		"missing_token, invalid_token, expired_token"
//	@Failure		403	{object}	http.APIError		"forbidden"
//	@Failure		404	{object}	http.APIError		"not_found"
//	@Failure		500	{object}	http.APIError		"server_error"
//	@Router			/destinations/{id} [delete].
func (h *DestinationsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id := r.PathValue("id")
	if id == "" {
		ErrValidation.WithDescription("id is required").Write(w)
		return
	}

	if err := h.DestinationService.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, service.ErrDestinationNotFound):
			ErrDestinationNotFound.Write(w)
		default:
			log.Error("failed to delete destination", "destination_id", id, "err", err)
			ErrServer.Write(w)
		}
		return
	}

	log.Info("destination deleted", "destination_id", id, "deleted_by", httpx.UserIDFromContext(ctx))

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Destination deleted successfully"})
}
