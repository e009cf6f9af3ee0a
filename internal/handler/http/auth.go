package http

import (
	"encoding/json"
	"net/http"

	"github.com/nvalera/storefront-api/internal/fault"
	"github.com/nvalera/storefront-api/internal/logger"
	"github.com/nvalera/storefront-api/internal/utils"
	"github.com/nvalera/storefront-api/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.renderFault(w, r, fault.ErrBadRequest)
		return
	}

	response, err := h.services.AuthService.Register(ctx, creds)
	if err != nil {
		log.Err(err).Msg("user registration failed")
		h.renderFault(w, r, err)
		return
	}

	utils.WriteJSON(w, response, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.renderFault(w, r, fault.ErrBadRequest)
		return
	}

	response, err := h.services.AuthService.Login(ctx, creds)
	if err != nil {
		log.Err(err).Msg("user login failed")
		h.renderFault(w, r, err)
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
