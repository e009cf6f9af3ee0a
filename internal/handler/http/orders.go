package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nvalera/storefront-api/internal/fault"
	"github.com/nvalera/storefront-api/internal/logger"
	"github.com/nvalera/storefront-api/internal/utils"
	"github.com/nvalera/storefront-api/models"
)

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		h.renderFault(w, r, fault.ErrUnauthorized)
		return
	}

	var payload models.Document
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.renderFault(w, r, fault.ErrBadRequest)
		return
	}

	// The owning account comes from the verified identity, never from
	// the request body.
	payload["user"] = identity.SubjectID
	if status, _ := payload["status"].(string); !models.OrderStatus(status).Valid() {
		payload["status"] = string(models.OrderStatusInProgress)
	}

	doc, err := h.services.CRUDService.Create(r.Context(), models.Order{}, payload)
	if err != nil {
		h.renderFault(w, r, err)
		return
	}

	utils.WriteJSON(w, doc, http.StatusCreated)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		h.renderFault(w, r, fault.ErrUnauthorized)
		return
	}

	doc, err := h.services.CRUDService.FindByID(r.Context(), models.Order{}, chi.URLParam(r, "id"))
	if err != nil {
		h.renderFault(w, r, err)
		return
	}

	// Ownership lives in the order document itself, so the gate cannot
	// evaluate it from path parameters; it is checked here instead.
	owner, _ := doc["user"].(string)
	if !identity.IsAdmin && identity.SubjectID != owner {
		logger.FromRequest(r).Error().
			Str("subject", identity.SubjectID).
			Str("owner", owner).
			Msg("caller is neither admin nor order owner")
		h.renderFault(w, r, fault.ErrUnauthorized)
		return
	}

	utils.WriteJSON(w, doc, http.StatusOK)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	pageSize, pageNumber := parsePagination(r)

	page, err := h.services.CRUDService.Paginate(r.Context(), models.Order{}, nil, pageSize, pageNumber)
	if err != nil {
		h.renderFault(w, r, err)
		return
	}

	utils.WriteJSON(w, page, http.StatusOK)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var body struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.renderFault(w, r, fault.ErrBadRequest)
		return
	}

	if !body.Status.Valid() {
		log.Error().Str("status", string(body.Status)).Msg("unknown order status")
		h.renderFault(w, r, fault.ErrBadRequest)
		return
	}

	partial := models.Document{"status": string(body.Status)}
	if _, err := h.services.CRUDService.Update(r.Context(), models.Order{}, chi.URLParam(r, "id"), partial); err != nil {
		h.renderFault(w, r, err)
		return
	}

	h.renderConfirmation(w, r, fault.ConfirmUpdated)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.services.CRUDService.Delete(r.Context(), models.Order{}, chi.URLParam(r, "id")); err != nil {
		h.renderFault(w, r, err)
		return
	}

	h.renderConfirmation(w, r, fault.ConfirmDeleted)
}
