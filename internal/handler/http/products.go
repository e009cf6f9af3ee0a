package http

import (
	"encoding/json"
	"net/http"

	"github.com/Masterminds/squirrel"
	"github.com/go-chi/chi/v5"
	"github.com/nvalera/storefront-api/internal/fault"
	"github.com/nvalera/storefront-api/internal/logger"
	"github.com/nvalera/storefront-api/internal/utils"
	"github.com/nvalera/storefront-api/models"
)

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var payload models.Document
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.renderFault(w, r, fault.ErrBadRequest)
		return
	}

	doc, err := h.services.CRUDService.Create(r.Context(), models.Product{}, payload)
	if err != nil {
		h.renderFault(w, r, err)
		return
	}

	utils.WriteJSON(w, doc, http.StatusCreated)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	doc, err := h.services.CRUDService.FindByID(r.Context(), models.Product{}, chi.URLParam(r, "id"))
	if err != nil {
		h.renderFault(w, r, err)
		return
	}

	utils.WriteJSON(w, doc, http.StatusOK)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var partial models.Document
	if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.renderFault(w, r, fault.ErrBadRequest)
		return
	}

	if _, err := h.services.CRUDService.Update(r.Context(), models.Product{}, chi.URLParam(r, "id"), partial); err != nil {
		h.renderFault(w, r, err)
		return
	}

	h.renderConfirmation(w, r, fault.ConfirmUpdated)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.services.CRUDService.Delete(r.Context(), models.Product{}, chi.URLParam(r, "id")); err != nil {
		h.renderFault(w, r, err)
		return
	}

	h.renderConfirmation(w, r, fault.ConfirmDeleted)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	pageSize, pageNumber := parsePagination(r)

	page, err := h.services.CRUDService.Paginate(r.Context(), models.Product{}, nil, pageSize, pageNumber)
	if err != nil {
		h.renderFault(w, r, err)
		return
	}

	utils.WriteJSON(w, page, http.StatusOK)
}

func (h *Handler) listAvailableProducts(w http.ResponseWriter, r *http.Request) {
	pageSize, pageNumber := parsePagination(r)

	inStock := squirrel.Expr("(doc->>'stock')::numeric > ?", 0)
	page, err := h.services.CRUDService.Paginate(r.Context(), models.Product{}, inStock, pageSize, pageNumber)
	if err != nil {
		h.renderFault(w, r, err)
		return
	}

	utils.WriteJSON(w, page, http.StatusOK)
}
