package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nvalera/storefront-api/internal/fault"
	"github.com/nvalera/storefront-api/internal/logger"
	"github.com/nvalera/storefront-api/internal/utils"
	"github.com/nvalera/storefront-api/models"
)

// parsePagination extracts the limit/page query parameters. Absent or
// non-numeric values yield zero, which the engine replaces with its
// defaults — a request with limit="abc" behaves exactly like one with no
// limit at all.
func parsePagination(r *http.Request) (pageSize, pageNumber int) {
	pageSize, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	pageNumber, _ = strconv.Atoi(r.URL.Query().Get("page"))
	return pageSize, pageNumber
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	doc, err := h.services.CRUDService.FindByID(r.Context(), models.User{}, chi.URLParam(r, "id"))
	if err != nil {
		// Only the not-found case narrows to the account category; store
		// failures keep their own signal.
		if errors.Is(err, fault.ErrNotFound) {
			err = fault.ErrUserNotFound
		}
		h.renderFault(w, r, err)
		return
	}

	utils.WriteJSON(w, models.PublicDocument(doc), http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var partial models.Document
	if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.renderFault(w, r, fault.ErrBadRequest)
		return
	}

	// The stored digest and role are not writable through this endpoint.
	delete(partial, "password")
	delete(partial, "isAdmin")

	doc, err := h.services.CRUDService.Update(r.Context(), models.User{}, chi.URLParam(r, "id"), partial)
	if err != nil {
		h.renderFault(w, r, err)
		return
	}

	utils.WriteJSON(w, models.PublicDocument(doc), http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.services.CRUDService.Delete(r.Context(), models.User{}, chi.URLParam(r, "id")); err != nil {
		h.renderFault(w, r, err)
		return
	}

	h.renderConfirmation(w, r, fault.ConfirmDeleted)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	pageSize, pageNumber := parsePagination(r)

	page, err := h.services.CRUDService.Paginate(r.Context(), models.User{}, nil, pageSize, pageNumber)
	if err != nil {
		h.renderFault(w, r, err)
		return
	}

	for i, doc := range page.Items {
		page.Items[i] = models.PublicDocument(doc)
	}

	utils.WriteJSON(w, page, http.StatusOK)
}
