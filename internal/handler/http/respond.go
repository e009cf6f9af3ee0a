package http

import (
	"net/http"
	"strings"

	"github.com/nvalera/storefront-api/internal/fault"
	"github.com/nvalera/storefront-api/internal/utils"
)

// language resolves the response language from the Accept-Language header.
// Only the first language tag is considered; unsupported or absent tags
// silently fall back to the handler's configured default.
func (h *Handler) language(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if header == "" {
		return h.defaultLanguage
	}

	tag := strings.ToLower(strings.TrimSpace(strings.SplitN(header, ",", 2)[0]))
	switch {
	case strings.HasPrefix(tag, fault.LangES):
		return fault.LangES
	case strings.HasPrefix(tag, fault.LangEN):
		return fault.LangEN
	}

	return h.defaultLanguage
}

// renderFault writes the localized response for a failure signal. It is
// the single exit path for every failed request.
func (h *Handler) renderFault(w http.ResponseWriter, r *http.Request, err error) {
	status, body := fault.Render(err, h.language(r))
	utils.WriteJSON(w, body, status)
}

// renderConfirmation writes the localized confirmation for a successful
// mutation with no natural payload (200-delete, 200-update).
func (h *Handler) renderConfirmation(w http.ResponseWriter, r *http.Request, f *fault.Fault) {
	status, body := fault.Render(f, h.language(r))
	utils.WriteJSON(w, body, status)
}
