package fault

import (
	"github.com/nvalera/storefront-api/models"
)

// Render is the terminal step of the failure pipeline: it recovers the
// Fault carried by err, resolves its dictionary entry, and returns the
// HTTP status plus a ready-to-serialize response body in the requested
// language.
//
// A status with no dictionary entry renders as 500/default. Statuses
// below 400 render a [models.StatusResponse] confirmation (the 200-delete
// and 200-update codes); everything else renders a [models.ErrorResponse].
func Render(err error, lang string) (int, any) {
	f := From(err)

	status := f.Status
	if _, ok := dictionary[status]; !ok {
		status = 500
	}

	text := Message(status, f.Category, lang)
	if status < 400 {
		return status, models.StatusResponse{Message: text}
	}
	return status, models.ErrorResponse{Error: text}
}
