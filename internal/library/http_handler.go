package library

import (
	"net/http"

	"bookledger/internal/catalog"
	"bookledger/internal/httpx"
)

type HTTPHandler struct {
	facade *Facade
}

func NewHTTPHandler(facade *Facade) *HTTPHandler {
	return &HTTPHandler{facade: facade}
}

// Availability handles GET /books/availability; it accepts the same filter
// query parameters as GET /books and annotates each match with its active
// booking intervals.
func (h *HTTPHandler) Availability(w http.ResponseWriter, r *http.Request) {
	f, details := catalog.FilterFromQuery(r)
	if details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "validation_failed", "Invalid filter parameters", details)
		return
	}

	books, err := h.facade.BooksWithBookings(r.Context(), f)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, books)
}
