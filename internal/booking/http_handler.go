package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"bookledger/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

type reserveRequest struct {
	UserID int64     `json:"user_id" validate:"required,gt=0"`
	BookID int64     `json:"book_id" validate:"required,gt=0"`
	Start  time.Time `json:"start_date" validate:"required"`
	End    time.Time `json:"end_date" validate:"required,gtfield=Start"`
}

// Reserve handles POST /bookings
func (h *HTTPHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	var req reserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "invalid_json", "Request body must be valid JSON", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "validation_failed", "Request validation failed", details)
		return
	}

	b, err := h.svc.Reserve(r.Context(), req.UserID, req.BookID, req.Start, req.End)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInterval):
			httpx.JSONError(w, r, http.StatusUnprocessableEntity, "invalid_interval", "Booking start must precede end", nil)
		case errors.Is(err, ErrConflict):
			httpx.JSONError(w, r, http.StatusConflict, "booking_conflict", "The book is already reserved at that time", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccessCreated(w, r, b)
}

// List handles GET /bookings; expired bookings are swept before the read.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.AllActive(r.Context())
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, bookings)
}

// Cancel handles DELETE /bookings?user_id=&book_id=. Cancelling a pair with
// no bookings reports removed=0 rather than an error.
func (h *HTTPHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	userID, uerr := strconv.ParseInt(query.Get("user_id"), 10, 64)
	bookID, berr := strconv.ParseInt(query.Get("book_id"), 10, 64)
	if uerr != nil || berr != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "bad_request", "user_id and book_id must be integers", nil)
		return
	}

	removed, err := h.svc.Cancel(r.Context(), userID, bookID)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, map[string]any{"removed": removed})
}
