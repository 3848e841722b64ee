package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bookledger/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

type addBookRequest struct {
	Title           string   `json:"title" validate:"required,max=255"`
	Price           float64  `json:"price" validate:"gte=0"`
	Pages           int      `json:"pages" validate:"gt=0,lte=32767"`
	AuthorFirstName string   `json:"author_first_name" validate:"required,max=50"`
	AuthorLastName  string   `json:"author_last_name" validate:"required,max=50"`
	AuthorAvatar    []byte   `json:"author_avatar,omitempty"`
	Genres          []string `json:"genres" validate:"required,min=1,dive,required,max=32"`
}

// Add handles POST /books
func (h *HTTPHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "invalid_json", "Request body must be valid JSON", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "validation_failed", "Request validation failed", details)
		return
	}

	id, err := h.svc.AddBook(r.Context(), NewBook{
		Title:           req.Title,
		Price:           req.Price,
		Pages:           req.Pages,
		AuthorFirstName: req.AuthorFirstName,
		AuthorLastName:  req.AuthorLastName,
		AuthorAvatar:    req.AuthorAvatar,
		Genres:          req.Genres,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateTitle) {
			httpx.JSONError(w, r, http.StatusConflict, "duplicate_title", "A book with this title already exists", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
		return
	}

	httpx.JSONSuccessCreated(w, r, map[string]any{"id": id})
}

// Remove handles DELETE /books/{id}
func (h *HTTPHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "bad_request", "Book id must be an integer", nil)
		return
	}

	if err := h.svc.RemoveBook(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, r, http.StatusNotFound, "not_found", "Book not found", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, map[string]any{"id": id})
}

// List handles GET /books with optional min_price, max_price, genre,
// author_first_name and author_last_name query parameters; set filters
// are combined with AND.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	f, details := FilterFromQuery(r)
	if details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "validation_failed", "Invalid filter parameters", details)
		return
	}

	books, err := h.svc.FilterBooks(r.Context(), f)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, books)
}

// Genres handles GET /books/{id}/genres
func (h *HTTPHandler) Genres(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "bad_request", "Book id must be an integer", nil)
		return
	}

	names, err := h.svc.GenresOfBook(r.Context(), id)
	if err != nil {
		httpx.JSONError(w, r, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, names)
}

// FilterFromQuery parses the optional catalog filter parameters from the
// request's query string, validating each once at the boundary.
func FilterFromQuery(r *http.Request) (Filter, []httpx.ErrorDetail) {
	query := r.URL.Query()
	var details []httpx.ErrorDetail

	f := Filter{
		Genre:           query.Get("genre"),
		AuthorFirstName: query.Get("author_first_name"),
		AuthorLastName:  query.Get("author_last_name"),
	}

	if v := query.Get("min_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			details = append(details, httpx.ErrorDetail{Field: "min_price", Message: "min_price must be a number"})
		} else {
			f.MinPrice = &p
		}
	}
	if v := query.Get("max_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			details = append(details, httpx.ErrorDetail{Field: "max_price", Message: "max_price must be a number"})
		} else {
			f.MaxPrice = &p
		}
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		details = append(details, httpx.ErrorDetail{Field: "min_price", Message: "min_price must not exceed max_price"})
	}

	return f, details
}
