package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sukh767/Volt-Vogue/internal/middleware"
	"github.com/Sukh767/Volt-Vogue/internal/model"
	"github.com/Sukh767/Volt-Vogue/internal/service"
	"github.com/Sukh767/Volt-Vogue/pkg/apierror"
)

type CartHandler struct {
	service *service.CartService
}

func NewCartHandler(service *service.CartService) *CartHandler {
	return &CartHandler{service: service}
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	userID, ok := subjectID(r)
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	var payload model.AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ProductID == "" {
		writeError(w, apierror.New("BAD_REQUEST", "product_id is required", "", http.StatusBadRequest))
		return
	}

	items, err := h.service.Add(r.Context(), userID, payload.ProductID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, items, nil)
}

func (h *CartHandler) Items(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	lines, err := h.service.Items(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, lines, nil)
}

// Remove drops one product when a product_id is supplied, or empties the
// cart when the body is empty.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	userID, ok := subjectID(r)
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	var payload model.RemoveFromCartRequest
	_ = json.NewDecoder(r.Body).Decode(&payload)

	items, err := h.service.Remove(r.Context(), userID, payload.ProductID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, items, nil)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	userID, ok := subjectID(r)
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	var payload model.UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	items, err := h.service.UpdateQuantity(r.Context(), userID, chi.URLParam(r, "id"), payload.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, items, nil)
}

func subjectID(r *http.Request) (string, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return "", false
	}
	return claims.UserID, true
}
