package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Sukh767/Volt-Vogue/internal/model"
	"github.com/Sukh767/Volt-Vogue/internal/service"
	"github.com/Sukh767/Volt-Vogue/pkg/apierror"
)

type CouponHandler struct {
	service *service.CouponService
}

func NewCouponHandler(service *service.CouponService) *CouponHandler {
	return &CouponHandler{service: service}
}

func (h *CouponHandler) Active(w http.ResponseWriter, r *http.Request) {
	userID, ok := subjectID(r)
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	coupon, err := h.service.ActiveForUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, coupon, nil)
}

func (h *CouponHandler) Validate(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	userID, ok := subjectID(r)
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	var payload model.ValidateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Code == "" {
		writeError(w, apierror.New("BAD_REQUEST", "code is required", "", http.StatusBadRequest))
		return
	}

	coupon, err := h.service.Validate(r.Context(), userID, payload.Code)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"code":                coupon.Code,
		"discount_percentage": coupon.DiscountPercentage,
	}, nil)
}
