package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Sukh767/Volt-Vogue/internal/model"
	"github.com/Sukh767/Volt-Vogue/internal/service"
	"github.com/Sukh767/Volt-Vogue/pkg/apierror"
)

type PaymentHandler struct {
	service *service.PaymentService
}

func NewPaymentHandler(service *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	userID, ok := subjectID(r)
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	var payload model.CreateCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	gatewaySession, total, err := h.service.CreateCheckout(r.Context(), userID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"session_id": gatewaySession.ID,
		"url":        gatewaySession.URL,
		"total":      total,
	}, nil)
}

func (h *PaymentHandler) CheckoutSuccess(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	userID, ok := subjectID(r)
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	var payload model.CheckoutSuccessRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	order, err := h.service.ConfirmCheckout(r.Context(), userID, payload.SessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, order, nil)
}
