package handler

import (
	"errors"
	"net/http"

	"canteen/internal/model"
	"canteen/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CouponHandler handles issuance and redemption requests.
type CouponHandler struct {
	issuance   service.IssuanceService
	redemption service.RedemptionService
	logger     zerolog.Logger
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(issuance service.IssuanceService, redemption service.RedemptionService, logger zerolog.Logger) *CouponHandler {
	return &CouponHandler{
		issuance:   issuance,
		redemption: redemption,
		logger:     logger.With().Str("handler", "coupon").Logger(),
	}
}

// Menu handles GET /api/coupons/menu?employee_id= requests.
func (h *CouponHandler) Menu(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := parseInt64(w, "employee_id", r.URL.Query().Get("employee_id"), h.logger)
	if !ok {
		return
	}

	items, err := h.issuance.AvailableItems(r.Context(), employeeID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// Preview handles GET /api/coupons/preview?employee_id=&item= requests.
func (h *CouponHandler) Preview(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := parseInt64(w, "employee_id", r.URL.Query().Get("employee_id"), h.logger)
	if !ok {
		return
	}
	item := r.URL.Query().Get("item")
	if item == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "item is required", h.logger)
		return
	}

	bill, err := h.issuance.Preview(r.Context(), employeeID, item)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, bill)
}

// Issue handles POST /api/coupons requests. A coupon whose OTP could not be
// delivered is still reported as created.
func (h *CouponHandler) Issue(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.logger)
	if !ok {
		return
	}

	var req model.IssueRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	if req.EmployeeID <= 0 || req.Item == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "employeeCode and item are required", h.logger)
		return
	}

	issuance, err := h.issuance.Issue(r.Context(), actor, req.EmployeeID, req.Item)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, issuance)
}

// Lookup handles GET /api/coupons/lookup/{token} requests.
func (h *CouponHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	summary, err := h.redemption.Lookup(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Redeem handles POST /api/coupons/redeem requests.
func (h *CouponHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r, h.logger)
	if !ok {
		return
	}

	var req model.RedeemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	summary, err := h.redemption.Redeem(r.Context(), actor, req.Token)
	if errors.Is(err, model.ErrAlreadyRedeemed) && summary != nil {
		h.logger.Info().Str("code", summary.Code).Msg("redemption refused")
		writeJSON(w, http.StatusConflict, model.ErrorResponse{
			Error:   model.ErrAlreadyRedeemed.Code,
			Message: model.ErrAlreadyRedeemed.Message,
			Coupon:  summary,
		})
		return
	}
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
