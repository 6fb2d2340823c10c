package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/lifedrop/lifedrop-backend/internal/application"
	"github.com/lifedrop/lifedrop-backend/pkg/response"
	"github.com/lifedrop/lifedrop-backend/pkg/validation"
)

type FundingHandler struct {
	Svc    *app.FundingService
	Logger *logrus.Logger
}

func NewFundingHandler(svc *app.FundingService, logger *logrus.Logger) *FundingHandler {
	return &FundingHandler{Svc: svc, Logger: logger}
}

type createCheckoutRequest struct {
	DonorName    string `json:"donorName" binding:"required"`
	DonorEmail   string `json:"donorEmail" binding:"required,email"`
	DonateAmount string `json:"donateAmount" binding:"required"`
}

// CreateCheckout handles POST /create-payment-checkout.
func (h *FundingHandler) CreateCheckout(c *gin.Context) {
	var req createCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	url, err := h.Svc.CreateCheckout(c.Request.Context(), req.DonorName, req.DonorEmail, req.DonateAmount)
	if err != nil {
		if errors.Is(err, app.ErrInvalidAmount) {
			response.Error(c, http.StatusBadRequest, "donateAmount must be a positive number", nil)
			return
		}
		h.Logger.WithError(err).Error("create checkout failed")
		response.Error(c, http.StatusBadGateway, "failed to create checkout session", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"url": url}, "checkout session created", nil)
}

// ConfirmPayment handles POST /success-payment?session_id=..
func (h *FundingHandler) ConfirmPayment(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		response.Error(c, http.StatusBadRequest, "session_id is required", nil)
		return
	}
	payment, recorded, err := h.Svc.Confirm(c.Request.Context(), sessionID)
	if err != nil {
		h.Logger.WithError(err).Error("confirm payment failed")
		response.Error(c, http.StatusBadGateway, "failed to confirm payment", nil)
		return
	}
	switch {
	case payment == nil:
		response.Success[any](c, http.StatusOK, nil, "payment not completed", nil)
	case !recorded:
		response.Success(c, http.StatusOK, payment, "payment already recorded", nil)
	default:
		response.Success(c, http.StatusCreated, payment, "payment recorded", nil)
	}
}

// ListPayments handles GET /funding.
func (h *FundingHandler) ListPayments(c *gin.Context) {
	payments, err := h.Svc.ListPayments(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list payments failed")
		response.Error(c, http.StatusInternalServerError, "failed to list payments", nil)
		return
	}
	response.Success(c, http.StatusOK, payments, "payments", map[string]any{"count": len(payments)})
}
