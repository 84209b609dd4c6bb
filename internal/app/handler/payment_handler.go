package handler

import (
	"net/http"

	"shiningstar/internal/app/ds"
	"shiningstar/internal/app/dto"
	"shiningstar/internal/app/payment"

	"github.com/gin-gonic/gin"
)

// ============ Платежи ============

// CreatePaymentIntent создает mock платеж картой
// @Summary Create payment intent
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body dto.PaymentIntentRequest true "Amount in dollars"
// @Success 201 {object} ds.Payment
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/payments/intent [post]
func (h *Handler) CreatePaymentIntent(ctx *gin.Context) {
	var request dto.PaymentIntentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		bindError(ctx, err)
		return
	}

	intent, err := h.Payments.CreatePaymentIntent(ctx.Request.Context(), request.Amount, request.Currency, request.Metadata)
	if err != nil {
		failWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, intent)
}

// ProcessPayment проводит платеж и выставляет счет
// @Summary Process payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path string true "Payment intent ID"
// @Param request body dto.ProcessPaymentRequest true "Payment method, customer and invoice lines"
// @Success 200 {object} dto.ProcessPaymentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/payments/{id}/process [post]
func (h *Handler) ProcessPayment(ctx *gin.Context) {
	var request dto.ProcessPaymentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		bindError(ctx, err)
		return
	}

	lines := make([]ds.InvoiceLine, 0, len(request.Lines))
	for _, l := range request.Lines {
		lines = append(lines, ds.InvoiceLine{
			Name:        l.Name,
			Description: l.Description,
			Quantity:    l.Quantity,
			Rate:        l.Rate,
			Total:       l.Total,
		})
	}

	paid, invoice, err := h.Payments.ProcessPayment(ctx.Request.Context(), ctx.Param("id"), request.PaymentMethodID, payment.InvoiceRequest{
		Customer: ds.Customer{
			Name:    request.Customer.Name,
			Address: request.Customer.Address,
			Phone:   request.Customer.Phone,
			Email:   request.Customer.Email,
		},
		Lines:         lines,
		TravelCost:    request.TravelCost,
		DistanceMiles: request.DistanceMiles,
		Discounts:     request.Discounts,
	})
	if err != nil {
		failWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProcessPaymentResponse{
		Payment:     paid,
		Invoice:     invoice.Number,
		DownloadURL: "/api/invoice/" + invoice.Number,
		Totals:      invoice.Totals,
	})
}

// GetInvoice возвращает сформированный счет
// @Summary Get invoice
// @Tags Payments
// @Produce html
// @Param number path string true "Invoice number"
// @Success 200 {string} string "HTML invoice"
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/invoice/{number} [get]
func (h *Handler) GetInvoice(ctx *gin.Context) {
	invoice, err := h.Store.GetInvoice(ctx.Request.Context(), ctx.Param("number"))
	if err != nil {
		failWithError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(invoice.HTML))
}

// RefundPayment возвращает проведенный платеж
// @Summary Refund payment
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment intent ID"
// @Param request body dto.RefundRequest false "Amount in cents and reason"
// @Success 200 {object} payment.Refund
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/admin/payments/{id}/refund [post]
func (h *Handler) RefundPayment(ctx *gin.Context) {
	var request dto.RefundRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			bindError(ctx, err)
			return
		}
	}

	refund, err := h.Payments.ProcessRefund(ctx.Request.Context(), ctx.Param("id"), request.Amount, request.Reason)
	if err != nil {
		failWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, refund)
}
