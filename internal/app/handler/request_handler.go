package handler

import (
	"net/http"
	"strings"
	"time"

	"shiningstar/internal/app/ds"
	"shiningstar/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ Обратная связь и заявки ============

// SubmitContact сохраняет сообщение из формы обратной связи
// @Summary Contact form
// @Tags Requests
// @Accept json
// @Produce json
// @Param request body dto.ContactRequest true "Message"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/contact [post]
func (h *Handler) SubmitContact(ctx *gin.Context) {
	var request dto.ContactRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		bindError(ctx, err)
		return
	}
	if _, _, err := h.lookupCart(ctx.Request.Context(), request.Services, nil); err != nil {
		failWithError(ctx, err)
		return
	}

	msg, err := h.Store.CreateContactMessage(ctx.Request.Context(), ds.ContactMessage{
		Name:      strings.TrimSpace(request.Name),
		Email:     strings.TrimSpace(request.Email),
		Phone:     strings.TrimSpace(request.Phone),
		Message:   strings.TrimSpace(request.Message),
		Services:  request.Services,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		failWithError(ctx, err)
		return
	}

	logrus.WithFields(logrus.Fields{"id": msg.ID, "email": msg.Email}).Info("contact message received")
	successResponse(ctx, http.StatusCreated, "thank you, we will get back to you shortly", gin.H{"id": msg.ID})
}

// SubmitServiceRequest сохраняет заявку на уборку
// @Summary Booking request
// @Description Records a request for the selected services and packages; staff confirm it by phone
// @Tags Requests
// @Accept json
// @Produce json
// @Param request body dto.ServiceRequestBody true "Booking"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/request [post]
func (h *Handler) SubmitServiceRequest(ctx *gin.Context) {
	var request dto.ServiceRequestBody
	if err := ctx.ShouldBindJSON(&request); err != nil {
		bindError(ctx, err)
		return
	}
	if len(request.Services) == 0 && len(request.Packages) == 0 {
		errorResponse(ctx, http.StatusBadRequest, "select at least one service or package")
		return
	}
	if _, _, err := h.lookupCart(ctx.Request.Context(), request.Services, request.Packages); err != nil {
		failWithError(ctx, err)
		return
	}

	req, err := h.Store.CreateServiceRequest(ctx.Request.Context(), ds.ServiceRequest{
		Name:          strings.TrimSpace(request.Name),
		Email:         strings.TrimSpace(request.Email),
		Phone:         strings.TrimSpace(request.Phone),
		Address:       strings.TrimSpace(request.Address),
		Services:      request.Services,
		Packages:      request.Packages,
		PreferredDate: request.PreferredDate,
		Message:       strings.TrimSpace(request.Message),
		Status:        ds.RequestStatusPending,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		failWithError(ctx, err)
		return
	}

	logrus.WithFields(logrus.Fields{"id": req.ID, "services": req.Services, "packages": req.Packages}).Info("service request received")
	successResponse(ctx, http.StatusCreated, "request received, we will call you to confirm", gin.H{"id": req.ID})
}
