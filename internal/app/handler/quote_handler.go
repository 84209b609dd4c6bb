package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"shiningstar/internal/app/config"
	"shiningstar/internal/app/ds"
	"shiningstar/internal/app/dto"
	"shiningstar/internal/app/metrics"
	"shiningstar/internal/app/quote"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ Расчет стоимости ============

// CalculateQuote рассчитывает стоимость услуги для адреса клиента
// @Summary Calculate quote
// @Description Prices the service selection, adds the travel charge for the address and tax
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body dto.QuoteRequest true "Service, selection and address"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/quote/calculate [post]
func (h *Handler) CalculateQuote(ctx *gin.Context) {
	var request dto.QuoteRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		metrics.QuoteFailures.WithLabelValues("bad_request").Inc()
		bindError(ctx, err)
		return
	}

	service, err := h.lookupService(ctx.Request.Context(), request.ServiceID)
	if err != nil {
		h.quoteFailed(ctx, err)
		return
	}

	sel := quote.Selection{Quantity: request.Quantity, Area: request.Area, Hours: request.Hours}
	// неверный выбор отклоняем до запроса расстояния
	if err := h.Engine.CheckSelection(*service, sel); err != nil {
		h.quoteFailed(ctx, err)
		return
	}

	miles, fallback, err := h.resolveDistance(ctx.Request.Context(), request.Address)
	if err != nil {
		h.quoteFailed(ctx, err)
		return
	}

	q, err := h.Engine.ComputeQuote(*service, sel, miles)
	if err != nil {
		h.quoteFailed(ctx, err)
		return
	}

	metrics.QuotesComputed.WithLabelValues(string(service.CalculationType)).Inc()
	logrus.WithFields(logrus.Fields{
		"service":  service.ID,
		"miles":    miles,
		"fallback": fallback,
		"total":    q.Total,
	}).Debug("quote computed")

	ctx.JSON(http.StatusOK, dto.NewQuoteResponse(q, fallback))
}

// EstimateCart считает итог корзины услуг и пакетов по прайсу
// @Summary Cart estimate
// @Description Sums services at list price and packages at their discounted price
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body dto.EstimateRequest true "Service and package ids"
// @Success 200 {object} quote.Estimate
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/quote [post]
func (h *Handler) EstimateCart(ctx *gin.Context) {
	var request dto.EstimateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		bindError(ctx, err)
		return
	}
	if len(request.Services) == 0 && len(request.Packages) == 0 {
		failWithError(ctx, fmt.Errorf("%w: select at least one service or package", ds.ErrInvalidSelection))
		return
	}

	services, packages, err := h.lookupCart(ctx.Request.Context(), request.Services, request.Packages)
	if err != nil {
		failWithError(ctx, err)
		return
	}

	estimate, err := quote.EstimateCart(services, packages)
	if err != nil {
		failWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, estimate)
}

// resolveDistance применяет таймаут и настроенную fallback политику.
// bool в результате означает, что вместо неудачного запроса подставлен ноль миль.
func (h *Handler) resolveDistance(ctx context.Context, address string) (float64, bool, error) {
	cfg := h.Config.Distance
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	miles, err := h.Distance.Resolve(ctx, cfg.Origin, address)
	if err == nil {
		return miles, false, nil
	}
	if !errors.Is(err, ds.ErrDistanceUnavailable) {
		err = fmt.Errorf("%w: %v", ds.ErrDistanceUnavailable, err)
	}

	if cfg.Fallback == config.FallbackZero {
		logrus.WithError(err).WithField("address", address).Warn("distance lookup failed, quoting without travel")
		metrics.DistanceFallbacks.Inc()
		return 0, true, nil
	}
	logrus.WithError(err).WithField("address", address).Warn("distance lookup failed")
	return 0, false, err
}

func (h *Handler) lookupService(ctx context.Context, id string) (*ds.Service, error) {
	service, err := h.Store.GetService(ctx, id)
	if errors.Is(err, ds.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ds.ErrUnknownService, id)
	}
	return service, err
}

func (h *Handler) lookupPackage(ctx context.Context, id string) (*ds.Package, error) {
	pkg, err := h.Store.GetPackage(ctx, id)
	if errors.Is(err, ds.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ds.ErrUnknownPackage, id)
	}
	return pkg, err
}

func (h *Handler) lookupCart(ctx context.Context, serviceIDs, packageIDs []string) ([]ds.Service, []ds.Package, error) {
	services := make([]ds.Service, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		s, err := h.lookupService(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		services = append(services, *s)
	}

	packages := make([]ds.Package, 0, len(packageIDs))
	for _, id := range packageIDs {
		p, err := h.lookupPackage(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		packages = append(packages, *p)
	}
	return services, packages, nil
}

func (h *Handler) quoteFailed(ctx *gin.Context, err error) {
	metrics.QuoteFailures.WithLabelValues(failureReason(err)).Inc()
	failWithError(ctx, err)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ds.ErrUnknownService):
		return "unknown_service"
	case errors.Is(err, ds.ErrServiceUnavailable):
		return "service_unavailable"
	case errors.Is(err, ds.ErrInvalidSelection):
		return "invalid_selection"
	case errors.Is(err, ds.ErrDistanceUnavailable):
		return "distance_unavailable"
	default:
		return "internal"
	}
}
