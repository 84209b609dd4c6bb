package handler

import (
	"net/http"
	"strings"

	"shiningstar/internal/app/dto"
	"shiningstar/internal/app/repository"

	"github.com/gin-gonic/gin"
)

// ============ Услуги ============

// GetServices возвращает каталог услуг
// @Summary List services
// @Description Returns services, optionally filtered by category, a search on the English name and availability
// @Tags Services
// @Produce json
// @Param category query string false "Category"
// @Param query query string false "Search in the English name"
// @Param available query bool false "Only available services"
// @Success 200 {object} dto.ServiceListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/services [get]
func (h *Handler) GetServices(ctx *gin.Context) {
	filter := repository.ServiceFilter{
		Category:      strings.TrimSpace(ctx.Query("category")),
		Query:         strings.TrimSpace(ctx.Query("query")),
		AvailableOnly: ctx.Query("available") == "true",
	}

	services, err := h.Store.ListServices(ctx.Request.Context(), filter)
	if err != nil {
		failWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ServiceListResponse{Services: services, Total: len(services)})
}

// GetService возвращает одну услугу
// @Summary Get service
// @Tags Services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} ds.Service
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/services/{id} [get]
func (h *Handler) GetService(ctx *gin.Context) {
	service, err := h.Store.GetService(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		failWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, service)
}

// ============ Пакеты ============

// GetPackages возвращает пакеты услуг
// @Summary List packages
// @Tags Packages
// @Produce json
// @Success 200 {object} dto.PackageListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/packages [get]
func (h *Handler) GetPackages(ctx *gin.Context) {
	packages, err := h.Store.ListPackages(ctx.Request.Context())
	if err != nil {
		failWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.PackageListResponse{Packages: packages, Total: len(packages)})
}

// GetPackage возвращает один пакет
// @Summary Get package
// @Tags Packages
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} ds.Package
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/packages/{id} [get]
func (h *Handler) GetPackage(ctx *gin.Context) {
	pkg, err := h.Store.GetPackage(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		failWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pkg)
}

// ============ Портфолио ============

// GetPortfolio возвращает фото до/после
// @Summary List portfolio
// @Tags Portfolio
// @Produce json
// @Param featured query bool false "Only featured items"
// @Success 200 {object} dto.PortfolioListResponse
// @Router /api/portfolio [get]
func (h *Handler) GetPortfolio(ctx *gin.Context) {
	items, err := h.Store.ListPortfolio(ctx.Request.Context())
	if err != nil {
		failWithError(ctx, err)
		return
	}
	if ctx.Query("featured") == "true" {
		featured := items[:0]
		for _, item := range items {
			if item.Featured {
				featured = append(featured, item)
			}
		}
		items = featured
	}
	ctx.JSON(http.StatusOK, dto.PortfolioListResponse{Items: items, Total: len(items)})
}

// GetImage перенаправляет на presigned URL загруженного изображения
// @Summary Get image
// @Tags Images
// @Param name path string true "Object name"
// @Success 302
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/images/{name} [get]
func (h *Handler) GetImage(ctx *gin.Context) {
	if h.Images == nil {
		failWithError(ctx, errImagesDisabled)
		return
	}
	name := strings.TrimPrefix(ctx.Param("name"), "/")
	url, err := h.Images.GetFileURL(ctx.Request.Context(), name)
	if err != nil {
		failWithError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, url)
}
