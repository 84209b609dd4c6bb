package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shiningstar/internal/app/catalog"
	"shiningstar/internal/app/ds"
	"shiningstar/internal/app/dto"
	"shiningstar/internal/app/export"
	"shiningstar/internal/app/metrics"
	"shiningstar/internal/app/repository"
	"shiningstar/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const imageRoute = "/api/images/"

var errBadUpload = errors.New("invalid multipart upload")

// ============ Админка: услуги ============

// CreateService добавляет услугу в каталог
// @Summary Create service
// @Description Validates the payload and derives the id from the English name
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body catalog.ServiceInput true "Service"
// @Success 201 {object} ds.Service
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/admin/services [post]
func (h *Handler) CreateService(ctx *gin.Context) {
	var in catalog.ServiceInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		bindError(ctx, err)
		return
	}
	if err := catalog.ValidateService(in).Err(); err != nil {
		metrics.ValidationFailures.WithLabelValues("service").Inc()
		failWithError(ctx, err)
		return
	}

	ids, err := h.serviceIDs(ctx.Request.Context())
	if err != nil {
		failWithError(ctx, err)
		return
	}
	id := catalog.AssignID(in.Name.En(), catalog.IDSet(ids), time.Now())

	created, err := h.Store.CreateService(ctx.Request.Context(), in.ToService(id))
	if err != nil {
		failWithError(ctx, err)
		return
	}
	logrus.WithField("service", created.ID).Info("service created")
	ctx.JSON(http.StatusCreated, created)
}

// UpdateService накладывает payload на услугу и валидирует результат
// @Summary Update service
// @Description Fields missing from the payload keep their stored value; the id never changes
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Param request body catalog.ServiceInput true "Fields to change"
// @Success 200 {object} ds.Service
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/services/{id} [put]
func (h *Handler) UpdateService(ctx *gin.Context) {
	existing, err := h.Store.GetService(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		failWithError(ctx, err)
		return
	}

	in := catalog.ServiceInputFrom(*existing)
	if err := ctx.ShouldBindJSON(&in); err != nil {
		bindError(ctx, err)
		return
	}
	if err := catalog.ValidateService(in).Err(); err != nil {
		metrics.ValidationFailures.WithLabelValues("service").Inc()
		failWithError(ctx, err)
		return
	}

	service := in.ToService(existing.ID)
	service.ImageURL = existing.ImageURL
	updated, err := h.Store.UpdateService(ctx.Request.Context(), service)
	if err != nil {
		failWithError(ctx, err)
		return
	}
	logrus.WithField("service", updated.ID).Info("service updated")
	ctx.JSON(http.StatusOK, updated)
}

// DeleteService удаляет услугу и убирает ее из всех пакетов
// @Summary Delete service
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 200 {object} dto.DeleteServiceResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/services/{id} [delete]
func (h *Handler) DeleteService(ctx *gin.Context) {
	existing, err := h.Store.GetService(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		failWithError(ctx, err)
		return
	}

	modified, err := h.Store.DeleteService(ctx.Request.Context(), existing.ID)
	if err != nil {
		failWithError(ctx, err)
		return
	}
	h.removeImage(ctx.Request.Context(), existing.ImageURL)

	logrus.WithFields(logrus.Fields{"service": existing.ID, "packagesModified": modified}).Info("service deleted")
	ctx.JSON(http.StatusOK, dto.DeleteServiceResponse{ID: existing.ID, PackagesModified: modified})
}

// UploadServiceImage заменяет изображение услуги
// @Summary Upload service image
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Param image formData file true "jpeg, png or gif, at most 5 MB"
// @Success 200 {object} ds.Service
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/admin/services/{id}/image [post]
func (h *Handler) UploadServiceImage(ctx *gin.Context) {
	if h.Images == nil {
		failWithError(ctx, errImagesDisabled)
		return
	}
	service, err := h.Store.GetService(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		failWithError(ctx, err)
		return
	}

	img, err := readImage(ctx, "image")
	if err == nil && img == nil {
		err = fmt.Errorf("%w: image file is required", errBadUpload)
	}
	if err != nil {
		failWithError(ctx, err)
		return
	}

	url, err := h.storeImage(ctx.Request.Context(), "services", img)
	if err != nil {
		failWithError(ctx, err)
		return
	}

	previous := service.ImageURL
	service.ImageURL = &url
	updated, err := h.Store.UpdateService(ctx.Request.Context(), *service)
	if err != nil {
		h.removeImage(ctx.Request.Context(), &url)
		failWithError(ctx, err)
		return
	}
	h.removeImage(ctx.Request.Context(), previous)
	ctx.JSON(http.StatusOK, updated)
}

// ============ Админка: пакеты ============

// CreatePackage добавляет пакет услуг
// @Summary Create package
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body catalog.PackageInput true "Package"
// @Success 201 {object} ds.Package
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api/admin/packages [post]
func (h *Handler) CreatePackage(ctx *gin.Context) {
	var in catalog.PackageInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		bindError(ctx, err)
		return
	}

	serviceIDs, err := h.serviceIDs(ctx.Request.Context())
	if err != nil {
		failWithError(ctx, err)
		return
	}
	if err := catalog.ValidatePackage(in, serviceIDs).Err(); err != nil {
		metrics.ValidationFailures.WithLabelValues("package").Inc()
		failWithError(ctx, err)
		return
	}

	packages, err := h.Store.ListPackages(ctx.Request.Context())
	if err != nil {
		failWithError(ctx, err)
		return
	}
	ids := make([]string, len(packages))
	for i, p := range packages {
		ids[i] = p.ID
	}
	id := catalog.AssignID(in.Name.En(), catalog.IDSet(ids), time.Now())

	created, err := h.Store.CreatePackage(ctx.Request.Context(), in.ToPackage(id))
	if err != nil {
		failWithError(ctx, err)
		return
	}
	logrus.WithField("package", created.ID).Info("package created")
	ctx.JSON(http.StatusCreated, created)
}

// UpdatePackage накладывает payload на пакет и валидирует результат
// @Summary Update package
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Package ID"
// @Param request body catalog.PackageInput true "Fields to change"
// @Success 200 {object} ds.Package
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/packages/{id} [put]
func (h *Handler) UpdatePackage(ctx *gin.Context) {
	existing, err := h.Store.GetPackage(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		failWithError(ctx, err)
		return
	}

	in := catalog.PackageInputFrom(*existing)
	if err := ctx.ShouldBindJSON(&in); err != nil {
		bindError(ctx, err)
		return
	}

	serviceIDs, err := h.serviceIDs(ctx.Request.Context())
	if err != nil {
		failWithError(ctx, err)
		return
	}
	if err := catalog.ValidatePackage(in, serviceIDs).Err(); err != nil {
		metrics.ValidationFailures.WithLabelValues("package").Inc()
		failWithError(ctx, err)
		return
	}

	updated, err := h.Store.UpdatePackage(ctx.Request.Context(), in.ToPackage(existing.ID))
	if err != nil {
		failWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updated)
}

// DeletePackage удаляет пакет
// @Summary Delete package
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Package ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/packages/{id} [delete]
func (h *Handler) DeletePackage(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := h.Store.DeletePackage(ctx.Request.Context(), id); err != nil {
		failWithError(ctx, err)
		return
	}
	successResponse(ctx, http.StatusOK, "package deleted", gin.H{"id": id})
}

// ============ Админка: портфолио ============

// CreatePortfolioItem добавляет работу с фото до/после
// @Summary Create portfolio item
// @Description Multipart form: title[en] (required), title[ru], title[es], description[...], category, featured, date (YYYY-MM-DD), before and after images
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title[en] formData string true "English title"
// @Param category formData string false "Category"
// @Param featured formData bool false "Show on the home page"
// @Param date formData string false "Job date, YYYY-MM-DD"
// @Param before formData file false "Before photo"
// @Param after formData file false "After photo"
// @Success 201 {object} ds.PortfolioItem
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/admin/portfolio [post]
func (h *Handler) CreatePortfolioItem(ctx *gin.Context) {
	title := ds.LocalizedText(ctx.PostFormMap("title"))
	if t := strings.TrimSpace(ctx.PostForm("title")); t != "" && title.En() == "" {
		title["en"] = t
	}
	if strings.TrimSpace(title.En()) == "" {
		metrics.ValidationFailures.WithLabelValues("portfolio").Inc()
		failWithError(ctx, catalog.ValidationErrors{{Field: "title.en", Message: "title.en is required"}})
		return
	}

	item := ds.PortfolioItem{
		Title:       title,
		Description: ds.LocalizedText(ctx.PostFormMap("description")),
		Category:    strings.TrimSpace(ctx.PostForm("category")),
		Featured:    ctx.PostForm("featured") == "true",
	}
	if raw := strings.TrimSpace(ctx.PostForm("date")); raw != "" {
		date, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			errorResponse(ctx, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		item.Date = date
	}

	before, err := readImage(ctx, "before")
	if err != nil {
		failWithError(ctx, err)
		return
	}
	after, err := readImage(ctx, "after")
	if err != nil {
		failWithError(ctx, err)
		return
	}
	if (before != nil || after != nil) && h.Images == nil {
		failWithError(ctx, errImagesDisabled)
		return
	}

	if before != nil {
		url, err := h.storeImage(ctx.Request.Context(), "portfolio", before)
		if err != nil {
			failWithError(ctx, err)
			return
		}
		item.BeforeImage = &url
	}
	if after != nil {
		url, err := h.storeImage(ctx.Request.Context(), "portfolio", after)
		if err != nil {
			h.removeImage(ctx.Request.Context(), item.BeforeImage)
			failWithError(ctx, err)
			return
		}
		item.AfterImage = &url
	}

	items, err := h.Store.ListPortfolio(ctx.Request.Context())
	if err != nil {
		failWithError(ctx, err)
		return
	}
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	item.ID = catalog.AssignID(title.En(), catalog.IDSet(ids), time.Now())

	created, err := h.Store.CreatePortfolioItem(ctx.Request.Context(), item)
	if err != nil {
		h.removeImage(ctx.Request.Context(), item.BeforeImage)
		h.removeImage(ctx.Request.Context(), item.AfterImage)
		failWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// DeletePortfolioItem удаляет работу и ее фото
// @Summary Delete portfolio item
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Portfolio item ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/admin/portfolio/{id} [delete]
func (h *Handler) DeletePortfolioItem(ctx *gin.Context) {
	item, err := h.Store.GetPortfolioItem(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		failWithError(ctx, err)
		return
	}
	if err := h.Store.DeletePortfolioItem(ctx.Request.Context(), item.ID); err != nil {
		failWithError(ctx, err)
		return
	}
	h.removeImage(ctx.Request.Context(), item.BeforeImage)
	h.removeImage(ctx.Request.Context(), item.AfterImage)
	successResponse(ctx, http.StatusOK, "portfolio item deleted", gin.H{"id": item.ID})
}

// ============ Админка: обзор ============

// GetDashboard возвращает количество записей для админки
// @Summary Dashboard
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Router /api/admin/dashboard [get]
func (h *Handler) GetDashboard(ctx *gin.Context) {
	c := ctx.Request.Context()
	services, err := h.Store.ListServices(c, repository.ServiceFilter{})
	if err != nil {
		failWithError(ctx, err)
		return
	}
	packages, err := h.Store.ListPackages(c)
	if err != nil {
		failWithError(ctx, err)
		return
	}
	portfolio, err := h.Store.ListPortfolio(c)
	if err != nil {
		failWithError(ctx, err)
		return
	}
	requests, err := h.Store.ListServiceRequests(c)
	if err != nil {
		failWithError(ctx, err)
		return
	}
	messages, err := h.Store.ListContactMessages(c)
	if err != nil {
		failWithError(ctx, err)
		return
	}

	resp := dto.DashboardResponse{
		Services:  len(services),
		Packages:  len(packages),
		Portfolio: len(portfolio),
		Requests:  len(requests),
		Messages:  len(messages),
	}
	for _, s := range services {
		if s.Available {
			resp.AvailableServices++
		}
	}
	for _, r := range requests {
		if r.Status == ds.RequestStatusPending {
			resp.PendingRequests++
		}
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetServiceRequests возвращает заявки на уборку
// @Summary List booking requests
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ds.ServiceRequest
// @Router /api/admin/requests [get]
func (h *Handler) GetServiceRequests(ctx *gin.Context) {
	requests, err := h.Store.ListServiceRequests(ctx.Request.Context())
	if err != nil {
		failWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, requests)
}

// GetContactMessages возвращает сообщения из формы обратной связи
// @Summary List contact messages
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ds.ContactMessage
// @Router /api/admin/messages [get]
func (h *Handler) GetContactMessages(ctx *gin.Context) {
	messages, err := h.Store.ListContactMessages(ctx.Request.Context())
	if err != nil {
		failWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, messages)
}

// ExportPrices отдает прайс-лист в виде таблицы
// @Summary Export price list
// @Tags Admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Router /api/admin/export/prices.xlsx [get]
func (h *Handler) ExportPrices(ctx *gin.Context) {
	services, err := h.Store.ListServices(ctx.Request.Context(), repository.ServiceFilter{})
	if err != nil {
		failWithError(ctx, err)
		return
	}
	packages, err := h.Store.ListPackages(ctx.Request.Context())
	if err != nil {
		failWithError(ctx, err)
		return
	}

	data, err := export.PriceList(services, packages)
	if err != nil {
		failWithError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="prices.xlsx"`)
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ============ Вспомогательные функции ============

func (h *Handler) serviceIDs(ctx context.Context) ([]string, error) {
	services, err := h.Store.ListServices(ctx, repository.ServiceFilter{})
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(services))
	for i, s := range services {
		ids[i] = s.ID
	}
	return ids, nil
}

// readImage возвращает nil, nil, если в форме нет такого файла
func readImage(ctx *gin.Context, field string) (*storage.Image, error) {
	fh, err := ctx.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadUpload, err)
	}
	if fh.Size > storage.MaxImageSize {
		return nil, storage.ErrImageTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadUpload, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, storage.MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadUpload, err)
	}
	img, err := storage.DetectImage(data)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// storeImage загружает img и возвращает публичный путь, который обслуживает GetImage
func (h *Handler) storeImage(ctx context.Context, prefix string, img *storage.Image) (string, error) {
	name, err := h.Images.UploadImage(ctx, prefix, *img)
	if err != nil {
		return "", err
	}
	return imageRoute + name, nil
}

// removeImage удаляет загруженное изображение. Ошибка только логируется, изменение записи остается.
func (h *Handler) removeImage(ctx context.Context, url *string) {
	if url == nil || h.Images == nil || !strings.HasPrefix(*url, imageRoute) {
		return
	}
	name := strings.TrimPrefix(*url, imageRoute)
	if err := h.Images.DeleteFile(ctx, name); err != nil {
		logrus.WithError(err).WithField("object", name).Warn("failed to delete image")
	}
}
