package handler

import (
	"context"
	"errors"
	"net/http"

	"shiningstar/internal/app/catalog"
	"shiningstar/internal/app/config"
	"shiningstar/internal/app/distance"
	"shiningstar/internal/app/ds"
	"shiningstar/internal/app/dto"
	"shiningstar/internal/app/payment"
	"shiningstar/internal/app/quote"
	"shiningstar/internal/app/repository"
	"shiningstar/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ImageStore хранит загруженные изображения, реализуется клиентом MinIO
type ImageStore interface {
	UploadImage(ctx context.Context, prefix string, img storage.Image) (string, error)
	DeleteFile(ctx context.Context, filename string) error
	GetFileURL(ctx context.Context, filename string) (string, error)
}

// Handler обслуживает API сайта и админки
type Handler struct {
	Store    repository.Store
	Engine   *quote.Engine
	Distance distance.Resolver
	Images   ImageStore // nil, если MinIO не настроен
	Payments *payment.Processor
	Config   *config.Config
}

func NewHandler(store repository.Store, engine *quote.Engine, resolver distance.Resolver, images ImageStore, payments *payment.Processor, cfg *config.Config) *Handler {
	useJSONFieldNames()
	return &Handler{
		Store:    store,
		Engine:   engine,
		Distance: resolver,
		Images:   images,
		Payments: payments,
		Config:   cfg,
	}
}

var errImagesDisabled = errors.New("image storage is not configured")

// ============ Вспомогательные функции ============

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// failWithError переводит доменные ошибки в коды ответа.
// Неизвестные ошибки логируются, клиент получает 500.
func failWithError(c *gin.Context, err error) {
	var verrs catalog.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
			Status:  "fail",
			Message: "validation failed",
			Errors:  verrs.Messages(),
		})
		return
	}

	switch {
	case errors.Is(err, ds.ErrInvalidSelection),
		errors.Is(err, payment.ErrInvalidAmount),
		errors.Is(err, payment.ErrInvalidMethod),
		errors.Is(err, payment.ErrRefundTooLarge),
		errors.Is(err, storage.ErrNotAnImage),
		errors.Is(err, storage.ErrImageTooLarge),
		errors.Is(err, errBadUpload):
		errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ds.ErrUnknownService),
		errors.Is(err, ds.ErrUnknownPackage),
		errors.Is(err, ds.ErrNotFound):
		errorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ds.ErrServiceUnavailable),
		errors.Is(err, ds.ErrConflict),
		errors.Is(err, payment.ErrAlreadyPaid),
		errors.Is(err, payment.ErrNotRefundable):
		errorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, ds.ErrDistanceUnavailable):
		errorResponse(c, http.StatusServiceUnavailable, "unable to determine distance to the address, please try again later")
	case errors.Is(err, errImagesDisabled):
		errorResponse(c, http.StatusServiceUnavailable, err.Error())
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		errorResponse(c, http.StatusInternalServerError, "internal server error")
	}
}
