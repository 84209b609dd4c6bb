package handler

import (
	"shiningstar/internal/app/metrics"
	"shiningstar/internal/app/middleware"
	"shiningstar/internal/app/role"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes регистрирует все REST маршруты, маршруты админки требуют роль admin
func (h *Handler) RegisterRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware, authHandler *AuthHandler) {
	router.GET("/ping", h.Ping)
	router.GET("/health", h.Health)
	router.GET("/metrics", metrics.Handler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	// ============ Каталог (публичный) ============
	api.GET("/services", h.GetServices)
	api.GET("/services/:id", h.GetService)
	api.GET("/packages", h.GetPackages)
	api.GET("/packages/:id", h.GetPackage)
	api.GET("/portfolio", h.GetPortfolio)
	api.GET("/images/*name", h.GetImage)

	// ============ Расчет и заявки (публичные) ============
	api.POST("/quote/calculate", h.CalculateQuote)
	api.POST("/quote", h.EstimateCart)
	api.POST("/contact", h.SubmitContact)
	api.POST("/request", h.SubmitServiceRequest)

	// ============ Платежи (публичные, mock) ============
	api.POST("/payments/intent", h.CreatePaymentIntent)
	api.POST("/payments/:id/process", h.ProcessPayment)
	api.GET("/invoice/:number", h.GetInvoice)

	// ============ Аутентификация ============
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.LoginUser)
		auth.POST("/logout", authMiddleware.WithAuthCheck(), authHandler.LogoutUser)
		auth.GET("/profile", authMiddleware.WithAuthCheck(), authHandler.GetUserProfile)
	}

	// ============ Админка ============
	admin := api.Group("/admin")
	admin.Use(authMiddleware.WithAuthCheck(role.Admin))
	{
		admin.GET("/dashboard", h.GetDashboard)

		admin.POST("/services", h.CreateService)
		admin.PUT("/services/:id", h.UpdateService)
		admin.DELETE("/services/:id", h.DeleteService)
		admin.POST("/services/:id/image", h.UploadServiceImage)

		admin.POST("/packages", h.CreatePackage)
		admin.PUT("/packages/:id", h.UpdatePackage)
		admin.DELETE("/packages/:id", h.DeletePackage)

		admin.POST("/portfolio", h.CreatePortfolioItem)
		admin.DELETE("/portfolio/:id", h.DeletePortfolioItem)

		admin.GET("/requests", h.GetServiceRequests)
		admin.GET("/messages", h.GetContactMessages)
		admin.GET("/export/prices.xlsx", h.ExportPrices)
		admin.POST("/payments/:id/refund", h.RefundPayment)
	}
}

// Ping проверяет, что API работает
// @Summary Health check
// @Description Returns pong
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *Handler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}

// Health сообщает о настроенных бэкендах
// @Summary Service health
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) Health(ctx *gin.Context) {
	ctx.JSON(200, gin.H{
		"status":   "ok",
		"storage":  h.Config.Storage.Driver,
		"distance": h.Config.Distance.Mode,
		"images":   h.Images != nil,
	})
}
