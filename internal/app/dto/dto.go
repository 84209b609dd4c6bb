package dto

import (
	"time"

	"shiningstar/internal/app/ds"
	"shiningstar/internal/app/quote"
)

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Каталог (Services, Packages, Portfolio) ============

type ServiceListResponse struct {
	Services []ds.Service `json:"services"`
	Total    int          `json:"total"`
}

type PackageListResponse struct {
	Packages []ds.Package `json:"packages"`
	Total    int          `json:"total"`
}

type PortfolioListResponse struct {
	Items []ds.PortfolioItem `json:"items"`
	Total int                `json:"total"`
}

type DeleteServiceResponse struct {
	ID               string `json:"id"`
	PackagesModified bool   `json:"packagesModified"`
}

type DashboardResponse struct {
	Services          int `json:"services"`
	AvailableServices int `json:"availableServices"`
	Packages          int `json:"packages"`
	Portfolio         int `json:"portfolio"`
	Requests          int `json:"requests"`
	PendingRequests   int `json:"pendingRequests"`
	Messages          int `json:"messages"`
}

// ============ Расчет стоимости (Quotes) ============

type QuoteRequest struct {
	ServiceID string   `json:"serviceId" binding:"required"`
	Quantity  *float64 `json:"quantity"`
	Area      *float64 `json:"area"`
	Hours     *float64 `json:"hours"`
	Address   string   `json:"address" binding:"required"`
}

type QuoteResponse struct {
	ServiceID        string   `json:"serviceId"`
	ServiceName      string   `json:"serviceName"`
	CalculationType  string   `json:"calculationType"`
	Unit             *string  `json:"unit,omitempty"`
	Quantity         *float64 `json:"quantity,omitempty"`
	Area             *float64 `json:"area,omitempty"`
	Hours            *float64 `json:"hours,omitempty"`
	Details          string   `json:"details"`
	DistanceMiles    float64  `json:"distanceMiles"`
	DistanceFallback bool     `json:"distanceFallback"`
	ServiceCost      float64  `json:"serviceCost"`
	TravelCost       float64  `json:"travelCost"`
	Subtotal         float64  `json:"subtotal"`
	Tax              float64  `json:"tax"`
	Total            float64  `json:"total"`
	Currency         string   `json:"currency"`
}

func NewQuoteResponse(q quote.Quote, fallback bool) QuoteResponse {
	return QuoteResponse{
		ServiceID:        q.Service.ID,
		ServiceName:      q.Service.Name.En(),
		CalculationType:  string(q.Service.CalculationType),
		Unit:             q.Service.Unit,
		Quantity:         q.Quantity,
		Area:             q.Area,
		Hours:            q.Hours,
		Details:          q.Details,
		DistanceMiles:    q.DistanceMiles,
		DistanceFallback: fallback,
		ServiceCost:      q.ServiceCost,
		TravelCost:       q.TravelCost,
		Subtotal:         q.Subtotal,
		Tax:              q.Tax,
		Total:            q.Total,
		Currency:         quote.Currency,
	}
}

type EstimateRequest struct {
	Services []string `json:"services"`
	Packages []string `json:"packages"`
}

// ============ Обратная связь и заявки ============

type ContactRequest struct {
	Name     string   `json:"name" binding:"required,max=100"`
	Email    string   `json:"email" binding:"required,email"`
	Phone    string   `json:"phone" binding:"omitempty,max=30"`
	Message  string   `json:"message" binding:"required,max=5000"`
	Services []string `json:"services"`
}

type ServiceRequestBody struct {
	Name          string     `json:"name" binding:"required,max=100"`
	Email         string     `json:"email" binding:"required,email"`
	Phone         string     `json:"phone" binding:"required,max=30"`
	Address       string     `json:"address" binding:"omitempty,max=255"`
	Services      []string   `json:"services"`
	Packages      []string   `json:"packages"`
	PreferredDate *time.Time `json:"preferredDate"`
	Message       string     `json:"message" binding:"omitempty,max=5000"`
}

// ============ Платежи (Payments) ============

type PaymentIntentRequest struct {
	Amount   float64           `json:"amount" binding:"required,gt=0"`
	Currency string            `json:"currency" binding:"omitempty,len=3"`
	Metadata map[string]string `json:"metadata"`
}

type CustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
}

type InvoiceLineRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Quantity    string  `json:"quantity"`
	Rate        float64 `json:"rate" binding:"gte=0"`
	Total       float64 `json:"total" binding:"gte=0"`
}

type ProcessPaymentRequest struct {
	PaymentMethodID string               `json:"paymentMethodId" binding:"required"`
	Customer        CustomerRequest      `json:"customer"`
	Lines           []InvoiceLineRequest `json:"lines" binding:"dive"`
	TravelCost      float64              `json:"travelCost" binding:"gte=0"`
	DistanceMiles   float64              `json:"distanceMiles" binding:"gte=0"`
	Discounts       float64              `json:"discounts" binding:"gte=0"`
}

type ProcessPaymentResponse struct {
	Payment     *ds.Payment `json:"payment"`
	Invoice     string      `json:"invoiceNumber"`
	DownloadURL string      `json:"downloadUrl"`
	Totals      ds.Totals   `json:"totals"`
}

type RefundRequest struct {
	Amount *int64 `json:"amount" binding:"omitempty,gt=0"` // центы, без поля возвращается вся сумма
	Reason string `json:"reason"`
}

// ============ Пользователи (Users) ============

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func NewUserResponse(u ds.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email, Name: u.Name, Role: string(u.Role)}
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}
