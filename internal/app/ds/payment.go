package ds

import "time"

const (
	PaymentRequiresMethod = "requires_payment_method"
	PaymentSucceeded      = "succeeded"
	PaymentRefunded       = "refunded"
)

// 7. Платежи (mock)
type Payment struct {
	ID            string            `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ClientSecret  string            `gorm:"type:varchar(128);not null" json:"clientSecret"`
	Amount        int64             `gorm:"not null" json:"amount"` // центы
	Currency      string            `gorm:"type:varchar(3);not null" json:"currency"`
	Status        string            `gorm:"type:varchar(32);not null" json:"status"`
	PaymentMethod string            `gorm:"type:varchar(64)" json:"paymentMethod,omitempty"`
	Metadata      map[string]string `gorm:"type:jsonb;serializer:json" json:"metadata"`
	RefundID      *string           `gorm:"type:varchar(64)" json:"refundId,omitempty"`
	RefundAmount  *int64            `json:"refundAmount,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	ProcessedAt   *time.Time        `json:"processedAt,omitempty"`
	RefundedAt    *time.Time        `json:"refundedAt,omitempty"`
}

type Customer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type InvoiceLine struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    string  `json:"quantity"`
	Rate        float64 `json:"rate"`
	Total       float64 `json:"total"`
}

type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	TravelCost float64 `json:"travelCost"`
	Discounts  float64 `json:"discounts"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
}

// 8. Счета по проведенным платежам
type Invoice struct {
	Number        string        `gorm:"primaryKey;type:varchar(32)" json:"number"`
	PaymentID     string        `gorm:"type:varchar(64);not null;index" json:"paymentId"`
	Customer      Customer      `gorm:"type:jsonb;serializer:json" json:"customer"`
	Lines         []InvoiceLine `gorm:"type:jsonb;serializer:json" json:"lines"`
	DistanceMiles float64       `json:"distanceMiles"`
	Totals        Totals        `gorm:"type:jsonb;serializer:json" json:"totals"`
	IssuedAt      time.Time     `json:"issuedAt"`
	DueAt         time.Time     `json:"dueAt"`
	HTML          string        `gorm:"type:text" json:"-"`
}
