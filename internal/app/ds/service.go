package ds

import "time"

type CalculationType string

const (
	CalculationQuantity CalculationType = "quantity"
	CalculationArea     CalculationType = "area"
	CalculationTime     CalculationType = "time"
	CalculationFixed    CalculationType = "fixed"
)

// Valid проверяет, что тип расчета известен
func (t CalculationType) Valid() bool {
	switch t {
	case CalculationQuantity, CalculationArea, CalculationTime, CalculationFixed:
		return true
	}
	return false
}

// LocalizedText хранит строку на каждый язык (en, ru, es)
type LocalizedText map[string]string

// En возвращает английский вариант, он обязателен везде
func (t LocalizedText) En() string {
	return t["en"]
}

// 1. Услуги компании
type Service struct {
	ID              string          `gorm:"primaryKey;type:varchar(80)" json:"id"`
	Name            LocalizedText   `gorm:"type:jsonb;serializer:json;not null" json:"name"`
	Description     LocalizedText   `gorm:"type:jsonb;serializer:json" json:"description"`
	Price           float64         `gorm:"type:decimal(10,2);not null" json:"price"`
	Duration        int             `gorm:"not null" json:"duration"` // минуты
	Category        string          `gorm:"type:varchar(50);index" json:"category"`
	Available       bool            `gorm:"not null" json:"available"`
	CalculationType CalculationType `gorm:"type:varchar(20);not null" json:"calculationType"`
	Unit            *string         `gorm:"type:varchar(30)" json:"unit"`
	MaxQuantity     *float64        `json:"maxQuantity"`
	MinArea         *float64        `json:"minArea"`
	MaxArea         *float64        `json:"maxArea"`
	ImageURL        *string         `gorm:"type:varchar(255)" json:"imageUrl,omitempty"` // имя объекта в MinIO
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
