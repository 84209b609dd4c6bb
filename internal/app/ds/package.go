package ds

import "time"

// 2. Пакеты услуг со скидкой
type Package struct {
	ID          string        `gorm:"primaryKey;type:varchar(80)" json:"id"`
	Name        LocalizedText `gorm:"type:jsonb;serializer:json;not null" json:"name"`
	Description LocalizedText `gorm:"type:jsonb;serializer:json" json:"description"`
	Services    []string      `gorm:"type:jsonb;serializer:json;not null" json:"services"` // ID услуг
	Price       float64       `gorm:"type:decimal(10,2);not null" json:"price"`
	Discount    float64       `gorm:"type:decimal(5,2);not null" json:"discount"` // проценты, 0-100
	Duration    int           `gorm:"not null" json:"duration"`
	Available   bool          `gorm:"not null" json:"available"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// HasService проверяет, входит ли услуга в пакет
func (p Package) HasService(id string) bool {
	for _, s := range p.Services {
		if s == id {
			return true
		}
	}
	return false
}

// DiscountedPrice - цена пакета с учетом скидки
func (p Package) DiscountedPrice() float64 {
	return p.Price * (1 - p.Discount/100)
}
