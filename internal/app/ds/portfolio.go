package ds

import "time"

// 3. Фото до/после выполненных работ
type PortfolioItem struct {
	ID          string        `gorm:"primaryKey;type:varchar(80)" json:"id"`
	Title       LocalizedText `gorm:"type:jsonb;serializer:json;not null" json:"title"`
	Description LocalizedText `gorm:"type:jsonb;serializer:json" json:"description"`
	Category    string        `gorm:"type:varchar(50)" json:"category"`
	BeforeImage *string       `gorm:"type:varchar(255)" json:"beforeImage"`
	AfterImage  *string       `gorm:"type:varchar(255)" json:"afterImage"`
	Featured    bool          `gorm:"not null" json:"featured"`
	Date        time.Time     `json:"date"`
	CreatedAt   time.Time     `json:"createdAt"`
}
