package ds

import "time"

const RequestStatusPending = "pending"

// 5. Сообщения из формы обратной связи
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Email     string    `gorm:"type:varchar(100);not null" json:"email"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`
	Message   string    `gorm:"type:text" json:"message"`
	Services  []string  `gorm:"type:jsonb;serializer:json" json:"services"`
	CreatedAt time.Time `json:"createdAt"`
}

// 6. Заявки на уборку
type ServiceRequest struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"type:varchar(100);not null" json:"name"`
	Email         string     `gorm:"type:varchar(100);not null" json:"email"`
	Phone         string     `gorm:"type:varchar(30);not null" json:"phone"`
	Address       string     `gorm:"type:varchar(255)" json:"address"`
	Services      []string   `gorm:"type:jsonb;serializer:json" json:"services"`
	Packages      []string   `gorm:"type:jsonb;serializer:json" json:"packages"`
	PreferredDate *time.Time `json:"preferredDate"`
	Message       string     `gorm:"type:text" json:"message"`
	Status        string     `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
}
