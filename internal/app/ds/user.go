package ds

import (
	"time"

	"shiningstar/internal/app/role"
)

// 4. Пользователи админки
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(50);unique;not null" json:"username"`
	Email     string    `gorm:"type:varchar(100);unique;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"password"` // bcrypt хэш
	Role      role.Role `gorm:"type:varchar(20);not null" json:"role"`
	Name      string    `gorm:"type:varchar(100)" json:"name"`
	Active    bool      `gorm:"not null" json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}
