package middleware

import (
	"shiningstar/internal/app/role"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "current_user"

// CurrentUser - аутентифицированный пользователь из claims токена
type CurrentUser struct {
	ID       uint
	Username string
	Role     role.Role
}

func setCurrentUser(c *gin.Context, u CurrentUser) {
	c.Set(currentUserKey, u)
}

// GetUserFromContext извлекает пользователя из контекста
func GetUserFromContext(c *gin.Context) (CurrentUser, bool) {
	if user, exists := c.Get(currentUserKey); exists {
		if u, ok := user.(CurrentUser); ok {
			return u, true
		}
	}
	return CurrentUser{}, false
}
