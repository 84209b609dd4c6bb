package middleware

import (
	"context"
	"strings"
	"time"

	"shiningstar/internal/app/config"
	"shiningstar/internal/app/ds"
	"shiningstar/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/sirupsen/logrus"
)

const AuthCookie = "auth_token"

// TokenBlacklist хранит токены, отозванные при logout, реализуется клиентом redis
type TokenBlacklist interface {
	WriteJWTToBlacklist(ctx context.Context, jwtStr string, ttl time.Duration) error
	CheckJWTInBlacklist(ctx context.Context, jwtStr string) (bool, error)
}

type AuthMiddleware struct {
	Blacklist TokenBlacklist // nil отключает проверку отзыва
	Config    *config.Config
}

func NewAuthMiddleware(blacklist TokenBlacklist, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		Blacklist: blacklist,
		Config:    cfg,
	}
}

// TokenFromRequest берет токен из заголовка Authorization, затем из куки
func TokenFromRequest(gCtx *gin.Context) string {
	jwtStr := gCtx.GetHeader("Authorization")
	if jwtStr != "" {
		return strings.TrimPrefix(jwtStr, "Bearer ")
	}
	cookie, err := gCtx.Cookie(AuthCookie)
	if err != nil {
		return ""
	}
	return cookie
}

// WithAuthCheck middleware для проверки авторизации с ролями
func (am *AuthMiddleware) WithAuthCheck(assignedRoles ...role.Role) gin.HandlerFunc {
	return gin.HandlerFunc(func(gCtx *gin.Context) {
		jwtStr := TokenFromRequest(gCtx)
		if jwtStr == "" {
			gCtx.AbortWithStatusJSON(401, unauthorized("authentication required"))
			return
		}

		if am.Blacklist != nil {
			revoked, err := am.Blacklist.CheckJWTInBlacklist(gCtx.Request.Context(), jwtStr)
			if err != nil {
				logrus.WithError(err).Error("blacklist check failed")
				gCtx.AbortWithStatusJSON(500, unauthorized("internal server error"))
				return
			}
			if revoked {
				gCtx.AbortWithStatusJSON(401, unauthorized("token revoked"))
				return
			}
		}

		claims, err := am.ParseToken(jwtStr)
		if err != nil {
			gCtx.AbortWithStatusJSON(401, unauthorized("invalid token"))
			return
		}

		if len(assignedRoles) > 0 && !am.hasRequiredRole(claims.Role, assignedRoles) {
			gCtx.AbortWithStatusJSON(403, unauthorized("insufficient permissions"))
			return
		}

		setCurrentUser(gCtx, CurrentUser{ID: claims.UserID, Username: claims.Username, Role: claims.Role})

		gCtx.Next()
	})
}

// ParseToken проверяет подпись и срок действия токена и возвращает claims
func (am *AuthMiddleware) ParseToken(tokenString string) (*ds.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != am.Config.JWT.SigningMethod.Alg() {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(am.Config.JWT.Token), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*ds.JWTClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}

func (am *AuthMiddleware) hasRequiredRole(userRole role.Role, requiredRoles []role.Role) bool {
	for _, requiredRole := range requiredRoles {
		if userRole == requiredRole {
			return true
		}
	}
	return false
}

func unauthorized(msg string) gin.H {
	return gin.H{"status": "fail", "message": msg}
}
