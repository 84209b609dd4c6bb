package handler

import (
	"errors"
	"net/http"
	"time"

	"shiningstar/internal/app/config"
	"shiningstar/internal/app/ds"
	"shiningstar/internal/app/dto"
	"shiningstar/internal/app/middleware"
	"shiningstar/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "shiningstar-admin"

type AuthHandler struct {
	Store  repository.Store
	Auth   *middleware.AuthMiddleware
	Config *config.Config
	now    func() time.Time
}

func NewAuthHandler(store repository.Store, auth *middleware.AuthMiddleware, cfg *config.Config) *AuthHandler {
	useJSONFieldNames()
	return &AuthHandler{
		Store:  store,
		Auth:   auth,
		Config: cfg,
		now:    time.Now,
	}
}

// LoginUser аутентифицирует пользователя админки
// @Summary Log in
// @Description Checks the credentials and returns a JWT, also set as the auth_token cookie
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) LoginUser(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		bindError(ctx, err)
		return
	}

	user, err := h.Store.GetUserByUsername(ctx.Request.Context(), request.Username)
	if err != nil && !errors.Is(err, ds.ErrNotFound) {
		failWithError(ctx, err)
		return
	}
	if user == nil || !user.Active || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)) != nil {
		logrus.WithField("username", request.Username).Warn("failed login attempt")
		errorResponse(ctx, http.StatusUnauthorized, "invalid username or password")
		return
	}

	now := h.now()
	expiresAt := now.Add(h.Config.JWT.ExpiresIn)
	token := jwt.NewWithClaims(h.Config.JWT.SigningMethod, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expiresAt.Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    tokenIssuer,
		},
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})

	accessToken, err := token.SignedString([]byte(h.Config.JWT.Token))
	if err != nil {
		failWithError(ctx, err)
		return
	}

	ctx.SetCookie(middleware.AuthCookie, accessToken, int(h.Config.JWT.ExpiresIn.Seconds()), "/", "", false, true)
	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Token:     accessToken,
		ExpiresAt: expiresAt,
		User:      dto.NewUserResponse(*user),
	})
}

// LogoutUser отзывает текущий токен
// @Summary Log out
// @Description Blacklists the token until it expires and clears the auth cookie
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) LogoutUser(ctx *gin.Context) {
	tokenString := middleware.TokenFromRequest(ctx)
	claims, err := h.Auth.ParseToken(tokenString)
	if err != nil {
		errorResponse(ctx, http.StatusUnauthorized, "invalid token")
		return
	}

	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl > 0 && h.Auth.Blacklist != nil {
		if err := h.Auth.Blacklist.WriteJWTToBlacklist(ctx.Request.Context(), tokenString, ttl); err != nil {
			failWithError(ctx, err)
			return
		}
	}

	ctx.SetCookie(middleware.AuthCookie, "", -1, "/", "", false, true)
	successResponse(ctx, http.StatusOK, "logged out", nil)
}

// GetUserProfile возвращает текущего пользователя
// @Summary Current user
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/auth/profile [get]
func (h *AuthHandler) GetUserProfile(ctx *gin.Context) {
	current, ok := middleware.GetUserFromContext(ctx)
	if !ok {
		errorResponse(ctx, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.Store.GetUserByID(ctx.Request.Context(), current.ID)
	if err != nil {
		failWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewUserResponse(*user))
}
