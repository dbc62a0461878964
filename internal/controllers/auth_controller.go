package controllers

import (
	"net/http"
	"time"

	"github.com/fsdevblog/smartlink/internal/tokens"

	"github.com/gin-gonic/gin"
)

// TokenExpireDuration срок действия bearer токена.
const TokenExpireDuration = 24 * time.Hour

// AuthController регистрация и вход. Выдает bearer JWT с идентификатором
// пользователя; политика паролей сюда не входит.
type AuthController struct {
	users     Authenticator
	jwtSecret []byte
}

func NewAuthController(users Authenticator, jwtSecret []byte) *AuthController {
	return &AuthController{users: users, jwtSecret: jwtSecret}
}

type credentialsRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register обрабатывает POST /api/register.
func (a *AuthController) Register(ctx *gin.Context) {
	var req credentialsRequest
	if bindErr := ctx.ShouldBindJSON(&req); bindErr != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, regErr := a.users.Register(ctx, req.Email, req.Password)
	if regErr != nil {
		renderServiceError(ctx, regErr)
		return
	}

	token, tokenErr := tokens.GenerateUserJWT(user.ID, TokenExpireDuration, a.jwtSecret)
	if tokenErr != nil {
		_ = ctx.Error(tokenErr)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": ErrInternal.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"token": token})
}

// Login обрабатывает POST /api/login.
func (a *AuthController) Login(ctx *gin.Context) {
	var req credentialsRequest
	if bindErr := ctx.ShouldBindJSON(&req); bindErr != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, loginErr := a.users.Login(ctx, req.Email, req.Password)
	if loginErr != nil {
		renderServiceError(ctx, loginErr)
		return
	}

	token, tokenErr := tokens.GenerateUserJWT(user.ID, TokenExpireDuration, a.jwtSecret)
	if tokenErr != nil {
		_ = ctx.Error(tokenErr)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": ErrInternal.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token})
}
