package middlewares

import (
	"net/http"
	"strings"

	"github.com/fsdevblog/smartlink/internal/tokens"

	"github.com/gin-gonic/gin"
)

// UserIDKey ключ контекста gin с идентификатором пользователя.
const UserIDKey = "userID"

// bearerPrefix префикс заголовка Authorization.
const bearerPrefix = "Bearer "

// AuthOptional разбирает bearer токен если он есть. Невалидный или
// отсутствующий токен не прерывает запрос - обработчик получит
// анонимного клиента.
func AuthOptional(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := parseBearer(c, jwtSecret); ok {
			c.Set(UserIDKey, userID)
		}
		c.Next()
	}
}

// AuthRequired требует валидный bearer токен, иначе 401.
func AuthRequired(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := parseBearer(c, jwtSecret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID возвращает идентификатор пользователя из контекста.
// Второе значение false означает анонимный запрос.
func UserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := val.(uint)
	return userID, ok
}

func parseBearer(c *gin.Context, jwtSecret []byte) (uint, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return 0, false
	}

	claims, err := tokens.ValidateUserJWT(strings.TrimPrefix(header, bearerPrefix), jwtSecret)
	if err != nil {
		_ = c.Error(err)
		return 0, false
	}
	return claims.UserID, true
}
