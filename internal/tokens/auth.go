package tokens

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// UserClaims представляет данные JWT токена пользователя.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID uint
}

// GenerateUserJWT создает JWT токен для пользователя.
//
// Параметры:
//   - userID: идентификатор пользователя
//   - expire: срок действия токена
//   - key: ключ для подписи токена
//
// Возвращает:
//   - string: сгенерированный JWT токен
//   - error: ошибка генерации токена
func GenerateUserJWT(userID uint, expire time.Duration, key []byte) (string, error) {
	userClaims := UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expire)),
		},
		UserID: userID,
	}
	token, err := generateJWT(userClaims, key)
	if err != nil {
		return "", fmt.Errorf("generating user jwt token: %w", err)
	}
	return token, nil
}

// ValidateUserJWT проверяет JWT токен пользователя и возвращает его данные.
//
// Параметры:
//   - tokenString: JWT токен в виде строки
//   - key: ключ для проверки подписи
//
// Возвращает:
//   - *UserClaims: данные проверенного токена
//   - error: ошибка проверки (ErrTokenExpired если истек срок действия)
func ValidateUserJWT(tokenString string, key []byte) (*UserClaims, error) {
	token, err := validateJWT(tokenString, new(UserClaims), key)
	if err != nil {
		return nil, fmt.Errorf("validating user jwt token: %w", err)
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

// generateJWT создает JWT токен с указанными данными.
func generateJWT(claims jwt.Claims, key []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("generating jwt token: %w", err)
	}

	return tokenString, nil
}

// validateJWT проверяет JWT токен.
func validateJWT(tokenString string, claims jwt.Claims, key []byte) (*jwt.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return key, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("parsing jwt token: %w", err)
	}

	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}

	return token, nil
}
