package sql

import (
	"strings"

	"github.com/fsdevblog/smartlink/internal/repositories"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// convertErrorType приводит ошибки gorm к ошибкам слоя репозитория.
// TranslateError включен в конфиге gorm, но sqlite иногда отдает
// текстовую ошибку дубликата, поэтому оставлена проверка по подстроке.
func convertErrorType(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repositories.ErrDuplicateKey
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repositories.ErrNotFound
	case strings.Contains(err.Error(), "UNIQUE constraint failed"),
		strings.Contains(err.Error(), "duplicate"):
		return repositories.ErrDuplicateKey
	default:
		return repositories.ErrUnknown
	}
}
