package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"

	"github.com/fsdevblog/smartlink/internal/models"
	"github.com/fsdevblog/smartlink/internal/repositories"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// codeAlphabet алфавит короткого кода: 62 символа.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// maxGenerateAttempts ограничивает цикл генерации кода. Политика
// "ограниченный перебор, затем ошибка" держит худшую задержку создания
// предсказуемой и делает коллизии явными.
const maxGenerateAttempts = 10

// MappingRepository интерфейс хранилища коротких ссылок.
type MappingRepository interface {
	Create(ctx context.Context, mapping *models.Mapping) error
	GetByShortCode(ctx context.Context, shortCode string) (*models.Mapping, error)
	GetByID(ctx context.Context, id uint) (*models.Mapping, error)
	GetAllByUserID(ctx context.Context, userID uint) ([]models.Mapping, error)
	Delete(ctx context.Context, id uint) error
}

// LinkCache интерфейс кэша ссылок. Реализация обязана быть fail-open.
type LinkCache interface {
	Delete(ctx context.Context, shortCode string)
}

// MappingService сервис создания и чтения коротких ссылок.
type MappingService struct {
	repo   MappingRepository
	cache  LinkCache
	logger *logrus.Entry

	// генератор кода вынесен в поле, чтобы в тестах подсовывать
	// предсказуемые (в том числе заведомо коллизионные) значения
	codeGen func(length int) string
}

func NewMappingService(repo MappingRepository, cache LinkCache, logger *logrus.Logger) *MappingService {
	return &MappingService{
		repo:    repo,
		cache:   cache,
		logger:  logger.WithField("module", "services/mapping"),
		codeGen: GenerateCode,
	}
}

// GenerateCode возвращает случайный код указанной длины из 62-символьного
// алфавита, равномерно распределенный.
func GenerateCode(length int) string {
	if length <= 0 {
		length = models.ShortCodeLength
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = codeAlphabet[rand.N(len(codeAlphabet))]
	}
	return string(b)
}

// Create валидирует целевую ссылку и создает Mapping с уникальным коротким
// кодом. Делает до 10 попыток генерации, проверяя каждый кандидат на
// коллизию; уникальный индекс в базе страхует от гонки между проверкой и
// вставкой. Возвращает созданную запись и полный короткий URL.
func (s *MappingService) Create(ctx context.Context, rawURL string, baseURL *url.URL, userID *uint) (*models.Mapping, string, error) {
	if validateErr := validateDestination(rawURL); validateErr != nil {
		return nil, "", validateErr
	}

	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		code := s.codeGen(models.ShortCodeLength)

		_, existsErr := s.repo.GetByShortCode(ctx, code)
		if existsErr == nil {
			continue // коллизия, пробуем следующий код
		}
		if !errors.Is(existsErr, repositories.ErrNotFound) {
			return nil, "", errors.Wrap(ErrUnknown, "checking short code collision")
		}

		mapping := models.Mapping{
			ShortCode:   code,
			OriginalURL: rawURL,
			UserID:      userID,
		}
		if createErr := s.repo.Create(ctx, &mapping); createErr != nil {
			if errors.Is(createErr, repositories.ErrDuplicateKey) {
				continue // проиграли гонку за код, пробуем снова
			}
			return nil, "", errors.Wrap(ErrUnknown, "creating mapping")
		}
		return &mapping, ShortURL(baseURL, code), nil
	}

	s.logger.Warn("short code generation exhausted, keyspace is likely near full")
	return nil, "", errors.Wrapf(ErrCodeExhausted, "%d attempts", maxGenerateAttempts)
}

// GetByShortCode возвращает ссылку по короткому коду.
func (s *MappingService) GetByShortCode(ctx context.Context, shortCode string) (*models.Mapping, error) {
	mapping, err := s.repo.GetByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "short code %s", shortCode)
		}
		return nil, ErrUnknown
	}
	return mapping, nil
}

// GetAllByUser возвращает ссылки пользователя, новые первыми.
func (s *MappingService) GetAllByUser(ctx context.Context, userID uint) ([]models.Mapping, error) {
	mappings, err := s.repo.GetAllByUserID(ctx, userID)
	if err != nil {
		return nil, ErrUnknown
	}
	return mappings, nil
}

// Delete удаляет ссылку владельца вместе с правилами и визитами
// и инвалидирует кэш.
func (s *MappingService) Delete(ctx context.Context, shortCode string, userID uint) error {
	mapping, getErr := s.GetByShortCode(ctx, shortCode)
	if getErr != nil {
		return getErr
	}
	if mapping.UserID == nil || *mapping.UserID != userID {
		return errors.Wrapf(ErrPermissionDenied, "mapping %s", shortCode)
	}

	if delErr := s.repo.Delete(ctx, mapping.ID); delErr != nil {
		if errors.Is(delErr, repositories.ErrNotFound) {
			return errors.Wrapf(ErrRecordNotFound, "short code %s", shortCode)
		}
		return ErrUnknown
	}

	s.cache.Delete(ctx, shortCode)
	return nil
}

// ShortURL собирает полный короткий URL из базового адреса и кода.
func ShortURL(baseURL *url.URL, shortCode string) string {
	if baseURL == nil {
		return "/" + shortCode
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(baseURL.String(), "/"), shortCode)
}

// validateDestination проверяет схему и длину целевой ссылки.
func validateDestination(rawURL string) error {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return errors.Wrap(ErrInvalidDestination, "url must start with http:// or https://")
	}
	if len(rawURL) > models.MaxOriginalURLLength {
		return errors.Wrapf(ErrInvalidDestination, "url longer than %d characters", models.MaxOriginalURLLength)
	}
	return nil
}
