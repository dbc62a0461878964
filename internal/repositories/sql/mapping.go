package sql

import (
	"context"

	"github.com/fsdevblog/smartlink/internal/models"
	"github.com/fsdevblog/smartlink/internal/repositories"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MappingRepo репозиторий для работы с таблицей `mappings`.
type MappingRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewMappingRepo(db *gorm.DB, logger *logrus.Logger) *MappingRepo {
	return &MappingRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/mapping"),
	}
}

// Create создает запись короткой ссылки. Уникальный индекс по short_code
// является страховкой от гонки между проверкой существования и вставкой.
func (m *MappingRepo) Create(ctx context.Context, mapping *models.Mapping) error {
	if err := m.db.WithContext(ctx).Create(mapping).Error; err != nil {
		converted := convertErrorType(err)
		if !errors.Is(converted, repositories.ErrDuplicateKey) {
			m.logger.WithError(err).Errorf("failed to create mapping %+v", *mapping)
		}
		return converted
	}
	return nil
}

func (m *MappingRepo) GetByShortCode(ctx context.Context, shortCode string) (*models.Mapping, error) {
	var mapping models.Mapping
	err := m.db.WithContext(ctx).Where("short_code = ?", shortCode).First(&mapping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		m.logger.WithError(err).Errorf("failed to get mapping by short code %s", shortCode)
		return nil, repositories.ErrUnknown
	}
	return &mapping, nil
}

func (m *MappingRepo) GetByID(ctx context.Context, id uint) (*models.Mapping, error) {
	var mapping models.Mapping
	if err := m.db.WithContext(ctx).First(&mapping, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		m.logger.WithError(err).Errorf("failed to get mapping by id %d", id)
		return nil, repositories.ErrUnknown
	}
	return &mapping, nil
}

// GetAllByUserID возвращает ссылки пользователя, новые первыми.
func (m *MappingRepo) GetAllByUserID(ctx context.Context, userID uint) ([]models.Mapping, error) {
	var mappings []models.Mapping
	err := m.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&mappings).Error
	if err != nil {
		m.logger.WithError(err).Errorf("failed to get mappings for user %d", userID)
		return nil, repositories.ErrUnknown
	}
	return mappings, nil
}

// Delete удаляет ссылку вместе с её правилами и визитами одной транзакцией.
func (m *MappingRepo) Delete(ctx context.Context, id uint) error {
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("mapping_id = ?", id).Delete(&models.Rule{}).Error; err != nil {
			return err
		}
		if err := tx.Where("mapping_id = ?", id).Delete(&models.Visit{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Mapping{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repositories.ErrNotFound
		}
		m.logger.WithError(err).Errorf("failed to delete mapping %d", id)
		return repositories.ErrUnknown
	}
	return nil
}
