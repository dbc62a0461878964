package sql

import (
	"context"
	"time"

	"github.com/fsdevblog/smartlink/internal/models"
	"github.com/fsdevblog/smartlink/internal/repositories"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// VisitRepo репозиторий для работы с таблицей `visits`.
type VisitRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewVisitRepo(db *gorm.DB, logger *logrus.Logger) *VisitRepo {
	return &VisitRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/visit"),
	}
}

// Record сохраняет визит и увеличивает счетчик переходов ссылки в одной
// транзакции. Повторная доставка задачи после полного отката не приводит
// к двойному учету: либо выполняются оба шага, либо ни одного.
func (v *VisitRepo) Record(ctx context.Context, visit *models.Visit) error {
	err := v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(visit).Error; err != nil {
			return err
		}
		return tx.Model(&models.Mapping{}).
			Where("id = ?", visit.MappingID).
			UpdateColumn("click_count", gorm.Expr("click_count + ?", 1)).Error
	})
	if err != nil {
		v.logger.WithError(err).Errorf("failed to record visit for mapping %d", visit.MappingID)
		return convertErrorType(err)
	}
	return nil
}

// DeleteOlderThan удаляет визиты старше переданной отметки времени.
// Возвращает количество удаленных записей.
func (v *VisitRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := v.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.Visit{})
	if res.Error != nil {
		v.logger.WithError(res.Error).Error("failed to delete old visits")
		return 0, repositories.ErrUnknown
	}
	return res.RowsAffected, nil
}

// CountByMappingID возвращает количество визитов по ссылке.
func (v *VisitRepo) CountByMappingID(ctx context.Context, mappingID uint) (int64, error) {
	var count int64
	err := v.db.WithContext(ctx).
		Model(&models.Visit{}).
		Where("mapping_id = ?", mappingID).
		Count(&count).Error
	if err != nil {
		v.logger.WithError(err).Errorf("failed to count visits for mapping %d", mappingID)
		return 0, repositories.ErrUnknown
	}
	return count, nil
}
