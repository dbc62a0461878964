package sql

import (
	"context"

	"github.com/fsdevblog/smartlink/internal/models"
	"github.com/fsdevblog/smartlink/internal/repositories"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RuleRepo репозиторий для работы с таблицей `rules`.
type RuleRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewRuleRepo(db *gorm.DB, logger *logrus.Logger) *RuleRepo {
	return &RuleRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/rule"),
	}
}

func (r *RuleRepo) Create(ctx context.Context, rule *models.Rule) error {
	if err := r.db.WithContext(ctx).Create(rule).Error; err != nil {
		r.logger.WithError(err).Errorf("failed to create rule %+v", *rule)
		return convertErrorType(err)
	}
	return nil
}

func (r *RuleRepo) GetByID(ctx context.Context, id uint) (*models.Rule, error) {
	var rule models.Rule
	if err := r.db.WithContext(ctx).First(&rule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		r.logger.WithError(err).Errorf("failed to get rule by id %d", id)
		return nil, repositories.ErrUnknown
	}
	return &rule, nil
}

// GetActiveByMappingID возвращает активные правила ссылки в порядке
// убывания приоритета. При равных приоритетах порядок стабилен (id ASC).
func (r *RuleRepo) GetActiveByMappingID(ctx context.Context, mappingID uint) ([]models.Rule, error) {
	var rules []models.Rule
	err := r.db.WithContext(ctx).
		Where("mapping_id = ? AND is_active = ?", mappingID, true).
		Order("priority DESC, id ASC").
		Find(&rules).Error
	if err != nil {
		r.logger.WithError(err).Errorf("failed to get active rules for mapping %d", mappingID)
		return nil, repositories.ErrUnknown
	}
	return rules, nil
}

func (r *RuleRepo) GetAllByMappingID(ctx context.Context, mappingID uint) ([]models.Rule, error) {
	var rules []models.Rule
	err := r.db.WithContext(ctx).
		Where("mapping_id = ?", mappingID).
		Order("priority DESC, id ASC").
		Find(&rules).Error
	if err != nil {
		r.logger.WithError(err).Errorf("failed to get rules for mapping %d", mappingID)
		return nil, repositories.ErrUnknown
	}
	return rules, nil
}

func (r *RuleRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Rule{}, id)
	if res.Error != nil {
		r.logger.WithError(res.Error).Errorf("failed to delete rule %d", id)
		return repositories.ErrUnknown
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
