package services

import (
	"context"
	"strings"

	"github.com/fsdevblog/smartlink/internal/models"
	"github.com/fsdevblog/smartlink/internal/repositories"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RuleRepository интерфейс хранилища правил маршрутизации.
type RuleRepository interface {
	Create(ctx context.Context, rule *models.Rule) error
	GetByID(ctx context.Context, id uint) (*models.Rule, error)
	GetAllByMappingID(ctx context.Context, mappingID uint) ([]models.Rule, error)
	Delete(ctx context.Context, id uint) error
}

// CreateRuleParams входные данные создания правила.
type CreateRuleParams struct {
	MappingID      uint
	Kind           models.RuleKind
	ConditionValue string
	TargetURL      string
	Weight         float64
	Priority       int
	IsActive       bool
}

// RuleService CRUD правил маршрутизации с проверкой владения.
// Ядро никогда не меняет правило на месте: только создание и удаление.
type RuleService struct {
	rules    RuleRepository
	mappings MappingRepository
	logger   *logrus.Entry
}

func NewRuleService(rules RuleRepository, mappings MappingRepository, logger *logrus.Logger) *RuleService {
	return &RuleService{
		rules:    rules,
		mappings: mappings,
		logger:   logger.WithField("module", "services/rule"),
	}
}

// Create создает правило для ссылки пользователя.
func (s *RuleService) Create(ctx context.Context, userID uint, params CreateRuleParams) (*models.Rule, error) {
	if validateErr := validateRule(params); validateErr != nil {
		return nil, validateErr
	}

	if _, err := s.ownedMapping(ctx, params.MappingID, userID); err != nil {
		return nil, err
	}

	rule := models.Rule{
		MappingID:      params.MappingID,
		Kind:           params.Kind,
		ConditionValue: params.ConditionValue,
		TargetURL:      params.TargetURL,
		Weight:         params.Weight,
		Priority:       params.Priority,
		IsActive:       params.IsActive,
	}
	if createErr := s.rules.Create(ctx, &rule); createErr != nil {
		return nil, ErrUnknown
	}
	return &rule, nil
}

// List возвращает все правила ссылки пользователя.
func (s *RuleService) List(ctx context.Context, userID, mappingID uint) ([]models.Rule, error) {
	if _, err := s.ownedMapping(ctx, mappingID, userID); err != nil {
		return nil, err
	}

	rules, rulesErr := s.rules.GetAllByMappingID(ctx, mappingID)
	if rulesErr != nil {
		return nil, ErrUnknown
	}
	return rules, nil
}

// Delete удаляет правило пользователя.
func (s *RuleService) Delete(ctx context.Context, userID, ruleID uint) error {
	rule, ruleErr := s.rules.GetByID(ctx, ruleID)
	if ruleErr != nil {
		if errors.Is(ruleErr, repositories.ErrNotFound) {
			return errors.Wrapf(ErrRecordNotFound, "rule %d", ruleID)
		}
		return ErrUnknown
	}

	if _, err := s.ownedMapping(ctx, rule.MappingID, userID); err != nil {
		return err
	}

	if delErr := s.rules.Delete(ctx, ruleID); delErr != nil {
		if errors.Is(delErr, repositories.ErrNotFound) {
			return errors.Wrapf(ErrRecordNotFound, "rule %d", ruleID)
		}
		return ErrUnknown
	}
	return nil
}

// ownedMapping возвращает ссылку если она существует и принадлежит пользователю.
func (s *RuleService) ownedMapping(ctx context.Context, mappingID, userID uint) (*models.Mapping, error) {
	mapping, err := s.mappings.GetByID(ctx, mappingID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "mapping %d", mappingID)
		}
		return nil, ErrUnknown
	}
	if mapping.UserID == nil || *mapping.UserID != userID {
		return nil, errors.Wrapf(ErrPermissionDenied, "mapping %d", mappingID)
	}
	return mapping, nil
}

func validateRule(params CreateRuleParams) error {
	if !params.Kind.Valid() {
		return errors.Wrapf(ErrInvalidRule, "unknown kind %q", params.Kind)
	}
	if strings.TrimSpace(params.TargetURL) == "" {
		return errors.Wrap(ErrInvalidRule, "target url is required")
	}
	if params.Kind == models.RuleKindWeight && (params.Weight < 0 || params.Weight > 1) {
		return errors.Wrap(ErrInvalidRule, "weight must be in [0,1]")
	}
	return nil
}
