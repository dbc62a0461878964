package services

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/fsdevblog/smartlink/internal/clientinfo"
	"github.com/fsdevblog/smartlink/internal/models"

	"github.com/sirupsen/logrus"
)

// RuleProvider интерфейс чтения правил маршрутизации.
type RuleProvider interface {
	GetActiveByMappingID(ctx context.Context, mappingID uint) ([]models.Rule, error)
}

// CountryResolver определяет страну по IP адресу.
type CountryResolver interface {
	Country(ipAddress string) string
}

// RouterService движок принятия решения на редиректе: по контексту
// клиента выбирает целевую ссылку среди активных правил. Любая внутренняя
// ошибка не выходит наружу - редирект обязан состояться, худший случай
// это исходная (немаршрутизированная) ссылка.
type RouterService struct {
	rules  RuleProvider
	geo    CountryResolver
	logger *logrus.Entry

	// источники времени и случайности вынесены в поля ради детерминизма в тестах
	now       func() time.Time
	randFloat func() float64
}

func NewRouterService(rules RuleProvider, geo CountryResolver, logger *logrus.Logger) *RouterService {
	return &RouterService{
		rules:     rules,
		geo:       geo,
		logger:    logger.WithField("module", "services/router"),
		now:       time.Now,
		randFloat: rand.Float64,
	}
}

// Resolve возвращает целевую ссылку для редиректа. Правила приходят из
// хранилища уже отсортированными по убыванию приоритета (стабильно),
// срабатывает первое подошедшее. Если правил нет или ни одно не подошло -
// возвращается originalURL.
func (r *RouterService) Resolve(ctx context.Context, mappingID uint, originalURL string, client clientinfo.ClientInfo) string {
	rules, rulesErr := r.rules.GetActiveByMappingID(ctx, mappingID)
	if rulesErr != nil {
		r.logger.WithError(rulesErr).Warnf("failed to load rules for mapping %d, falling back to original url", mappingID)
		return originalURL
	}
	if len(rules) == 0 {
		return originalURL
	}

	derived := r.deriveContext(client)

	for _, rule := range rules {
		if r.matches(rule, derived) {
			return rule.TargetURL
		}
	}
	return originalURL
}

// derivedContext вычисленные атрибуты клиента для сравнения с правилами.
type derivedContext struct {
	country  string
	device   clientinfo.Device
	timeSlot string
	referrer string
}

func (r *RouterService) deriveContext(client clientinfo.ClientInfo) derivedContext {
	return derivedContext{
		country:  r.geo.Country(client.IPAddress),
		device:   clientinfo.DeviceType(client.UserAgent),
		timeSlot: clientinfo.TimeSlot(r.now()),
		referrer: client.Referrer,
	}
}

// matches проверяет срабатывание правила. Свитч по типу правила
// исчерпывающий: новое значение RuleKind обязано получить ветку здесь.
func (r *RouterService) matches(rule models.Rule, derived derivedContext) bool {
	switch rule.Kind {
	case models.RuleKindCountry:
		return strings.EqualFold(rule.ConditionValue, derived.country)
	case models.RuleKindDevice:
		return strings.EqualFold(rule.ConditionValue, string(derived.device))
	case models.RuleKindTime:
		return rule.ConditionValue == derived.timeSlot
	case models.RuleKindReferrer:
		return rule.ConditionValue != "" &&
			strings.Contains(strings.ToLower(derived.referrer), strings.ToLower(rule.ConditionValue))
	case models.RuleKindWeight:
		// Жребий тянется на каждый запрос, не на посетителя: один и тот же
		// человек может увидеть разные варианты при перезагрузке. Известное
		// ограничение текущей схемы A/B тестов.
		return r.randFloat() < rule.Weight
	default:
		r.logger.Warnf("unknown rule kind %q for rule %d, skipping", rule.Kind, rule.ID)
		return false
	}
}
