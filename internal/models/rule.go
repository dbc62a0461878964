package models

import "time"

// RuleKind тип условия правила маршрутизации. Закрытое множество значений,
// движок маршрутизации обязан обрабатывать каждое из них.
type RuleKind string

// RuleKindCountry сравнение с кодом страны посетителя.
// RuleKindDevice сравнение с типом устройства посетителя.
// RuleKindTime сравнение с текущим временным интервалом.
// RuleKindReferrer поиск подстроки в заголовке Referer.
// RuleKindWeight вероятностное срабатывание (A/B тест).
const (
	RuleKindCountry  RuleKind = "country"
	RuleKindDevice   RuleKind = "device"
	RuleKindTime     RuleKind = "time"
	RuleKindReferrer RuleKind = "referrer"
	RuleKindWeight   RuleKind = "weight"
)

// Valid проверяет, что тип правила принадлежит закрытому множеству.
func (k RuleKind) Valid() bool {
	switch k {
	case RuleKindCountry, RuleKindDevice, RuleKindTime, RuleKindReferrer, RuleKindWeight:
		return true
	}
	return false
}

// Rule условное переопределение целевой ссылки. Принадлежит ровно одной
// записи Mapping. Правила с большим приоритетом проверяются первыми,
// при равенстве приоритетов порядок определяется по id (стабильно).
type Rule struct {
	ID             uint      `gorm:"primaryKey"         json:"id"`
	MappingID      uint      `gorm:"index;not null"     json:"mappingID"`
	Kind           RuleKind  `gorm:"size:16;not null"   json:"kind"`
	ConditionValue string    `gorm:"size:255"           json:"conditionValue"`
	TargetURL      string    `gorm:"size:2000;not null" json:"targetURL"`
	Weight         float64   `gorm:"not null;default:0" json:"weight"`
	Priority       int       `gorm:"not null;default:0" json:"priority"`
	IsActive       bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}
