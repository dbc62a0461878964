package services

import (
	"context"
	"testing"
	"time"

	"github.com/fsdevblog/smartlink/internal/clientinfo"
	"github.com/fsdevblog/smartlink/internal/models"
	"github.com/fsdevblog/smartlink/internal/repositories"

	"github.com/stretchr/testify/assert"
)

const mobileUA = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

type ruleProviderStub struct {
	rules []models.Rule
	err   error
}

func (p *ruleProviderStub) GetActiveByMappingID(context.Context, uint) ([]models.Rule, error) {
	return p.rules, p.err
}

type countryStub struct {
	country string
}

func (c *countryStub) Country(string) string {
	if c.country == "" {
		return "XX"
	}
	return c.country
}

func newTestRouter(rules []models.Rule, country string) *RouterService {
	router := NewRouterService(&ruleProviderStub{rules: rules}, &countryStub{country: country}, testLogger())
	// 12:00 локального времени, детерминированный жребий
	router.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local) }
	router.randFloat = func() float64 { return 0.5 }
	return router
}

func TestRouterService_Resolve_NoRules(t *testing.T) {
	router := newTestRouter(nil, "")
	got := router.Resolve(context.Background(), 1, "https://example.com", clientinfo.ClientInfo{})
	assert.Equal(t, "https://example.com", got)
}

func TestRouterService_Resolve_RulesErrorFallsBack(t *testing.T) {
	router := NewRouterService(&ruleProviderStub{err: repositories.ErrUnknown}, &countryStub{}, testLogger())
	got := router.Resolve(context.Background(), 1, "https://example.com", clientinfo.ClientInfo{})
	assert.Equal(t, "https://example.com", got)
}

func TestRouterService_Resolve_Country(t *testing.T) {
	rules := []models.Rule{
		{ID: 1, Kind: models.RuleKindCountry, ConditionValue: "ru", TargetURL: "https://example.com/ru", IsActive: true},
	}

	t.Run("match is case insensitive", func(t *testing.T) {
		router := newTestRouter(rules, "RU")
		got := router.Resolve(context.Background(), 1, "https://example.com", clientinfo.ClientInfo{IPAddress: "5.5.5.5"})
		assert.Equal(t, "https://example.com/ru", got)
	})

	t.Run("unknown country falls through", func(t *testing.T) {
		router := newTestRouter(rules, "XX")
		got := router.Resolve(context.Background(), 1, "https://example.com", clientinfo.ClientInfo{IPAddress: "5.5.5.5"})
		assert.Equal(t, "https://example.com", got)
	})
}

func TestRouterService_Resolve_Device(t *testing.T) {
	rules := []models.Rule{
		{ID: 1, Kind: models.RuleKindDevice, ConditionValue: "mobile", TargetURL: "https://m.example.com", IsActive: true},
	}
	router := newTestRouter(rules, "")

	got := router.Resolve(context.Background(), 1, "https://example.com", clientinfo.ClientInfo{UserAgent: mobileUA})
	assert.Equal(t, "https://m.example.com", got)

	got = router.Resolve(context.Background(), 1, "https://example.com", clientinfo.ClientInfo{UserAgent: "curl/8.0"})
	assert.Equal(t, "https://example.com", got)
}

func TestRouterService_Resolve_TimeSlot(t *testing.T) {
	rules := []models.Rule{
		{ID: 1, Kind: models.RuleKindTime, ConditionValue: clientinfo.TimeSlotEvening, TargetURL: "https://example.com/evening", IsActive: true},
	}
	router := newTestRouter(rules, "")

	router.now = func() time.Time { return time.Date(2025, 6, 1, 19, 30, 0, 0, time.Local) }
	got := router.Resolve(context.Background(), 1, "https://example.com", clientinfo.ClientInfo{})
	assert.Equal(t, "https://example.com/evening", got)

	router.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local) }
	got = router.Resolve(context.Background(), 1, "https://example.com", clientinfo.ClientInfo{})
	assert.Equal(t, "https://example.com", got)
}

func TestRouterService_Resolve_Referrer(t *testing.T) {
	rules := []models.Rule{
		{ID: 1, Kind: models.RuleKindReferrer, ConditionValue: "google.com", TargetURL: "https://example.com/seo", IsActive: true},
	}
	router := newTestRouter(rules, "")

	got := router.Resolve(context.Background(), 1, "https://example.com", clientinfo.ClientInfo{Referrer: "https://www.Google.com/search?q=x"})
	assert.Equal(t, "https://example.com/seo", got)

	got = router.Resolve(context.Background(), 1, "https://example.com", clientinfo.ClientInfo{Referrer: "https://duckduckgo.com"})
	assert.Equal(t, "https://example.com", got)

	// правило с пустым условием не должно ловить пустой referrer
	empty := []models.Rule{{ID: 2, Kind: models.RuleKindReferrer, ConditionValue: "", TargetURL: "https://example.com/trap", IsActive: true}}
	got = newTestRouter(empty, "").Resolve(context.Background(), 1, "https://example.com", clientinfo.ClientInfo{})
	assert.Equal(t, "https://example.com", got)
}

func TestRouterService_Resolve_Weight(t *testing.T) {
	rules := []models.Rule{
		{ID: 1, Kind: models.RuleKindWeight, Weight: 0.5, TargetURL: "https://example.com/b", IsActive: true},
	}
	router := newTestRouter(rules, "")

	router.randFloat = func() float64 { return 0.3 }
	got := router.Resolve(context.Background(), 1, "https://example.com/a", clientinfo.ClientInfo{})
	assert.Equal(t, "https://example.com/b", got)

	router.randFloat = func() float64 { return 0.7 }
	got = router.Resolve(context.Background(), 1, "https://example.com/a", clientinfo.ClientInfo{})
	assert.Equal(t, "https://example.com/a", got)
}

func TestRouterService_Resolve_PriorityOrderWins(t *testing.T) {
	// провайдер отдает правила уже отсортированными, побеждает первое подошедшее
	rules := []models.Rule{
		{ID: 2, Kind: models.RuleKindCountry, ConditionValue: "DE", TargetURL: "https://example.com/high", Priority: 20, IsActive: true},
		{ID: 1, Kind: models.RuleKindCountry, ConditionValue: "DE", TargetURL: "https://example.com/low", Priority: 10, IsActive: true},
	}
	router := newTestRouter(rules, "DE")

	got := router.Resolve(context.Background(), 1, "https://example.com", clientinfo.ClientInfo{IPAddress: "5.5.5.5"})
	assert.Equal(t, "https://example.com/high", got)
}

func TestRouterService_Resolve_DeterministicWithoutWeightRules(t *testing.T) {
	rules := []models.Rule{
		{ID: 1, Kind: models.RuleKindCountry, ConditionValue: "DE", TargetURL: "https://example.com/de", IsActive: true},
		{ID: 2, Kind: models.RuleKindReferrer, ConditionValue: "google", TargetURL: "https://example.com/seo", IsActive: true},
	}
	router := newTestRouter(rules, "DE")
	client := clientinfo.ClientInfo{IPAddress: "5.5.5.5", Referrer: "https://google.com"}

	first := router.Resolve(context.Background(), 1, "https://example.com", client)
	second := router.Resolve(context.Background(), 1, "https://example.com", client)
	assert.Equal(t, first, second)
	assert.Equal(t, "https://example.com/de", first)
}

func TestRouterService_Resolve_UnknownKindSkipped(t *testing.T) {
	rules := []models.Rule{
		{ID: 1, Kind: models.RuleKind("planet"), ConditionValue: "mars", TargetURL: "https://example.com/mars", IsActive: true},
		{ID: 2, Kind: models.RuleKindCountry, ConditionValue: "DE", TargetURL: "https://example.com/de", IsActive: true},
	}
	router := newTestRouter(rules, "DE")

	got := router.Resolve(context.Background(), 1, "https://example.com", clientinfo.ClientInfo{IPAddress: "5.5.5.5"})
	assert.Equal(t, "https://example.com/de", got)
}
