package controllers

import (
	"context"
	"net/url"

	"github.com/fsdevblog/smartlink/internal/clientinfo"
	"github.com/fsdevblog/smartlink/internal/models"
	"github.com/fsdevblog/smartlink/internal/services"
)

// ConnectionChecker проверяет соединение с базой данных.
type ConnectionChecker interface {
	CheckConnection(ctx context.Context) error
}

// LinkManager операции над короткими ссылками.
type LinkManager interface {
	Create(ctx context.Context, rawURL string, baseURL *url.URL, userID *uint) (*models.Mapping, string, error)
	GetByShortCode(ctx context.Context, shortCode string) (*models.Mapping, error)
	GetAllByUser(ctx context.Context, userID uint) ([]models.Mapping, error)
	Delete(ctx context.Context, shortCode string, userID uint) error
}

// Redirector горячий путь: короткий код -> целевая ссылка.
type Redirector interface {
	HandleRedirect(ctx context.Context, shortCode string, client clientinfo.ClientInfo) (string, error)
}

// RuleManager операции над правилами маршрутизации.
type RuleManager interface {
	Create(ctx context.Context, userID uint, params services.CreateRuleParams) (*models.Rule, error)
	List(ctx context.Context, userID, mappingID uint) ([]models.Rule, error)
	Delete(ctx context.Context, userID, ruleID uint) error
}

// Authenticator регистрация и вход пользователей.
type Authenticator interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
}

// CacheStatsProvider статистика кэша для служебного эндпоинта.
type CacheStatsProvider interface {
	Stats(ctx context.Context) map[string]any
}
