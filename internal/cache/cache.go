package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Ключи кэша.
const (
	urlKeyPrefix     = "url:"
	clicksKeyPrefix  = "url_clicks:"
	defaultTTL       = time.Hour
	operationTimeout = 250 * time.Millisecond
)

// Snapshot снимок данных ссылки в кэше. Не является источником истины,
// авторитетные данные всегда в базе.
type Snapshot struct {
	MappingID   uint   `json:"mappingID"`
	ShortCode   string `json:"shortCode"`
	OriginalURL string `json:"originalURL"`
	UserID      *uint  `json:"userID,omitempty"`
	ClickCount  int64  `json:"clickCount"`
}

// Cache обертка над Redis для горячего пути редиректа. Кэш - это
// оптимизация задержки: любая недоступность бекенда деградирует до
// холостых операций и никогда не отдается наружу как ошибка.
type Cache struct {
	client *redis.Client // nil если Redis не сконфигурирован
	ttl    time.Duration
	logger *logrus.Entry
}

// New создает обертку кэша. Пустой addr означает работу без Redis:
// все операции превращаются в no-op. Недоступность Redis при старте
// не является ошибкой, клиент переподключится сам.
func New(addr, password string, ttl time.Duration, logger *logrus.Logger) *Cache {
	entry := logger.WithField("module", "cache")

	if ttl <= 0 {
		ttl = defaultTTL
	}

	c := &Cache{ttl: ttl, logger: entry}

	if addr == "" {
		entry.Warn("redis address is empty, cache is disabled")
		return c
	}

	c.client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()
	if err := c.client.Ping(pingCtx).Err(); err != nil {
		entry.WithError(err).Warn("redis is not reachable, cache will degrade to no-op")
	}
	return c
}

// Get возвращает снимок ссылки из кэша. Второе значение false означает
// промах (включая любые ошибки бекенда).
func (c *Cache) Get(ctx context.Context, shortCode string) (*Snapshot, bool) {
	if c.client == nil {
		return nil, false
	}

	opCtx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	data, err := c.client.Get(opCtx, urlKeyPrefix+shortCode).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).Warnf("cache get error for %s", shortCode)
		}
		return nil, false
	}

	var snap Snapshot
	if unmarshalErr := json.Unmarshal(data, &snap); unmarshalErr != nil {
		c.logger.WithError(unmarshalErr).Warnf("cache unmarshal error for %s", shortCode)
		return nil, false
	}
	return &snap, true
}

// Set сохраняет снимок ссылки с TTL. Ошибки только логируются.
func (c *Cache) Set(ctx context.Context, shortCode string, snap *Snapshot) {
	if c.client == nil || snap == nil {
		return
	}

	data, err := json.Marshal(snap)
	if err != nil {
		c.logger.WithError(err).Warnf("cache marshal error for %s", shortCode)
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	if setErr := c.client.Set(opCtx, urlKeyPrefix+shortCode, data, c.ttl).Err(); setErr != nil {
		c.logger.WithError(setErr).Warnf("cache set error for %s", shortCode)
	}
}

// Delete инвалидирует запись кэша вместе с её счетчиком.
func (c *Cache) Delete(ctx context.Context, shortCode string) {
	if c.client == nil {
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	err := c.client.Del(opCtx, urlKeyPrefix+shortCode, clicksKeyPrefix+shortCode).Err()
	if err != nil {
		c.logger.WithError(err).Warnf("cache delete error for %s", shortCode)
	}
}

// IncrementCounter увеличивает счетчик переходов в кэше и возвращает
// новое значение. При любой ошибке возвращает 0.
func (c *Cache) IncrementCounter(ctx context.Context, shortCode string) int64 {
	if c.client == nil {
		return 0
	}

	opCtx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	val, err := c.client.IncrBy(opCtx, clicksKeyPrefix+shortCode, 1).Result()
	if err != nil {
		c.logger.WithError(err).Warnf("counter increment error for %s", shortCode)
		return 0
	}
	return val
}

// GetCounter возвращает значение счетчика переходов из кэша.
func (c *Cache) GetCounter(ctx context.Context, shortCode string) int64 {
	if c.client == nil {
		return 0
	}

	opCtx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	val, err := c.client.Get(opCtx, clicksKeyPrefix+shortCode).Int64()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).Warnf("counter get error for %s", shortCode)
		}
		return 0
	}
	return val
}

// Stats возвращает статистику бекенда кэша для служебного эндпоинта.
func (c *Cache) Stats(ctx context.Context) map[string]any {
	if c.client == nil {
		return map[string]any{"enabled": false}
	}

	opCtx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	size, err := c.client.DBSize(opCtx).Result()
	if err != nil {
		c.logger.WithError(err).Warn("cache stats error")
		return map[string]any{"enabled": true, "available": false}
	}
	return map[string]any{
		"enabled":    true,
		"available":  true,
		"total_keys": size,
	}
}

// Close закрывает соединение с Redis.
func (c *Cache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
