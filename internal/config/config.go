package config

import (
	"flag"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

type Config struct {
	// Адрес на котором запустится сервер
	ServerAddress string `env:"SERVER_ADDRESS"`
	// Базовый адрес результирующего сокращенного URL
	BaseURL *url.URL `env:"BASE_URL"`
	// DSN PostgreSQL. Если пусто - используется SQLite
	DatabaseDSN string `env:"DATABASE_DSN"`
	// Путь к файлу SQLite
	SQLitePath string `env:"SQLITE_PATH" envDefault:"smartlink.db"`
	// Адрес Redis. Если пусто или Redis недоступен - кэш работает вхолостую
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	// TTL записей кэша в секундах
	CacheTTLSeconds int `env:"CACHE_TTL" envDefault:"3600"`
	// Путь к базе GeoLite2-Country.mmdb (опционально)
	GeoIPDBPath string `env:"GEOIP_DB_PATH"`
	// Возраст визитов в днях, после которого они удаляются
	VisitRetentionDays int `env:"VISIT_RETENTION_DAYS" envDefault:"90"`
	// Размер очереди задач записи визитов
	VisitQueueSize int `env:"VISIT_QUEUE_SIZE" envDefault:"1024"`
	// Количество воркеров записи визитов
	VisitWorkers int `env:"VISIT_WORKERS" envDefault:"4"`
	// Секрет для подписи JWT
	JWTSecret string `env:"JWT_SECRET" envDefault:"insecure-dev-secret"`

	Logger *logrus.Logger
}

// CacheTTL возвращает TTL кэша как Duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// VisitRetention возвращает срок хранения визитов как Duration.
func (c *Config) VisitRetention() time.Duration {
	return time.Duration(c.VisitRetentionDays) * 24 * time.Hour
}

func LoadConfig() (*Config, error) {
	var flagsConfig, envConfig Config
	logger := initLogger()

	if err := env.Parse(&envConfig); err != nil {
		return nil, errors.Wrapf(err, "parse ENV config error")
	}

	loadsFlags(&flagsConfig)

	conf := mergeConfig(&envConfig, &flagsConfig)
	conf.Logger = logger
	return conf, nil
}

// MustLoadConfig вызывает панику если конфигурацию загрузить не удалось.
func MustLoadConfig() *Config {
	conf, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return conf
}

// loadsFlags парсит флаги командной строки.
func loadsFlags(flagsConfig *Config) {
	flag.StringVar(&flagsConfig.ServerAddress, "a", "localhost:8080", "Адрес сервера")
	flag.StringVar(&flagsConfig.DatabaseDSN, "d", "", "DSN PostgreSQL")
	flag.StringVar(&flagsConfig.RedisAddr, "r", "", "Адрес Redis")

	bDesc := "Базовый адрес результирующего сокращенного URL (по умолчанию Scheme://Host запущенного сервера)"
	flag.Func("b", bDesc, func(rawURL string) error {
		parsedURL, err := url.ParseRequestURI(rawURL)
		if err != nil {
			return errors.Wrap(err, "failed to parse base url")
		}

		// создаем новый инстанс, отсекая тем самым Path и Query если они заданы в базовом урле.
		flagsConfig.BaseURL = &url.URL{
			Scheme: parsedURL.Scheme,
			Host:   parsedURL.Host,
		}
		return nil
	})

	flag.Parse()
}

// mergeConfig сливает структуры для env и флагов. Значения из окружения
// имеют приоритет над флагами.
func mergeConfig(envConfig, flagsConfig *Config) *Config {
	merged := *envConfig
	merged.ServerAddress = defaultIfBlank(envConfig.ServerAddress, flagsConfig.ServerAddress)
	merged.DatabaseDSN = defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN)
	merged.RedisAddr = defaultIfBlank(envConfig.RedisAddr, flagsConfig.RedisAddr)
	if merged.BaseURL == nil {
		merged.BaseURL = flagsConfig.BaseURL
	}
	return &merged
}

func defaultIfBlank(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
