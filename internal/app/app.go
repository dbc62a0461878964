package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/smartlink/internal/cache"
	"github.com/fsdevblog/smartlink/internal/clientinfo"
	"github.com/fsdevblog/smartlink/internal/config"
	"github.com/fsdevblog/smartlink/internal/controllers"
	"github.com/fsdevblog/smartlink/internal/db"
	"github.com/fsdevblog/smartlink/internal/services"
)

// retentionCheckInterval как часто запускается чистка старых визитов.
const retentionCheckInterval = 24 * time.Hour

type App struct {
	config     config.Config
	dbServices *services.Services
	linkCache  *cache.Cache
	geo        *clientinfo.GeoResolver
	Logger     *logrus.Logger
}

func New(conf config.Config) (*App, error) {
	logger := conf.Logger

	conn, connErr := db.NewConnectionFactory(db.FactoryConfig{
		StorageType: whatIsDBStorageType(&conf),
		PostgresDSN: conf.DatabaseDSN,
		SQLitePath:  conf.SQLitePath,
	})
	if connErr != nil {
		return nil, fmt.Errorf("init database: %w", connErr)
	}

	linkCache := cache.New(conf.RedisAddr, conf.RedisPassword, conf.CacheTTL(), logger)
	geo := clientinfo.NewGeoResolver(conf.GeoIPDBPath, logger)

	dbServices := services.Factory(conn, linkCache, geo, services.QueueParams{
		Size:    conf.VisitQueueSize,
		Workers: conf.VisitWorkers,
	}, logger)

	return &App{
		config:     conf,
		dbServices: dbServices,
		linkCache:  linkCache,
		geo:        geo,
		Logger:     logger,
	}, nil
}

// Must вызывает панику если произошла ошибка.
func Must(a *App, err error) *App {
	if err != nil {
		panic(err)
	}
	return a
}

// Run запускает web сервер, воркеры очереди визитов и фоновую чистку.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.dbServices.VisitQueue.Start(ctx)
	go a.retentionLoop(ctx)

	errChan := make(chan error, 1)

	server := controllers.SetupRouter(controllers.RouterParams{
		LinkService:     a.dbServices.MappingService,
		RedirectService: a.dbServices.RedirectService,
		RuleService:     a.dbServices.RuleService,
		UserService:     a.dbServices.UserService,
		PingService:     a.dbServices.PingService,
		CacheStats:      a.linkCache,
		AppConf:         &a.config,
		Logger:          a.Logger,
	})

	go func() {
		if err := server.Run(a.config.ServerAddress); err != nil {
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("Shutdown command received")
	case serverErr = <-errChan:
		a.Logger.WithError(serverErr).Error("router error")
	}

	// дожидаемся воркеров, закрываем кэш и геобазу
	a.dbServices.VisitQueue.Wait()
	if closeErr := a.linkCache.Close(); closeErr != nil {
		a.Logger.WithError(closeErr).Error("closing cache error")
	}
	if geoErr := a.geo.Close(); geoErr != nil {
		a.Logger.WithError(geoErr).Error("closing geoip database error")
	}

	return serverErr
}

// retentionLoop раз в сутки удаляет визиты старше настроенного срока.
func (a *App) retentionLoop(ctx context.Context) {
	ticker := time.NewTicker(retentionCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-a.config.VisitRetention())
			deleted, err := a.dbServices.VisitRepo.DeleteOlderThan(ctx, cutoff)
			if err != nil {
				a.Logger.WithError(err).Error("visit retention cleanup error")
				continue
			}
			a.Logger.Infof("visit retention cleanup removed %d records", deleted)
		}
	}
}

func whatIsDBStorageType(appConf *config.Config) db.StorageType {
	if appConf.DatabaseDSN != "" {
		return db.StorageTypePostgres
	}
	return db.StorageTypeSQLite
}
