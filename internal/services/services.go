package services

import (
	"github.com/fsdevblog/smartlink/internal/cache"
	"github.com/fsdevblog/smartlink/internal/clientinfo"
	"github.com/fsdevblog/smartlink/internal/repositories/sql"
	"github.com/fsdevblog/smartlink/internal/visitq"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Services сервисный слой приложения в сборе.
type Services struct {
	MappingService  *MappingService
	RuleService     *RuleService
	UserService     *UserService
	RouterService   *RouterService
	RedirectService *RedirectService
	PingService     *PingService

	// VisitQueue очередь записи визитов, запускается приложением.
	VisitQueue *visitq.Queue
	// VisitRepo нужен приложению напрямую для фоновой чистки старых визитов.
	VisitRepo *sql.VisitRepo
}

// QueueParams настройки очереди визитов.
type QueueParams struct {
	Size    int
	Workers int
}

// Factory собирает сервисный слой поверх подключения к базе, кэша и
// геолокации. Очередь визитов создается здесь же, но стартует вызывающая
// сторона.
func Factory(
	conn *gorm.DB,
	linkCache *cache.Cache,
	geo *clientinfo.GeoResolver,
	queueParams QueueParams,
	logger *logrus.Logger,
) *Services {
	mappingRepo := sql.NewMappingRepo(conn, logger)
	ruleRepo := sql.NewRuleRepo(conn, logger)
	visitRepo := sql.NewVisitRepo(conn, logger)
	userRepo := sql.NewUserRepo(conn, logger)

	recorder := visitq.NewRecorder(visitRepo, geo, logger)
	queue := visitq.NewQueue(recorder, queueParams.Size, queueParams.Workers, logger)

	routerService := NewRouterService(ruleRepo, geo, logger)

	return &Services{
		MappingService:  NewMappingService(mappingRepo, linkCache, logger),
		RuleService:     NewRuleService(ruleRepo, mappingRepo, logger),
		UserService:     NewUserService(userRepo, logger),
		RouterService:   routerService,
		RedirectService: NewRedirectService(mappingRepo, linkCache, routerService, queue, logger),
		PingService:     NewPingService(conn),
		VisitQueue:      queue,
		VisitRepo:       visitRepo,
	}
}
