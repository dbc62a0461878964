package services

import (
	"context"

	"github.com/fsdevblog/smartlink/internal/cache"
	"github.com/fsdevblog/smartlink/internal/clientinfo"
	"github.com/fsdevblog/smartlink/internal/repositories"
	"github.com/fsdevblog/smartlink/internal/visitq"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RedirectCache интерфейс кэша для горячего пути редиректа.
type RedirectCache interface {
	Get(ctx context.Context, shortCode string) (*cache.Snapshot, bool)
	Set(ctx context.Context, shortCode string, snap *cache.Snapshot)
	IncrementCounter(ctx context.Context, shortCode string) int64
}

// DestinationResolver выбирает целевую ссылку по контексту клиента.
type DestinationResolver interface {
	Resolve(ctx context.Context, mappingID uint, originalURL string, client clientinfo.ClientInfo) string
}

// VisitEnqueuer ставит задачу записи визита в очередь. Возвращает false
// если очередь переполнена.
type VisitEnqueuer interface {
	Enqueue(job visitq.Job) bool
}

// RedirectService оркестратор горячего пути: кэш, база, маршрутизация,
// постановка аналитики в очередь. Запись визита никогда не блокирует
// и не ломает редирект.
type RedirectService struct {
	mappings MappingRepository
	cache    RedirectCache
	router   DestinationResolver
	queue    VisitEnqueuer
	logger   *logrus.Entry
}

func NewRedirectService(
	mappings MappingRepository,
	linkCache RedirectCache,
	router DestinationResolver,
	queue VisitEnqueuer,
	logger *logrus.Logger,
) *RedirectService {
	return &RedirectService{
		mappings: mappings,
		cache:    linkCache,
		router:   router,
		queue:    queue,
		logger:   logger.WithField("module", "services/redirect"),
	}
}

// HandleRedirect разрешает короткий код в целевую ссылку.
//
// Порядок: кэш -> [промах] база -> запись снимка в кэш -> движок правил ->
// постановка визита в очередь -> инкремент счетчика кэша. Неизвестный код
// дает ErrRecordNotFound, остальные шаги после нахождения ссылки
// деградируют молча.
func (s *RedirectService) HandleRedirect(ctx context.Context, shortCode string, client clientinfo.ClientInfo) (string, error) {
	snap, hit := s.cache.Get(ctx, shortCode)
	if !hit {
		mapping, getErr := s.mappings.GetByShortCode(ctx, shortCode)
		if getErr != nil {
			if errors.Is(getErr, repositories.ErrNotFound) {
				return "", errors.Wrapf(ErrRecordNotFound, "short code %s", shortCode)
			}
			return "", ErrUnknown
		}
		snap = &cache.Snapshot{
			MappingID:   mapping.ID,
			ShortCode:   mapping.ShortCode,
			OriginalURL: mapping.OriginalURL,
			UserID:      mapping.UserID,
			ClickCount:  mapping.ClickCount,
		}
		s.cache.Set(ctx, shortCode, snap)
	}

	finalURL := s.router.Resolve(ctx, snap.MappingID, snap.OriginalURL, client)

	if !s.queue.Enqueue(visitq.Job{
		MappingID: snap.MappingID,
		Client:    client,
		FinalURL:  finalURL,
	}) {
		s.logger.Warnf("visit queue is full, dropping visit for %s", shortCode)
	}

	s.cache.IncrementCounter(ctx, shortCode)

	return finalURL, nil
}
