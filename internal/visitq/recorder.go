package visitq

import (
	"context"

	"github.com/fsdevblog/smartlink/internal/clientinfo"
	"github.com/fsdevblog/smartlink/internal/models"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// VisitRepository хранилище визитов. Record обязан выполнить вставку
// визита и инкремент счетчика переходов атомарно.
type VisitRepository interface {
	Record(ctx context.Context, visit *models.Visit) error
}

// CountryResolver определяет страну по IP адресу.
type CountryResolver interface {
	Country(ipAddress string) string
}

// Recorder превращает задачу очереди в неизменяемую запись визита.
// Вся деривация (страна, устройство, браузер, ОС) best-effort: ошибка
// разбора дает пустое значение, но не роняет задачу.
type Recorder struct {
	visits VisitRepository
	geo    CountryResolver
	logger *logrus.Entry
}

func NewRecorder(visits VisitRepository, geo CountryResolver, logger *logrus.Logger) *Recorder {
	return &Recorder{
		visits: visits,
		geo:    geo,
		logger: logger.WithField("module", "visitq/recorder"),
	}
}

// Process сохраняет визит и двигает durable счетчик переходов.
// Ошибка возвращается наружу - очередь сама решает про повтор.
func (r *Recorder) Process(ctx context.Context, job Job) error {
	device, browser, osName := clientinfo.Classify(job.Client.UserAgent)

	visit := models.Visit{
		MappingID:   job.MappingID,
		IPAddress:   job.Client.IPAddress,
		UserAgent:   job.Client.UserAgent,
		Referrer:    job.Client.Referrer,
		CountryCode: r.geo.Country(job.Client.IPAddress),
		DeviceType:  string(device),
		Browser:     browser,
		OSName:      osName,
		FinalURL:    job.FinalURL,
	}

	if err := r.visits.Record(ctx, &visit); err != nil {
		return errors.Wrapf(err, "recording visit for mapping %d", job.MappingID)
	}

	r.logger.Debugf("visit recorded for mapping %d", job.MappingID)
	return nil
}
