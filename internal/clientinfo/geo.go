package clientinfo

import (
	"net"

	"github.com/oschwald/geoip2-golang"
	"github.com/sirupsen/logrus"
)

// UnknownCountry возвращается когда страну определить не удалось.
const UnknownCountry = "XX"

// GeoResolver определяет страну посетителя по локальной базе GeoLite2.
// База опциональна: без нее резолвер всегда возвращает UnknownCountry.
type GeoResolver struct {
	reader *geoip2.Reader // nil если база не подключена
	logger *logrus.Entry
}

// NewGeoResolver открывает mmdb базу по указанному пути. Пустой путь или
// ошибка открытия не фатальны - геолокация просто отключается.
func NewGeoResolver(dbPath string, logger *logrus.Logger) *GeoResolver {
	entry := logger.WithField("module", "clientinfo/geo")
	resolver := &GeoResolver{logger: entry}

	if dbPath == "" {
		entry.Debug("geoip database path is empty, country lookups disabled")
		return resolver
	}

	reader, err := geoip2.Open(dbPath)
	if err != nil {
		entry.WithError(err).Warnf("failed to open geoip database %s, country lookups disabled", dbPath)
		return resolver
	}
	resolver.reader = reader
	return resolver
}

// Country возвращает ISO 3166-1 alpha-2 код страны по IP адресу.
// Любая ошибка поиска дает UnknownCountry, но никогда не ошибку.
func (g *GeoResolver) Country(ipAddress string) string {
	if g.reader == nil {
		return UnknownCountry
	}

	ip := net.ParseIP(ipAddress)
	if ip == nil {
		return UnknownCountry
	}

	record, err := g.reader.Country(ip)
	if err != nil {
		g.logger.WithError(err).Debugf("geoip lookup failed for %s", ipAddress)
		return UnknownCountry
	}
	if record.Country.IsoCode == "" {
		return UnknownCountry
	}
	return record.Country.IsoCode
}

// Close закрывает mmdb базу.
func (g *GeoResolver) Close() error {
	if g.reader == nil {
		return nil
	}
	return g.reader.Close()
}
