package clientinfo

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestGeoResolver_Disabled(t *testing.T) {
	resolver := NewGeoResolver("", testLogger())
	defer resolver.Close()

	assert.Equal(t, UnknownCountry, resolver.Country("8.8.8.8"))
	assert.Equal(t, UnknownCountry, resolver.Country("not-an-ip"))
	assert.Equal(t, UnknownCountry, resolver.Country(""))
}

func TestGeoResolver_MissingDatabase(t *testing.T) {
	// несуществующая база отключает геолокацию, но не ломает старт
	resolver := NewGeoResolver("/nonexistent/GeoLite2-Country.mmdb", testLogger())
	defer resolver.Close()

	assert.Equal(t, UnknownCountry, resolver.Country("8.8.8.8"))
	assert.NoError(t, resolver.Close())
}
