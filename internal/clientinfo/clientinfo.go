package clientinfo

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mileusna/useragent"
)

// fallbackIP используется когда адрес клиента определить не удалось.
const fallbackIP = "127.0.0.1"

// ClientInfo сырые атрибуты запроса, на основе которых движок
// маршрутизации принимает решение.
type ClientInfo struct {
	IPAddress string
	UserAgent string
	Referrer  string
}

// Extract извлекает данные клиента из заголовков запроса.
// Порядок определения IP: первый адрес в X-Forwarded-For, затем
// X-Real-IP, затем адрес сокета.
func Extract(header http.Header, remoteAddr string) ClientInfo {
	return ClientInfo{
		IPAddress: resolveIP(header, remoteAddr),
		UserAgent: header.Get("User-Agent"),
		Referrer:  header.Get("Referer"),
	}
}

func resolveIP(header http.Header, remoteAddr string) string {
	if forwarded := header.Get("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil && host != "" {
		return host
	}
	if remoteAddr != "" {
		return remoteAddr
	}
	return fallbackIP
}

// Device тип устройства посетителя.
type Device string

const (
	DeviceMobile  Device = "mobile"
	DeviceTablet  Device = "tablet"
	DeviceDesktop Device = "desktop"
)

// DeviceType классифицирует устройство по строке User-Agent.
// Всё что не распозналось считается десктопом.
func DeviceType(userAgent string) Device {
	ua := useragent.Parse(userAgent)
	switch {
	case ua.Mobile:
		return DeviceMobile
	case ua.Tablet:
		return DeviceTablet
	default:
		return DeviceDesktop
	}
}

// Classify возвращает тип устройства, семейство браузера и ОС.
// Ошибка разбора не фатальна: поля остаются пустыми, устройство - десктоп.
func Classify(userAgent string) (Device, string, string) {
	ua := useragent.Parse(userAgent)

	device := DeviceDesktop
	switch {
	case ua.Mobile:
		device = DeviceMobile
	case ua.Tablet:
		device = DeviceTablet
	}
	return device, ua.Name, ua.OS
}

// Метки временных интервалов для правил вида `time`.
const (
	TimeSlotBusiness = "09:00-18:00"
	TimeSlotEvening  = "18:00-22:00"
	TimeSlotNight    = "22:00-09:00"
)

// TimeSlot возвращает метку интервала по локальному часу.
// Границы полуоткрытые: [9,18) - рабочие часы, [18,22) - вечер, остальное - ночь.
func TimeSlot(now time.Time) string {
	hour := now.Hour()
	switch {
	case hour >= 9 && hour < 18:
		return TimeSlotBusiness
	case hour >= 18 && hour < 22:
		return TimeSlotEvening
	default:
		return TimeSlotNight
	}
}
