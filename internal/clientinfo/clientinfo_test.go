package clientinfo

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtract_ResolveIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:       "x-forwarded-for first address wins",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1", "X-Real-IP": "10.0.0.2"},
			remoteAddr: "10.0.0.3:1234",
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip fallback",
			headers:    map[string]string{"X-Real-IP": "203.0.113.8"},
			remoteAddr: "10.0.0.3:1234",
			want:       "203.0.113.8",
		},
		{
			name:       "socket address without port",
			remoteAddr: "203.0.113.9:51234",
			want:       "203.0.113.9",
		},
		{
			name:       "raw socket address",
			remoteAddr: "203.0.113.10",
			want:       "203.0.113.10",
		},
		{
			name: "nothing known",
			want: "127.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			for k, v := range tt.headers {
				header.Set(k, v)
			}
			info := Extract(header, tt.remoteAddr)
			assert.Equal(t, tt.want, info.IPAddress)
		})
	}
}

func TestExtract_HeadersPassthrough(t *testing.T) {
	header := http.Header{}
	header.Set("User-Agent", "curl/8.0")
	header.Set("Referer", "https://google.com")

	info := Extract(header, "1.2.3.4:80")
	assert.Equal(t, "curl/8.0", info.UserAgent)
	assert.Equal(t, "https://google.com", info.Referrer)
}

func TestDeviceType(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		want      Device
	}{
		{
			name:      "iphone",
			userAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			want:      DeviceMobile,
		},
		{
			name:      "ipad",
			userAgent: "Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Mobile/15E148 Safari/604.1",
			want:      DeviceTablet,
		},
		{
			name:      "desktop chrome",
			userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			want:      DeviceDesktop,
		},
		{
			name:      "unrecognized falls back to desktop",
			userAgent: "weird-bot/1.0",
			want:      DeviceDesktop,
		},
		{
			name:      "empty",
			userAgent: "",
			want:      DeviceDesktop,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeviceType(tt.userAgent))
		})
	}
}

func TestTimeSlot(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{hour: 8, want: TimeSlotNight},
		{hour: 9, want: TimeSlotBusiness},
		{hour: 17, want: TimeSlotBusiness},
		{hour: 18, want: TimeSlotEvening},
		{hour: 21, want: TimeSlotEvening},
		{hour: 22, want: TimeSlotNight},
		{hour: 2, want: TimeSlotNight},
	}

	for _, tt := range tests {
		now := time.Date(2025, 6, 1, tt.hour, 30, 0, 0, time.Local)
		assert.Equal(t, tt.want, TimeSlot(now), "hour %d", tt.hour)
	}
}
