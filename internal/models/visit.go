package models

import "time"

// Visit неизменяемая запись одного перехода по короткой ссылке.
// Создается только рекордером визитов, никогда не обновляется.
type Visit struct {
	ID          uint      `gorm:"primaryKey"      json:"id"`
	MappingID   uint      `gorm:"index;not null"  json:"mappingID"`
	IPAddress   string    `gorm:"size:45"         json:"ipAddress"`
	UserAgent   string    `gorm:"size:512"        json:"userAgent"`
	Referrer    string    `gorm:"size:2000"       json:"referrer"`
	CountryCode string    `gorm:"size:2"          json:"countryCode"`
	DeviceType  string    `gorm:"size:16"         json:"deviceType"`
	Browser     string    `gorm:"size:64"         json:"browser"`
	OSName      string    `gorm:"size:64"         json:"osName"`
	FinalURL    string    `gorm:"size:2000"       json:"finalURL"`
	CreatedAt   time.Time `gorm:"index"           json:"createdAt"`
}
