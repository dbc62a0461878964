package models

import "time"

// ShortCodeLength длина генерируемого короткого кода.
const ShortCodeLength = 6

// MaxShortCodeLength максимальная длина короткого кода в хранилище.
const MaxShortCodeLength = 20

// MaxOriginalURLLength максимальная длина целевой ссылки.
const MaxOriginalURLLength = 2000

// Mapping структура модели хранения короткой ссылки.
// Короткий код после создания не меняется.
type Mapping struct {
	ID          uint      `gorm:"primaryKey"            json:"id"`
	ShortCode   string    `gorm:"size:20;uniqueIndex;not null" json:"shortCode"`
	OriginalURL string    `gorm:"size:2000;not null"    json:"originalURL"`
	UserID      *uint     `gorm:"index"                 json:"userID,omitempty"`
	ClickCount  int64     `gorm:"not null;default:0"    json:"clickCount"`
	CreatedAt   time.Time `json:"createdAt"`
}
