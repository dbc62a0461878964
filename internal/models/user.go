package models

import "time"

// User владелец коротких ссылок. Пароль хранится только в виде bcrypt хеша.
type User struct {
	ID           uint      `gorm:"primaryKey"             json:"id"`
	UUID         string    `gorm:"size:36;uniqueIndex"    json:"uuid"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null"      json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
