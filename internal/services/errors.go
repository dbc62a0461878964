package services

import "errors"

var (
	ErrUnknown        = errors.New("[service]: unknown error")
	ErrRecordNotFound = errors.New("[service]: record not found")
	ErrDuplicateKey   = errors.New("[service]: duplicate key")

	// ErrInvalidDestination целевая ссылка не проходит валидацию.
	ErrInvalidDestination = errors.New("[service]: invalid destination url")
	// ErrCodeExhausted все попытки генерации кода закончились коллизиями.
	ErrCodeExhausted = errors.New("[service]: short code generation exhausted")
	// ErrInvalidRule правило маршрутизации не проходит валидацию.
	ErrInvalidRule = errors.New("[service]: invalid routing rule")
	// ErrPermissionDenied объект принадлежит другому пользователю.
	ErrPermissionDenied = errors.New("[service]: permission denied")
	// ErrUnauthorized неверные учетные данные.
	ErrUnauthorized = errors.New("[service]: unauthorized")
)
