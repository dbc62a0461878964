package controllers

import (
	"net/http"

	"github.com/fsdevblog/smartlink/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Ошибки.
var (
	ErrRecordNotFound = errors.New("record not found") // Запись не найдена
	ErrInternal       = errors.New("internal error")   // Прочая ошибка
)

// renderServiceError переводит ошибку сервисного слоя в HTTP ответ вида
// {"error": "..."}. Непредвиденные ошибки наружу не раскрываются.
func renderServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidDestination),
		errors.Is(err, services.ErrCodeExhausted),
		errors.Is(err, services.ErrInvalidRule):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.Cause(err).Error()})
	case errors.Is(err, services.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": ErrRecordNotFound.Error()})
	case errors.Is(err, services.ErrPermissionDenied):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
	case errors.Is(err, services.ErrUnauthorized):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, services.ErrDuplicateKey):
		ctx.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	default:
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": ErrInternal.Error()})
	}
}
