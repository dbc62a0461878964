package controllers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/fsdevblog/smartlink/internal/clientinfo"
	"github.com/fsdevblog/smartlink/internal/controllers/middlewares"
	"github.com/fsdevblog/smartlink/internal/models"

	"github.com/gin-gonic/gin"
)

// LinksController обработчики создания, чтения и удаления коротких ссылок
// плюс сам редирект.
type LinksController struct {
	links      LinkManager
	redirector Redirector
	baseURL    *url.URL
}

func NewLinksController(links LinkManager, redirector Redirector, baseURL *url.URL) *LinksController {
	return &LinksController{
		links:      links,
		redirector: redirector,
		baseURL:    baseURL,
	}
}

type shortenRequest struct {
	OriginalURL string `json:"original_url" binding:"required"`
}

type shortenResponse struct {
	ID          uint      `json:"id"`
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"original_url"`
	ShortURL    string    `json:"short_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// Shorten обрабатывает POST /api/shorten.
// Принимает {"original_url": "..."}, отвечает 201 с созданной ссылкой
// или 400 с описанием ошибки валидации.
func (l *LinksController) Shorten(ctx *gin.Context) {
	var req shortenRequest
	if bindErr := ctx.ShouldBindJSON(&req); bindErr != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "original_url is required"})
		return
	}

	var ownerID *uint
	if userID, ok := middlewares.UserID(ctx); ok {
		ownerID = &userID
	}

	mapping, shortURL, createErr := l.links.Create(ctx, req.OriginalURL, l.effectiveBaseURL(ctx.Request), ownerID)
	if createErr != nil {
		renderServiceError(ctx, createErr)
		return
	}

	ctx.JSON(http.StatusCreated, shortenResponse{
		ID:          mapping.ID,
		ShortCode:   mapping.ShortCode,
		OriginalURL: mapping.OriginalURL,
		ShortURL:    shortURL,
		CreatedAt:   mapping.CreatedAt,
	})
}

// Info обрабатывает GET /api/info/:shortCode.
// click_count здесь durable значение из базы: счетчик кэша двигается сразу
// на редиректе, база догоняет его после отработки рекордера визитов.
func (l *LinksController) Info(ctx *gin.Context) {
	mapping, err := l.links.GetByShortCode(ctx, ctx.Param("shortCode"))
	if err != nil {
		renderServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"short_code":   mapping.ShortCode,
			"original_url": mapping.OriginalURL,
			"click_count":  mapping.ClickCount,
			"created_at":   mapping.CreatedAt,
		},
	})
}

// Redirect обрабатывает GET /:shortCode - горячий путь.
// Отвечает 302 с заголовком Location либо 404.
func (l *LinksController) Redirect(ctx *gin.Context) {
	shortCode := ctx.Param("shortCode")
	if len(shortCode) == 0 || len(shortCode) > models.MaxShortCodeLength {
		ctx.JSON(http.StatusNotFound, gin.H{"error": ErrRecordNotFound.Error()})
		return
	}

	client := clientinfo.Extract(ctx.Request.Header, ctx.Request.RemoteAddr)

	finalURL, err := l.redirector.HandleRedirect(ctx, shortCode, client)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, finalURL)
}

// MyLinks обрабатывает GET /api/my-links (только с аутентификацией).
func (l *LinksController) MyLinks(ctx *gin.Context) {
	userID, _ := middlewares.UserID(ctx)

	mappings, err := l.links.GetAllByUser(ctx, userID)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}

	items := make([]shortenResponse, 0, len(mappings))
	base := l.effectiveBaseURL(ctx.Request)
	for _, m := range mappings {
		items = append(items, shortenResponse{
			ID:          m.ID,
			ShortCode:   m.ShortCode,
			OriginalURL: m.OriginalURL,
			ShortURL:    shortURLFor(base, m.ShortCode),
			CreatedAt:   m.CreatedAt,
		})
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}

// DeleteLink обрабатывает DELETE /api/links/:shortCode (только владелец).
func (l *LinksController) DeleteLink(ctx *gin.Context) {
	userID, _ := middlewares.UserID(ctx)

	if err := l.links.Delete(ctx, ctx.Param("shortCode"), userID); err != nil {
		renderServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// effectiveBaseURL возвращает базовый адрес коротких ссылок. Если он не
// задан в конфигурации - берется Scheme://Host текущего запроса.
func (l *LinksController) effectiveBaseURL(r *http.Request) *url.URL {
	if l.baseURL != nil {
		return l.baseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return &url.URL{Scheme: scheme, Host: r.Host}
}

func shortURLFor(base *url.URL, shortCode string) string {
	u := *base
	u.Path = "/" + shortCode
	return u.String()
}
