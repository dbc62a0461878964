package controllers

import (
	"net/http"
	"strconv"

	"github.com/fsdevblog/smartlink/internal/controllers/middlewares"
	"github.com/fsdevblog/smartlink/internal/models"
	"github.com/fsdevblog/smartlink/internal/services"

	"github.com/gin-gonic/gin"
)

// RulesController CRUD правил маршрутизации. Все операции требуют
// аутентификации и проверяются на владение ссылкой.
type RulesController struct {
	rules RuleManager
}

func NewRulesController(rules RuleManager) *RulesController {
	return &RulesController{rules: rules}
}

type createRuleRequest struct {
	URLID          uint    `json:"url_id"          binding:"required"`
	RuleType       string  `json:"rule_type"       binding:"required"`
	ConditionValue string  `json:"condition_value"`
	TargetURL      string  `json:"target_url"      binding:"required"`
	Weight         float64 `json:"weight"`
	Priority       int     `json:"priority"`
	IsActive       *bool   `json:"is_active"`
}

// Create обрабатывает POST /api/rules.
func (r *RulesController) Create(ctx *gin.Context) {
	var req createRuleRequest
	if bindErr := ctx.ShouldBindJSON(&req); bindErr != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "url_id, rule_type and target_url are required"})
		return
	}

	userID, _ := middlewares.UserID(ctx)

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	rule, err := r.rules.Create(ctx, userID, services.CreateRuleParams{
		MappingID:      req.URLID,
		Kind:           models.RuleKind(req.RuleType),
		ConditionValue: req.ConditionValue,
		TargetURL:      req.TargetURL,
		Weight:         req.Weight,
		Priority:       req.Priority,
		IsActive:       isActive,
	})
	if err != nil {
		renderServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "data": rule})
}

// List обрабатывает GET /api/rules/:urlID.
func (r *RulesController) List(ctx *gin.Context) {
	urlID, parseErr := parseUintParam(ctx, "urlID")
	if parseErr != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid url id"})
		return
	}

	userID, _ := middlewares.UserID(ctx)

	rules, err := r.rules.List(ctx, userID, urlID)
	if err != nil {
		renderServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": rules})
}

// Delete обрабатывает DELETE /api/rules/:ruleID.
func (r *RulesController) Delete(ctx *gin.Context) {
	ruleID, parseErr := parseUintParam(ctx, "ruleID")
	if parseErr != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule id"})
		return
	}

	userID, _ := middlewares.UserID(ctx)

	if err := r.rules.Delete(ctx, userID, ruleID); err != nil {
		renderServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func parseUintParam(ctx *gin.Context, name string) (uint, error) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(val), nil
}
