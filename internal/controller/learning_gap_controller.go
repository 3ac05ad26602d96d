package controller

import (
	"exam_coach_backend/internal/model"
	"exam_coach_backend/internal/service"
	"exam_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningGapController struct {
	Service       *service.LearningGapService
	OptionService *service.ErrorOptionService
}

func NewLearningGapController(s *service.LearningGapService, optionService *service.ErrorOptionService) *LearningGapController {
	return &LearningGapController{Service: s, OptionService: optionService}
}

// @Summary 记录错因
// @Description 为答错的题目记录错因，attemptId 必须是当前用户的答题记录
// @Tags 错因
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.RecordGapRequest true "错因"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /learning-gaps/create [post]
func (c *LearningGapController) CreateGap(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.RecordGapRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "缺少必填字段: "+err.Error())
		return
	}

	gap, err := c.Service.RecordGap(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"gap": gap})
}

// @Summary 我的错因列表
// @Tags 错因
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "active 或 resolved"
// @Success 200 {object} util.Response
// @Router /learning-gaps [get]
func (c *LearningGapController) ListGaps(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	gaps, err := c.Service.ListGaps(ctx.Request.Context(), user.UserID, model.GapStatus(ctx.Query("status")))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"gaps": gaps})
}

// @Summary 标记错因已掌握
// @Tags 错因
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "错因ID"
// @Success 200 {object} util.Response
// @Router /learning-gaps/{id}/resolve [patch]
func (c *LearningGapController) ResolveGap(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	gap, err := c.Service.ResolveGap(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"gap": gap})
}

type suggestOptionsRequest struct {
	QuestionID string        `json:"questionId" binding:"required"`
	GapType    model.GapType `json:"gapType" binding:"required"`
}

// @Summary 获取候选错因
// @Tags 错因
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.OptionSuggestion}
// @Router /learning-gaps/suggest-options [post]
func (c *LearningGapController) SuggestOptions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req suggestOptionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "缺少必填字段: "+err.Error())
		return
	}

	result, err := c.OptionService.SuggestErrorOptions(ctx.Request.Context(), user.UserID, req.QuestionID, req.GapType)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
