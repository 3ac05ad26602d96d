package controller

import (
	"exam_coach_backend/internal/service"
	"exam_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamAttemptController struct {
	Service *service.ExamAttemptService
}

func NewExamAttemptController(s *service.ExamAttemptService) *ExamAttemptController {
	return &ExamAttemptController{Service: s}
}

// @Summary 提交答题并判分
// @Description 按题型范围判分并保存答题记录，sectionType 为空时按整套试卷
// @Tags 答题
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateAttemptRequest true "答题内容"
// @Success 200 {object} util.Response{data=service.CreateAttemptResult}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /exam-attempts/create [post]
func (c *ExamAttemptController) CreateAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "缺少必填字段: "+err.Error())
		return
	}

	result, err := c.Service.CreateAttempt(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 我的答题记录
// @Tags 答题
// @Produce json
// @Security ApiKeyAuth
// @Param paperId query string false "试卷ID"
// @Success 200 {object} util.Response
// @Router /exam-attempts [get]
func (c *ExamAttemptController) ListAttempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attempts, err := c.Service.ListAttempts(ctx.Request.Context(), user.UserID, ctx.Query("paperId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"attempts": attempts})
}

// @Summary 答题记录详情
// @Tags 答题
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "答题记录ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /exam-attempts/{id} [get]
func (c *ExamAttemptController) GetAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attempt, err := c.Service.GetAttempt(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"attempt": attempt})
}
