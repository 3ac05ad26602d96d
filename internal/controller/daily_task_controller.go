package controller

import (
	"encoding/json"
	"exam_coach_backend/internal/service"
	"exam_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DailyTaskController struct {
	Service *service.DailyTaskService
}

func NewDailyTaskController(s *service.DailyTaskService) *DailyTaskController {
	return &DailyTaskController{Service: s}
}

// @Summary 获取每日任务
// @Description 默认返回本周一到周日的任务
// @Tags 每日任务
// @Produce json
// @Security ApiKeyAuth
// @Param from query string false "开始日期 YYYY-MM-DD"
// @Param to query string false "结束日期 YYYY-MM-DD"
// @Success 200 {object} util.Response
// @Router /daily-tasks [get]
func (c *DailyTaskController) ListTasks(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	tasks, err := c.Service.ListTasks(ctx.Request.Context(), user.UserID, ctx.Query("from"), ctx.Query("to"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"tasks": tasks})
}

type completeTaskRequest struct {
	CompletionData json.RawMessage `json:"completionData"`
}

// @Summary 完成任务
// @Tags 每日任务
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "任务ID"
// @Success 200 {object} util.Response
// @Router /daily-tasks/{id}/complete [post]
func (c *DailyTaskController) CompleteTask(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req completeTaskRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, "请求参数错误: "+err.Error())
			return
		}
	}

	task, err := c.Service.CompleteTask(ctx.Request.Context(), user.UserID, ctx.Param("id"), req.CompletionData)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"task": task})
}
