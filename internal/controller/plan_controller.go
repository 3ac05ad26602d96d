package controller

import (
	"exam_coach_backend/internal/service"
	"exam_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PlanController struct {
	Service *service.PlanService
}

func NewPlanController(s *service.PlanService) *PlanController {
	return &PlanController{Service: s}
}

// @Summary 生成本周巩固计划
// @Description 根据未解决的错因生成周一至周五的任务，重复调用会重复生成
// @Tags 学习计划
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.PlanResult}
// @Failure 401 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /generate-plan [post]
func (c *PlanController) GeneratePlan(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.Service.GenerateWeeklyPlan(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
