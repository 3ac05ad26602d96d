package controller

import (
	"exam_coach_backend/internal/model"
	"exam_coach_backend/internal/service"
	"exam_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type KnowledgePointController struct {
	Service *service.KnowledgePointService
}

func NewKnowledgePointController(s *service.KnowledgePointService) *KnowledgePointController {
	return &KnowledgePointController{Service: s}
}

// @Summary 获取知识点列表
// @Tags 知识点
// @Produce json
// @Security ApiKeyAuth
// @Param category query string false "vocab/grammar/logic"
// @Success 200 {object} util.Response
// @Router /knowledge-points [get]
func (c *KnowledgePointController) ListKnowledgePoints(ctx *gin.Context) {
	points, err := c.Service.ListKnowledgePoints(ctx.Request.Context(), model.GapType(ctx.Query("category")))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"knowledgePoints": points})
}
