package controller

import (
	"exam_coach_backend/internal/model"
	"exam_coach_backend/internal/service"
	"exam_coach_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamPaperController struct {
	Service *service.ExamPaperService
}

func NewExamPaperController(s *service.ExamPaperService) *ExamPaperController {
	return &ExamPaperController{Service: s}
}

// @Summary 试卷列表
// @Tags 试卷
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /exam-papers [get]
func (c *ExamPaperController) ListPapers(ctx *gin.Context) {
	papers, err := c.Service.ListPapers(ctx.Request.Context())
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"papers": papers})
}

// @Summary 试卷题目
// @Description 不返回答案和解析
// @Tags 试卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "试卷ID"
// @Param sectionType query string false "题型"
// @Success 200 {object} util.Response
// @Router /exam-papers/{id}/questions [get]
func (c *ExamPaperController) ListQuestions(ctx *gin.Context) {
	questions, err := c.Service.ListQuestions(ctx.Request.Context(), ctx.Param("id"), model.SectionType(ctx.Query("sectionType")))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"questions": questions})
}
