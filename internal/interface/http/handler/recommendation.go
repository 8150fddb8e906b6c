package handler

import (
	"github.com/gin-gonic/gin"

	apprec "github.com/xiebiao/bookstore-perflab/internal/application/recommendation"
	"github.com/xiebiao/bookstore-perflab/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-perflab/pkg/response"
)

// RecommendationHandler 推荐HTTP处理器
type RecommendationHandler struct {
	recommend *apprec.RecommendUseCase
}

// NewRecommendationHandler 创建推荐处理器
func NewRecommendationHandler(recommend *apprec.RecommendUseCase) *RecommendationHandler {
	return &RecommendationHandler{recommend: recommend}
}

// Recommend 个性化推荐
// @Summary      图书推荐
// @Description  缓存未命中时对全部图书打分排序。user_id缺失或无法解析时按1处理,不校验用户是否存在
// @Tags         推荐
// @Produce      json
// @Param        user_id query int false "用户ID,默认1"
// @Success      200 {object} apprec.Response
// @Failure      500 {object} response.ErrorBody
// @Router       /api/recommendations [get]
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	userID := dto.QueryInt64(c, "user_id", apprec.DefaultUserID)

	result, err := h.recommend.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
