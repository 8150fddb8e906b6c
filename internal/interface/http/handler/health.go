package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apphealth "github.com/xiebiao/bookstore-perflab/internal/application/health"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	check *apphealth.CheckUseCase
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(check *apphealth.CheckUseCase) *HealthHandler {
	return &HealthHandler{check: check}
}

// Health 健康检查
// @Summary      健康检查
// @Description  探测数据库连通性,同时返回当前变体和推荐缓存条目数
// @Tags         系统
// @Produce      json
// @Success      200 {object} apphealth.Report
// @Failure      503 {object} apphealth.Report "数据库不可用"
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	report := h.check.Execute(c.Request.Context())
	if !report.Healthy() {
		c.JSON(http.StatusServiceUnavailable, report)
		return
	}
	c.JSON(http.StatusOK, report)
}
