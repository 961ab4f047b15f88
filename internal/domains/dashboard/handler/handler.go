package handler

import (
	"net/http"

	"portfolio-backend/internal/domains/dashboard/service"
	"portfolio-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service service.ServiceInterface
}

func NewDashboardHandler(service service.ServiceInterface) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats handles GET /admin/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}
