package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mainta/internal/application/analytics/usecases"
	"mainta/internal/interfaces/http/middleware"
	"mainta/internal/shared/logger"
	"mainta/internal/shared/utils"
)

type AnalyticsHandler struct {
	dashboardUC    usecases.DashboardExecutor
	byMachineUC    usecases.ByMachineExecutor
	byTechnicianUC usecases.ByTechnicianExecutor
	logger         logger.Interface
}

func NewAnalyticsHandler(
	dashboardUC usecases.DashboardExecutor,
	byMachineUC usecases.ByMachineExecutor,
	byTechnicianUC usecases.ByTechnicianExecutor,
	logger logger.Interface,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		dashboardUC:    dashboardUC,
		byMachineUC:    byMachineUC,
		byTechnicianUC: byTechnicianUC,
		logger:         logger,
	}
}

func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	result, err := h.dashboardUC.Execute(c.Request.Context(), usecases.DashboardQuery{Actor: actor})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *AnalyticsHandler) ByMachine(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	result, err := h.byMachineUC.Execute(c.Request.Context(), usecases.ByMachineQuery{Actor: actor})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *AnalyticsHandler) ByTechnician(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	result, err := h.byTechnicianUC.Execute(c.Request.Context(), usecases.ByTechnicianQuery{Actor: actor})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
