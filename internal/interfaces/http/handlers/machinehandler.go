package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mainta/internal/application/machine/usecases"
	"mainta/internal/interfaces/http/middleware"
	"mainta/internal/shared/logger"
	"mainta/internal/shared/utils"
)

type MachineHandler struct {
	createUC usecases.CreateMachineExecutor
	updateUC usecases.UpdateMachineExecutor
	deleteUC usecases.DeleteMachineExecutor
	getUC    usecases.GetMachineExecutor
	listUC   usecases.ListMachinesExecutor
	logger   logger.Interface
}

func NewMachineHandler(
	createUC usecases.CreateMachineExecutor,
	updateUC usecases.UpdateMachineExecutor,
	deleteUC usecases.DeleteMachineExecutor,
	getUC usecases.GetMachineExecutor,
	listUC usecases.ListMachinesExecutor,
	logger logger.Interface,
) *MachineHandler {
	return &MachineHandler{
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		getUC:    getUC,
		listUC:   listUC,
		logger:   logger,
	}
}

type CreateMachineRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Location string `json:"location" binding:"max=200"`
}

type UpdateMachineRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Status   *string `json:"status"`
}

func (h *MachineHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req CreateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateMachineCommand{
		Actor:    actor,
		Name:     req.Name,
		Location: req.Location,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

func (h *MachineHandler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req UpdateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateMachineCommand{
		Actor:     actor,
		MachineID: c.Param("id"),
		Name:      req.Name,
		Location:  req.Location,
		Status:    req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "machine updated", result)
}

func (h *MachineHandler) Delete(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteMachineCommand{
		Actor:     actor,
		MachineID: c.Param("id"),
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *MachineHandler) Get(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetMachineQuery{
		Actor:     actor,
		MachineID: c.Param("id"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *MachineHandler) List(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	pagination := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListMachinesQuery{
		Actor:    actor,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}
