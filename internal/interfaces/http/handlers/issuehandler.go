package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mainta/internal/application/issue/usecases"
	"mainta/internal/interfaces/http/middleware"
	"mainta/internal/shared/logger"
	"mainta/internal/shared/utils"
)

type IssueHandler struct {
	createUC       usecases.CreateIssueExecutor
	listUC         usecases.ListIssuesExecutor
	getUC          usecases.GetIssueExecutor
	assignUC       usecases.AssignIssueExecutor
	changeStatusUC usecases.ChangeStatusExecutor
	closeUC        usecases.CloseIssueExecutor
	addNoteUC      usecases.AddNoteExecutor
	exportUC       usecases.ExportIssuesExecutor
	logger         logger.Interface
}

func NewIssueHandler(
	createUC usecases.CreateIssueExecutor,
	listUC usecases.ListIssuesExecutor,
	getUC usecases.GetIssueExecutor,
	assignUC usecases.AssignIssueExecutor,
	changeStatusUC usecases.ChangeStatusExecutor,
	closeUC usecases.CloseIssueExecutor,
	addNoteUC usecases.AddNoteExecutor,
	exportUC usecases.ExportIssuesExecutor,
	logger logger.Interface,
) *IssueHandler {
	return &IssueHandler{
		createUC:       createUC,
		listUC:         listUC,
		getUC:          getUC,
		assignUC:       assignUC,
		changeStatusUC: changeStatusUC,
		closeUC:        closeUC,
		addNoteUC:      addNoteUC,
		exportUC:       exportUC,
		logger:         logger,
	}
}

type CreateIssueRequest struct {
	MachineID   string `json:"machine_id" binding:"required"`
	Description string `json:"description" binding:"required,max=5000"`
	Urgency     string `json:"urgency" binding:"required,oneof=low medium high"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CloseIssueRequest struct {
	Resolution string `json:"resolution" binding:"required"`
}

type AddNoteRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

func (h *IssueHandler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateIssueCommand{
		Actor:       actor,
		MachineID:   req.MachineID,
		Description: req.Description,
		Urgency:     req.Urgency,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

func (h *IssueHandler) List(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	pagination := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListIssuesQuery{
		Actor:     actor,
		Status:    c.Query("status"),
		Urgency:   c.Query("urgency"),
		MachineID: c.Query("machine_id"),
		Day:       c.Query("day"),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

func (h *IssueHandler) Get(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetIssueQuery{
		Actor:   actor,
		IssueID: c.Param("id"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *IssueHandler) Assign(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	result, err := h.assignUC.Execute(c.Request.Context(), usecases.AssignIssueCommand{
		Actor:   actor,
		IssueID: c.Param("id"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "issue assigned", result)
}

func (h *IssueHandler) ChangeStatus(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.changeStatusUC.Execute(c.Request.Context(), usecases.ChangeStatusCommand{
		Actor:   actor,
		IssueID: c.Param("id"),
		Status:  req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "status changed", result)
}

func (h *IssueHandler) Close(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req CloseIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.closeUC.Execute(c.Request.Context(), usecases.CloseIssueCommand{
		Actor:      actor,
		IssueID:    c.Param("id"),
		Resolution: req.Resolution,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "issue closed", result)
}

func (h *IssueHandler) AddNote(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.addNoteUC.Execute(c.Request.Context(), usecases.AddNoteCommand{
		Actor:   actor,
		IssueID: c.Param("id"),
		Text:    req.Text,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

// Export streams the filtered issue list as an xlsx download.
func (h *IssueHandler) Export(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	// Buffered so a failing export still produces a clean JSON error
	// instead of a truncated download.
	var buf bytes.Buffer
	err := h.exportUC.Execute(c.Request.Context(), usecases.ExportIssuesQuery{
		Actor:     actor,
		Status:    c.Query("status"),
		Urgency:   c.Query("urgency"),
		MachineID: c.Query("machine_id"),
		Day:       c.Query("day"),
	}, &buf)
	if err != nil {
		h.logger.Errorw("failed to export issues", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	filename := fmt.Sprintf("issues_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
