package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mainta/internal/application/user/usecases"
	"mainta/internal/interfaces/http/middleware"
	"mainta/internal/shared/logger"
	"mainta/internal/shared/utils"
)

type UserHandler struct {
	registerUC   usecases.RegisterUserExecutor
	getUC        usecases.GetUserExecutor
	updateUC     usecases.UpdateUserExecutor
	deactivateUC usecases.DeactivateUserExecutor
	listUC       usecases.ListUsersExecutor
	logger       logger.Interface
}

func NewUserHandler(
	registerUC usecases.RegisterUserExecutor,
	getUC usecases.GetUserExecutor,
	updateUC usecases.UpdateUserExecutor,
	deactivateUC usecases.DeactivateUserExecutor,
	listUC usecases.ListUsersExecutor,
	logger logger.Interface,
) *UserHandler {
	return &UserHandler{
		registerUC:   registerUC,
		getUC:        getUC,
		updateUC:     updateUC,
		deactivateUC: deactivateUC,
		listUC:       listUC,
		logger:       logger,
	}
}

type RegisterUserRequest struct {
	UserID    string `json:"user_id" binding:"required,max=50"`
	Name      string `json:"name" binding:"required,max=100"`
	Matricule string `json:"matricule" binding:"max=50"`
	Email     string `json:"email" binding:"omitempty,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"required,oneof=user technician manager"`
	Service   string `json:"service" binding:"required,oneof=production maintenance"`
}

type UpdateUserRequest struct {
	Name      *string `json:"name"`
	Matricule *string `json:"matricule"`
	Email     *string `json:"email" binding:"omitempty"`
	Role      *string `json:"role"`
	Service   *string `json:"service"`
	Password  *string `json:"password"`
}

func (h *UserHandler) Register(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), usecases.RegisterUserCommand{
		Actor:     actor,
		UserID:    req.UserID,
		Name:      req.Name,
		Matricule: req.Matricule,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		Service:   req.Service,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

func (h *UserHandler) Get(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetUserQuery{
		Actor:  actor,
		UserID: c.Param("id"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *UserHandler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateUserCommand{
		Actor:     actor,
		UserID:    c.Param("id"),
		Name:      req.Name,
		Matricule: req.Matricule,
		Email:     req.Email,
		Role:      req.Role,
		Service:   req.Service,
		Password:  req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "user updated", result)
}

func (h *UserHandler) Deactivate(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := h.deactivateUC.Execute(c.Request.Context(), usecases.DeactivateUserCommand{
		Actor:  actor,
		UserID: c.Param("id"),
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *UserHandler) List(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	pagination := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListUsersQuery{
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
