package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mainta/internal/application/user/dto"
	"mainta/internal/application/user/usecases"
	"mainta/internal/domain/user"
	"mainta/internal/interfaces/http/middleware"
	"mainta/internal/shared/logger"
	"mainta/internal/shared/utils"
)

type AuthHandler struct {
	loginUC   usecases.LoginExecutor
	refreshUC usecases.RefreshTokenExecutor
	userRepo  user.Repository
	logger    logger.Interface
}

func NewAuthHandler(
	loginUC usecases.LoginExecutor,
	refreshUC usecases.RefreshTokenExecutor,
	userRepo user.Repository,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		loginUC:   loginUC,
		refreshUC: refreshUC,
		userRepo:  userRepo,
		logger:    logger,
	}
}

type LoginRequest struct {
	// Login accepts either the user ID or the matricule.
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "login successful", gin.H{
		"user":          result.User,
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"expires_in":    result.ExpiresIn,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	pair, err := h.refreshUC.Execute(c.Request.Context(), usecases.RefreshTokenCommand{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "token refreshed", gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_in":    pair.ExpiresIn,
	})
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	u, err := h.userRepo.GetByUserID(c.Request.Context(), actor.UserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.FromUser(u))
}
