package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	analyticsUsecases "mainta/internal/application/analytics/usecases"
	issueUsecases "mainta/internal/application/issue/usecases"
	machineUsecases "mainta/internal/application/machine/usecases"
	userUsecases "mainta/internal/application/user/usecases"
	"mainta/internal/domain/shared/events"
	"mainta/internal/infrastructure/auth"
	"mainta/internal/infrastructure/config"
	"mainta/internal/infrastructure/notification"
	"mainta/internal/infrastructure/repository"
	"mainta/internal/interfaces/http/handlers"
	"mainta/internal/interfaces/http/middleware"
	"mainta/internal/shared/authorization"
	"mainta/internal/shared/logger"
)

// Router wires repositories, use cases and handlers onto a gin engine.
type Router struct {
	engine           *gin.Engine
	authHandler      *handlers.AuthHandler
	issueHandler     *handlers.IssueHandler
	machineHandler   *handlers.MachineHandler
	userHandler      *handlers.UserHandler
	analyticsHandler *handlers.AnalyticsHandler
	wsHandler        *handlers.WSHandler
	authMiddleware   *middleware.AuthMiddleware
	cfg              *config.Config
	log              logger.Interface
}

// jwtServiceAdapter bridges the infrastructure token service to the
// interface the user use cases consume.
type jwtServiceAdapter struct {
	*auth.JWTService
}

func (a *jwtServiceAdapter) Generate(userID string, role authorization.Role, service authorization.Service) (*userUsecases.TokenPair, error) {
	pair, err := a.JWTService.Generate(userID, role, service)
	if err != nil {
		return nil, err
	}
	return &userUsecases.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

func (a *jwtServiceAdapter) Refresh(refreshToken string) (*userUsecases.TokenPair, error) {
	pair, err := a.JWTService.Refresh(refreshToken)
	if err != nil {
		return nil, err
	}
	return &userUsecases.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

// NewRouter creates the HTTP router with all dependencies wired.
func NewRouter(db *gorm.DB, cfg *config.Config, dispatcher *events.Dispatcher, hub *notification.Hub, log logger.Interface) *Router {
	gin.SetMode(ginMode(cfg.Server.Mode))
	engine := gin.New()

	queryTimeout := time.Duration(cfg.Database.QueryTimeoutSeconds) * time.Second

	issueRepo := repository.NewIssueRepository(db, queryTimeout)
	machineRepo := repository.NewMachineRepository(db, queryTimeout)
	userRepo := repository.NewUserRepository(db, queryTimeout)

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)
	jwtService := &jwtServiceAdapter{jwtSvc}

	loginUC := userUsecases.NewLoginUseCase(userRepo, hasher, jwtService, log)
	refreshUC := userUsecases.NewRefreshTokenUseCase(jwtService, log)
	registerUC := userUsecases.NewRegisterUserUseCase(userRepo, hasher, log)
	getUserUC := userUsecases.NewGetUserUseCase(userRepo, log)
	updateUserUC := userUsecases.NewUpdateUserUseCase(userRepo, hasher, log)
	deactivateUC := userUsecases.NewDeactivateUserUseCase(userRepo, log)
	listUsersUC := userUsecases.NewListUsersUseCase(userRepo, log)

	createIssueUC := issueUsecases.NewCreateIssueUseCase(issueRepo, machineRepo, userRepo, dispatcher, log)
	listIssuesUC := issueUsecases.NewListIssuesUseCase(issueRepo, machineRepo, userRepo, log)
	getIssueUC := issueUsecases.NewGetIssueUseCase(issueRepo, machineRepo, userRepo, log)
	assignIssueUC := issueUsecases.NewAssignIssueUseCase(issueRepo, machineRepo, userRepo, dispatcher, log)
	changeStatusUC := issueUsecases.NewChangeStatusUseCase(issueRepo, machineRepo, userRepo, dispatcher, log)
	closeIssueUC := issueUsecases.NewCloseIssueUseCase(issueRepo, machineRepo, userRepo, dispatcher, log)
	addNoteUC := issueUsecases.NewAddNoteUseCase(issueRepo, machineRepo, userRepo, dispatcher, log)
	exportIssuesUC := issueUsecases.NewExportIssuesUseCase(issueRepo, machineRepo, userRepo, log)

	createMachineUC := machineUsecases.NewCreateMachineUseCase(machineRepo, log)
	updateMachineUC := machineUsecases.NewUpdateMachineUseCase(machineRepo, log)
	deleteMachineUC := machineUsecases.NewDeleteMachineUseCase(machineRepo, issueRepo, log)
	getMachineUC := machineUsecases.NewGetMachineUseCase(machineRepo, log)
	listMachinesUC := machineUsecases.NewListMachinesUseCase(machineRepo, log)

	dashboardUC := analyticsUsecases.NewDashboardUseCase(issueRepo, log)
	byMachineUC := analyticsUsecases.NewByMachineUseCase(issueRepo, machineRepo, log)
	byTechnicianUC := analyticsUsecases.NewByTechnicianUseCase(issueRepo, userRepo, log)

	return &Router{
		engine:      engine,
		authHandler: handlers.NewAuthHandler(loginUC, refreshUC, userRepo, log),
		issueHandler: handlers.NewIssueHandler(
			createIssueUC, listIssuesUC, getIssueUC, assignIssueUC,
			changeStatusUC, closeIssueUC, addNoteUC, exportIssuesUC, log,
		),
		machineHandler: handlers.NewMachineHandler(
			createMachineUC, updateMachineUC, deleteMachineUC, getMachineUC, listMachinesUC, log,
		),
		userHandler: handlers.NewUserHandler(
			registerUC, getUserUC, updateUserUC, deactivateUC, listUsersUC, log,
		),
		analyticsHandler: handlers.NewAnalyticsHandler(dashboardUC, byMachineUC, byTechnicianUC, log),
		wsHandler:        handlers.NewWSHandler(hub, log),
		authMiddleware:   middleware.NewAuthMiddleware(jwtSvc, userRepo, log),
		cfg:              cfg,
		log:              log,
	}
}

func ginMode(mode string) string {
	switch mode {
	case "release", "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

// SetupRoutes registers middleware and all API routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/register", r.authMiddleware.RequireAuth(), r.userHandler.Register)
		authGroup.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
	}

	issues := api.Group("/issues")
	issues.Use(r.authMiddleware.RequireAuth())
	{
		issues.POST("", r.issueHandler.Create)
		issues.GET("", r.issueHandler.List)
		issues.GET("/export", r.issueHandler.Export)
		issues.GET("/:id", r.issueHandler.Get)
		issues.POST("/:id/assign", r.issueHandler.Assign)
		issues.PATCH("/:id/status", r.issueHandler.ChangeStatus)
		issues.POST("/:id/close", r.issueHandler.Close)
		issues.POST("/:id/notes", r.issueHandler.AddNote)
	}

	machines := api.Group("/machines")
	machines.Use(r.authMiddleware.RequireAuth())
	{
		machines.POST("", r.machineHandler.Create)
		machines.GET("", r.machineHandler.List)
		machines.GET("/:id", r.machineHandler.Get)
		machines.PUT("/:id", r.machineHandler.Update)
		machines.DELETE("/:id", r.machineHandler.Delete)
	}

	users := api.Group("/users")
	users.Use(r.authMiddleware.RequireAuth())
	{
		users.POST("", r.userHandler.Register)
		users.GET("", r.userHandler.List)
		users.GET("/me", r.authHandler.Me)
		users.GET("/:id", r.userHandler.Get)
		users.PUT("/:id", r.userHandler.Update)
		users.DELETE("/:id", r.userHandler.Deactivate)
	}

	analytics := api.Group("/analytics")
	analytics.Use(r.authMiddleware.RequireAuth())
	{
		analytics.GET("/dashboard", r.analyticsHandler.Dashboard)
		analytics.GET("/by-machine", r.analyticsHandler.ByMachine)
		analytics.GET("/by-technician", r.analyticsHandler.ByTechnician)
	}

	api.GET("/ws", r.authMiddleware.RequireAuth(), r.wsHandler.Subscribe)
}

// GetEngine returns the gin engine, mainly for the HTTP server and tests.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
