// Package api provides the HTTP surface of the application
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"agroio.app/config"
	apperrors "agroio.app/errors"
	"agroio.app/models"
	"agroio.app/plan"
	"agroio.app/providers"
	"agroio.app/service"
)

// Server represents the HTTP server and API handler
type Server struct {
	router           *gin.Engine
	config           *config.Config
	userService      service.UserServiceInterface
	weatherService   service.WeatherServiceInterface
	taskService      *service.TaskService
	vegetableService *service.VegetableService
	cashFlowService  *service.CashFlowService
	harvestService   *service.HarvestService
	gardenService    *service.GardenDesignService
	gardenerService  *service.GardenerService
	marketService    *service.MarketService
	communityService *service.CommunityService
	faqService       *service.FaqService
	notificationRepo service.NotificationRepositoryInterface
	forecastMetrics  providers.ForecastMetrics
}

// ServerOptions groups the dependencies of the HTTP server
type ServerOptions struct {
	Config           *config.Config
	UserService      service.UserServiceInterface
	WeatherService   service.WeatherServiceInterface
	TaskService      *service.TaskService
	VegetableService *service.VegetableService
	CashFlowService  *service.CashFlowService
	HarvestService   *service.HarvestService
	GardenService    *service.GardenDesignService
	GardenerService  *service.GardenerService
	MarketService    *service.MarketService
	CommunityService *service.CommunityService
	FaqService       *service.FaqService
	NotificationRepo service.NotificationRepositoryInterface
	ForecastMetrics  providers.ForecastMetrics
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.Config == nil {
		return apperrors.NewValidationError("config is required")
	}
	if opts.UserService == nil {
		return apperrors.NewValidationError("user service is required")
	}
	if opts.WeatherService == nil {
		return apperrors.NewValidationError("weather service is required")
	}
	return nil
}

// NewServer creates and configures a new HTTP server
func NewServer(opts ServerOptions) (*Server, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	router := gin.Default()

	server := &Server{
		router:           router,
		config:           opts.Config,
		userService:      opts.UserService,
		weatherService:   opts.WeatherService,
		taskService:      opts.TaskService,
		vegetableService: opts.VegetableService,
		cashFlowService:  opts.CashFlowService,
		harvestService:   opts.HarvestService,
		gardenService:    opts.GardenService,
		gardenerService:  opts.GardenerService,
		marketService:    opts.MarketService,
		communityService: opts.CommunityService,
		faqService:       opts.FaqService,
		notificationRepo: opts.NotificationRepo,
		forecastMetrics:  opts.ForecastMetrics,
	}

	server.setupRoutes()
	return server, nil
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/metrics", s.getCacheMetrics)
		api.GET("/plans", s.getPlans)
		api.POST("/register", s.register)
		api.POST("/login", s.login)
	}

	authed := api.Group("")
	authed.Use(s.requireUser())
	{
		authed.POST("/logout", s.logout)
		authed.GET("/me", s.getProfile)
		authed.POST("/me/plan", s.changePlan)
		authed.PUT("/me/location", s.updateLocation)
		authed.GET("/notifications", s.getNotifications)
	}

	weather := authed.Group("", s.requireView(plan.ViewWeather))
	{
		weather.GET("/weather", s.getWeather)
		weather.GET("/suggestions", s.getSuggestions)
	}

	tasks := authed.Group("/tasks", s.requireView(plan.ViewChecklist))
	{
		tasks.GET("", s.listTasks)
		tasks.POST("", s.addTask)
		tasks.POST("/:id/toggle", s.toggleTask)
		tasks.DELETE("/:id", s.deleteTask)
	}

	vegetables := authed.Group("/vegetables", s.requireView(plan.ViewVegetables))
	{
		vegetables.GET("", s.listVegetables)
		vegetables.POST("", s.addVegetable)
		vegetables.GET("/:id", s.getVegetable)
	}

	harvests := authed.Group("/harvests", s.requireView(plan.ViewHarvests))
	{
		harvests.GET("", s.listHarvests)
		harvests.POST("", s.addHarvest)
		harvests.GET("/chart", s.getHarvestChart)
	}

	cashflow := authed.Group("", s.requireView(plan.ViewCashFlow))
	{
		cashflow.GET("/transactions", s.listTransactions)
		cashflow.POST("/transactions", s.addTransaction)
		cashflow.GET("/contacts", s.listContacts)
		cashflow.GET("/cashflow/summary", s.getCashFlowSummary)
		cashflow.GET("/cashflow/agenda", s.getAgenda)
		cashflow.GET("/cashflow/history", s.getProductHistory)
		cashflow.GET("/cashflow/chart", s.getPerformanceChart)
	}

	garden := authed.Group("/garden", s.requireView(plan.ViewDesignGarden))
	{
		garden.POST("", s.startGardenDraft)
		garden.GET("/:id", s.getGardenDraft)
		garden.POST("/:id/select", s.selectGardenStep)
		garden.POST("/:id/back", s.gardenBack)
		garden.POST("/:id/reset", s.gardenReset)
		garden.POST("/:id/generate", s.generateGardenPlan)
	}

	authed.POST("/gardener/diagnose", s.requireView(plan.ViewAgroGardener), s.diagnosePlant)

	market := authed.Group("/market", s.requireView(plan.ViewEcommerce))
	{
		market.GET("/items", s.listMarketItems)
		market.POST("/items", s.publishMarketItem)
	}

	community := authed.Group("/community", s.requireView(plan.ViewCommunity))
	{
		community.GET("/posts", s.listCommunityPosts)
		community.POST("/posts", s.publishCommunityPost)
		community.GET("/stores", s.getPartnerStores)
		community.GET("/users", s.getCommunityUsers)
	}

	authed.GET("/faq", s.requireView(plan.ViewFaq), s.getFaq)

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.ServeStaticFiles()
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) getCacheMetrics(c *gin.Context) {
	if s.forecastMetrics == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "cache metrics unavailable"})
		return
	}

	cacheMetrics := s.forecastMetrics.GetCacheMetrics()
	if cacheMetrics == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "cache metrics unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cache": cacheMetrics.GetStats(),
		"endpoints": gin.H{
			"prometheus_metrics": "/metrics",
			"cache_metrics":      "/api/metrics",
		},
	})
}

// handleError handles different types of application errors
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ValidationError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case apperrors.NotFoundError:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case apperrors.AlreadyExistsError:
			statusCode = http.StatusConflict
			message = appErr.Message
		case apperrors.TokenError:
			statusCode = http.StatusUnauthorized
			message = appErr.Message
		case apperrors.ForbiddenError:
			statusCode = http.StatusForbidden
			message = appErr.Message
		case apperrors.ExternalAPIError:
			statusCode = http.StatusServiceUnavailable
			message = "External service unavailable"
		case apperrors.AIError:
			statusCode = http.StatusBadGateway
			message = "Generative service unavailable"
		case apperrors.DatabaseError:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}
