package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/diebraga/daily-diet-api/internal/config"
	"github.com/diebraga/daily-diet-api/internal/http/handlers"
	"github.com/diebraga/daily-diet-api/internal/http/middleware"
	"github.com/diebraga/daily-diet-api/internal/services"
)

type Dependencies struct {
	Config      *config.Config
	AuthService *services.AuthService
	DishService *services.DishService
	Tokens      *services.TokenIssuer
	Logger      *slog.Logger
}

func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(deps.Config.AllowedOrigins))

	authHandler := handlers.NewAuthHandler(deps.AuthService)
	userHandler := handlers.NewUserHandler(deps.AuthService)
	meHandler := handlers.NewMeHandler(deps.AuthService)
	dishHandler := handlers.NewDishHandler(deps.DishService)

	router.GET("/healthz", handlers.Health)
	router.POST("/login", authHandler.Login)

	protected := router.Group("")
	protected.Use(middleware.RequireAuth(deps.Tokens, deps.Logger))
	{
		protected.POST("/sign_up", userHandler.SignUp)
		protected.GET("/me", meHandler.GetMe)
		protected.POST("/create_dish", dishHandler.Create)
		protected.GET("/get_dish/:id", dishHandler.GetByID)
		protected.GET("/get_all_dishes", dishHandler.List)
		protected.PUT("/update_dish/:id", dishHandler.Update)
		protected.DELETE("/delete_dish/:id", dishHandler.Delete)
	}

	return router
}
