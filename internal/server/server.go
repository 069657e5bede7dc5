package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"reviewhub/internal/cache"
	"reviewhub/internal/config"
	"reviewhub/internal/handler"
	"reviewhub/internal/mailer"
	"reviewhub/internal/middleware"
	"reviewhub/internal/repository"
	"reviewhub/internal/service"
	"reviewhub/internal/web"
)

type Server struct {
	cfg    *config.Config
	engine *gin.Engine
}

// New wires repositories, services and handlers onto a gin engine. The
// redis client may be nil; rating lookups then always hit the database.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, logger *slog.Logger) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	ratingCache := cache.NewRatingCache(redisClient)
	mail := mailer.NewLogMailer(logger)

	authService := service.NewAuthService(userRepo, mail, cfg.JWTSecret, cfg.AccessTokenTTL)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	genreService := service.NewGenreService(genreRepo)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo, ratingCache)
	reviewService := service.NewReviewService(reviewRepo, titleRepo, ratingCache)
	commentService := service.NewCommentService(commentRepo, reviewRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	genreHandler := handler.NewGenreHandler(genreService)
	titleHandler := handler.NewTitleHandler(titleService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	commentHandler := handler.NewCommentHandler(commentService)

	pageHandler := web.NewPageHandler(titleService, reviewService, commentService, userService, categoryService, genreService)
	actionHandler := web.NewActionHandler(reviewService, commentService)
	authPageHandler := web.NewAuthPageHandler(authService, int(cfg.AccessTokenTTL.Seconds()))

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.Authenticate(authService))

	registerAPIRoutes(engine, cfg, authHandler, userHandler, categoryHandler, genreHandler, titleHandler, reviewHandler, commentHandler)
	registerWebRoutes(engine, pageHandler, actionHandler, authPageHandler)

	return &Server{cfg: cfg, engine: engine}
}

func registerAPIRoutes(
	engine *gin.Engine,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	categoryHandler *handler.CategoryHandler,
	genreHandler *handler.GenreHandler,
	titleHandler *handler.TitleHandler,
	reviewHandler *handler.ReviewHandler,
	commentHandler *handler.CommentHandler,
) {
	v1 := engine.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Use(middleware.RateLimit(cfg.AuthRatePerSecond, cfg.AuthRateBurst))
	{
		auth.POST("/signup", authHandler.SignUp)
		auth.POST("/token", authHandler.IssueToken)
	}

	users := v1.Group("/users")
	users.Use(middleware.RequireAuth())
	{
		users.GET("/me", userHandler.Me)
		users.PATCH("/me", userHandler.UpdateMe)

		admin := users.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("", userHandler.List)
			admin.POST("", userHandler.Create)
			admin.GET("/:username", userHandler.Get)
			admin.PATCH("/:username", userHandler.Update)
			admin.DELETE("/:username", userHandler.Delete)
		}
	}

	categories := v1.Group("/categories")
	{
		categories.GET("", categoryHandler.List)
		categories.POST("", middleware.RequireAdmin(), categoryHandler.Create)
		categories.DELETE("/:slug", middleware.RequireAdmin(), categoryHandler.Delete)
	}

	genres := v1.Group("/genres")
	{
		genres.GET("", genreHandler.List)
		genres.POST("", middleware.RequireAdmin(), genreHandler.Create)
		genres.DELETE("/:slug", middleware.RequireAdmin(), genreHandler.Delete)
	}

	titles := v1.Group("/titles")
	{
		titles.GET("", titleHandler.List)
		titles.GET("/:title_id", titleHandler.Get)
		titles.POST("", middleware.RequireAdmin(), titleHandler.Create)
		titles.PATCH("/:title_id", middleware.RequireAdmin(), titleHandler.Update)
		titles.DELETE("/:title_id", middleware.RequireAdmin(), titleHandler.Delete)

		reviews := titles.Group("/:title_id/reviews")
		{
			reviews.GET("", reviewHandler.List)
			reviews.GET("/:review_id", reviewHandler.Get)
			reviews.POST("", middleware.RequireAuth(), reviewHandler.Create)
			reviews.PATCH("/:review_id", middleware.RequireAuth(), reviewHandler.Update)
			reviews.DELETE("/:review_id", middleware.RequireAuth(), reviewHandler.Delete)

			comments := reviews.Group("/:review_id/comments")
			{
				comments.GET("", commentHandler.List)
				comments.GET("/:comment_id", commentHandler.Get)
				comments.POST("", middleware.RequireAuth(), commentHandler.Create)
				comments.PATCH("/:comment_id", middleware.RequireAuth(), commentHandler.Update)
				comments.DELETE("/:comment_id", middleware.RequireAuth(), commentHandler.Delete)
			}
		}
	}
}

func registerWebRoutes(
	engine *gin.Engine,
	pageHandler *web.PageHandler,
	actionHandler *web.ActionHandler,
	authPageHandler *web.AuthPageHandler,
) {
	engine.GET("/", pageHandler.Home)
	engine.GET("/search", pageHandler.Search)
	engine.GET("/categories/:slug", pageHandler.CategoryTitles)
	engine.GET("/genres/:slug", pageHandler.GenreTitles)
	engine.GET("/titles/:title_id", pageHandler.TitleDetail)
	engine.GET("/reviews/:review_id", pageHandler.ReviewDetail)
	engine.GET("/profiles/:username", pageHandler.Profile)

	engine.POST("/auth/signup", authPageHandler.Register)
	engine.POST("/auth/login", authPageHandler.Login)
	engine.POST("/auth/logout", authPageHandler.Logout)
	engine.POST("/auth/password-reset", authPageHandler.PasswordReset)
	engine.POST("/auth/password-reset/confirm", authPageHandler.PasswordResetConfirm)

	engine.POST("/titles/:title_id/reviews", middleware.RequireAuth(), actionHandler.CreateReview)
	engine.POST("/titles/:title_id/reviews/:review_id/edit", middleware.RequireAuth(), actionHandler.UpdateReview)
	engine.POST("/titles/:title_id/reviews/:review_id/delete", middleware.RequireAuth(), actionHandler.DeleteReview)
	engine.POST("/titles/:title_id/reviews/:review_id/comments", middleware.RequireAuth(), actionHandler.CreateComment)
	engine.POST("/titles/:title_id/reviews/:review_id/comments/:comment_id/edit", middleware.RequireAuth(), actionHandler.UpdateComment)
	engine.POST("/titles/:title_id/reviews/:review_id/comments/:comment_id/delete", middleware.RequireAuth(), actionHandler.DeleteComment)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.HTTPPort)
	return s.engine.Run(addr)
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
