package app

import (
	"fmt"
	"net/http"

	"todoapp/internal/auth"
	"todoapp/internal/cache"
	"todoapp/internal/config"
	"todoapp/internal/handlers"
	"todoapp/internal/repo"
	"todoapp/internal/service"
	"todoapp/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

// Deps are the stores the routes are built on.
type Deps struct {
	Users repo.UserRepo
	Todos repo.TodoRepo
	Redis *redis.Client
}

// Setup registers templates, the access gate and all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, logs *zap.SugaredLogger, deps Deps) error {
	tmpl, err := view.Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)

	passwords, err := auth.NewPasswordScheme(cfg.Auth.PasswordScheme)
	if err != nil {
		return fmt.Errorf("password scheme: %w", err)
	}

	sessionStore := auth.NewStore(deps.Redis, cfg.Auth.SessionTTL.Duration())
	r.Use(auth.Gate(sessionStore, logs, auth.DefaultSkip...))
	r.NoRoute(handlers.NotFound)

	r.StaticFS("/static", view.Static())
	r.GET("/favicon.ico", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	userSvc := service.NewUserService(deps.Users, passwords)
	authHandler := handlers.NewAuthHandler(logs, sessionStore, userSvc, cfg.Auth.CookieSecure)
	registerAuthRoutes(r, authHandler)

	todoCache := cache.NewTodoCache(deps.Redis, cfg.Redis.DefaultTTL.Duration())
	todoSvc := service.NewTodoService(deps.Todos, todoCache)
	todoHandler := handlers.NewTodoHandler(logs, todoSvc)
	registerTodoRoutes(r, todoHandler)

	return nil
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerTodoRoutes(r *gin.Engine, h *handlers.TodoHandler) {
	r.GET("/", h.List)
	r.POST("/", h.Add)
	r.POST("/reorder", h.Reorder)
	r.GET("/todos/:id", h.Detail)
	r.POST("/todos/:id/toggle", h.Toggle)
}

func registerAuthRoutes(r *gin.Engine, h *handlers.AuthHandler) {
	r.GET(auth.LoginPath, h.LoginForm)
	r.POST(auth.LoginPath, h.Login)
	r.GET("/logout", h.Logout)
}
