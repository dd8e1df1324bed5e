// Package router assembles the gin engine and its routes.
package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "recipe_backend/internal/feature/auth/transport/handler"
	recipehandler "recipe_backend/internal/feature/recipes/transport/handler"
	platformhandler "recipe_backend/internal/platform/http/handler"
	jwtmw "recipe_backend/internal/platform/jwt"
	"recipe_backend/internal/platform/logging"
)

// Deps are the handlers and middleware inputs the router wires together.
type Deps struct {
	Auth     *authhandler.AuthHandler
	Recipes  *recipehandler.RecipeHandler
	Health   *platformhandler.HealthHandler
	Verifier jwtmw.Verifier
	Logger   *slog.Logger

	// CORSOrigins lists allowed origins; "*" or empty allows all.
	CORSOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if d.Logger != nil {
		r.Use(logging.RequestLogger(d.Logger))
	}
	r.Use(cors.New(corsConfig(d.CORSOrigins)))

	// 導通確認用
	r.GET("/healthz", d.Health.Health)
	r.HEAD("/healthz", d.Health.Health)
	r.OPTIONS("/healthz", d.Health.Health)
	r.GET("/readyz", d.Health.Ready)

	auth := jwtmw.AuthRequired(d.Verifier)

	users := r.Group("/users")
	{
		users.POST("/register", d.Auth.Register)
		users.POST("/login", d.Auth.Login)
		users.GET("/profile", auth, d.Auth.Profile)
		users.PUT("/profile", auth, d.Auth.UpdateProfile)
	}

	// 一覧と作成は認証不要、更新と削除は JWT が必要
	recipes := r.Group("/recipes")
	{
		recipes.GET("", d.Recipes.List)
		recipes.POST("", d.Recipes.Create)
		recipes.PUT("/:id", auth, d.Recipes.Update)
		recipes.DELETE("/:id", auth, d.Recipes.Delete)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", logging.RequestIDHeader},
		ExposeHeaders: []string{logging.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
