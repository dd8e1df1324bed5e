// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	recipeadapters "recipe_backend/internal/feature/recipes/adapters"
	"recipe_backend/internal/feature/recipes/usecase"
	"recipe_backend/internal/platform/cache"
)

// NewRecipeRepository creates a RecipeRepository implementation.
// If Redis is available, list pages are cached in front of the database.
// Otherwise, it returns the database repository directly.
func NewRecipeRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.RecipeRepository {
	repo := recipeadapters.NewRecipeRepository(db)
	if rdb != nil {
		return cache.NewCachingRecipeRepository(rdb, ttl, repo, cache.DefaultNamespace)
	}
	return repo
}
