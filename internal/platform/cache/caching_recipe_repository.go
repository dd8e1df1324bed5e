// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"recipe_backend/internal/feature/recipes/domain/entity"
	"recipe_backend/internal/feature/recipes/usecase"
)

const (
	DefaultTTL       = 5 * time.Minute
	DefaultNamespace = "recipes"
	scanCount        = 200
)

// CachingRecipeRepository decorates a RecipeRepository with Redis caching of list pages.
// Every write invalidates all cached pages, since a single insert shifts offsets on every page.
type CachingRecipeRepository struct {
	inner     usecase.RecipeRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.RecipeRepository = (*CachingRecipeRepository)(nil)

// NewCachingRecipeRepository decorates a RecipeRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "recipes".
// A nil rdb disables caching.
func NewCachingRecipeRepository(rdb *redis.Client, ttl time.Duration, inner usecase.RecipeRepository, namespace string) *CachingRecipeRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &CachingRecipeRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

type cachedPage struct {
	Recipes []entity.Recipe `json:"recipes"`
	Total   int64           `json:"total"`
}

// List returns a page of recipes, checking the cache first then falling back to the database.
func (c *CachingRecipeRepository) List(ctx context.Context, f entity.ListFilter) ([]entity.Recipe, int64, error) {
	if c.rdb == nil {
		return c.inner.List(ctx, f)
	}

	key := c.listKey(f)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var page cachedPage
		if err := json.Unmarshal(b, &page); err == nil {
			return page.Recipes, page.Total, nil
		}
		// corrupted entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	recipes, total, err := c.inner.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	if b, err := json.Marshal(cachedPage{Recipes: recipes, Total: total}); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			slog.Warn("failed to cache recipe page", "key", key, "error", err)
		}
	}

	return recipes, total, nil
}

// FindByID is not cached.
func (c *CachingRecipeRepository) FindByID(ctx context.Context, id string) (*entity.Recipe, error) {
	return c.inner.FindByID(ctx, id)
}

// Create stores the recipe and invalidates cached pages.
func (c *CachingRecipeRepository) Create(ctx context.Context, r *entity.Recipe) error {
	if err := c.inner.Create(ctx, r); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update stores the recipe and invalidates cached pages.
func (c *CachingRecipeRepository) Update(ctx context.Context, r *entity.Recipe) error {
	if err := c.inner.Update(ctx, r); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete removes the recipe and invalidates cached pages.
func (c *CachingRecipeRepository) Delete(ctx context.Context, id string) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// invalidate drops every cached page. Failures are logged and otherwise ignored;
// stale pages expire with the TTL.
func (c *CachingRecipeRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.deleteByPattern(ctx, c.listPrefix()+"*"); err != nil {
		slog.Warn("failed to invalidate recipe cache", "namespace", c.namespace, "error", err)
	}
}

// listKey generates a cache key for a specific page query.
func (c *CachingRecipeRepository) listKey(f entity.ListFilter) string {
	return fmt.Sprintf("%s%s:%s:%d:%d",
		c.listPrefix(),
		safe(f.Name),
		safe(f.Category),
		f.Page,
		f.Limit,
	)
}

func (c *CachingRecipeRepository) listPrefix() string {
	return c.namespace + ":list:"
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingRecipeRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, scanCount).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes user input for use as a key segment. The encoding is injective,
// so distinct filters never share a key.
func safe(s string) string {
	return url.QueryEscape(s)
}
