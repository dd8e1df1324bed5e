// Package adapters provides repository implementations for the recipes feature.
package adapters

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipe_backend/internal/feature/recipes/domain/entity"
	"recipe_backend/internal/feature/recipes/usecase"
)

// recipeGorm is the GORM implementation of RecipeRepository.
type recipeGorm struct {
	db *gorm.DB
}

var _ usecase.RecipeRepository = (*recipeGorm)(nil)

// NewRecipeRepository creates a recipe repository backed by db.
func NewRecipeRepository(db *gorm.DB) *recipeGorm {
	return &recipeGorm{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// List returns a page of recipes ordered by creation time, plus the total match count.
func (r *recipeGorm) List(ctx context.Context, f entity.ListFilter) ([]entity.Recipe, int64, error) {
	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&entity.Recipe{})
		if f.Name != "" {
			q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(f.Name))+"%")
		}
		if f.Category != "" {
			q = q.Where("category = ?", f.Category)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []entity.Recipe
	if err := query().
		Order("created_at ASC").
		Order("id ASC").
		Offset(f.Offset()).
		Limit(f.Limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// FindByID returns usecase.ErrRecipeNotFound when no recipe has the id.
func (r *recipeGorm) FindByID(ctx context.Context, id string) (*entity.Recipe, error) {
	var recipe entity.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// Create inserts a recipe, assigning a UUID when the ID is empty.
func (r *recipeGorm) Create(ctx context.Context, recipe *entity.Recipe) error {
	if recipe == nil {
		return errors.New("recipe is nil")
	}
	if recipe.ID == "" {
		recipe.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(recipe).Error
}

// Update overwrites all mutable columns of an existing recipe.
func (r *recipeGorm) Update(ctx context.Context, recipe *entity.Recipe) error {
	result := r.db.WithContext(ctx).
		Model(recipe).
		Select("*").
		Omit("id", "created_at").
		Updates(recipe)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrRecipeNotFound
	}
	return nil
}

// Delete removes a recipe by id.
func (r *recipeGorm) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&entity.Recipe{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrRecipeNotFound
	}
	return nil
}
