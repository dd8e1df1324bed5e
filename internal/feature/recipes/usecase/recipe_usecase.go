// Package usecase implements the business logic for recipe operations.
package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"recipe_backend/internal/feature/recipes/domain/entity"
)

const (
	DefaultPage  = 1
	DefaultLimit = 5
	MaxLimit     = 100
)

// RecipeRepository abstracts the persistence layer for recipes.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type RecipeRepository interface {
	// List returns one page of matching recipes and the total number of matches.
	List(ctx context.Context, f entity.ListFilter) ([]entity.Recipe, int64, error)
	FindByID(ctx context.Context, id string) (*entity.Recipe, error)
	Create(ctx context.Context, r *entity.Recipe) error
	// Update overwrites every mutable column of an existing recipe.
	Update(ctx context.Context, r *entity.Recipe) error
	Delete(ctx context.Context, id string) error
}

// ListResult is one page of recipes.
type ListResult struct {
	Recipes []entity.Recipe
	Total   int64
	Page    int
	Limit   int
}

// RecipeInput carries the fields of a new recipe.
type RecipeInput struct {
	Name            string
	Ingredients     []string
	Instructions    string
	Category        string
	PreparationTime int
	CookingTime     int
	Servings        int
	UserID          string
}

// RecipePatch carries a partial update. Nil fields are left unchanged.
type RecipePatch struct {
	Name            *string
	Ingredients     []string
	Instructions    *string
	Category        *string
	PreparationTime *int
	CookingTime     *int
	Servings        *int
}

// RecipeUsecase provides business logic for recipe operations.
type RecipeUsecase struct {
	repo RecipeRepository
}

// NewRecipeUsecase creates a new RecipeUsecase with the given repository.
func NewRecipeUsecase(r RecipeRepository) *RecipeUsecase {
	return &RecipeUsecase{repo: r}
}

// List returns a page of recipes. Out of range paging values fall back to defaults.
func (u *RecipeUsecase) List(ctx context.Context, f entity.ListFilter) (ListResult, error) {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	// keeps (Page-1)*Limit within int
	if f.Page > math.MaxInt/f.Limit {
		f.Page = math.MaxInt / f.Limit
	}
	f.Name = strings.TrimSpace(f.Name)
	f.Category = strings.TrimSpace(f.Category)

	recipes, total, err := u.repo.List(ctx, f)
	if err != nil {
		return ListResult{}, err
	}
	if recipes == nil {
		recipes = []entity.Recipe{}
	}
	return ListResult{Recipes: recipes, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

// Create validates and stores a new recipe.
func (u *RecipeUsecase) Create(ctx context.Context, in RecipeInput) (*entity.Recipe, error) {
	r := &entity.Recipe{
		Name:            strings.TrimSpace(in.Name),
		Ingredients:     in.Ingredients,
		Instructions:    in.Instructions,
		Category:        strings.TrimSpace(in.Category),
		PreparationTime: in.PreparationTime,
		CookingTime:     in.CookingTime,
		Servings:        in.Servings,
		UserID:          in.UserID,
	}
	if err := validate(r); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Update applies a partial update to the recipe with the given id.
func (u *RecipeUsecase) Update(ctx context.Context, id string, p RecipePatch) (*entity.Recipe, error) {
	r, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		r.Name = strings.TrimSpace(*p.Name)
	}
	if p.Ingredients != nil {
		r.Ingredients = p.Ingredients
	}
	if p.Instructions != nil {
		r.Instructions = *p.Instructions
	}
	if p.Category != nil {
		r.Category = strings.TrimSpace(*p.Category)
	}
	if p.PreparationTime != nil {
		r.PreparationTime = *p.PreparationTime
	}
	if p.CookingTime != nil {
		r.CookingTime = *p.CookingTime
	}
	if p.Servings != nil {
		r.Servings = *p.Servings
	}

	if err := validate(r); err != nil {
		return nil, err
	}
	if err := u.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Delete removes the recipe with the given id.
func (u *RecipeUsecase) Delete(ctx context.Context, id string) error {
	return u.repo.Delete(ctx, id)
}

func validate(r *entity.Recipe) error {
	switch {
	case r.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case r.Category == "":
		return fmt.Errorf("%w: category is required", ErrValidation)
	case r.PreparationTime < 0, r.CookingTime < 0:
		return fmt.Errorf("%w: times must not be negative", ErrValidation)
	case r.Servings < 0:
		return fmt.Errorf("%w: servings must not be negative", ErrValidation)
	}
	return nil
}
