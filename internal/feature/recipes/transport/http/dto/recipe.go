// Package dto defines data transfer objects for the recipes feature's HTTP transport layer.
package dto

import (
	"time"

	"recipe_backend/internal/feature/recipes/domain/entity"
)

// ListQuery holds the query parameters of GET /recipes.
type ListQuery struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Page     *int    `json:"page,omitempty"`
	Limit    *int    `json:"limit,omitempty"`
}

// RecipeReq is the body of POST /recipes.
type RecipeReq struct {
	Name            string   `json:"name" binding:"required"`
	Ingredients     []string `json:"ingredients"`
	Instructions    string   `json:"instructions"`
	Category        string   `json:"category" binding:"required"`
	PreparationTime int      `json:"preparationTime" binding:"gte=0"`
	CookingTime     int      `json:"cookingTime" binding:"gte=0"`
	Servings        int      `json:"servings" binding:"gte=0"`
	User            string   `json:"user"`
}

// UpdateRecipeReq is the body of PUT /recipes/:id. Absent fields are left unchanged.
type UpdateRecipeReq struct {
	Name            *string  `json:"name"`
	Ingredients     []string `json:"ingredients"`
	Instructions    *string  `json:"instructions"`
	Category        *string  `json:"category"`
	PreparationTime *int     `json:"preparationTime" binding:"omitempty,gte=0"`
	CookingTime     *int     `json:"cookingTime" binding:"omitempty,gte=0"`
	Servings        *int     `json:"servings" binding:"omitempty,gte=0"`
}

type RecipeRes struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Ingredients     []string  `json:"ingredients"`
	Instructions    string    `json:"instructions"`
	Category        string    `json:"category"`
	PreparationTime int       `json:"preparationTime"`
	CookingTime     int       `json:"cookingTime"`
	Servings        int       `json:"servings"`
	User            string    `json:"user,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type ListRes struct {
	Recipes []RecipeRes `json:"recipes"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
}

// NewRecipeRes converts a recipe entity to its JSON view.
func NewRecipeRes(r *entity.Recipe) RecipeRes {
	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	return RecipeRes{
		ID:              r.ID,
		Name:            r.Name,
		Ingredients:     ingredients,
		Instructions:    r.Instructions,
		Category:        r.Category,
		PreparationTime: r.PreparationTime,
		CookingTime:     r.CookingTime,
		Servings:        r.Servings,
		User:            r.UserID,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// NewListRes converts a page of recipes to its JSON view.
func NewListRes(recipes []entity.Recipe, total int64, page, limit int) ListRes {
	out := make([]RecipeRes, 0, len(recipes))
	for i := range recipes {
		out = append(out, NewRecipeRes(&recipes[i]))
	}
	return ListRes{Recipes: out, Total: total, Page: page, Limit: limit}
}
