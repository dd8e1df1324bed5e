// Package handler provides HTTP handlers for the recipes feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"recipe_backend/internal/api"
	"recipe_backend/internal/feature/recipes/domain/entity"
	"recipe_backend/internal/feature/recipes/transport/http/dto"
	"recipe_backend/internal/feature/recipes/usecase"
	jwtmw "recipe_backend/internal/platform/jwt"
)

// RecipeUsecase defines the recipe operations used by the handler.
type RecipeUsecase interface {
	List(ctx context.Context, f entity.ListFilter) (usecase.ListResult, error)
	Create(ctx context.Context, in usecase.RecipeInput) (*entity.Recipe, error)
	Update(ctx context.Context, id string, p usecase.RecipePatch) (*entity.Recipe, error)
	Delete(ctx context.Context, id string) error
}

// RecipeHandler handles HTTP requests for recipes.
type RecipeHandler struct {
	recipes RecipeUsecase
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(recipes RecipeUsecase) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// List handles GET /recipes?name=&category=&page=&limit=.
func (h *RecipeHandler) List(c *gin.Context) {
	q, err := bindListQuery(c)
	if err != nil {
		slog.Warn("list recipes: invalid query", "error", err, "query", c.Request.URL.RawQuery)
		c.JSON(http.StatusBadRequest, api.NewErrorDetail("Invalid query parameters", err))
		return
	}

	f := entity.ListFilter{}
	if q.Name != nil {
		f.Name = *q.Name
	}
	if q.Category != nil {
		f.Category = *q.Category
	}
	if q.Page != nil {
		f.Page = *q.Page
	}
	if q.Limit != nil {
		f.Limit = *q.Limit
	}

	res, err := h.recipes.List(c.Request.Context(), f)
	if err != nil {
		slog.Error("failed to list recipes", "error", err)
		c.JSON(http.StatusInternalServerError, api.NewErrorDetail("Error fetching recipes", errInternal))
		return
	}

	c.JSON(http.StatusOK, dto.NewListRes(res.Recipes, res.Total, res.Page, res.Limit))
}

// Create handles POST /recipes.
func (h *RecipeHandler) Create(c *gin.Context) {
	var req dto.RecipeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create recipe: validation failed", "error", err)
		c.JSON(http.StatusBadRequest, api.NewErrorDetail("Error creating recipe", err))
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), usecase.RecipeInput{
		Name:            req.Name,
		Ingredients:     req.Ingredients,
		Instructions:    req.Instructions,
		Category:        req.Category,
		PreparationTime: req.PreparationTime,
		CookingTime:     req.CookingTime,
		Servings:        req.Servings,
		UserID:          req.User,
	})
	if err != nil {
		h.fail(c, "create recipe", "Error creating recipe", err)
		return
	}

	slog.Info("recipe created", "recipe_id", recipe.ID)
	c.JSON(http.StatusCreated, dto.NewRecipeRes(recipe))
}

// Update handles PUT /recipes/:id.
func (h *RecipeHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateRecipeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update recipe: validation failed", "error", err, "recipe_id", id)
		c.JSON(http.StatusBadRequest, api.NewErrorDetail("Error updating recipe", err))
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), id, usecase.RecipePatch{
		Name:            req.Name,
		Ingredients:     req.Ingredients,
		Instructions:    req.Instructions,
		Category:        req.Category,
		PreparationTime: req.PreparationTime,
		CookingTime:     req.CookingTime,
		Servings:        req.Servings,
	})
	if err != nil {
		h.fail(c, "update recipe", "Error updating recipe", err)
		return
	}

	slog.Info("recipe updated", "recipe_id", recipe.ID, "user_id", c.GetString(jwtmw.ContextUserID))
	c.JSON(http.StatusOK, dto.NewRecipeRes(recipe))
}

// Delete handles DELETE /recipes/:id.
func (h *RecipeHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.recipes.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, "delete recipe", "Error deleting recipe", err)
		return
	}

	slog.Info("recipe deleted", "recipe_id", id, "user_id", c.GetString(jwtmw.ContextUserID))
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Recipe deleted successfully"})
}

var errInternal = errors.New("internal server error")

func (h *RecipeHandler) fail(c *gin.Context, op, message string, err error) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		slog.Warn(op+" rejected", "error", err)
		c.JSON(http.StatusBadRequest, api.NewErrorDetail(message, err))
	case errors.Is(err, usecase.ErrRecipeNotFound):
		slog.Warn(op+" failed", "error", err, "recipe_id", c.Param("id"))
		c.JSON(http.StatusNotFound, api.NewError("Recipe not found"))
	default:
		slog.Error(op+" failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.NewErrorDetail(message, errInternal))
	}
}

// bindListQuery binds the optional form-style query parameters of the list endpoint.
func bindListQuery(c *gin.Context) (dto.ListQuery, error) {
	var q dto.ListQuery
	query := c.Request.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "name", query, &q.Name); err != nil {
		return q, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "category", query, &q.Category); err != nil {
		return q, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "page", query, &q.Page); err != nil {
		return q, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &q.Limit); err != nil {
		return q, err
	}
	return q, nil
}
