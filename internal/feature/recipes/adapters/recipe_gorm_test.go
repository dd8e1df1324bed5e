package adapters

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"recipe_backend/internal/feature/recipes/domain/entity"
	"recipe_backend/internal/feature/recipes/usecase"
	"recipe_backend/internal/platform/db"
)

// setupTestDB prepares a throwaway SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "recipes.db")), db.NewGormConfig())
	require.NoError(t, err, "failed to initialize test database")
	require.NoError(t, gdb.AutoMigrate(&entity.Recipe{}), "failed to migrate table")

	return gdb
}

// seed inserts recipes with strictly increasing creation times.
func seed(t *testing.T, gdb *gorm.DB, recipes ...entity.Recipe) {
	t.Helper()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range recipes {
		r := recipes[i]
		if r.ID == "" {
			r.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", i+1)
		}
		r.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		r.UpdatedAt = r.CreatedAt
		require.NoError(t, gdb.Create(&r).Error)
	}
}

func names(recipes []entity.Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.Name)
	}
	return out
}

func TestRecipeGorm_List(t *testing.T) {
	gdb := setupTestDB(t)
	seed(t, gdb,
		entity.Recipe{Name: "Tomato Soup", Category: "dinner"},
		entity.Recipe{Name: "Pancakes", Category: "breakfast"},
		entity.Recipe{Name: "Mushroom soup", Category: "dinner"},
		entity.Recipe{Name: "100% Juice", Category: "drinks"},
		entity.Recipe{Name: "Soupe_a_l_oignon", Category: "dinner"},
	)
	repo := NewRecipeRepository(gdb)
	ctx := context.Background()

	tests := []struct {
		name      string
		filter    entity.ListFilter
		wantNames []string
		wantTotal int64
	}{
		{
			name:      "first page in creation order",
			filter:    entity.ListFilter{Page: 1, Limit: 2},
			wantNames: []string{"Tomato Soup", "Pancakes"},
			wantTotal: 5,
		},
		{
			name:      "last partial page",
			filter:    entity.ListFilter{Page: 3, Limit: 2},
			wantNames: []string{"Soupe_a_l_oignon"},
			wantTotal: 5,
		},
		{
			name:      "page past the end",
			filter:    entity.ListFilter{Page: 9, Limit: 2},
			wantNames: []string{},
			wantTotal: 5,
		},
		{
			name:      "name is case-insensitive substring",
			filter:    entity.ListFilter{Name: "SOUP", Page: 1, Limit: 10},
			wantNames: []string{"Tomato Soup", "Mushroom soup", "Soupe_a_l_oignon"},
			wantTotal: 3,
		},
		{
			name:      "name wildcards are literal",
			filter:    entity.ListFilter{Name: "%", Page: 1, Limit: 10},
			wantNames: []string{"100% Juice"},
			wantTotal: 1,
		},
		{
			name:      "underscore is literal",
			filter:    entity.ListFilter{Name: "e_a", Page: 1, Limit: 10},
			wantNames: []string{"Soupe_a_l_oignon"},
			wantTotal: 1,
		},
		{
			name:      "category exact match",
			filter:    entity.ListFilter{Category: "dinner", Page: 1, Limit: 10},
			wantNames: []string{"Tomato Soup", "Mushroom soup", "Soupe_a_l_oignon"},
			wantTotal: 3,
		},
		{
			name:      "category is not a substring match",
			filter:    entity.ListFilter{Category: "din", Page: 1, Limit: 10},
			wantNames: []string{},
			wantTotal: 0,
		},
		{
			name:      "name and category combined",
			filter:    entity.ListFilter{Name: "mush", Category: "dinner", Page: 1, Limit: 10},
			wantNames: []string{"Mushroom soup"},
			wantTotal: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipes, total, err := repo.List(ctx, tt.filter)

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, tt.wantNames, names(recipes))
		})
	}
}

func TestRecipeGorm_CreateAndFind(t *testing.T) {
	repo := NewRecipeRepository(setupTestDB(t))
	ctx := context.Background()

	r := &entity.Recipe{
		Name:         "Pancakes",
		Category:     "breakfast",
		Ingredients:  []string{"flour", "milk", "egg"},
		Instructions: "mix and fry",
		Servings:     4,
	}
	require.NoError(t, repo.Create(ctx, r))
	assert.Len(t, r.ID, 36, "ID should be a UUID")
	assert.False(t, r.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"flour", "milk", "egg"}, found.Ingredients)
	assert.Equal(t, "mix and fry", found.Instructions)
	assert.Equal(t, 4, found.Servings)

	_, err = repo.FindByID(ctx, "does-not-exist")
	assert.ErrorIs(t, err, usecase.ErrRecipeNotFound)

	assert.Error(t, repo.Create(ctx, nil))
}

func TestRecipeGorm_Update(t *testing.T) {
	repo := NewRecipeRepository(setupTestDB(t))
	ctx := context.Background()

	r := &entity.Recipe{Name: "Soup", Category: "dinner", Servings: 2, Ingredients: []string{"water"}}
	require.NoError(t, repo.Create(ctx, r))
	createdAt := r.CreatedAt

	t.Run("overwrites fields including zero values", func(t *testing.T) {
		r.Name = "Tomato soup"
		r.Servings = 0
		r.Ingredients = []string{"water", "tomato"}
		require.NoError(t, repo.Update(ctx, r))

		found, err := repo.FindByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, "Tomato soup", found.Name)
		assert.Equal(t, 0, found.Servings)
		assert.Equal(t, []string{"water", "tomato"}, found.Ingredients)
		assert.WithinDuration(t, createdAt, found.CreatedAt, time.Second)
	})

	t.Run("missing recipe", func(t *testing.T) {
		err := repo.Update(ctx, &entity.Recipe{ID: "missing", Name: "x", Category: "y"})
		assert.ErrorIs(t, err, usecase.ErrRecipeNotFound)
	})
}

func TestRecipeGorm_Delete(t *testing.T) {
	repo := NewRecipeRepository(setupTestDB(t))
	ctx := context.Background()

	r := &entity.Recipe{Name: "Soup", Category: "dinner"}
	require.NoError(t, repo.Create(ctx, r))

	require.NoError(t, repo.Delete(ctx, r.ID))

	_, err := repo.FindByID(ctx, r.ID)
	assert.ErrorIs(t, err, usecase.ErrRecipeNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, r.ID), usecase.ErrRecipeNotFound)
}
