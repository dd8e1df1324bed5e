// Package entity defines the domain models for the recipes feature.
package entity

import "time"

// Recipe is a shared cooking recipe.
type Recipe struct {
	ID              string   `gorm:"primaryKey;size:36"`
	Name            string   `gorm:"size:255;not null;index"`
	Ingredients     []string `gorm:"serializer:json"`
	Instructions    string   `gorm:"type:text"`
	Category        string   `gorm:"size:100;not null;index"`
	PreparationTime int
	CookingTime     int
	Servings        int

	// UserID optionally references the user who posted the recipe.
	UserID string `gorm:"size:36;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListFilter selects a page of recipes.
// Name matches case-insensitively as a substring; Category matches exactly.
type ListFilter struct {
	Name     string
	Category string
	Page     int
	Limit    int
}

// Offset returns the number of rows to skip for the filter's page.
func (f ListFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}
