package model

import "time"

// Category represents a named grouping of dishes.
type Category struct {
	ID          int       `json:"id" db:"id" validate:"required,gt=0"`
	Name        string    `json:"name" db:"name" validate:"required"`
	Description string    `json:"description" db:"description"`
	Image       string    `json:"image" db:"image"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateCategoryBody is the payload for creating a category.
type CreateCategoryBody struct {
	Name        string `json:"name" validate:"required,min=1,max=256"`
	Description string `json:"description" validate:"max=10000"`
	Image       string `json:"image"`
}

// UpdateCategoryBody is the payload for updating a category.
type UpdateCategoryBody = CreateCategoryBody

// CategoryListResponse is the backend envelope for a category list.
type CategoryListResponse struct {
	Message string     `json:"message"`
	Data    []Category `json:"data" validate:"dive"`
}

// CategoryResponse is the backend envelope for a single category.
type CategoryResponse struct {
	Message string   `json:"message"`
	Data    Category `json:"data"`
}
