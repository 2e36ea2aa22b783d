package dto

import (
	"github.com/jmallet/cashplan/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name             string `json:"name" binding:"required"`
	ParentCategoryID string `json:"parentCategoryID"`
	Icon             string `json:"icon"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
type UpdateCategoryRequest struct {
	Name             *string `json:"name"`
	ParentCategoryID *string `json:"parentCategoryID"`
	Icon             *string `json:"icon"`
}

// CategoryResponse mirrors domain.Category.
type CategoryResponse struct {
	CategoryID       string `json:"categoryID"`
	Name             string `json:"name"`
	ParentCategoryID string `json:"parentCategoryID,omitempty"`
	Icon             string `json:"icon"`
}

// ToCategoryResponse converts a domain.Category to its response DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:       c.CategoryID,
		Name:             c.Name,
		ParentCategoryID: c.ParentCategoryID,
		Icon:             c.Icon,
	}
}

// ToListCategoryResponse converts a slice of categories.
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		res[i] = ToCategoryResponse(&c)
	}
	return res
}
