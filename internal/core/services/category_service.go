package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jmallet/cashplan/internal/apperrors"
	"github.com/jmallet/cashplan/internal/core/domain"
	portsrepo "github.com/jmallet/cashplan/internal/core/ports/repositories"
	portssvc "github.com/jmallet/cashplan/internal/core/ports/services"
	"github.com/jmallet/cashplan/internal/dto"
)

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepository
}

// NewCategoryService creates the category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepository) portssvc.CategorySvc {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvc = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	if req.ParentCategoryID != "" {
		parent, err := s.getOwnedCategory(ctx, userID, req.ParentCategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid parent category: %w", err)
		}
		// One level of nesting only.
		if parent.ParentCategoryID != "" {
			return nil, fmt.Errorf("parent category is already a subcategory: %w", apperrors.ErrValidation)
		}
	}

	now := time.Now()
	category := domain.Category{
		CategoryID:       uuid.NewString(),
		UserID:           userID,
		Name:             req.Name,
		ParentCategoryID: req.ParentCategoryID,
		Icon:             req.Icon,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category")
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	s.LogInfo(ctx, "Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.getOwnedCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.ParentCategoryID != nil {
		newParent := *req.ParentCategoryID
		if newParent != "" {
			if newParent == categoryID {
				return nil, fmt.Errorf("category cannot be its own parent: %w", apperrors.ErrValidation)
			}
			parent, err := s.getOwnedCategory(ctx, userID, newParent)
			if err != nil {
				return nil, fmt.Errorf("invalid parent category: %w", err)
			}
			if parent.ParentCategoryID != "" {
				return nil, fmt.Errorf("parent category is already a subcategory: %w", apperrors.ErrValidation)
			}
		}
		category.ParentCategoryID = newParent
	}

	category.LastUpdatedAt = time.Now()
	category.LastUpdatedBy = userID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category", slog.String("category_id", categoryID))
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, userID string, categoryID string) error {
	if _, err := s.getOwnedCategory(ctx, userID, categoryID); err != nil {
		return err
	}
	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		s.LogError(ctx, err, "Failed to delete category", slog.String("category_id", categoryID))
		return fmt.Errorf("failed to delete category: %w", err)
	}
	s.LogInfo(ctx, "Category deleted", slog.String("category_id", categoryID))
	return nil
}

func (s *categoryService) getOwnedCategory(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return category, nil
}
