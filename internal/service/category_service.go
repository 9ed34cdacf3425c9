package service

import (
	"context"
	"fmt"

	"time-planner/internal/model"
	"time-planner/internal/repository"
)

// CategoryService provides helpers around categories and their daily point
// targets.
type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) Create(ctx context.Context, name string, target int) (*model.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	category := model.Category{Name: name, Target: target}
	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*model.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CategoryService) Update(ctx context.Context, id uint, name string, target int) error {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	category.Name = name
	category.Target = target
	return s.repo.Save(ctx, category)
}

func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// CompletedToday reports per-category weight completed on the given day
// against each category's target.
func (s *CategoryService) CompletedToday(ctx context.Context, date string) ([]repository.CategorySummary, error) {
	return s.repo.CompletedSummary(ctx, date)
}

// OpenToday reports per-category weight still open on the given day.
func (s *CategoryService) OpenToday(ctx context.Context, date string) ([]repository.CategorySummary, error) {
	return s.repo.CreatedSummary(ctx, date)
}
