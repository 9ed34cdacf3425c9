package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"time-planner/internal/model"
)

// CategoryRepository manages task categories.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) GetOrCreate(ctx context.Context, name string) (*model.Category, error) {
	if name == "" {
		return nil, nil
	}

	var category model.Category
	db := r.db.WithContext(ctx)
	err := db.Where("name = ?", name).First(&category).Error
	switch {
	case err == nil:
		return &category, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		category = model.Category{Name: name}
		if err := db.Create(&category).Error; err != nil {
			return nil, fmt.Errorf("create category: %w", err)
		}
		return &category, nil
	default:
		return nil, fmt.Errorf("find category: %w", err)
	}
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, fmt.Errorf("find category %d: %w", id, wrapNotFound(err))
	}
	return &category, nil
}

func (r *CategoryRepository) Save(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return fmt.Errorf("save category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Category{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete category %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete category %d: %w", id, ErrNotFound)
	}
	return nil
}

// CategorySummary is a category's daily point target against the weight
// actually accumulated.
type CategorySummary struct {
	CategoryID  uint   `json:"category_id"`
	Name        string `json:"name"`
	Target      int    `json:"target"`
	Implemented int    `json:"implemented"`
}

// CompletedSummary sums the weight of completed tasks per category for one
// day.
func (r *CategoryRepository) CompletedSummary(ctx context.Context, date string) ([]CategorySummary, error) {
	var rows []CategorySummary
	err := r.db.WithContext(ctx).Model(&model.Category{}).
		Select("categories.id AS category_id, categories.name AS name, categories.target AS target, COALESCE(SUM(tasks.weight), 0) AS implemented").
		Joins("LEFT JOIN tasks ON tasks.category_id = categories.id").
		Where("tasks.completed = ? AND tasks.deleted_at IS NULL AND tasks.date = ?", true, date).
		Group("categories.id").Group("categories.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("completed summary: %w", err)
	}
	return rows, nil
}

// CreatedSummary sums the weight of still-open tasks per category for one
// day.
func (r *CategoryRepository) CreatedSummary(ctx context.Context, date string) ([]CategorySummary, error) {
	var rows []CategorySummary
	err := r.db.WithContext(ctx).Model(&model.Category{}).
		Select("categories.id AS category_id, categories.name AS name, categories.target AS target, COALESCE(SUM(tasks.weight), 0) AS implemented").
		Joins("LEFT JOIN tasks ON tasks.category_id = categories.id").
		Where("tasks.completed = ? AND tasks.not_completed = ? AND tasks.deleted_at IS NULL AND tasks.date = ?", false, false, date).
		Group("categories.id").Group("categories.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("created summary: %w", err)
	}
	return rows, nil
}
