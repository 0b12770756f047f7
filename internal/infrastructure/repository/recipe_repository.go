package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/regoline/nina-controle/internal/domain/entity"
	domainRepo "github.com/regoline/nina-controle/internal/domain/repository"
	"github.com/regoline/nina-controle/pkg/pagination"
	"gorm.io/gorm"
)

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) domainRepo.RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *entity.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Recipe, error) {
	var recipe entity.Recipe
	err := r.db.WithContext(ctx).First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &recipe, err
}

// GetByIDs retrieves multiple recipes by their IDs in a single query
func (r *recipeRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Recipe, error) {
	if len(ids) == 0 {
		return []entity.Recipe{}, nil
	}
	var recipes []entity.Recipe
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) Update(ctx context.Context, recipe *entity.Recipe) error {
	return r.db.WithContext(ctx).Save(recipe).Error
}

func (r *recipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Recipe{}, "id = ?", id).Error
}

func (r *recipeRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Recipe, int64, error) {
	var recipes []entity.Recipe
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Recipe{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&recipes).Error

	return recipes, total, err
}
