package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/regoline/nina-controle/internal/domain/entity"
	"github.com/regoline/nina-controle/pkg/pagination"
)

// RecipeRepository defines the interface for recipe data operations
type RecipeRepository interface {
	Create(ctx context.Context, recipe *entity.Recipe) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Recipe, error)
	// GetByIDs fetches the given recipes in one query; missing ids are
	// simply absent from the result.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Recipe, error)
	Update(ctx context.Context, recipe *entity.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Recipe, int64, error)
}
