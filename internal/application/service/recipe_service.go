package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/regoline/nina-controle/internal/domain/entity"
	"github.com/regoline/nina-controle/internal/domain/repository"
	"github.com/regoline/nina-controle/pkg/apperror"
	"github.com/regoline/nina-controle/pkg/pagination"
	"github.com/shopspring/decimal"
)

// RecipeInput is the payload for creating or updating a recipe. Prices
// arrive as strings and are parsed as exact decimals.
type RecipeInput struct {
	Name        string `json:"name"`
	UnitPrice   string `json:"unit_price"`
	BoxPrice    string `json:"box_price"`
	Description string `json:"description"`
}

// RecipeService manages the recipe catalog.
type RecipeService struct {
	recipeRepo repository.RecipeRepository
}

// NewRecipeService creates a new recipe service
func NewRecipeService(recipeRepo repository.RecipeRepository) *RecipeService {
	return &RecipeService{recipeRepo: recipeRepo}
}

func (s *RecipeService) validate(input *RecipeInput) (name string, unitPrice, boxPrice decimal.Decimal, err error) {
	name = strings.TrimSpace(input.Name)
	if name == "" {
		return "", decimal.Zero, decimal.Zero, apperror.NewBadRequestError("Recipe name is required")
	}

	unitPrice, err = decimal.NewFromString(strings.TrimSpace(input.UnitPrice))
	if err != nil || unitPrice.IsNegative() {
		return "", decimal.Zero, decimal.Zero, apperror.NewBadRequestError("Invalid unit price")
	}

	boxPrice, err = decimal.NewFromString(strings.TrimSpace(input.BoxPrice))
	if err != nil || boxPrice.IsNegative() {
		return "", decimal.Zero, decimal.Zero, apperror.NewBadRequestError("Invalid box price")
	}

	return name, unitPrice, boxPrice, nil
}

// Create adds a recipe to the catalog.
func (s *RecipeService) Create(ctx context.Context, input *RecipeInput, createdBy uuid.UUID) (*entity.Recipe, error) {
	name, unitPrice, boxPrice, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	recipe := &entity.Recipe{
		Name:        name,
		UnitPrice:   unitPrice,
		BoxPrice:    boxPrice,
		Description: strings.TrimSpace(input.Description),
		CreatedByID: &createdBy,
	}
	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, apperror.NewStorageError(err)
	}
	return recipe, nil
}

// Update rewrites a recipe's name, prices and description. Past sales keep
// their snapshotted prices.
func (s *RecipeService) Update(ctx context.Context, id uuid.UUID, input *RecipeInput) (*entity.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if recipe == nil {
		return nil, apperror.NewNotFoundError("Recipe")
	}

	name, unitPrice, boxPrice, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	recipe.Name = name
	recipe.UnitPrice = unitPrice
	recipe.BoxPrice = boxPrice
	recipe.Description = strings.TrimSpace(input.Description)

	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		return nil, apperror.NewStorageError(err)
	}
	return recipe, nil
}

// Delete removes a recipe from the catalog.
func (s *RecipeService) Delete(ctx context.Context, id uuid.UUID) error {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NewStorageError(err)
	}
	if recipe == nil {
		return apperror.NewNotFoundError("Recipe")
	}

	if err := s.recipeRepo.Delete(ctx, id); err != nil {
		return apperror.NewStorageError(err)
	}
	return nil
}

// GetByID returns a single recipe.
func (s *RecipeService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if recipe == nil {
		return nil, apperror.NewNotFoundError("Recipe")
	}
	return recipe, nil
}

// List returns a page of recipes ordered by name.
func (s *RecipeService) List(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Recipe], error) {
	recipes, total, err := s.recipeRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	return pagination.NewPaginatedResult(recipes, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
