package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/regoline/nina-controle/internal/domain/entity"
	"github.com/regoline/nina-controle/internal/domain/pricing"
	"github.com/regoline/nina-controle/internal/domain/repository"
	"github.com/regoline/nina-controle/pkg/apperror"
	"github.com/regoline/nina-controle/pkg/pagination"
	"github.com/shopspring/decimal"
)

// SaleItemInput is one raw recipe/quantity row as submitted by the client.
// Both fields arrive as strings so empty form slots can be skipped before
// any numeric validation happens.
type SaleItemInput struct {
	RecipeID string `json:"recipe_id"`
	Quantity string `json:"quantity"`
}

// SaleInput is the raw payload for creating or revising a sale.
type SaleInput struct {
	CustomerName string          `json:"customer_name"`
	Date         string          `json:"date"`
	DeliveryCost string          `json:"delivery_cost"`
	IsDelivered  bool            `json:"is_delivered"`
	IsPaid       bool            `json:"is_paid"`
	Items        []SaleItemInput `json:"items"`
}

// SaleService validates raw sale payloads and applies them to the ledger.
type SaleService struct {
	saleRepo   repository.SaleRepository
	recipeRepo repository.RecipeRepository
	rule       pricing.Rule
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo repository.SaleRepository, recipeRepo repository.RecipeRepository, rule pricing.Rule) *SaleService {
	return &SaleService{
		saleRepo:   saleRepo,
		recipeRepo: recipeRepo,
		rule:       rule,
	}
}

// buildSale validates the raw input and assembles a priced sale. Rows
// missing either field are skipped, which tolerates empty slots from
// dynamic form rows; validation failures surface in a fixed order: empty
// order, then quantity, then recipe, then date. Nothing is persisted here.
func (s *SaleService) buildSale(ctx context.Context, input *SaleInput) (*entity.Sale, error) {
	type row struct {
		recipeID string
		quantity int
	}

	rows := make([]row, 0, len(input.Items))
	for _, item := range input.Items {
		recipeID := strings.TrimSpace(item.RecipeID)
		quantity := strings.TrimSpace(item.Quantity)
		if recipeID == "" || quantity == "" {
			continue
		}
		q, err := strconv.Atoi(quantity)
		if err != nil || q < 1 {
			return nil, apperror.ErrInvalidQuantity
		}
		rows = append(rows, row{recipeID: recipeID, quantity: q})
	}

	if len(rows) == 0 {
		return nil, apperror.ErrEmptyOrder
	}

	recipeIDs := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		id, err := uuid.Parse(r.recipeID)
		if err != nil {
			return nil, apperror.ErrUnknownRecipe
		}
		recipeIDs = append(recipeIDs, id)
	}

	recipes, err := s.recipeRepo.GetByIDs(ctx, recipeIDs)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	recipeByID := make(map[uuid.UUID]entity.Recipe, len(recipes))
	for _, r := range recipes {
		recipeByID[r.ID] = r
	}
	for _, id := range recipeIDs {
		if _, ok := recipeByID[id]; !ok {
			return nil, apperror.ErrUnknownRecipe
		}
	}

	date, err := parseLedgerDate(input.Date)
	if err != nil {
		return nil, err
	}

	deliveryCost := decimal.Zero
	if v := strings.TrimSpace(input.DeliveryCost); v != "" {
		deliveryCost, err = decimal.NewFromString(v)
		if err != nil || deliveryCost.IsNegative() {
			return nil, apperror.NewBadRequestError("Invalid delivery cost")
		}
	}

	sale := &entity.Sale{
		CustomerName: strings.TrimSpace(input.CustomerName),
		Date:         date,
		DeliveryCost: deliveryCost,
		IsDelivered:  input.IsDelivered,
		IsPaid:       input.IsPaid,
	}

	total := deliveryCost
	for i, r := range rows {
		recipe := recipeByID[recipeIDs[i]]

		sale.Items = append(sale.Items, entity.SaleItem{
			RecipeID:  recipe.ID,
			Quantity:  r.quantity,
			UnitPrice: recipe.UnitPrice,
			BoxPrice:  recipe.BoxPrice,
		})
		total = total.Add(s.rule.Subtotal(r.quantity, recipe.UnitPrice, recipe.BoxPrice))
	}
	sale.TotalAmount = total

	return sale, nil
}

// Create validates the input and records a new sale with its items.
func (s *SaleService) Create(ctx context.Context, input *SaleInput, createdBy uuid.UUID) (*entity.Sale, error) {
	sale, err := s.buildSale(ctx, input)
	if err != nil {
		return nil, err
	}
	sale.CreatedByID = &createdBy

	if err := s.saleRepo.CreateWithItems(ctx, sale); err != nil {
		return nil, apperror.NewStorageError(err)
	}
	return sale, nil
}

// Revise replaces an existing sale's header and full item set with the
// validated input. Status flags come from the input just like on create;
// authorship is preserved.
func (s *SaleService) Revise(ctx context.Context, id uuid.UUID, input *SaleInput) (*entity.Sale, error) {
	existing, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if existing == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	sale, err := s.buildSale(ctx, input)
	if err != nil {
		return nil, err
	}
	sale.ID = existing.ID
	sale.CreatedByID = existing.CreatedByID

	if err := s.saleRepo.ReplaceWithItems(ctx, sale); err != nil {
		return nil, apperror.NewStorageError(err)
	}
	return sale, nil
}

// Delete removes a sale and all of its items.
func (s *SaleService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NewStorageError(err)
	}
	if existing == nil {
		return apperror.NewNotFoundError("Sale")
	}

	if err := s.saleRepo.DeleteWithItems(ctx, id); err != nil {
		return apperror.NewStorageError(err)
	}
	return nil
}

// ToggleStatus flips the delivered or paid flag of a sale.
func (s *SaleService) ToggleStatus(ctx context.Context, id uuid.UUID, field repository.StatusField) error {
	if !field.Valid() {
		return apperror.NewBadRequestError("Unknown status field")
	}

	existing, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NewStorageError(err)
	}
	if existing == nil {
		return apperror.NewNotFoundError("Sale")
	}

	if err := s.saleRepo.ToggleStatus(ctx, id, field); err != nil {
		return apperror.NewStorageError(err)
	}
	return nil
}

// GetByID returns a sale with its items and recipe details.
func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// GetItems returns the line items of a sale.
func (s *SaleService) GetItems(ctx context.Context, saleID uuid.UUID) ([]entity.SaleItem, error) {
	existing, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if existing == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	items, err := s.saleRepo.GetItems(ctx, saleID)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	return items, nil
}

// List returns a page of sales, newest business date first.
func (s *SaleService) List(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	return pagination.NewPaginatedResult(sales, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
