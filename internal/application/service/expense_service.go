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

// ExpenseInput is the payload for creating or updating an expense. Date is
// DD/MM/YYYY; an empty date means today.
type ExpenseInput struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// ExpenseService manages expense entries.
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

func (s *ExpenseService) validate(input *ExpenseInput) (amount decimal.Decimal, description string, err error) {
	amount, err = decimal.NewFromString(strings.TrimSpace(input.Amount))
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, "", apperror.NewBadRequestError("Invalid amount")
	}

	description = strings.TrimSpace(input.Description)
	if description == "" {
		return decimal.Zero, "", apperror.NewBadRequestError("Description is required")
	}

	return amount, description, nil
}

// Create records a new expense.
func (s *ExpenseService) Create(ctx context.Context, input *ExpenseInput, createdBy uuid.UUID) (*entity.Expense, error) {
	amount, description, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	date, err := parseLedgerDate(input.Date)
	if err != nil {
		return nil, err
	}

	expense := &entity.Expense{
		Amount:      amount,
		Description: description,
		Date:        date,
		CreatedByID: &createdBy,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, apperror.NewStorageError(err)
	}
	return expense, nil
}

// Update rewrites an expense entry.
func (s *ExpenseService) Update(ctx context.Context, id uuid.UUID, input *ExpenseInput) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}

	amount, description, err := s.validate(input)
	if err != nil {
		return nil, err
	}
	date, err := parseLedgerDate(input.Date)
	if err != nil {
		return nil, err
	}

	expense.Amount = amount
	expense.Description = description
	expense.Date = date

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, apperror.NewStorageError(err)
	}
	return expense, nil
}

// Delete removes an expense entry.
func (s *ExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NewStorageError(err)
	}
	if expense == nil {
		return apperror.NewNotFoundError("Expense")
	}

	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return apperror.NewStorageError(err)
	}
	return nil
}

// GetByID returns a single expense.
func (s *ExpenseService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	return expense, nil
}

// List returns a page of expenses, newest first.
func (s *ExpenseService) List(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Expense], error) {
	expenses, total, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	return pagination.NewPaginatedResult(expenses, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
