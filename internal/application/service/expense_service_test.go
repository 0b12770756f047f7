package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/regoline/nina-controle/internal/domain/entity"
	"github.com/regoline/nina-controle/pkg/apperror"
	"github.com/regoline/nina-controle/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpenseRepo struct {
	expenses map[uuid.UUID]*entity.Expense
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{expenses: make(map[uuid.UUID]*entity.Expense)}
}

func (f *fakeExpenseRepo) Create(ctx context.Context, expense *entity.Expense) error {
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	stored := *expense
	f.expenses[expense.ID] = &stored
	return nil
}

func (f *fakeExpenseRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	if e, ok := f.expenses[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeExpenseRepo) Update(ctx context.Context, expense *entity.Expense) error {
	stored := *expense
	f.expenses[expense.ID] = &stored
	return nil
}

func (f *fakeExpenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.expenses, id)
	return nil
}

func (f *fakeExpenseRepo) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Expense, int64, error) {
	var out []entity.Expense
	for _, e := range f.expenses {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func TestExpenseService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("records a valid expense", func(t *testing.T) {
		svc := NewExpenseService(newFakeExpenseRepo())

		expense, err := svc.Create(ctx, &ExpenseInput{
			Amount:      "35.50",
			Description: "Flour and sugar",
			Date:        "10/03/2026",
		}, userID)

		require.NoError(t, err)
		assert.True(t, expense.Amount.Equal(decimal.RequireFromString("35.50")))
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), expense.Date)
	})

	t.Run("empty date defaults to today", func(t *testing.T) {
		svc := NewExpenseService(newFakeExpenseRepo())

		expense, err := svc.Create(ctx, &ExpenseInput{
			Amount:      "10.00",
			Description: "Gas refill",
		}, userID)

		require.NoError(t, err)
		now := time.Now()
		assert.Equal(t, now.Year(), expense.Date.Year())
		assert.Equal(t, now.YearDay(), expense.Date.YearDay())
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		svc := NewExpenseService(newFakeExpenseRepo())

		_, err := svc.Create(ctx, &ExpenseInput{
			Amount:      "10.00",
			Description: "Gas refill",
			Date:        "03/32/2026",
		}, userID)

		assert.ErrorIs(t, err, apperror.ErrInvalidDate)
	})

	t.Run("rejects non-positive and malformed amounts", func(t *testing.T) {
		svc := NewExpenseService(newFakeExpenseRepo())

		for _, amount := range []string{"0", "-5.00", "abc", ""} {
			_, err := svc.Create(ctx, &ExpenseInput{
				Amount:      amount,
				Description: "Gas refill",
			}, userID)
			require.Error(t, err, "amount %q", amount)
			assert.Equal(t, 400, apperror.GetAppError(err).Code)
		}
	})

	t.Run("rejects blank description", func(t *testing.T) {
		svc := NewExpenseService(newFakeExpenseRepo())

		_, err := svc.Create(ctx, &ExpenseInput{Amount: "10.00", Description: "  "}, userID)

		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	})
}

func TestExpenseService_Update(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	repo := newFakeExpenseRepo()
	svc := NewExpenseService(repo)

	expense, err := svc.Create(ctx, &ExpenseInput{
		Amount:      "20.00",
		Description: "Butter",
		Date:        "10/03/2026",
	}, userID)
	require.NoError(t, err)

	t.Run("rewrites the entry", func(t *testing.T) {
		updated, err := svc.Update(ctx, expense.ID, &ExpenseInput{
			Amount:      "25.00",
			Description: "Butter and eggs",
			Date:        "11/03/2026",
		})

		require.NoError(t, err)
		assert.True(t, updated.Amount.Equal(decimal.RequireFromString("25.00")))
		assert.Equal(t, "Butter and eggs", updated.Description)
	})

	t.Run("returns not found for missing expense", func(t *testing.T) {
		_, err := svc.Update(ctx, uuid.New(), &ExpenseInput{
			Amount:      "25.00",
			Description: "Butter",
		})

		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})
}
