// internal/service/category_service_test.go
package service

import (
	"context"
	"testing"

	"fintrack/internal/domain"
	"fintrack/internal/util"
	"fintrack/pkg/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCategoryService(t *testing.T) (CategoryService, *MockCategoryRepository, *MockTxController) {
	t.Helper()

	categoryRepo := new(MockCategoryRepository)
	txController := new(MockTxController)

	svc := NewCategoryService(
		new(MockDBBeginner),
		new(MockDBExecutor),
		categoryRepo,
		func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
			return txController, nil
		},
		func(tx db.TxController) error {
			return txController.Commit()
		},
		func(tx db.TxController) {
			_ = txController.Rollback()
		},
	)

	return svc, categoryRepo, txController
}

func TestCreateCategory(t *testing.T) {
	userID := "user_1"

	t.Run("SuccessfulCreate", func(t *testing.T) {
		ctx := context.Background()
		svc, categoryRepo, txController := newCategoryService(t)

		txController.On("Commit").Return(nil).Once()
		txController.On("Rollback").Return(nil).Maybe()
		categoryRepo.On("GetCategory", ctx, mock.Anything, userID, "Salario").Return(nil, util.ErrNotFound).Once()
		categoryRepo.On("CreateCategory", ctx, mock.Anything, mock.AnythingOfType("*domain.Category")).Return(nil).Once()

		category, err := svc.Create(ctx, userID, "Salario", "💰", domain.TransactionTypeIncome)

		assert.NoError(t, err)
		assert.NotNil(t, category)
		assert.Equal(t, "Salario", category.Name)
		assert.Equal(t, "💰", category.Icon)
		assert.Equal(t, domain.TransactionTypeIncome, category.Type)

		mock.AssertExpectationsForObjects(t, categoryRepo, txController)
	})

	t.Run("DuplicateName", func(t *testing.T) {
		ctx := context.Background()
		svc, categoryRepo, txController := newCategoryService(t)

		existing := domain.NewCategory(userID, "Salario", "💰", domain.TransactionTypeIncome)
		categoryRepo.On("GetCategory", ctx, mock.Anything, userID, "Salario").Return(existing, nil).Once()
		txController.On("Rollback").Return(nil).Once()

		category, err := svc.Create(ctx, userID, "Salario", "💵", domain.TransactionTypeIncome)

		assert.ErrorIs(t, err, util.ErrDuplicateCategory)
		assert.Nil(t, category)

		categoryRepo.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything, mock.Anything)
		txController.AssertNotCalled(t, "Commit")
		mock.AssertExpectationsForObjects(t, categoryRepo, txController)
	})

	t.Run("InvalidType", func(t *testing.T) {
		ctx := context.Background()
		svc, categoryRepo, txController := newCategoryService(t)

		category, err := svc.Create(ctx, userID, "Salario", "💰", "transfer")

		assert.ErrorIs(t, err, util.ErrInvalidInput)
		assert.Nil(t, category)

		categoryRepo.AssertNotCalled(t, "GetCategory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		txController.AssertNotCalled(t, "Rollback")
	})

	t.Run("EmptyName", func(t *testing.T) {
		ctx := context.Background()
		svc, _, _ := newCategoryService(t)

		category, err := svc.Create(ctx, userID, "", "💰", domain.TransactionTypeIncome)

		assert.ErrorIs(t, err, util.ErrInvalidInput)
		assert.Nil(t, category)
	})
}

func TestDeleteCategory(t *testing.T) {
	userID := "user_1"

	t.Run("SuccessfulDelete", func(t *testing.T) {
		ctx := context.Background()
		svc, categoryRepo, _ := newCategoryService(t)

		categoryRepo.On("DeleteCategory", ctx, mock.Anything, userID, "Salario").Return(nil).Once()

		err := svc.Delete(ctx, userID, "Salario")

		assert.NoError(t, err)
		mock.AssertExpectationsForObjects(t, categoryRepo)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctx := context.Background()
		svc, categoryRepo, _ := newCategoryService(t)

		categoryRepo.On("DeleteCategory", ctx, mock.Anything, userID, "Nada").Return(util.ErrNotFound).Once()

		err := svc.Delete(ctx, userID, "Nada")

		assert.ErrorIs(t, err, util.ErrCategoryNotFound)
		mock.AssertExpectationsForObjects(t, categoryRepo)
	})
}
