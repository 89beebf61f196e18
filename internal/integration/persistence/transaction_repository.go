// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
	"github.com/finance-tracker/savings-ledger/internal/integration/persistence/model"
)

// sumScale rounds SQL sums; some drivers aggregate decimals as floats.
const sumScale = 2

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create appends a new entry to the ledger.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return conn(ctx, r.db).Create(model.TransactionFromEntity(transaction)).Error
}

// FindByID retrieves a transaction owned by userID.
func (r *transactionRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByIDWithCategory retrieves a transaction with its category.
func (r *transactionRepository) FindByIDWithCategory(ctx context.Context, id, userID uuid.UUID) (*entity.TransactionWithCategory, error) {
	var transactionModel model.TransactionModel
	result := conn(ctx, r.db).
		Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntityWithCategory(), nil
}

// FindByFilter retrieves transactions newest first, with pagination.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	query := r.applyFilter(conn(ctx, r.db).Model(&model.TransactionModel{}), filter)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	page := pagination.Page
	if page < 1 {
		page = 1
	}

	fetch := query.Preload("Category").Order("date DESC, created_at DESC")
	totalPages := 1
	if pagination.Limit > 0 {
		fetch = fetch.Offset((page - 1) * pagination.Limit).Limit(pagination.Limit)
		if pages := int((total + int64(pagination.Limit) - 1) / int64(pagination.Limit)); pages > 0 {
			totalPages = pages
		}
	}

	var transactionModels []model.TransactionModel
	if err := fetch.Find(&transactionModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]*entity.TransactionWithCategory, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntityWithCategory()
	}

	return &adapter.TransactionListResult{
		Transactions: transactions,
		Total:        total,
		Page:         page,
		Limit:        pagination.Limit,
		TotalPages:   totalPages,
	}, nil
}

// GetTotals sums income and expense for the filter.
func (r *transactionRepository) GetTotals(ctx context.Context, filter adapter.TransactionFilter) (*adapter.TransactionTotals, error) {
	var rows []struct {
		Type  string
		Total decimal.Decimal
	}
	result := r.applyFilter(conn(ctx, r.db).Model(&model.TransactionModel{}), filter).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Group("type").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	totals := &adapter.TransactionTotals{IncomeTotal: decimal.Zero, ExpenseTotal: decimal.Zero}
	for _, row := range rows {
		switch entity.TransactionType(row.Type) {
		case entity.TransactionTypeIncome:
			totals.IncomeTotal = row.Total.Round(sumScale)
		case entity.TransactionTypeExpense:
			totals.ExpenseTotal = row.Total.Round(sumScale)
		}
	}
	return totals, nil
}

// SumExpensesByCategory sums expenses per category for the user in [from, to].
// Uncategorised expenses are not included.
func (r *transactionRepository) SumExpensesByCategory(ctx context.Context, userID uuid.UUID, from, to time.Time) (map[uuid.UUID]decimal.Decimal, error) {
	var rows []struct {
		CategoryID uuid.UUID
		Total      decimal.Decimal
	}
	result := conn(ctx, r.db).
		Model(&model.TransactionModel{}).
		Select("category_id, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND type = ? AND category_id IS NOT NULL", userID, string(entity.TransactionTypeExpense)).
		Where("date >= ? AND date <= ?", from.UTC(), to.UTC()).
		Group("category_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	sums := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		sums[row.CategoryID] = row.Total.Round(sumScale)
	}
	return sums, nil
}

// Update updates an existing transaction.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	result := conn(ctx, r.db).
		Model(&model.TransactionModel{}).
		Where("id = ? AND user_id = ?", transaction.ID, transaction.UserID).
		Updates(map[string]any{
			"date":        transaction.Date.UTC(),
			"description": transaction.Description,
			"amount":      transaction.Amount,
			"type":        string(transaction.Type),
			"category_id": transaction.CategoryID,
			"updated_at":  transaction.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// Delete removes a transaction owned by userID.
func (r *transactionRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&model.TransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

func (r *transactionRepository) applyFilter(query *gorm.DB, filter adapter.TransactionFilter) *gorm.DB {
	query = query.Where("user_id = ?", filter.UserID)

	if filter.StartDate != nil {
		query = query.Where("date >= ?", filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", filter.EndDate.UTC())
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	return query
}
