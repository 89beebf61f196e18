package usecasetest

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/adapter"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

var (
	_ adapter.UserRepository         = (*UserRepository)(nil)
	_ adapter.CategoryRepository     = (*CategoryRepository)(nil)
	_ adapter.TransactionRepository  = (*TransactionRepository)(nil)
	_ adapter.SavingsGoalRepository  = (*SavingsGoalRepository)(nil)
	_ adapter.PaymentEventRepository = (*PaymentEventRepository)(nil)
	_ adapter.BudgetRepository       = (*BudgetRepository)(nil)
	_ adapter.LiabilityRepository    = (*LiabilityRepository)(nil)
	_ adapter.NotificationRepository = (*NotificationRepository)(nil)
	_ adapter.Transactor             = (*Transactor)(nil)
)

// UserRepository implements adapter.UserRepository.
type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domainerror.ErrEmailAlreadyExists
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *UserRepository) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return domainerror.ErrUserNotFound
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

// CategoryRepository implements adapter.CategoryRepository.
type CategoryRepository struct {
	s *Store
	// CreateErr, when set, is returned by the next Create call.
	CreateErr error
}

func (r *CategoryRepository) Create(_ context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.CreateErr; err != nil {
		r.CreateErr = nil
		return err
	}
	for _, c := range r.s.categories {
		if c.UserID == category.UserID && c.Name == category.Name {
			return domainerror.ErrCategoryNameExists
		}
	}
	r.s.categories[category.ID] = *category
	r.s.categoryOrder = append(r.s.categoryOrder, category.ID)
	return nil
}

func (r *CategoryRepository) FindByID(_ context.Context, id, userID uuid.UUID) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok || c.UserID != userID {
		return nil, domainerror.ErrCategoryNotFound
	}
	return &c, nil
}

func (r *CategoryRepository) FindByName(_ context.Context, userID uuid.UUID, name string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range r.s.categoryOrder {
		if c, ok := r.s.categories[id]; ok && c.UserID == userID && c.Name == name {
			return &c, nil
		}
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (r *CategoryRepository) FindFirstByUser(_ context.Context, userID uuid.UUID) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range r.s.categoryOrder {
		if c, ok := r.s.categories[id]; ok && c.UserID == userID {
			return &c, nil
		}
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (r *CategoryRepository) FindAllByUser(_ context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Category
	for _, c := range r.s.categories {
		if c.UserID == userID {
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Category) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (r *CategoryRepository) Update(_ context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.categories[category.ID]
	if !ok || existing.UserID != category.UserID {
		return domainerror.ErrCategoryNotFound
	}
	for id, c := range r.s.categories {
		if id != category.ID && c.UserID == category.UserID && c.Name == category.Name {
			return domainerror.ErrCategoryNameExists
		}
	}
	r.s.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepository) Delete(_ context.Context, id, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok || c.UserID != userID {
		return domainerror.ErrCategoryNotFound
	}
	for bid, b := range r.s.budgets {
		if b.CategoryID == id {
			delete(r.s.budgets, bid)
		}
	}
	delete(r.s.categories, id)
	return nil
}

func (r *CategoryRepository) CountTransactions(_ context.Context, id uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, t := range r.s.transactions {
		if t.CategoryID != nil && *t.CategoryID == id {
			count++
		}
	}
	return count, nil
}

// TransactionRepository implements adapter.TransactionRepository.
type TransactionRepository struct {
	s *Store
	// CreateErr, when set, is returned by every Create call.
	CreateErr error
}

func (r *TransactionRepository) Create(_ context.Context, transaction *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.s.transactions[transaction.ID] = *transaction
	return nil
}

func (r *TransactionRepository) FindByID(_ context.Context, id, userID uuid.UUID) (*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[id]
	if !ok || t.UserID != userID {
		return nil, domainerror.ErrTransactionNotFound
	}
	return &t, nil
}

func (r *TransactionRepository) FindByIDWithCategory(ctx context.Context, id, userID uuid.UUID) (*entity.TransactionWithCategory, error) {
	t, err := r.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.withCategory(*t), nil
}

func (r *TransactionRepository) withCategory(t entity.Transaction) *entity.TransactionWithCategory {
	result := &entity.TransactionWithCategory{Transaction: &t}
	if t.CategoryID != nil {
		if c, ok := r.s.categories[*t.CategoryID]; ok {
			result.Category = &c
		}
	}
	return result
}

func (r *TransactionRepository) matching(filter adapter.TransactionFilter) []entity.Transaction {
	var out []entity.Transaction
	for _, t := range r.s.transactions {
		if t.UserID != filter.UserID {
			continue
		}
		if filter.StartDate != nil && t.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && t.Date.After(*filter.EndDate) {
			continue
		}
		if filter.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.Type != nil && t.Type != *filter.Type {
			continue
		}
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b entity.Transaction) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

func (r *TransactionRepository) FindByFilter(_ context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.matching(filter)

	page := max(pagination.Page, 1)
	totalPages := 1
	selected := all
	if pagination.Limit > 0 {
		if pages := (len(all) + pagination.Limit - 1) / pagination.Limit; pages > 0 {
			totalPages = pages
		}
		from := min((page-1)*pagination.Limit, len(all))
		to := min(from+pagination.Limit, len(all))
		selected = all[from:to]
	}

	result := &adapter.TransactionListResult{
		Total:      int64(len(all)),
		Page:       page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
	}
	for _, t := range selected {
		result.Transactions = append(result.Transactions, r.withCategory(t))
	}
	return result, nil
}

func (r *TransactionRepository) GetTotals(_ context.Context, filter adapter.TransactionFilter) (*adapter.TransactionTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	totals := &adapter.TransactionTotals{IncomeTotal: decimal.Zero, ExpenseTotal: decimal.Zero}
	for _, t := range r.matching(filter) {
		if t.Type == entity.TransactionTypeIncome {
			totals.IncomeTotal = totals.IncomeTotal.Add(t.Amount)
		} else {
			totals.ExpenseTotal = totals.ExpenseTotal.Add(t.Amount)
		}
	}
	return totals, nil
}

func (r *TransactionRepository) SumExpensesByCategory(_ context.Context, userID uuid.UUID, from, to time.Time) (map[uuid.UUID]decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	expense := entity.TransactionTypeExpense
	sums := make(map[uuid.UUID]decimal.Decimal)
	for _, t := range r.matching(adapter.TransactionFilter{UserID: userID, StartDate: &from, EndDate: &to, Type: &expense}) {
		if t.CategoryID == nil {
			continue
		}
		sums[*t.CategoryID] = sums[*t.CategoryID].Add(t.Amount)
	}
	return sums, nil
}

func (r *TransactionRepository) Update(_ context.Context, transaction *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[transaction.ID]
	if !ok || t.UserID != transaction.UserID {
		return domainerror.ErrTransactionNotFound
	}
	r.s.transactions[transaction.ID] = *transaction
	return nil
}

func (r *TransactionRepository) Delete(_ context.Context, id, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[id]
	if !ok || t.UserID != userID {
		return domainerror.ErrTransactionNotFound
	}
	delete(r.s.transactions, id)
	return nil
}

// SavingsGoalRepository implements adapter.SavingsGoalRepository with version checks.
type SavingsGoalRepository struct {
	s *Store
	// Conflicts makes the next Conflicts Update calls fail as if another writer won.
	Conflicts int
	// FindDueErr, when set, is returned by FindDueForAutoSave.
	FindDueErr error
}

func (r *SavingsGoalRepository) Create(_ context.Context, goal *entity.SavingsGoal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.goals[goal.ID] = *goal
	return nil
}

func (r *SavingsGoalRepository) FindByID(_ context.Context, id, userID uuid.UUID) (*entity.SavingsGoal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.goals[id]
	if !ok || g.UserID != userID {
		return nil, domainerror.ErrSavingsGoalNotFound
	}
	return &g, nil
}

func (r *SavingsGoalRepository) FindAllByUser(_ context.Context, userID uuid.UUID) ([]*entity.SavingsGoal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SavingsGoal
	for _, g := range r.s.goals {
		if g.UserID == userID {
			out = append(out, &g)
		}
	}
	slices.SortFunc(out, func(a, b *entity.SavingsGoal) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

func (r *SavingsGoalRepository) FindDueForAutoSave(_ context.Context, now time.Time, after *adapter.DueCursor, limit int) ([]*entity.SavingsGoal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.FindDueErr != nil {
		return nil, r.FindDueErr
	}
	var out []*entity.SavingsGoal
	for _, g := range r.s.goals {
		if g.IsAutoSaveDue(now) && (after == nil || compareDue(&g, after.NextAutoSaveDate, after.ID) > 0) {
			out = append(out, &g)
		}
	}
	slices.SortFunc(out, func(a, b *entity.SavingsGoal) int { return compareDue(a, *b.NextAutoSaveDate, b.ID) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *SavingsGoalRepository) Update(_ context.Context, goal *entity.SavingsGoal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.goals[goal.ID]
	if !ok || stored.UserID != goal.UserID {
		return domainerror.ErrSavingsGoalNotFound
	}
	if r.Conflicts > 0 {
		r.Conflicts--
		stored.Version++
		r.s.goals[goal.ID] = stored
		return domainerror.ErrConcurrentModification
	}
	if stored.Version != goal.Version {
		return domainerror.ErrConcurrentModification
	}
	goal.Version++
	r.s.goals[goal.ID] = *goal
	return nil
}

func (r *SavingsGoalRepository) Delete(_ context.Context, id, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.goals[id]
	if !ok || g.UserID != userID {
		return domainerror.ErrSavingsGoalNotFound
	}
	delete(r.s.goals, id)
	return nil
}

// PaymentEventRepository implements adapter.PaymentEventRepository with version checks.
type PaymentEventRepository struct {
	s *Store
	// Conflicts makes the next Conflicts Update calls fail as if another writer won.
	Conflicts int
}

func (r *PaymentEventRepository) Create(_ context.Context, event *entity.PaymentEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.events[event.ID] = *event
	return nil
}

func (r *PaymentEventRepository) FindByID(_ context.Context, id, userID uuid.UUID) (*entity.PaymentEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok || e.UserID != userID {
		return nil, domainerror.ErrPaymentEventNotFound
	}
	return &e, nil
}

func (r *PaymentEventRepository) FindAllByUser(_ context.Context, userID uuid.UUID) ([]*entity.PaymentEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.PaymentEvent
	for _, e := range r.s.events {
		if e.UserID == userID {
			out = append(out, &e)
		}
	}
	slices.SortFunc(out, func(a, b *entity.PaymentEvent) int { return a.Date.Compare(b.Date) })
	return out, nil
}

func (r *PaymentEventRepository) Update(_ context.Context, event *entity.PaymentEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.events[event.ID]
	if !ok || stored.UserID != event.UserID {
		return domainerror.ErrPaymentEventNotFound
	}
	if r.Conflicts > 0 {
		r.Conflicts--
		stored.Version++
		r.s.events[event.ID] = stored
		return domainerror.ErrConcurrentModification
	}
	if stored.Version != event.Version {
		return domainerror.ErrConcurrentModification
	}
	event.Version++
	r.s.events[event.ID] = *event
	return nil
}

func (r *PaymentEventRepository) Delete(_ context.Context, id, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok || e.UserID != userID {
		return domainerror.ErrPaymentEventNotFound
	}
	delete(r.s.events, id)
	return nil
}

// BudgetRepository implements adapter.BudgetRepository.
type BudgetRepository struct{ s *Store }

func (r *BudgetRepository) Create(_ context.Context, budget *entity.Budget) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.budgets {
		if b.UserID == budget.UserID && b.CategoryID == budget.CategoryID && b.Month.Equal(budget.Month) {
			return domainerror.ErrBudgetAlreadyExists
		}
	}
	r.s.budgets[budget.ID] = *budget
	return nil
}

func (r *BudgetRepository) FindByID(_ context.Context, id, userID uuid.UUID) (*entity.Budget, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.budgets[id]
	if !ok || b.UserID != userID {
		return nil, domainerror.ErrBudgetNotFound
	}
	return &b, nil
}

func (r *BudgetRepository) FindByMonth(_ context.Context, userID uuid.UUID, month time.Time) ([]*adapter.BudgetWithCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*adapter.BudgetWithCategory
	for _, b := range r.s.budgets {
		if b.UserID != userID || !b.Month.Equal(month) {
			continue
		}
		item := &adapter.BudgetWithCategory{Budget: &b}
		if c, ok := r.s.categories[b.CategoryID]; ok {
			item.Category = &c
		}
		out = append(out, item)
	}
	slices.SortFunc(out, func(a, b *adapter.BudgetWithCategory) int { return a.Budget.CreatedAt.Compare(b.Budget.CreatedAt) })
	return out, nil
}

func (r *BudgetRepository) Exists(_ context.Context, userID, categoryID uuid.UUID, month time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.budgets {
		if b.UserID == userID && b.CategoryID == categoryID && b.Month.Equal(month) {
			return true, nil
		}
	}
	return false, nil
}

func (r *BudgetRepository) Update(_ context.Context, budget *entity.Budget) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.budgets[budget.ID]
	if !ok || b.UserID != budget.UserID {
		return domainerror.ErrBudgetNotFound
	}
	r.s.budgets[budget.ID] = *budget
	return nil
}

func (r *BudgetRepository) Delete(_ context.Context, id, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.budgets[id]
	if !ok || b.UserID != userID {
		return domainerror.ErrBudgetNotFound
	}
	delete(r.s.budgets, id)
	return nil
}

// LiabilityRepository implements adapter.LiabilityRepository.
type LiabilityRepository struct{ s *Store }

func (r *LiabilityRepository) Create(_ context.Context, liability *entity.Liability) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.liabilities[liability.ID] = *liability
	return nil
}

func (r *LiabilityRepository) FindByID(_ context.Context, id, userID uuid.UUID) (*entity.Liability, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.liabilities[id]
	if !ok || l.UserID != userID {
		return nil, domainerror.ErrLiabilityNotFound
	}
	return &l, nil
}

func (r *LiabilityRepository) FindAllByUser(_ context.Context, userID uuid.UUID) ([]*entity.Liability, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Liability
	for _, l := range r.s.liabilities {
		if l.UserID == userID {
			out = append(out, &l)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Liability) int { return a.StartDate.Compare(b.StartDate) })
	return out, nil
}

func (r *LiabilityRepository) Update(_ context.Context, liability *entity.Liability) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.liabilities[liability.ID]
	if !ok || l.UserID != liability.UserID {
		return domainerror.ErrLiabilityNotFound
	}
	r.s.liabilities[liability.ID] = *liability
	return nil
}

func (r *LiabilityRepository) Delete(_ context.Context, id, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.liabilities[id]
	if !ok || l.UserID != userID {
		return domainerror.ErrLiabilityNotFound
	}
	delete(r.s.liabilities, id)
	return nil
}

// NotificationRepository implements adapter.NotificationRepository.
type NotificationRepository struct{ s *Store }

func (r *NotificationRepository) Create(_ context.Context, notification *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.notifications[notification.ID] = *notification
	return nil
}

func (r *NotificationRepository) ClaimPending(_ context.Context, limit int) ([]*entity.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now().UTC()
	var out []*entity.Notification
	for id, n := range r.s.notifications {
		if limit > 0 && len(out) >= limit {
			break
		}
		if n.Status != entity.NotificationPending || n.ScheduledAt.After(now) {
			continue
		}
		n.MarkProcessing()
		r.s.notifications[id] = n
		out = append(out, &n)
	}
	return out, nil
}

func (r *NotificationRepository) Update(_ context.Context, notification *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.notifications[notification.ID] = *notification
	return nil
}

func compareDue(g *entity.SavingsGoal, date time.Time, id uuid.UUID) int {
	if c := g.NextAutoSaveDate.Compare(date); c != 0 {
		return c
	}
	return strings.Compare(g.ID.String(), id.String())
}
