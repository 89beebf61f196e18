// Package usecasetest provides in-memory implementations of the adapter
// interfaces for use-case tests.
package usecasetest

import (
	"context"
	"maps"
	"sync"

	"github.com/google/uuid"

	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// Store is an in-memory database shared by the fake repositories. Its
// Transactor snapshots the store and restores it when the unit of work fails.
type Store struct {
	mu sync.Mutex

	users         map[uuid.UUID]entity.User
	categories    map[uuid.UUID]entity.Category
	categoryOrder []uuid.UUID
	transactions  map[uuid.UUID]entity.Transaction
	goals         map[uuid.UUID]entity.SavingsGoal
	events        map[uuid.UUID]entity.PaymentEvent
	budgets       map[uuid.UUID]entity.Budget
	liabilities   map[uuid.UUID]entity.Liability
	notifications map[uuid.UUID]entity.Notification

	Users         *UserRepository
	Categories    *CategoryRepository
	Transactions  *TransactionRepository
	Goals         *SavingsGoalRepository
	Events        *PaymentEventRepository
	Budgets       *BudgetRepository
	Liabilities   *LiabilityRepository
	Notifications *NotificationRepository
	Transactor    *Transactor
}

// NewStore creates an empty store.
func NewStore() *Store {
	s := &Store{
		users:         make(map[uuid.UUID]entity.User),
		categories:    make(map[uuid.UUID]entity.Category),
		transactions:  make(map[uuid.UUID]entity.Transaction),
		goals:         make(map[uuid.UUID]entity.SavingsGoal),
		events:        make(map[uuid.UUID]entity.PaymentEvent),
		budgets:       make(map[uuid.UUID]entity.Budget),
		liabilities:   make(map[uuid.UUID]entity.Liability),
		notifications: make(map[uuid.UUID]entity.Notification),
	}
	s.Users = &UserRepository{s: s}
	s.Categories = &CategoryRepository{s: s}
	s.Transactions = &TransactionRepository{s: s}
	s.Goals = &SavingsGoalRepository{s: s}
	s.Events = &PaymentEventRepository{s: s}
	s.Budgets = &BudgetRepository{s: s}
	s.Liabilities = &LiabilityRepository{s: s}
	s.Notifications = &NotificationRepository{s: s}
	s.Transactor = &Transactor{s: s}
	return s
}

type snapshot struct {
	users         map[uuid.UUID]entity.User
	categories    map[uuid.UUID]entity.Category
	categoryOrder []uuid.UUID
	transactions  map[uuid.UUID]entity.Transaction
	goals         map[uuid.UUID]entity.SavingsGoal
	events        map[uuid.UUID]entity.PaymentEvent
	budgets       map[uuid.UUID]entity.Budget
	liabilities   map[uuid.UUID]entity.Liability
	notifications map[uuid.UUID]entity.Notification
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		users:         maps.Clone(s.users),
		categories:    maps.Clone(s.categories),
		categoryOrder: append([]uuid.UUID(nil), s.categoryOrder...),
		transactions:  maps.Clone(s.transactions),
		goals:         maps.Clone(s.goals),
		events:        maps.Clone(s.events),
		budgets:       maps.Clone(s.budgets),
		liabilities:   maps.Clone(s.liabilities),
		notifications: maps.Clone(s.notifications),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.categories = snap.categories
	s.categoryOrder = snap.categoryOrder
	s.transactions = snap.transactions
	s.goals = snap.goals
	s.events = snap.events
	s.budgets = snap.budgets
	s.liabilities = snap.liabilities
	s.notifications = snap.notifications
}

type txKey struct{}

// Transactor implements adapter.Transactor over the store.
type Transactor struct {
	s     *Store
	Calls int
}

// WithinTransaction runs fn and restores the store when it fails.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	t.Calls++
	snap := t.s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

// AddUser stores a user directly.
func (s *Store) AddUser(user *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
}

// AddCategory stores a category directly.
func (s *Store) AddCategory(category *entity.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[category.ID] = *category
	s.categoryOrder = append(s.categoryOrder, category.ID)
}

// LedgerFor returns the user's ledger entries in insertion-independent order.
func (s *Store) LedgerFor(userID uuid.UUID) []entity.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Transaction
	for _, t := range s.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}

// NotificationsFor returns the notifications queued for the user.
func (s *Store) NotificationsFor(userID uuid.UUID) []entity.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}
