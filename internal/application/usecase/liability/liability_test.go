package liability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/usecase/usecasetest"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
)

func newLoan(t *testing.T, store *usecasetest.Store, userID uuid.UUID, installment *decimal.Decimal) *entity.Liability {
	t.Helper()

	liability, err := NewCreateLiabilityUseCase(store.Liabilities).Execute(context.Background(), CreateLiabilityInput{
		UserID:             userID,
		Title:              "Car loan",
		Type:               entity.LiabilityBankLoan,
		TotalAmount:        decimal.NewFromInt(1000),
		StartDate:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		MonthlyInstallment: installment,
	})
	if err != nil {
		t.Fatalf("failed to create liability: %v", err)
	}
	return liability
}

func TestCreateLiabilityUseCase_Validation(t *testing.T) {
	store := usecasetest.NewStore()
	uc := NewCreateLiabilityUseCase(store.Liabilities)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	before := start.AddDate(0, 0, -1)

	tests := []struct {
		name  string
		input CreateLiabilityInput
		want  error
	}{
		{"blank title", CreateLiabilityInput{Title: "", Type: entity.LiabilityBankLoan, StartDate: start}, domainerror.ErrInvalidLiabilityTitle},
		{"unknown type", CreateLiabilityInput{Title: "x", Type: "mortgage", StartDate: start}, domainerror.ErrInvalidLiabilityType},
		{"paid above total", CreateLiabilityInput{Title: "x", Type: entity.LiabilityFriendDebt, TotalAmount: decimal.NewFromInt(10), PaidAmount: decimal.NewFromInt(11), StartDate: start}, domainerror.ErrInvalidLiabilityAmount},
		{"end before start", CreateLiabilityInput{Title: "x", Type: entity.LiabilityFriendDebt, StartDate: start, EndDate: &before}, domainerror.ErrInvalidLiabilityDates},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.UserID = uuid.New()
			if _, err := uc.Execute(context.Background(), tt.input); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestPayInstallmentUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("pays the monthly installment and caps at the total", func(t *testing.T) {
		store := usecasetest.NewStore()
		userID := uuid.New()
		installment := decimal.NewFromInt(400)
		loan := newLoan(t, store, userID, &installment)
		uc := NewPayInstallmentUseCase(store.Liabilities)

		var paid *entity.Liability
		for range 3 {
			var err error
			paid, err = uc.Execute(ctx, PayInstallmentInput{LiabilityID: loan.ID, UserID: userID})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if !paid.PaidAmount.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected paid 1000, got %s", paid.PaidAmount)
		}
		if paid.ProgressPercentage() != 100 || !paid.IsPaidOff() {
			t.Errorf("expected loan paid off, got %d%%", paid.ProgressPercentage())
		}
	})

	t.Run("explicit amount overrides the installment", func(t *testing.T) {
		store := usecasetest.NewStore()
		userID := uuid.New()
		loan := newLoan(t, store, userID, nil)
		amount := decimal.RequireFromString("125.50")

		paid, err := NewPayInstallmentUseCase(store.Liabilities).Execute(ctx, PayInstallmentInput{LiabilityID: loan.ID, UserID: userID, Amount: &amount})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if paid.ProgressPercentage() != 12 {
			t.Errorf("expected 12%%, got %d%%", paid.ProgressPercentage())
		}
	})

	t.Run("missing installment is rejected", func(t *testing.T) {
		store := usecasetest.NewStore()
		userID := uuid.New()
		loan := newLoan(t, store, userID, nil)

		_, err := NewPayInstallmentUseCase(store.Liabilities).Execute(ctx, PayInstallmentInput{LiabilityID: loan.ID, UserID: userID})
		if !errors.Is(err, domainerror.ErrInvalidInstallment) {
			t.Errorf("expected ErrInvalidInstallment, got %v", err)
		}
	})
}

func TestLiabilitiesAreScopedByUser(t *testing.T) {
	ctx := context.Background()
	store := usecasetest.NewStore()
	owner, other := uuid.New(), uuid.New()
	loan := newLoan(t, store, owner, nil)

	if _, err := NewGetLiabilityUseCase(store.Liabilities).Execute(ctx, loan.ID, other); !errors.Is(err, domainerror.ErrLiabilityNotFound) {
		t.Errorf("expected ErrLiabilityNotFound, got %v", err)
	}
	listed, err := NewListLiabilitiesUseCase(store.Liabilities).Execute(ctx, other)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("expected no liabilities for another user, got %d", len(listed))
	}
	if err := NewDeleteLiabilityUseCase(store.Liabilities).Execute(ctx, loan.ID, other); !errors.Is(err, domainerror.ErrLiabilityNotFound) {
		t.Errorf("expected ErrLiabilityNotFound, got %v", err)
	}
	if err := NewDeleteLiabilityUseCase(store.Liabilities).Execute(ctx, loan.ID, owner); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestUpdateLiabilityUseCase(t *testing.T) {
	ctx := context.Background()
	store := usecasetest.NewStore()
	userID := uuid.New()
	installment := decimal.NewFromInt(100)
	loan := newLoan(t, store, userID, &installment)
	uc := NewUpdateLiabilityUseCase(store.Liabilities)

	total := decimal.NewFromInt(50)
	paid := decimal.NewFromInt(60)
	if _, err := uc.Execute(ctx, UpdateLiabilityInput{LiabilityID: loan.ID, UserID: userID, TotalAmount: &total, PaidAmount: &paid}); !errors.Is(err, domainerror.ErrInvalidLiabilityAmount) {
		t.Errorf("expected ErrInvalidLiabilityAmount, got %v", err)
	}

	title := "Renamed"
	updated, err := uc.Execute(ctx, UpdateLiabilityInput{LiabilityID: loan.ID, UserID: userID, Title: &title, ClearInstallment: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Renamed" || updated.MonthlyInstallment != nil {
		t.Errorf("unexpected liability: %+v", updated)
	}
}
