package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestEvaluateBudget(t *testing.T) {
	budget := NewBudget(uuid.New(), uuid.New(), decimal.NewFromInt(500), time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC), PriorityMedium)
	if budget.Month.Day() != 1 {
		t.Fatalf("month not normalized: %v", budget.Month)
	}

	t.Run("over budget", func(t *testing.T) {
		status := EvaluateBudget(budget, nil, decimal.NewFromInt(620))
		if !status.Remaining.Equal(decimal.NewFromInt(-120)) {
			t.Errorf("remaining = %s", status.Remaining)
		}
		if !status.IsOverBudget {
			t.Error("expected over budget")
		}
		if !status.Percentage.Equal(decimal.NewFromInt(124)) {
			t.Errorf("percentage = %s", status.Percentage)
		}
	})

	t.Run("exactly on budget is not over", func(t *testing.T) {
		status := EvaluateBudget(budget, nil, decimal.NewFromInt(500))
		if status.IsOverBudget {
			t.Error("spent == amount must not be over budget")
		}
	})
}

func TestBudgetPriorityRank(t *testing.T) {
	if !(PriorityHigh.Rank() > PriorityMedium.Rank() && PriorityMedium.Rank() > PriorityLow.Rank()) {
		t.Error("unexpected priority ordering")
	}
	if BudgetPriority("urgent").IsValid() {
		t.Error("unknown priority must be invalid")
	}
}
