package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestLiabilityPay(t *testing.T) {
	l := NewLiability(uuid.New(), "Car loan", LiabilityBankLoan, decimal.NewFromInt(1000), time.Now())

	l.Pay(decimal.NewFromInt(333))
	if got := l.ProgressPercentage(); got != 33 {
		t.Errorf("progress = %d, want 33", got)
	}

	l.Pay(decimal.NewFromInt(900))
	if !l.PaidAmount.Equal(l.TotalAmount) {
		t.Errorf("paid = %s, want capped at total", l.PaidAmount)
	}
	if !l.IsPaidOff() {
		t.Error("expected paid off")
	}
}

func TestLiabilityProgressZeroTotal(t *testing.T) {
	l := &Liability{TotalAmount: decimal.Zero}
	if got := l.ProgressPercentage(); got != 100 {
		t.Errorf("progress = %d, want 100", got)
	}
}
