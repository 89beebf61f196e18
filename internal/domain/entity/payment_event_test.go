package entity

import (
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestConfirm(t *testing.T) {
	now := day(2024, 6, 15)

	t.Run("one-time becomes paid", func(t *testing.T) {
		event := NewPaymentEvent(uuid.New(), "Insurance", decimal.NewFromInt(300), day(2024, 6, 1), FrequencyOneTime, "", false)
		event.Confirm(now)
		if !event.IsPaid {
			t.Error("expected one-time event to be paid")
		}
		if !event.Date.Equal(day(2024, 6, 1)) {
			t.Errorf("one-time date must not move, got %v", event.Date)
		}
	})

	t.Run("monthly catches up past now", func(t *testing.T) {
		anchor := day(2024, 3, 10)
		event := NewPaymentEvent(uuid.New(), "Rent", decimal.NewFromInt(1200), anchor, FrequencyMonthly, "", true)
		event.Confirm(now)

		if event.IsPaid {
			t.Error("recurring event must stay unpaid")
		}
		if !event.Date.After(now) {
			t.Errorf("expected date after now, got %v", event.Date)
		}
		if !event.Date.Equal(day(2024, 7, 10)) {
			t.Errorf("date = %v, want 2024-07-10", event.Date)
		}
	})

	t.Run("monthly in the future advances exactly one period", func(t *testing.T) {
		event := NewPaymentEvent(uuid.New(), "Phone", decimal.NewFromInt(50), day(2024, 6, 20), FrequencyMonthly, "", false)
		event.Confirm(now)
		if !event.Date.Equal(day(2024, 7, 20)) {
			t.Errorf("date = %v, want 2024-07-20", event.Date)
		}
	})

	t.Run("yearly", func(t *testing.T) {
		event := NewPaymentEvent(uuid.New(), "Domain", decimal.NewFromInt(15), day(2024, 2, 29), FrequencyYearly, "", false)
		event.Confirm(now)
		if !event.Date.Equal(day(2025, 2, 28)) {
			t.Errorf("date = %v, want 2025-02-28", event.Date)
		}
	})
}

func TestOccurrences(t *testing.T) {
	t.Run("monthly rolls forward from anchor", func(t *testing.T) {
		event := NewPaymentEvent(uuid.New(), "Gym", decimal.NewFromInt(40), day(2024, 1, 31), FrequencyMonthly, "", false)
		got := slices.Collect(event.Occurrences(day(2024, 3, 1), day(2024, 5, 31)))
		want := []time.Time{day(2024, 3, 29), day(2024, 4, 29), day(2024, 5, 29)}
		if !slices.EqualFunc(got, want, time.Time.Equal) {
			t.Errorf("occurrences = %v, want %v", got, want)
		}
	})

	t.Run("range ends are inclusive", func(t *testing.T) {
		event := NewPaymentEvent(uuid.New(), "Gym", decimal.NewFromInt(40), day(2024, 1, 10), FrequencyMonthly, "", false)
		got := slices.Collect(event.Occurrences(day(2024, 2, 10), day(2024, 3, 10)))
		if len(got) != 2 {
			t.Errorf("expected 2 occurrences, got %v", got)
		}
	})

	t.Run("one-time in range", func(t *testing.T) {
		event := NewPaymentEvent(uuid.New(), "Fee", decimal.NewFromInt(10), day(2024, 4, 4), FrequencyOneTime, "", false)
		if got := slices.Collect(event.Occurrences(day(2024, 4, 1), day(2024, 4, 30))); len(got) != 1 {
			t.Errorf("expected one occurrence, got %v", got)
		}
	})

	t.Run("confirmed one-time never appears in later ranges", func(t *testing.T) {
		event := NewPaymentEvent(uuid.New(), "Fee", decimal.NewFromInt(10), day(2024, 4, 4), FrequencyOneTime, "", false)
		event.Confirm(day(2024, 4, 5))
		for m := time.May; m <= time.December; m++ {
			start := day(2024, m, 1)
			if got := slices.Collect(event.Occurrences(start, start.AddDate(0, 1, -1))); len(got) != 0 {
				t.Errorf("unexpected occurrence in %s: %v", m, got)
			}
		}
	})

	t.Run("early stop", func(t *testing.T) {
		event := NewPaymentEvent(uuid.New(), "Gym", decimal.NewFromInt(40), day(2024, 1, 1), FrequencyMonthly, "", false)
		count := 0
		for range event.Occurrences(day(2024, 1, 1), day(2030, 1, 1)) {
			count++
			if count == 3 {
				break
			}
		}
		if count != 3 {
			t.Errorf("count = %d", count)
		}
	})
}

func TestColorAt(t *testing.T) {
	now := day(2024, 6, 15)
	event := &PaymentEvent{}

	if got := event.ColorAt(day(2024, 6, 1), now); got != ColorOverdue {
		t.Errorf("past unpaid = %s", got)
	}
	if got := event.ColorAt(day(2024, 6, 30), now); got != ColorUpcoming {
		t.Errorf("future unpaid = %s", got)
	}
	event.IsPaid = true
	if got := event.ColorAt(day(2024, 6, 1), now); got != ColorPaid {
		t.Errorf("paid = %s", got)
	}
}
