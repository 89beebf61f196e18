package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// CreateGoalRequest represents the request body for savings goal creation.
type CreateGoalRequest struct {
	Name              string           `json:"name" binding:"required,min=1,max=100"`
	TargetAmount      *decimal.Decimal `json:"target_amount" binding:"required"`
	IsAutoSaveEnabled bool             `json:"is_auto_save_enabled"`
	AutoSaveAmount    *decimal.Decimal `json:"auto_save_amount,omitempty"`
	AutoSaveDay       int              `json:"auto_save_day,omitempty"`
}

// UpdateGoalRequest represents the request body for savings goal update.
type UpdateGoalRequest struct {
	Name              *string          `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	TargetAmount      *decimal.Decimal `json:"target_amount,omitempty"`
	IsAutoSaveEnabled *bool            `json:"is_auto_save_enabled,omitempty"`
	AutoSaveAmount    *decimal.Decimal `json:"auto_save_amount,omitempty"`
	AutoSaveDay       *int             `json:"auto_save_day,omitempty"`
}

// MoveMoneyRequest represents the request body for deposit and withdraw.
type MoveMoneyRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required"`
}

// GoalResponse represents a savings goal in API responses.
type GoalResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	TargetAmount       string    `json:"target_amount"`
	CurrentAmount      string    `json:"current_amount"`
	ProgressPercentage string    `json:"progress_percentage"`
	IsAutoSaveEnabled  bool      `json:"is_auto_save_enabled"`
	AutoSaveAmount     string    `json:"auto_save_amount"`
	AutoSaveDay        int       `json:"auto_save_day"`
	NextAutoSaveDate   *string   `json:"next_auto_save_date"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// ToGoalResponse converts a domain SavingsGoal to a GoalResponse DTO.
func ToGoalResponse(goal *entity.SavingsGoal) GoalResponse {
	return GoalResponse{
		ID:                 goal.ID.String(),
		Name:               goal.Name,
		TargetAmount:       money(goal.TargetAmount),
		CurrentAmount:      money(goal.CurrentAmount),
		ProgressPercentage: goal.ProgressPercentage().StringFixed(1),
		IsAutoSaveEnabled:  goal.IsAutoSaveEnabled,
		AutoSaveAmount:     money(goal.AutoSaveAmount),
		AutoSaveDay:        goal.AutoSaveDay,
		NextAutoSaveDate:   formatOptionalDate(goal.NextAutoSaveDate),
		CreatedAt:          goal.CreatedAt,
		UpdatedAt:          goal.UpdatedAt,
	}
}

// ToGoalListResponse converts goals to a GoalListResponse.
func ToGoalListResponse(goals []*entity.SavingsGoal) GoalListResponse {
	out := make([]GoalResponse, len(goals))
	for i, goal := range goals {
		out[i] = ToGoalResponse(goal)
	}
	return GoalListResponse{Goals: out}
}
