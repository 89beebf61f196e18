package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/usecase/savings"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
	"github.com/finance-tracker/savings-ledger/internal/integration/entrypoint/dto"
)

// SavingsController handles savings goal endpoints.
type SavingsController struct {
	listUseCase     *savings.ListGoalsUseCase
	getUseCase      *savings.GetGoalUseCase
	createUseCase   *savings.CreateGoalUseCase
	updateUseCase   *savings.UpdateGoalUseCase
	deleteUseCase   *savings.DeleteGoalUseCase
	depositUseCase  *savings.DepositUseCase
	withdrawUseCase *savings.WithdrawUseCase
}

// NewSavingsController creates a new savings controller instance.
func NewSavingsController(
	listUseCase *savings.ListGoalsUseCase,
	getUseCase *savings.GetGoalUseCase,
	createUseCase *savings.CreateGoalUseCase,
	updateUseCase *savings.UpdateGoalUseCase,
	deleteUseCase *savings.DeleteGoalUseCase,
	depositUseCase *savings.DepositUseCase,
	withdrawUseCase *savings.WithdrawUseCase,
) *SavingsController {
	return &SavingsController{
		listUseCase:     listUseCase,
		getUseCase:      getUseCase,
		createUseCase:   createUseCase,
		updateUseCase:   updateUseCase,
		deleteUseCase:   deleteUseCase,
		depositUseCase:  depositUseCase,
		withdrawUseCase: withdrawUseCase,
	}
}

// List handles GET /goals requests.
func (c *SavingsController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	goals, err := c.listUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		c.handleSavingsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(goals))
}

// Get handles GET /goals/:id requests.
func (c *SavingsController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	goalID, ok := pathID(ctx, "goal")
	if !ok {
		return
	}

	goal, err := c.getUseCase.Execute(ctx.Request.Context(), goalID, userID)
	if err != nil {
		c.handleSavingsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(goal))
}

// Create handles POST /goals requests.
func (c *SavingsController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingSavingsFields), err)
		return
	}

	input := savings.CreateGoalInput{
		UserID:            userID,
		Name:              req.Name,
		TargetAmount:      *req.TargetAmount,
		IsAutoSaveEnabled: req.IsAutoSaveEnabled,
		AutoSaveAmount:    decimal.Zero,
		AutoSaveDay:       req.AutoSaveDay,
	}
	if req.AutoSaveAmount != nil {
		input.AutoSaveAmount = *req.AutoSaveAmount
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleSavingsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(output.Goal))
}

// Update handles PATCH /goals/:id requests.
func (c *SavingsController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	goalID, ok := pathID(ctx, "goal")
	if !ok {
		return
	}

	var req dto.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingSavingsFields), err)
		return
	}

	goal, err := c.updateUseCase.Execute(ctx.Request.Context(), savings.UpdateGoalInput{
		GoalID:            goalID,
		UserID:            userID,
		Name:              req.Name,
		TargetAmount:      req.TargetAmount,
		IsAutoSaveEnabled: req.IsAutoSaveEnabled,
		AutoSaveAmount:    req.AutoSaveAmount,
		AutoSaveDay:       req.AutoSaveDay,
	})
	if err != nil {
		c.handleSavingsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(goal))
}

// Delete handles DELETE /goals/:id requests.
// Any saved amount is refunded to the ledger.
func (c *SavingsController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	goalID, ok := pathID(ctx, "goal")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), goalID, userID); err != nil {
		c.handleSavingsError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Deposit handles POST /goals/:id/deposit requests.
func (c *SavingsController) Deposit(ctx *gin.Context) {
	c.moveMoney(ctx, c.depositUseCase.Execute)
}

// Withdraw handles POST /goals/:id/withdraw requests.
func (c *SavingsController) Withdraw(ctx *gin.Context) {
	c.moveMoney(ctx, c.withdrawUseCase.Execute)
}

func (c *SavingsController) moveMoney(
	ctx *gin.Context,
	execute func(ctx context.Context, input savings.MoveMoneyInput) (*entity.SavingsGoal, error),
) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	goalID, ok := pathID(ctx, "goal")
	if !ok {
		return
	}

	var req dto.MoveMoneyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingSavingsFields), err)
		return
	}

	goal, err := execute(ctx.Request.Context(), savings.MoveMoneyInput{
		GoalID: goalID,
		UserID: userID,
		Amount: *req.Amount,
	})
	if err != nil {
		c.handleSavingsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(goal))
}

// handleSavingsError handles savings errors and returns appropriate HTTP responses.
func (c *SavingsController) handleSavingsError(ctx *gin.Context, err error) {
	var savErr *domainerror.SavingsError
	if errors.As(err, &savErr) {
		ctx.JSON(c.getStatusCodeForSavingsError(savErr.Code), dto.ErrorResponse{
			Error: savErr.Message,
			Code:  string(savErr.Code),
		})
		return
	}

	slog.Error("Savings request failed", "error", err)
	internalError(ctx)
}

// getStatusCodeForSavingsError maps savings error codes to HTTP status codes.
func (c *SavingsController) getStatusCodeForSavingsError(code domainerror.SavingsErrorCode) int {
	switch code {
	case domainerror.ErrCodeSavingsGoalNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidGoalName,
		domainerror.ErrCodeInvalidTargetAmount,
		domainerror.ErrCodeInvalidAutoSaveAmount,
		domainerror.ErrCodeInvalidAutoSaveDay,
		domainerror.ErrCodeMissingSavingsFields,
		domainerror.ErrCodeInvalidSavingsAmount:
		return http.StatusBadRequest
	case domainerror.ErrCodeInsufficientFunds:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeSavingsConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
