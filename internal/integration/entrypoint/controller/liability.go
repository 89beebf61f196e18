package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/savings-ledger/internal/application/usecase/liability"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
	"github.com/finance-tracker/savings-ledger/internal/integration/entrypoint/dto"
)

// LiabilityController handles liability endpoints.
type LiabilityController struct {
	listUseCase   *liability.ListLiabilitiesUseCase
	getUseCase    *liability.GetLiabilityUseCase
	createUseCase *liability.CreateLiabilityUseCase
	updateUseCase *liability.UpdateLiabilityUseCase
	deleteUseCase *liability.DeleteLiabilityUseCase
	payUseCase    *liability.PayInstallmentUseCase
}

// NewLiabilityController creates a new liability controller instance.
func NewLiabilityController(
	listUseCase *liability.ListLiabilitiesUseCase,
	getUseCase *liability.GetLiabilityUseCase,
	createUseCase *liability.CreateLiabilityUseCase,
	updateUseCase *liability.UpdateLiabilityUseCase,
	deleteUseCase *liability.DeleteLiabilityUseCase,
	payUseCase *liability.PayInstallmentUseCase,
) *LiabilityController {
	return &LiabilityController{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		payUseCase:    payUseCase,
	}
}

// List handles GET /liabilities requests.
func (c *LiabilityController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	liabilities, err := c.listUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		c.handleLiabilityError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLiabilityListResponse(liabilities))
}

// Get handles GET /liabilities/:id requests.
func (c *LiabilityController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	liabilityID, ok := pathID(ctx, "liability")
	if !ok {
		return
	}

	l, err := c.getUseCase.Execute(ctx.Request.Context(), liabilityID, userID)
	if err != nil {
		c.handleLiabilityError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLiabilityResponse(l))
}

// Create handles POST /liabilities requests.
func (c *LiabilityController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateLiabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingLiabilityFields), err)
		return
	}

	startDate, err := dto.ParseDate(req.StartDate)
	if err != nil {
		badRequest(ctx, "Invalid start_date, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidLiabilityDates), nil)
		return
	}
	endDate, err := dto.ParseOptionalDate(req.EndDate)
	if err != nil {
		badRequest(ctx, "Invalid end_date, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidLiabilityDates), nil)
		return
	}

	input := liability.CreateLiabilityInput{
		UserID:             userID,
		Title:              req.Title,
		Type:               entity.LiabilityType(req.Type),
		TotalAmount:        *req.TotalAmount,
		PaidAmount:         decimal.Zero,
		StartDate:          startDate,
		EndDate:            endDate,
		MonthlyInstallment: req.MonthlyInstallment,
		ReminderEnabled:    req.ReminderEnabled,
		Description:        req.Description,
	}
	if req.PaidAmount != nil {
		input.PaidAmount = *req.PaidAmount
	}

	l, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleLiabilityError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToLiabilityResponse(l))
}

// Update handles PATCH /liabilities/:id requests.
func (c *LiabilityController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	liabilityID, ok := pathID(ctx, "liability")
	if !ok {
		return
	}

	var req dto.UpdateLiabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingLiabilityFields), err)
		return
	}

	input := liability.UpdateLiabilityInput{
		LiabilityID:        liabilityID,
		UserID:             userID,
		Title:              req.Title,
		TotalAmount:        req.TotalAmount,
		PaidAmount:         req.PaidAmount,
		MonthlyInstallment: req.MonthlyInstallment,
		ClearInstallment:   req.ClearInstallment,
		ReminderEnabled:    req.ReminderEnabled,
		Description:        req.Description,
	}
	if req.Type != nil {
		liabilityType := entity.LiabilityType(*req.Type)
		input.Type = &liabilityType
	}
	if req.StartDate != nil {
		startDate, err := dto.ParseDate(*req.StartDate)
		if err != nil {
			badRequest(ctx, "Invalid start_date, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidLiabilityDates), nil)
			return
		}
		input.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := dto.ParseOptionalDate(*req.EndDate)
		if err != nil {
			badRequest(ctx, "Invalid end_date, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidLiabilityDates), nil)
			return
		}
		input.EndDate = endDate
		input.ClearEndDate = endDate == nil
	}

	l, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleLiabilityError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLiabilityResponse(l))
}

// Pay handles POST /liabilities/:id/pay requests.
func (c *LiabilityController) Pay(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	liabilityID, ok := pathID(ctx, "liability")
	if !ok {
		return
	}

	var req dto.PayInstallmentRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeInvalidInstallment), err)
			return
		}
	}

	l, err := c.payUseCase.Execute(ctx.Request.Context(), liability.PayInstallmentInput{
		LiabilityID: liabilityID,
		UserID:      userID,
		Amount:      req.Amount,
	})
	if err != nil {
		c.handleLiabilityError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLiabilityResponse(l))
}

// Delete handles DELETE /liabilities/:id requests.
func (c *LiabilityController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	liabilityID, ok := pathID(ctx, "liability")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), liabilityID, userID); err != nil {
		c.handleLiabilityError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleLiabilityError handles liability errors and returns appropriate HTTP responses.
func (c *LiabilityController) handleLiabilityError(ctx *gin.Context, err error) {
	var liaErr *domainerror.LiabilityError
	if errors.As(err, &liaErr) {
		ctx.JSON(c.getStatusCodeForLiabilityError(liaErr.Code), dto.ErrorResponse{
			Error: liaErr.Message,
			Code:  string(liaErr.Code),
		})
		return
	}

	slog.Error("Liability request failed", "error", err)
	internalError(ctx)
}

// getStatusCodeForLiabilityError maps liability error codes to HTTP status codes.
func (c *LiabilityController) getStatusCodeForLiabilityError(code domainerror.LiabilityErrorCode) int {
	switch code {
	case domainerror.ErrCodeLiabilityNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidLiabilityTitle,
		domainerror.ErrCodeInvalidLiabilityType,
		domainerror.ErrCodeInvalidLiabilityAmount,
		domainerror.ErrCodeInvalidInstallment,
		domainerror.ErrCodeInvalidLiabilityDates,
		domainerror.ErrCodeMissingLiabilityFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
