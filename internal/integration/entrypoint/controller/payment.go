package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/savings-ledger/internal/application/usecase/payment"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
	"github.com/finance-tracker/savings-ledger/internal/integration/entrypoint/dto"
)

// PaymentController handles payment event and calendar endpoints.
type PaymentController struct {
	listUseCase     *payment.ListEventsUseCase
	saveUseCase     *payment.SaveEventUseCase
	deleteUseCase   *payment.DeleteEventUseCase
	calendarUseCase *payment.CalendarUseCase
	confirmUseCase  *payment.ConfirmPaymentUseCase
}

// NewPaymentController creates a new payment controller instance.
func NewPaymentController(
	listUseCase *payment.ListEventsUseCase,
	saveUseCase *payment.SaveEventUseCase,
	deleteUseCase *payment.DeleteEventUseCase,
	calendarUseCase *payment.CalendarUseCase,
	confirmUseCase *payment.ConfirmPaymentUseCase,
) *PaymentController {
	return &PaymentController{
		listUseCase:     listUseCase,
		saveUseCase:     saveUseCase,
		deleteUseCase:   deleteUseCase,
		calendarUseCase: calendarUseCase,
		confirmUseCase:  confirmUseCase,
	}
}

// List handles GET /payment-events requests.
func (c *PaymentController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	events, err := c.listUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		c.handlePaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEventListResponse(events))
}

// Save handles POST /payment-events requests. A body without an id creates
// a new event; with an id it updates the caller's event.
func (c *PaymentController) Save(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.SaveEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingPaymentFields), err)
		return
	}

	eventID, err := parseOptionalID(req.ID)
	if err != nil {
		badRequest(ctx, "Invalid payment event ID format", "", nil)
		return
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		badRequest(ctx, "Invalid date format, expected YYYY-MM-DD", string(domainerror.ErrCodeMissingPaymentFields), nil)
		return
	}

	output, err := c.saveUseCase.Execute(ctx.Request.Context(), payment.SaveEventInput{
		ID:          eventID,
		UserID:      userID,
		Title:       req.Title,
		Amount:      *req.Amount,
		Date:        date,
		Frequency:   entity.PaymentFrequency(req.Frequency),
		Description: req.Description,
		IsPaid:      req.IsPaid,
	})
	if err != nil {
		c.handlePaymentError(ctx, err)
		return
	}

	status := http.StatusOK
	if output.Created {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.SaveEventResponse{
		Event:   dto.ToEventResponse(output.Event),
		Created: output.Created,
	})
}

// Delete handles DELETE /payment-events/:id requests.
func (c *PaymentController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	eventID, ok := pathID(ctx, "payment event")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), eventID, userID); err != nil {
		c.handlePaymentError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Calendar handles GET /payment-events/calendar?start&end requests.
// Without a range the current month is returned.
func (c *PaymentController) Calendar(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	if s := ctx.Query("start"); s != "" {
		parsed, err := parseCalendarDate(s)
		if err != nil {
			badRequest(ctx, "Invalid start, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidDateRange), nil)
			return
		}
		start = parsed
	}
	if s := ctx.Query("end"); s != "" {
		parsed, err := parseCalendarDate(s)
		if err != nil {
			badRequest(ctx, "Invalid end, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidDateRange), nil)
			return
		}
		end = parsed
	}

	occurrences, err := c.calendarUseCase.Execute(ctx.Request.Context(), payment.CalendarInput{
		UserID: userID,
		Start:  start,
		End:    end,
	})
	if err != nil {
		c.handlePaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOccurrenceResponses(occurrences))
}

// Confirm handles POST /payment-events/:id/confirm requests.
func (c *PaymentController) Confirm(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	eventID, ok := pathID(ctx, "payment event")
	if !ok {
		return
	}

	event, err := c.confirmUseCase.Execute(ctx.Request.Context(), eventID, userID)
	if err != nil {
		c.handlePaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEventResponse(event))
}

// parseCalendarDate accepts a plain date or the ISO timestamps calendar
// widgets send.
func parseCalendarDate(s string) (time.Time, error) {
	if t, err := dto.ParseDate(s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// handlePaymentError handles payment errors and returns appropriate HTTP responses.
func (c *PaymentController) handlePaymentError(ctx *gin.Context, err error) {
	var payErr *domainerror.PaymentError
	if errors.As(err, &payErr) {
		ctx.JSON(c.getStatusCodeForPaymentError(payErr.Code), dto.ErrorResponse{
			Error: payErr.Message,
			Code:  string(payErr.Code),
		})
		return
	}

	slog.Error("Payment event request failed", "error", err)
	internalError(ctx)
}

// getStatusCodeForPaymentError maps payment error codes to HTTP status codes.
func (c *PaymentController) getStatusCodeForPaymentError(code domainerror.PaymentErrorCode) int {
	switch code {
	case domainerror.ErrCodePaymentEventNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidPaymentTitle,
		domainerror.ErrCodeInvalidPaymentAmount,
		domainerror.ErrCodeInvalidFrequency,
		domainerror.ErrCodeInvalidDateRange,
		domainerror.ErrCodeMissingPaymentFields:
		return http.StatusBadRequest
	case domainerror.ErrCodePaymentConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
