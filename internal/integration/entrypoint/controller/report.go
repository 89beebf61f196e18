package controller

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/savings-ledger/internal/application/usecase/report"
	domainerror "github.com/finance-tracker/savings-ledger/internal/domain/error"
	"github.com/finance-tracker/savings-ledger/internal/integration/entrypoint/dto"
)

// ReportController handles report and dashboard endpoints.
type ReportController struct {
	monthlyUseCase   *report.MonthlyReportUseCase
	customUseCase    *report.CustomReportUseCase
	exportUseCase    *report.ExportReportUseCase
	dashboardUseCase *report.DashboardUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	monthlyUseCase *report.MonthlyReportUseCase,
	customUseCase *report.CustomReportUseCase,
	exportUseCase *report.ExportReportUseCase,
	dashboardUseCase *report.DashboardUseCase,
) *ReportController {
	return &ReportController{
		monthlyUseCase:   monthlyUseCase,
		customUseCase:    customUseCase,
		exportUseCase:    exportUseCase,
		dashboardUseCase: dashboardUseCase,
	}
}

// Monthly handles GET /reports/monthly?month&year requests.
func (c *ReportController) Monthly(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	input := report.MonthlyReportInput{UserID: userID}
	if month, err := strconv.Atoi(ctx.Query("month")); err == nil {
		input.Month = month
	}
	if year, err := strconv.Atoi(ctx.Query("year")); err == nil {
		input.Year = year
	}

	output, err := c.monthlyUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyReportResponse(output))
}

// Custom handles GET /reports/custom?start_date&end_date requests.
func (c *ReportController) Custom(ctx *gin.Context) {
	input, ok := c.customInput(ctx)
	if !ok {
		return
	}

	output, err := c.customUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomReportResponse(output))
}

// Export handles GET /reports/custom/export requests with an XLSX download.
func (c *ReportController) Export(ctx *gin.Context) {
	input, ok := c.customInput(ctx)
	if !ok {
		return
	}

	var buf bytes.Buffer
	output, err := c.exportUseCase.Execute(ctx.Request.Context(), input, &buf)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
	ctx.Data(http.StatusOK, output.ContentType, buf.Bytes())
}

// Dashboard handles GET /dashboard requests.
func (c *ReportController) Dashboard(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.dashboardUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(output))
}

func (c *ReportController) customInput(ctx *gin.Context) (report.CustomReportInput, bool) {
	userID, ok := requireUser(ctx)
	if !ok {
		return report.CustomReportInput{}, false
	}

	input := report.CustomReportInput{UserID: userID}
	var err error
	if input.StartDate, err = dto.ParseOptionalDate(ctx.Query("start_date")); err != nil {
		badRequest(ctx, "Invalid start_date, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidReportPeriod), nil)
		return input, false
	}
	if input.EndDate, err = dto.ParseOptionalDate(ctx.Query("end_date")); err != nil {
		badRequest(ctx, "Invalid end_date, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidReportPeriod), nil)
		return input, false
	}
	return input, true
}

// handleReportError handles report errors and returns appropriate HTTP responses.
func (c *ReportController) handleReportError(ctx *gin.Context, err error) {
	var rptErr *domainerror.ReportError
	if errors.As(err, &rptErr) {
		status := http.StatusInternalServerError
		if rptErr.Code == domainerror.ErrCodeInvalidReportPeriod {
			status = http.StatusBadRequest
		} else {
			slog.Error("Report export failed", "error", err)
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: rptErr.Message,
			Code:  string(rptErr.Code),
		})
		return
	}

	slog.Error("Report request failed", "error", err)
	internalError(ctx)
}
