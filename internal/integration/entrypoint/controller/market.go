package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/savings-ledger/internal/application/usecase/market"
	"github.com/finance-tracker/savings-ledger/internal/integration/entrypoint/dto"
)

// MarketController serves the exchange rate widget.
type MarketController struct {
	getRatesUseCase *market.GetRatesUseCase
}

// NewMarketController creates a new market controller instance.
func NewMarketController(getRatesUseCase *market.GetRatesUseCase) *MarketController {
	return &MarketController{getRatesUseCase: getRatesUseCase}
}

// Rates handles GET /market/rates requests. Upstream failures still
// answer 200 with available=false.
func (c *MarketController) Rates(ctx *gin.Context) {
	output := c.getRatesUseCase.Execute(ctx.Request.Context())
	ctx.JSON(http.StatusOK, dto.ToRatesResponse(output))
}
