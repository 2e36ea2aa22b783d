package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/jmallet/cashplan/internal/core/ports/services"
	"github.com/jmallet/cashplan/internal/dto"
	"github.com/jmallet/cashplan/internal/middleware"
)

// nowFunc lets tests pin the projection date.
type nowFunc func() time.Time

func defaultNow() time.Time { return time.Now().UTC() }

type forecastHandler struct {
	forecastService portssvc.ForecastSvc
	now             nowFunc
}

func newForecastHandler(svc portssvc.ForecastSvc) *forecastHandler {
	return &forecastHandler{forecastService: svc, now: defaultNow}
}

func registerForecastRoutes(rg *gin.RouterGroup, svc portssvc.ForecastSvc) {
	h := newForecastHandler(svc)

	forecast := rg.Group("/forecast")
	{
		forecast.GET("", h.getForecast)
		forecast.GET("/transactions", h.forecastTransactions)
	}
}

// getForecast godoc
// @Summary Twelve-month forecast
// @Description Projects recurring rules, reimbursements and deferred-debit
// @Description summaries over the next twelve months and returns per-month
// @Description balance snapshots
// @Tags forecast
// @Produce json
// @Success 200 {object} dto.ForecastResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /forecast [get]
func (h *forecastHandler) getForecast(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	forecast, err := h.forecastService.BuildForecast(c.Request.Context(), userID, h.now())
	if err != nil {
		logger.Error("Failed to build forecast", "error", err)
		respondServiceError(c, err, "Failed to build forecast")
		return
	}

	c.JSON(http.StatusOK, dto.ToForecastResponse(forecast))
}

// forecastTransactions godoc
// @Summary Merged forecast transactions
// @Description Returns real and projected transactions combined, newest
// @Description first; projections already covered by a validated occurrence
// @Description are dropped
// @Tags forecast
// @Produce json
// @Success 200 {object} dto.ForecastTransactionsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /forecast/transactions [get]
func (h *forecastHandler) forecastTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txns, err := h.forecastService.MergedTransactions(c.Request.Context(), userID, h.now())
	if err != nil {
		logger.Error("Failed to merge forecast transactions", "error", err)
		respondServiceError(c, err, "Failed to merge forecast transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ForecastTransactionsResponse{Transactions: dto.ToListTransactionResponse(txns)})
}
