package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/jmallet/cashplan/internal/core/ports/services"
	"github.com/jmallet/cashplan/internal/dto"
	"github.com/jmallet/cashplan/internal/middleware"
)

type recurringHandler struct {
	recurringService portssvc.RecurringSvc
}

func newRecurringHandler(svc portssvc.RecurringSvc) *recurringHandler {
	return &recurringHandler{recurringService: svc}
}

func registerRecurringRoutes(rg *gin.RouterGroup, svc portssvc.RecurringSvc) {
	h := newRecurringHandler(svc)

	expenses := rg.Group("/recurring-expenses")
	{
		expenses.POST("", h.createRecurringExpense)
		expenses.GET("", h.listRecurringExpenses)
		expenses.PUT("/:id", h.updateRecurringExpense)
		expenses.DELETE("/:id", h.deleteRecurringExpense)
	}

	transfers := rg.Group("/recurring-transfers")
	{
		transfers.POST("", h.createRecurringTransfer)
		transfers.GET("", h.listRecurringTransfers)
		transfers.PUT("/:id", h.updateRecurringTransfer)
		transfers.DELETE("/:id", h.deleteRecurringTransfer)
	}
}

// createRecurringExpense godoc
// @Summary Create a recurring expense rule
// @Description Creates a rule whose future occurrences appear as potential
// @Description transactions in the forecast
// @Tags recurring
// @Accept json
// @Produce json
// @Param rule body dto.CreateRecurringExpenseRequest true "Rule details"
// @Success 201 {object} dto.RecurringExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /recurring-expenses [post]
func (h *recurringHandler) createRecurringExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateRecurringExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rule, err := h.recurringService.CreateRecurringExpense(c.Request.Context(), userID, req)
	if err != nil {
		logger.Error("Failed to create recurring expense", "error", err)
		respondServiceError(c, err, "Failed to create recurring expense")
		return
	}

	c.JSON(http.StatusCreated, dto.ToRecurringExpenseResponse(rule))
}

// listRecurringExpenses godoc
// @Summary List recurring expense rules
// @Tags recurring
// @Produce json
// @Success 200 {array} dto.RecurringExpenseResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /recurring-expenses [get]
func (h *recurringHandler) listRecurringExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rules, err := h.recurringService.ListRecurringExpenses(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list recurring expenses", "error", err)
		respondServiceError(c, err, "Failed to list recurring expenses")
		return
	}

	c.JSON(http.StatusOK, dto.ToListRecurringExpenseResponse(rules))
}

// updateRecurringExpense godoc
// @Summary Update a recurring expense rule
// @Tags recurring
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Param rule body dto.UpdateRecurringExpenseRequest true "Fields to update"
// @Success 200 {object} dto.RecurringExpenseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /recurring-expenses/{id} [put]
func (h *recurringHandler) updateRecurringExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateRecurringExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rule, err := h.recurringService.UpdateRecurringExpense(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		logger.Error("Failed to update recurring expense", "error", err, "rule_id", c.Param("id"))
		respondServiceError(c, err, "Failed to update recurring expense")
		return
	}

	c.JSON(http.StatusOK, dto.ToRecurringExpenseResponse(rule))
}

// deleteRecurringExpense godoc
// @Summary Delete a recurring expense rule
// @Description Deletes a rule; already-validated occurrences stay in the ledger
// @Tags recurring
// @Param id path string true "Rule ID"
// @Success 204
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /recurring-expenses/{id} [delete]
func (h *recurringHandler) deleteRecurringExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.recurringService.DeleteRecurringExpense(c.Request.Context(), userID, c.Param("id")); err != nil {
		logger.Error("Failed to delete recurring expense", "error", err, "rule_id", c.Param("id"))
		respondServiceError(c, err, "Failed to delete recurring expense")
		return
	}

	c.Status(http.StatusNoContent)
}

// createRecurringTransfer godoc
// @Summary Create a recurring transfer rule
// @Description Creates a rule moving money between two accounts or reserves,
// @Description referenced as acc_<id> or res_<id>
// @Tags recurring
// @Accept json
// @Produce json
// @Param rule body dto.CreateRecurringTransferRequest true "Rule details"
// @Success 201 {object} dto.RecurringTransferResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /recurring-transfers [post]
func (h *recurringHandler) createRecurringTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateRecurringTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rule, err := h.recurringService.CreateRecurringTransfer(c.Request.Context(), userID, req)
	if err != nil {
		logger.Error("Failed to create recurring transfer", "error", err)
		respondServiceError(c, err, "Failed to create recurring transfer")
		return
	}

	c.JSON(http.StatusCreated, dto.ToRecurringTransferResponse(rule))
}

// listRecurringTransfers godoc
// @Summary List recurring transfer rules
// @Tags recurring
// @Produce json
// @Success 200 {array} dto.RecurringTransferResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /recurring-transfers [get]
func (h *recurringHandler) listRecurringTransfers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rules, err := h.recurringService.ListRecurringTransfers(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list recurring transfers", "error", err)
		respondServiceError(c, err, "Failed to list recurring transfers")
		return
	}

	c.JSON(http.StatusOK, dto.ToListRecurringTransferResponse(rules))
}

// updateRecurringTransfer godoc
// @Summary Update a recurring transfer rule
// @Tags recurring
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Param rule body dto.UpdateRecurringTransferRequest true "Fields to update"
// @Success 200 {object} dto.RecurringTransferResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /recurring-transfers/{id} [put]
func (h *recurringHandler) updateRecurringTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateRecurringTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rule, err := h.recurringService.UpdateRecurringTransfer(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		logger.Error("Failed to update recurring transfer", "error", err, "rule_id", c.Param("id"))
		respondServiceError(c, err, "Failed to update recurring transfer")
		return
	}

	c.JSON(http.StatusOK, dto.ToRecurringTransferResponse(rule))
}

// deleteRecurringTransfer godoc
// @Summary Delete a recurring transfer rule
// @Tags recurring
// @Param id path string true "Rule ID"
// @Success 204
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /recurring-transfers/{id} [delete]
func (h *recurringHandler) deleteRecurringTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.recurringService.DeleteRecurringTransfer(c.Request.Context(), userID, c.Param("id")); err != nil {
		logger.Error("Failed to delete recurring transfer", "error", err, "rule_id", c.Param("id"))
		respondServiceError(c, err, "Failed to delete recurring transfer")
		return
	}

	c.Status(http.StatusNoContent)
}
