package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/jmallet/cashplan/internal/core/ports/services"
	"github.com/jmallet/cashplan/internal/dto"
	"github.com/jmallet/cashplan/internal/middleware"
)

type loanHandler struct {
	loanService portssvc.LoanSvc
}

func newLoanHandler(svc portssvc.LoanSvc) *loanHandler {
	return &loanHandler{loanService: svc}
}

func registerLoanRoutes(rg *gin.RouterGroup, svc portssvc.LoanSvc) {
	h := newLoanHandler(svc)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.createLoan)
		loans.GET("", h.listLoans)
		loans.GET("/:id", h.getLoan)
		loans.DELETE("/:id", h.deleteLoan)
		loans.GET("/:id/status", h.loanStatus)
	}
}

// createLoan godoc
// @Summary Create a loan
// @Description Registers an amortized loan and its paired monthly installment
// @Description rule
// @Tags loans
// @Accept json
// @Produce json
// @Param loan body dto.CreateLoanRequest true "Loan details"
// @Success 201 {object} dto.LoanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /loans [post]
func (h *loanHandler) createLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	loan, err := h.loanService.CreateLoan(c.Request.Context(), userID, req)
	if err != nil {
		logger.Error("Failed to create loan", "error", err)
		respondServiceError(c, err, "Failed to create loan")
		return
	}

	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan))
}

// listLoans godoc
// @Summary List loans
// @Tags loans
// @Produce json
// @Success 200 {array} dto.LoanResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /loans [get]
func (h *loanHandler) listLoans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	loans, err := h.loanService.ListLoans(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list loans", "error", err)
		respondServiceError(c, err, "Failed to list loans")
		return
	}

	c.JSON(http.StatusOK, dto.ToListLoanResponse(loans))
}

// getLoan godoc
// @Summary Get a loan
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /loans/{id} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	loan, err := h.loanService.GetLoanByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		logger.Error("Failed to get loan", "error", err, "loan_id", c.Param("id"))
		respondServiceError(c, err, "Failed to get loan")
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// deleteLoan godoc
// @Summary Delete a loan
// @Description Deletes a loan and its paired installment rule
// @Tags loans
// @Param id path string true "Loan ID"
// @Success 204
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /loans/{id} [delete]
func (h *loanHandler) deleteLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.loanService.DeleteLoan(c.Request.Context(), userID, c.Param("id")); err != nil {
		logger.Error("Failed to delete loan", "error", err, "loan_id", c.Param("id"))
		respondServiceError(c, err, "Failed to delete loan")
		return
	}

	c.Status(http.StatusNoContent)
}

// loanStatus godoc
// @Summary Get the amortization status of a loan
// @Description Derives payments made, remaining balance, total interest and
// @Description payoff date as of a given day (today by default)
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Param asOf query string false "Status date (YYYY-MM-DD)"
// @Success 200 {object} dto.LoanStatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /loans/{id}/status [get]
func (h *loanHandler) loanStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOf := time.Now().UTC()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := dto.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	status, err := h.loanService.LoanStatus(c.Request.Context(), userID, c.Param("id"), asOf)
	if err != nil {
		logger.Error("Failed to compute loan status", "error", err, "loan_id", c.Param("id"))
		respondServiceError(c, err, "Failed to compute loan status")
		return
	}

	c.JSON(http.StatusOK, status)
}
