package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/jmallet/cashplan/internal/core/ports/services"
	"github.com/jmallet/cashplan/internal/dto"
	"github.com/jmallet/cashplan/internal/middleware"
)

type reimbursementHandler struct {
	reimbursementService portssvc.ReimbursementSvc
}

func newReimbursementHandler(svc portssvc.ReimbursementSvc) *reimbursementHandler {
	return &reimbursementHandler{reimbursementService: svc}
}

func registerReimbursementRoutes(rg *gin.RouterGroup, svc portssvc.ReimbursementSvc) {
	h := newReimbursementHandler(svc)

	reimbursements := rg.Group("/reimbursements")
	{
		reimbursements.POST("", h.createReimbursement)
		reimbursements.GET("", h.listReimbursements)
		reimbursements.PUT("/:id", h.updateReimbursement)
		reimbursements.DELETE("/:id", h.deleteReimbursement)
		reimbursements.POST("/:id/receive", h.receiveReimbursement)
	}
}

// createReimbursement godoc
// @Summary Create an expected reimbursement
// @Description Attaches an expected repayment to an existing expense
// @Tags reimbursements
// @Accept json
// @Produce json
// @Param reimbursement body dto.CreateReimbursementRequest true "Reimbursement details"
// @Success 201 {object} dto.ReimbursementResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reimbursements [post]
func (h *reimbursementHandler) createReimbursement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateReimbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reimb, err := h.reimbursementService.CreateReimbursement(c.Request.Context(), userID, req)
	if err != nil {
		logger.Error("Failed to create reimbursement", "error", err)
		respondServiceError(c, err, "Failed to create reimbursement")
		return
	}

	c.JSON(http.StatusCreated, dto.ToReimbursementResponse(reimb))
}

// listReimbursements godoc
// @Summary List reimbursements
// @Tags reimbursements
// @Produce json
// @Success 200 {array} dto.ReimbursementResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reimbursements [get]
func (h *reimbursementHandler) listReimbursements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reimbs, err := h.reimbursementService.ListReimbursements(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list reimbursements", "error", err)
		respondServiceError(c, err, "Failed to list reimbursements")
		return
	}

	c.JSON(http.StatusOK, dto.ToListReimbursementResponse(reimbs))
}

// updateReimbursement godoc
// @Summary Update a pending reimbursement
// @Tags reimbursements
// @Accept json
// @Produce json
// @Param id path string true "Reimbursement ID"
// @Param reimbursement body dto.UpdateReimbursementRequest true "Fields to update"
// @Success 200 {object} dto.ReimbursementResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reimbursements/{id} [put]
func (h *reimbursementHandler) updateReimbursement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateReimbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reimb, err := h.reimbursementService.UpdateReimbursement(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		logger.Error("Failed to update reimbursement", "error", err, "reimbursement_id", c.Param("id"))
		respondServiceError(c, err, "Failed to update reimbursement")
		return
	}

	c.JSON(http.StatusOK, dto.ToReimbursementResponse(reimb))
}

// deleteReimbursement godoc
// @Summary Delete a reimbursement
// @Tags reimbursements
// @Param id path string true "Reimbursement ID"
// @Success 204
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reimbursements/{id} [delete]
func (h *reimbursementHandler) deleteReimbursement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.reimbursementService.DeleteReimbursement(c.Request.Context(), userID, c.Param("id")); err != nil {
		logger.Error("Failed to delete reimbursement", "error", err, "reimbursement_id", c.Param("id"))
		respondServiceError(c, err, "Failed to delete reimbursement")
		return
	}

	c.Status(http.StatusNoContent)
}

// receiveReimbursement godoc
// @Summary Mark a reimbursement as received
// @Description Records the settlement income on the source account and flips
// @Description the reimbursement to RECEIVED
// @Tags reimbursements
// @Accept json
// @Produce json
// @Param id path string true "Reimbursement ID"
// @Param settlement body dto.ReceiveReimbursementRequest true "Received amount and date overrides"
// @Success 200 {object} dto.ReimbursementResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reimbursements/{id}/receive [post]
func (h *reimbursementHandler) receiveReimbursement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReceiveReimbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reimb, err := h.reimbursementService.ReceiveReimbursement(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		logger.Error("Failed to receive reimbursement", "error", err, "reimbursement_id", c.Param("id"))
		respondServiceError(c, err, "Failed to receive reimbursement")
		return
	}

	c.JSON(http.StatusOK, dto.ToReimbursementResponse(reimb))
}
