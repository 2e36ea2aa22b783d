package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/jmallet/cashplan/internal/core/ports/services"
	"github.com/jmallet/cashplan/internal/dto"
	"github.com/jmallet/cashplan/internal/middleware"
)

type reserveHandler struct {
	reserveService portssvc.ReserveSvc
}

func newReserveHandler(svc portssvc.ReserveSvc) *reserveHandler {
	return &reserveHandler{reserveService: svc}
}

func registerReserveRoutes(rg *gin.RouterGroup, svc portssvc.ReserveSvc) {
	h := newReserveHandler(svc)

	reserves := rg.Group("/reserves")
	{
		reserves.POST("", h.createReserve)
		reserves.GET("", h.listReserves)
		reserves.GET("/:id", h.getReserve)
		reserves.PUT("/:id", h.updateReserve)
		reserves.DELETE("/:id", h.deleteReserve)
	}
}

// createReserve godoc
// @Summary Create a reserve
// @Description Creates a named envelope inside an account
// @Tags reserves
// @Accept json
// @Produce json
// @Param reserve body dto.CreateReserveRequest true "Reserve details"
// @Success 201 {object} dto.ReserveResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reserves [post]
func (h *reserveHandler) createReserve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reserve, err := h.reserveService.CreateReserve(c.Request.Context(), userID, req)
	if err != nil {
		logger.Error("Failed to create reserve", "error", err)
		respondServiceError(c, err, "Failed to create reserve")
		return
	}

	c.JSON(http.StatusCreated, dto.ToReserveResponse(reserve))
}

// listReserves godoc
// @Summary List reserves
// @Tags reserves
// @Produce json
// @Success 200 {array} dto.ReserveResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reserves [get]
func (h *reserveHandler) listReserves(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reserves, err := h.reserveService.ListReserves(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list reserves", "error", err)
		respondServiceError(c, err, "Failed to list reserves")
		return
	}

	c.JSON(http.StatusOK, dto.ToListReserveResponse(reserves))
}

// getReserve godoc
// @Summary Get a reserve
// @Tags reserves
// @Produce json
// @Param id path string true "Reserve ID"
// @Success 200 {object} dto.ReserveResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reserves/{id} [get]
func (h *reserveHandler) getReserve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reserve, err := h.reserveService.GetReserveByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		logger.Error("Failed to get reserve", "error", err, "reserve_id", c.Param("id"))
		respondServiceError(c, err, "Failed to get reserve")
		return
	}

	c.JSON(http.StatusOK, dto.ToReserveResponse(reserve))
}

// updateReserve godoc
// @Summary Update a reserve
// @Tags reserves
// @Accept json
// @Produce json
// @Param id path string true "Reserve ID"
// @Param reserve body dto.UpdateReserveRequest true "Fields to update"
// @Success 200 {object} dto.ReserveResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reserves/{id} [put]
func (h *reserveHandler) updateReserve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reserve, err := h.reserveService.UpdateReserve(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		logger.Error("Failed to update reserve", "error", err, "reserve_id", c.Param("id"))
		respondServiceError(c, err, "Failed to update reserve")
		return
	}

	c.JSON(http.StatusOK, dto.ToReserveResponse(reserve))
}

// deleteReserve godoc
// @Summary Delete a reserve
// @Description Deletes a reserve; its transactions fold back into the
// @Description account's free balance
// @Tags reserves
// @Param id path string true "Reserve ID"
// @Success 204
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reserves/{id} [delete]
func (h *reserveHandler) deleteReserve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.reserveService.DeleteReserve(c.Request.Context(), userID, c.Param("id")); err != nil {
		logger.Error("Failed to delete reserve", "error", err, "reserve_id", c.Param("id"))
		respondServiceError(c, err, "Failed to delete reserve")
		return
	}

	c.Status(http.StatusNoContent)
}
