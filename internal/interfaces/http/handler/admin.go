package handler

import (
	adminapp "github.com/freshfold/backend/internal/application/admin"
	"github.com/freshfold/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler handles operator panel HTTP requests
type AdminHandler struct {
	BaseHandler
	adminService *adminapp.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *adminapp.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// AdminOrderResponse represents an order row in the operator panel
type AdminOrderResponse struct {
	OrderResponse
	UserID    string `json:"user_id"`
	UserPhone string `json:"user_phone"`
}

// AdminStatsResponse represents the operator panel counters
type AdminStatsResponse struct {
	TotalOrders     int64   `json:"total_orders"`
	PendingOrders   int64   `json:"pending_orders"`
	DeliveredOrders int64   `json:"delivered_orders"`
	CancelledOrders int64   `json:"cancelled_orders"`
	Revenue         float64 `json:"revenue"`
}

// UpdateStatusRequest represents the request body for a status change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required" example:"Out for Delivery"`
}

// UpdateStatusResponse confirms a status change
type UpdateStatusResponse struct {
	Message string `json:"message"`
}

// ListOrders godoc
// @Summary      List all orders
// @Description  All orders across customers with the owner's phone,
// @Description  newest first
// @Tags         admin
// @Produce      json
// @Success      200 {object} dto.Response{data=[]AdminOrderResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/orders [get]
func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.adminService.ListOrders(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]AdminOrderResponse, len(orders))
	for i := range orders {
		responses[i] = AdminOrderResponse{
			OrderResponse: toOrderResponse(&orders[i].Order),
			UserID:        orders[i].UserID.String(),
			UserPhone:     orders[i].UserPhone,
		}
	}

	h.Success(c, responses)
}

// Stats godoc
// @Summary      Order statistics
// @Description  Order counters and revenue across all customers.
// @Description  Revenue excludes cancelled orders.
// @Tags         admin
// @Produce      json
// @Success      200 {object} dto.Response{data=AdminStatsResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, AdminStatsResponse{
		TotalOrders:     stats.TotalOrders,
		PendingOrders:   stats.PendingOrders,
		DeliveredOrders: stats.DeliveredOrders,
		CancelledOrders: stats.CancelledOrders,
		Revenue:         stats.Revenue.InexactFloat64(),
	})
}

// UpdateStatus godoc
// @Summary      Update order status
// @Description  Move any order to a status from the closed status set
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body UpdateStatusRequest true "Target status"
// @Success      200 {object} dto.Response{data=UpdateStatusResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/orders/{id}/status [put]
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var uriReq dto.IDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		h.NotFound(c, "Order not found")
		return
	}

	orderID, err := uuid.Parse(uriReq.ID)
	if err != nil {
		h.NotFound(c, "Order not found")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.adminService.UpdateStatus(c.Request.Context(), orderID, req.Status); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, UpdateStatusResponse{
		Message: "Order status updated",
	})
}
