package handler

import (
	bookingapp "github.com/freshfold/backend/internal/application/booking"
	"github.com/freshfold/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles order history HTTP requests
type OrderHandler struct {
	BaseHandler
	orderService *bookingapp.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *bookingapp.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// ListOrders godoc
// @Summary      List orders
// @Description  List the current customer's orders, newest first
// @Tags         orders
// @Produce      json
// @Success      200 {object} dto.Response{data=[]OrderResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = toOrderResponse(&orders[i])
	}

	h.Success(c, responses)
}

// GetOrder godoc
// @Summary      Order detail
// @Description  Fetch one of the current customer's orders. Orders owned
// @Description  by other customers are reported as not found.
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response{data=OrderResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := h.parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toOrderResponse(order))
}

// CancelOrder godoc
// @Summary      Cancel an order
// @Description  Cancel one of the current customer's orders. Only orders
// @Description  still in Pending status can be cancelled.
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response{data=CancelOrderResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := h.parseOrderID(c)
	if !ok {
		return
	}

	if err := h.orderService.CancelOrder(c.Request.Context(), userID, orderID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, CancelOrderResponse{
		Message: "Order cancelled successfully",
	})
}

// Invoice godoc
// @Summary      Order invoice
// @Description  Billing summary for one of the current customer's orders
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response{data=InvoiceResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id}/invoice [get]
func (h *OrderHandler) Invoice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := h.parseOrderID(c)
	if !ok {
		return
	}

	invoice, err := h.orderService.Invoice(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toInvoiceResponse(invoice))
}

// Dashboard godoc
// @Summary      Customer dashboard
// @Description  Greeting name plus order counters for the current customer
// @Tags         profile
// @Produce      json
// @Success      200 {object} dto.Response{data=DashboardResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /profile/dashboard [get]
func (h *OrderHandler) Dashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.orderService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, DashboardResponse{
		Name:            result.Name,
		TotalOrders:     result.Stats.Total,
		PendingOrders:   result.Stats.Pending,
		DeliveredOrders: result.Stats.Delivered,
	})
}

// parseOrderID binds and validates the order id path parameter.
// Malformed ids are reported as not found so the response shape matches
// unknown ids.
func (h *OrderHandler) parseOrderID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.NotFound(c, "Order not found")
		return uuid.Nil, false
	}

	orderID, err := uuid.Parse(req.ID)
	if err != nil {
		h.NotFound(c, "Order not found")
		return uuid.Nil, false
	}

	return orderID, true
}
