package handler

import (
	bookingapp "github.com/freshfold/backend/internal/application/booking"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BookingHandler handles address and booking-flow HTTP requests
type BookingHandler struct {
	BaseHandler
	bookingService *bookingapp.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *bookingapp.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// AddAddress godoc
// @Summary      Save a delivery address
// @Description  Save a labelled delivery address for the current customer
// @Tags         booking
// @Accept       json
// @Produce      json
// @Param        request body AddAddressRequest true "Address details"
// @Success      201 {object} dto.Response{data=AddressResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /addresses [post]
func (h *BookingHandler) AddAddress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AddAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	address, err := h.bookingService.AddAddress(c.Request.Context(), bookingapp.AddAddressInput{
		UserID:  userID,
		Label:   req.Label,
		Address: req.Address,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toAddressResponse(address))
}

// ListAddresses godoc
// @Summary      List saved addresses
// @Description  List the current customer's saved delivery addresses
// @Tags         booking
// @Produce      json
// @Success      200 {object} dto.Response{data=[]AddressResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /addresses [get]
func (h *BookingHandler) ListAddresses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addresses, err := h.bookingService.ListAddresses(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]AddressResponse, len(addresses))
	for i := range addresses {
		responses[i] = toAddressResponse(&addresses[i])
	}

	h.Success(c, responses)
}

// BookingContext godoc
// @Summary      Booking form context
// @Description  Saved addresses plus the address of the most recent order,
// @Description  used to prefill the booking form
// @Tags         booking
// @Produce      json
// @Success      200 {object} dto.Response{data=BookingContextResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /booking/context [get]
func (h *BookingHandler) BookingContext(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.bookingService.BookingContext(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]AddressResponse, len(result.Addresses))
	for i := range result.Addresses {
		responses[i] = toAddressResponse(&result.Addresses[i])
	}

	h.Success(c, BookingContextResponse{
		Addresses:        responses,
		LastOrderAddress: result.LastOrderAddress,
	})
}

// StageOrder godoc
// @Summary      Stage a booking
// @Description  Validate the booking form, compute the price breakdown and
// @Description  stage the order for the payment step. Restaging overwrites
// @Description  any previously staged order.
// @Tags         booking
// @Accept       json
// @Produce      json
// @Param        request body StageOrderRequest true "Booking form"
// @Success      200 {object} dto.Response{data=PendingOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /booking [post]
func (h *BookingHandler) StageOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req StageOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	pending, err := h.bookingService.StageOrder(c.Request.Context(), bookingapp.StageOrderInput{
		UserID:     userID,
		Address:    req.Address,
		PickupDate: req.PickupDate,
		PickupTime: req.PickupTime,
		Service:    req.Service,
		Weight:     decimal.NewFromFloat(req.Weight),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPendingOrderResponse(pending))
}

// GetPayment godoc
// @Summary      Payment page data
// @Description  Returns the staged order awaiting payment, or 404 when
// @Description  nothing is staged
// @Tags         booking
// @Produce      json
// @Success      200 {object} dto.Response{data=PendingOrderResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payment [get]
func (h *BookingHandler) GetPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	pending, err := h.bookingService.GetPendingOrder(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPendingOrderResponse(pending))
}

// ConfirmPayment godoc
// @Summary      Confirm payment
// @Description  Consume the staged order and commit it as a persistent
// @Description  order. A second confirmation without a new booking fails
// @Description  with 404.
// @Tags         booking
// @Accept       json
// @Produce      json
// @Param        request body ConfirmPaymentRequest true "Payment method"
// @Success      201 {object} dto.Response{data=OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /payment [post]
func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.bookingService.ConfirmPayment(c.Request.Context(), bookingapp.ConfirmPaymentInput{
		UserID:        userID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toOrderResponse(order))
}
