package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/chessdesk/tournament-booking/internal/dto"
	"github.com/chessdesk/tournament-booking/internal/middleware"
	"github.com/chessdesk/tournament-booking/internal/service"
	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	svc service.PaymentService
}

func NewPaymentHandler(svc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/payments", middleware.Identity)

	g.POST("/orders", h.CreateOrder)
	g.POST("/verify", h.VerifyPayment)
	g.POST("/:id/refund", h.InitiateRefund)
	g.GET("/bookings/:bookingId", h.ListByBooking)
}

func (h *PaymentHandler) CreateOrder(c echo.Context) error {
	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.BookingID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "booking_id is required")
	}

	payment, err := h.svc.CreateOrder(c.Request().Context(), req.BookingID, middleware.UserID(c))
	if err != nil {
		return mapPaymentError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

func (h *PaymentHandler) VerifyPayment(c echo.Context) error {
	var req dto.VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.GatewayOrderID == "" || req.GatewayPaymentID == "" || req.Signature == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "order id, payment id and signature are required")
	}

	booking, err := h.svc.VerifyAndComplete(c.Request().Context(), req.GatewayOrderID, req.GatewayPaymentID, req.Signature)
	if err != nil {
		return mapPaymentError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking, nil))
}

func (h *PaymentHandler) InitiateRefund(c echo.Context) error {
	if !middleware.IsAdmin(c) {
		return echo.NewHTTPError(http.StatusForbidden, "admin only")
	}

	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payment id")
	}

	payment, err := h.svc.InitiateRefund(c.Request().Context(), uint(paymentID), middleware.UserID(c))
	if err != nil {
		return mapPaymentError(err)
	}

	return c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

func (h *PaymentHandler) ListByBooking(c echo.Context) error {
	bookingID, err := strconv.ParseUint(c.Param("bookingId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	payments, err := h.svc.ListByBooking(c.Request().Context(), uint(bookingID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.PaymentResponse, len(payments))
	for i := range payments {
		resp[i] = dto.ToPaymentResponse(&payments[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func mapPaymentError(err error) error {
	switch {
	case errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrPaymentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidSignature):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAlreadyPaid),
		errors.Is(err, service.ErrBookingCancelled),
		errors.Is(err, service.ErrRefundNotEligible),
		errors.Is(err, service.ErrIllegalTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrGatewayFailure):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
