package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/chessdesk/tournament-booking/internal/dto"
	"github.com/chessdesk/tournament-booking/internal/middleware"
	"github.com/chessdesk/tournament-booking/internal/models"
	"github.com/chessdesk/tournament-booking/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1", middleware.Identity)

	g.POST("/events/:id/bookings", h.CreateBooking)
	g.GET("/events/:id/bookings", h.ListBookings)

	g.GET("/bookings/:id", h.GetBooking)
	g.GET("/bookings/ref/:ref", h.GetByReference)
	g.GET("/bookings", h.ListMyBookings)
	g.DELETE("/bookings/:id", h.CancelBooking)
	g.POST("/bookings/:id/offline-payment", h.RecordOfflinePayment)
	g.POST("/bookings/:id/complete", h.CompleteBooking)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	selections := make([]service.ParticipantSelection, len(req.Participants))
	for i, p := range req.Participants {
		selections[i] = service.ParticipantSelection{
			ParticipantID: p.ParticipantID,
			CategoryID:    p.CategoryID,
		}
	}

	booking, quote, err := h.svc.CreateBooking(c.Request().Context(), uint(eventID), middleware.UserID(c), selections)
	if err != nil {
		return mapBookingError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking, quote))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	// The reason body is optional, but a present-and-malformed one is a 400.
	var req dto.CancelBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.CancelBooking(c.Request().Context(), uint(bookingID), middleware.UserID(c), middleware.IsAdmin(c), req.Reason)
	if err != nil {
		return mapBookingError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking, nil))
}

func (h *BookingHandler) RecordOfflinePayment(c echo.Context) error {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.RecordOfflinePayment(c.Request().Context(), uint(bookingID), middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		return mapBookingError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking, nil))
}

func (h *BookingHandler) CompleteBooking(c echo.Context) error {
	if !middleware.IsAdmin(c) {
		return echo.NewHTTPError(http.StatusForbidden, "admin only")
	}

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.CompleteBooking(c.Request().Context(), uint(bookingID), middleware.UserID(c))
	if err != nil {
		return mapBookingError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking, nil))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "booking not found")
	}
	if booking.UserID != middleware.UserID(c) && !middleware.IsAdmin(c) {
		return echo.NewHTTPError(http.StatusForbidden, "not your booking")
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking, nil))
}

func (h *BookingHandler) GetByReference(c echo.Context) error {
	booking, err := h.svc.GetByReference(c.Request().Context(), c.Param("ref"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "booking not found")
	}
	if booking.UserID != middleware.UserID(c) && !middleware.IsAdmin(c) {
		return echo.NewHTTPError(http.StatusForbidden, "not your booking")
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking, nil))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	if !middleware.IsAdmin(c) {
		return echo.NewHTTPError(http.StatusForbidden, "admin only")
	}

	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var status *models.BookingStatus
	if s := c.QueryParam("status"); s != "" {
		bs := models.BookingStatus(s)
		status = &bs
	}

	bookings, err := h.svc.ListByEvent(c.Request().Context(), uint(eventID), status)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToBookingResponse(&bookings[i], nil)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	bookings, err := h.svc.ListByUser(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToBookingResponse(&bookings[i], nil)
	}
	return c.JSON(http.StatusOK, resp)
}

func mapBookingError(err error) error {
	switch {
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrParticipantNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNoParticipants),
		errors.Is(err, service.ErrEventNotOpen),
		errors.Is(err, service.ErrParticipantNotOwned),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrCategoryAgeExceeded):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInsufficientSlots),
		errors.Is(err, service.ErrAlreadyCancelled),
		errors.Is(err, service.ErrAlreadyPaid),
		errors.Is(err, service.ErrCannotCancelCompleted),
		errors.Is(err, service.ErrCannotComplete),
		errors.Is(err, service.ErrIllegalTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
