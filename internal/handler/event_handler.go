package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/chessdesk/tournament-booking/internal/dto"
	"github.com/chessdesk/tournament-booking/internal/middleware"
	"github.com/chessdesk/tournament-booking/internal/models"
	"github.com/chessdesk/tournament-booking/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/events", middleware.Identity)

	g.POST("", h.CreateEvent)
	g.GET("", h.ListEvents)
	g.GET("/:id", h.GetEvent)
	g.PATCH("/:id/status", h.UpdateStatus)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start_date must be RFC3339")
	}

	event := &models.Event{
		OrganizerID:         middleware.UserID(c),
		Name:                req.Name,
		StartDate:           startDate,
		MaxCapacity:         req.MaxCapacity,
		EntryFee:            req.EntryFee,
		IsOnline:            req.IsOnline,
		GovtConcessionType:  models.ConcessionType(req.GovtConcessionType),
		GovtConcessionValue: req.GovtConcessionValue,
	}
	for _, cat := range req.Categories {
		event.Categories = append(event.Categories, models.Category{
			Name:   cat.Name,
			MaxAge: cat.MaxAge,
		})
	}

	if err := h.svc.CreateEvent(c.Request().Context(), event); err != nil {
		return mapEventError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	event, err := h.svc.GetEvent(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "event not found")
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	var status *models.EventStatus
	if s := c.QueryParam("status"); s != "" {
		es := models.EventStatus(s)
		status = &es
	}

	events, err := h.svc.ListEvents(c.Request().Context(), status)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.EventResponse, len(events))
	for i := range events {
		resp[i] = dto.ToEventResponse(&events[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) UpdateStatus(c echo.Context) error {
	if !middleware.IsAdmin(c) {
		return echo.NewHTTPError(http.StatusForbidden, "admin only")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req dto.UpdateEventStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	event, err := h.svc.UpdateStatus(c.Request().Context(), uint(id), models.EventStatus(req.Status), middleware.UserID(c))
	if err != nil {
		return mapEventError(err)
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func mapEventError(err error) error {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidEntryFee),
		errors.Is(err, service.ErrInvalidConcession),
		errors.Is(err, service.ErrInvalidCapacity):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrIllegalEventStatus):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
