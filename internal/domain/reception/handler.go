package reception

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinichq/clinichq/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "nurse", "registrar"))
	g.POST("/queue/walkin", h.CreateWalkIn)
	g.POST("/queue/checkin/:appointmentId", h.CheckInAppointment)
	g.GET("/queue/appointments/today", h.TodayAppointments)
}

func (h *Handler) CreateWalkIn(c echo.Context) error {
	var req WalkInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := h.svc.CreateWalkIn(c.Request().Context(), &req)
	if err != nil {
		return walkInError(err)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) CheckInAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("appointmentId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment id")
	}
	result, err := h.svc.CheckInAppointment(c.Request().Context(), id)
	if err != nil {
		return walkInError(err)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) TodayAppointments(c echo.Context) error {
	list, err := h.svc.TodayAppointments(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, list)
}

func walkInError(err error) error {
	if errors.Is(err, ErrAlreadyQueued) || errors.Is(err, ErrQuotaConfirmNeeded) {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
