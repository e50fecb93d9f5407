package patient

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinichq/clinichq/internal/platform/auth"
	"github.com/clinichq/clinichq/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole("admin", "doctor", "nurse", "registrar"))
	read.GET("/patients", h.ListPatients)
	read.GET("/patients/search", h.SearchPatients)
	read.GET("/patients/check-idcard/:idno", h.CheckIDCard)
	read.GET("/patients/:hn", h.GetPatient)

	write := api.Group("", auth.RequireRole("admin", "registrar", "nurse"))
	write.POST("/patients", h.RegisterPatient)
	write.PUT("/patients/:hn", h.UpdatePatient)
}

func (h *Handler) RegisterPatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RegisterPatient(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPatient(c echo.Context) error {
	p, err := h.svc.GetPatient(c.Request().Context(), c.Param("hn"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if p == nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) CheckIDCard(c echo.Context) error {
	p, err := h.svc.CheckIDCard(c.Request().Context(), c.Param("idno"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if p == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{"exists": false})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"exists": true, "patient": p})
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.HNCode = c.Param("hn")
	if err := h.svc.UpdatePatient(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPatients(c echo.Context) error {
	params := pagination.FromContext(c)
	list, total, err := h.svc.ListPatients(c.Request().Context(), params)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(list, total, params.Limit, params.Offset))
}

func (h *Handler) SearchPatients(c echo.Context) error {
	params := pagination.FromContext(c)
	list, total, err := h.svc.SearchPatients(c.Request().Context(), c.QueryParam("q"), params)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(list, total, params.Limit, params.Offset))
}
