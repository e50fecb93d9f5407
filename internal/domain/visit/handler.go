package visit

import (
	"net/http"

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
	read := api.Group("", auth.RequireRole("admin", "doctor", "nurse", "registrar", "cashier"))
	read.GET("/treatments/by-vno/:vno", h.GetByVN)
	read.GET("/treatments/by-hn/:hn", h.History)
	read.GET("/treatments/ucs-usage/:hncode", h.UCSUsage)

	write := api.Group("", auth.RequireRole("admin", "doctor", "nurse"))
	write.PUT("/treatments/:vno", h.UpdateFindings)
	write.PUT("/treatments/:vno/items", h.SetItems)
	write.PUT("/treatments/:vno/status", h.AdvanceStatus)
}

func (h *Handler) GetByVN(c echo.Context) error {
	v, err := h.svc.GetByVN(c.Request().Context(), c.Param("vno"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if v == nil {
		return echo.NewHTTPError(http.StatusNotFound, "visit not found")
	}
	resp := struct {
		*Visit
		BMI *BMIResult `json:"bmi,omitempty"`
	}{v, h.svc.BMI(v)}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) History(c echo.Context) error {
	list, err := h.svc.History(c.Request().Context(), c.Param("hn"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) UCSUsage(c echo.Context) error {
	n, err := h.svc.UCSUsageThisMonth(c.Request().Context(), c.Param("hncode"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int{"usage_count": n})
}

func (h *Handler) UpdateFindings(c echo.Context) error {
	var v Visit
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	v.VN = c.Param("vno")
	if err := h.svc.UpdateFindings(c.Request().Context(), &v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) SetItems(c echo.Context) error {
	var items []LineItem
	if err := c.Bind(&items); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	vn := c.Param("vno")
	if err := h.svc.SetItems(c.Request().Context(), vn, items); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"VNO":       vn,
		"items":     items,
		"totalCost": Total(items),
	})
}

func (h *Handler) AdvanceStatus(c echo.Context) error {
	var body struct {
		Status string `json:"STATUS1"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.AdvanceStatus(c.Request().Context(), c.Param("vno"), body.Status); err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"STATUS1": body.Status})
}
