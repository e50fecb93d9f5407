package catalog

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
	read.GET("/drugs", h.ListDrugs)
	read.GET("/procedures", h.ListProcedures)
	read.GET("/type_procedure", h.ListProcedureTypes)
	read.GET("/user-types", h.ListUserTypes)

	// Catalog edits are an admin concern.
	write := api.Group("", auth.RequireRole("admin"))
	write.POST("/drugs", h.CreateDrug)
	write.PUT("/drugs/:code", h.UpdateDrug)
	write.DELETE("/drugs/:code", h.DeleteDrug)
	write.POST("/procedures", h.CreateProcedure)
	write.PUT("/procedures/:code", h.UpdateProcedure)
	write.DELETE("/procedures/:code", h.DeleteProcedure)
	write.POST("/type_procedure", h.CreateProcedureType)
	write.PUT("/type_procedure/:code", h.UpdateProcedureType)
	write.DELETE("/type_procedure/:code", h.DeleteProcedureType)
	write.POST("/user-types", h.CreateUserType)
	write.PUT("/user-types/:code", h.UpdateUserType)
	write.DELETE("/user-types/:code", h.DeleteUserType)
}

func (h *Handler) CreateDrug(c echo.Context) error {
	var d Drug
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateDrug(c.Request().Context(), &d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) ListDrugs(c echo.Context) error {
	list, err := h.svc.ListDrugs(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) UpdateDrug(c echo.Context) error {
	var d Drug
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d.Code = c.Param("code")
	if err := h.svc.UpdateDrug(c.Request().Context(), &d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDrug(c echo.Context) error {
	if err := h.svc.DeleteDrug(c.Request().Context(), c.Param("code")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CreateProcedure(c echo.Context) error {
	var p Procedure
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateProcedure(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) ListProcedures(c echo.Context) error {
	list, err := h.svc.ListProcedures(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) UpdateProcedure(c echo.Context) error {
	var p Procedure
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.Code = c.Param("code")
	if err := h.svc.UpdateProcedure(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeleteProcedure(c echo.Context) error {
	if err := h.svc.DeleteProcedure(c.Request().Context(), c.Param("code")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CreateProcedureType(c echo.Context) error {
	var t ProcedureType
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateProcedureType(c.Request().Context(), &t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) ListProcedureTypes(c echo.Context) error {
	list, err := h.svc.ListProcedureTypes(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) UpdateProcedureType(c echo.Context) error {
	var t ProcedureType
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t.Code = c.Param("code")
	if err := h.svc.UpdateProcedureType(c.Request().Context(), &t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) DeleteProcedureType(c echo.Context) error {
	if err := h.svc.DeleteProcedureType(c.Request().Context(), c.Param("code")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CreateUserType(c echo.Context) error {
	var t UserType
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateUserType(c.Request().Context(), &t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) ListUserTypes(c echo.Context) error {
	list, err := h.svc.ListUserTypes(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) UpdateUserType(c echo.Context) error {
	var t UserType
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t.Code = c.Param("code")
	if err := h.svc.UpdateUserType(c.Request().Context(), &t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) DeleteUserType(c echo.Context) error {
	if err := h.svc.DeleteUserType(c.Request().Context(), c.Param("code")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
