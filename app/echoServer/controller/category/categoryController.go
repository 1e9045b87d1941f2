package category

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/FelipeGehren/projeto-api/app/echoServer/validation"
	categoryrepo "github.com/FelipeGehren/projeto-api/repository/category"
	categorysvc "github.com/FelipeGehren/projeto-api/service/category"
)

type Controller struct {
	Svc categorysvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /categorias
func (h *Controller) Create(c echo.Context) error {
	var req CreateCategoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": validation.FieldErrors(err)})
	}
	cat, err := h.Svc.Create(c.Request().Context(), categorysvc.CreateInput{Name: req.Nome, Description: req.Descricao})
	if err != nil {
		return h.writeErr(c, err, "category create error")
	}
	return c.JSON(http.StatusCreated, cat)
}

// GET /categorias?skip=&limit=
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context(), queryUint(c, "skip", 0), queryUint(c, "limit", 100))
	if err != nil {
		h.Log.Error("category list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /categorias/:id
func (h *Controller) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	cat, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return h.writeErr(c, err, "category get error")
	}
	return c.JSON(http.StatusOK, cat)
}

// PUT /categorias/:id
func (h *Controller) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateCategoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": validation.FieldErrors(err)})
	}
	cat, err := h.Svc.Update(c.Request().Context(), id, categoryrepo.Patch{
		Name:        req.Nome,
		Description: req.Descricao,
		Active:      *req.Ativa,
	})
	if err != nil {
		return h.writeErr(c, err, "category update error")
	}
	return c.JSON(http.StatusOK, cat)
}

// DELETE /categorias/:id
func (h *Controller) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.writeErr(c, err, "category delete error")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Controller) writeErr(c echo.Context, err error, logMsg string) error {
	switch {
	case errors.Is(err, categorysvc.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "categoria not found"})
	case errors.Is(err, categorysvc.ErrNameTaken):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	h.Log.Error(logMsg, "err", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
}

func pathID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

func queryUint(c echo.Context, name string, def uint) uint {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return def
	}
	return uint(n)
}
