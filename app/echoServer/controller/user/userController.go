package user

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/FelipeGehren/projeto-api/app/echoServer/validation"
	"github.com/FelipeGehren/projeto-api/model"
	userrepo "github.com/FelipeGehren/projeto-api/repository/user"
	usersvc "github.com/FelipeGehren/projeto-api/service/user"
)

type Controller struct {
	Svc usersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Create a user
// @Summary      Register user
// @Description  Register a library user (cliente, funcionario or administrador)
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        payload  body  user.CreateUserReq  true  "User payload"
// @Success      201  {object}  model.User
// @Failure      400  {object}  map[string]any "validation error / cpf, email or matricula taken"
// @Failure      500  {object}  map[string]any
// @Router       /usuarios [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": validation.FieldErrors(err)})
	}
	u, err := h.Svc.Create(c.Request().Context(), toInput(req))
	if err != nil {
		return h.writeErr(c, err, "user create error")
	}
	return c.JSON(http.StatusCreated, u)
}

// GET /usuarios?tipo=&ativo=&skip=&limit=
func (h *Controller) List(c echo.Context) error {
	f := userrepo.Filter{Skip: queryUint(c, "skip", 0), Limit: queryUint(c, "limit", 100)}
	if t := c.QueryParam("tipo"); t != "" {
		role := model.Role(t)
		if !role.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid tipo"})
		}
		f.Role = &role
	}
	if a := c.QueryParam("ativo"); a != "" {
		b, err := strconv.ParseBool(a)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid ativo"})
		}
		f.Active = &b
	}
	rows, err := h.Svc.List(c.Request().Context(), f)
	if err != nil {
		h.Log.Error("user list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /usuarios/:id
func (h *Controller) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	u, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return h.writeErr(c, err, "user get error")
	}
	return c.JSON(http.StatusOK, u)
}

// PUT /usuarios/:id
func (h *Controller) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req CreateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": validation.FieldErrors(err)})
	}
	u, err := h.Svc.Update(c.Request().Context(), id, toInput(req))
	if err != nil {
		return h.writeErr(c, err, "user update error")
	}
	return c.JSON(http.StatusOK, u)
}

// PATCH /usuarios/:id/status
func (h *Controller) SetStatus(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req SetStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": validation.FieldErrors(err)})
	}
	u, err := h.Svc.SetActive(c.Request().Context(), id, *req.Ativo)
	if err != nil {
		return h.writeErr(c, err, "user status error")
	}
	return c.JSON(http.StatusOK, u)
}

// DELETE /usuarios/:id
func (h *Controller) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.writeErr(c, err, "user delete error")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Controller) writeErr(c echo.Context, err error, logMsg string) error {
	switch {
	case errors.Is(err, usersvc.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "usuario not found"})
	case errors.Is(err, usersvc.ErrCPFTaken),
		errors.Is(err, usersvc.ErrEmailTaken),
		errors.Is(err, usersvc.ErrRegistrationTaken),
		errors.Is(err, usersvc.ErrRegistrationRule),
		errors.Is(err, usersvc.ErrBadRole),
		errors.Is(err, usersvc.ErrHasMovements):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	h.Log.Error(logMsg, "err", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
}

func toInput(req CreateUserReq) usersvc.CreateInput {
	return usersvc.CreateInput{
		FullName:     req.NomeCompleto,
		CPF:          req.CPF,
		Phone:        req.Telefone,
		Address:      req.Endereco,
		Email:        req.Email,
		Role:         model.Role(req.Tipo),
		Registration: req.Matricula,
		LoanLimit:    req.LimiteEmprestimos,
	}
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
