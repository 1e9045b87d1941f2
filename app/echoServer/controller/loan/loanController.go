package loan

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/FelipeGehren/projeto-api/app/echoServer/validation"
	"github.com/FelipeGehren/projeto-api/model"
	loanrepo "github.com/FelipeGehren/projeto-api/repository/loan"
	loansvc "github.com/FelipeGehren/projeto-api/service/loan"
)

type Controller struct {
	Svc loansvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Create a loan
// @Summary      Register loan
// @Description  Lend one copy of a book to a user; decrements the availability counter
// @Tags         emprestimos
// @Accept       json
// @Produce      json
// @Param        payload  body  loan.CreateLoanReq  true  "Loan payload"
// @Success      201  {object}  model.Loan
// @Failure      400  {object}  map[string]any "no copy available / invalid usuario or funcionario"
// @Failure      500  {object}  map[string]any
// @Router       /emprestimos [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": validation.FieldErrors(err)})
	}
	if !req.DataDevolucaoPrevista.After(time.Now()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "data_devolucao_prevista must be in the future"})
	}
	l, err := h.Svc.Create(c.Request().Context(), loansvc.CreateInput{
		UserID:     req.UsuarioID,
		BookID:     req.LivroID,
		StaffID:    req.FuncionarioID,
		DueAt:      req.DataDevolucaoPrevista,
		PeriodDays: req.DiasEmprestimo,
		Notes:      req.Observacoes,
	})
	if err != nil {
		return h.writeErr(c, err, "loan create error")
	}
	return c.JSON(http.StatusCreated, l)
}

// GET /emprestimos?status=&usuario_id=&skip=&limit=
func (h *Controller) List(c echo.Context) error {
	f := loanrepo.Filter{Skip: queryUint(c, "skip", 0), Limit: queryUint(c, "limit", 100)}
	if raw := c.QueryParam("status"); raw != "" {
		st := model.LoanStatus(raw)
		f.Status = &st
	}
	if raw := c.QueryParam("usuario_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid usuario_id"})
		}
		f.UserID = &id
	}
	rows, err := h.Svc.List(c.Request().Context(), f)
	if err != nil {
		h.Log.Error("loan list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /emprestimos/:id
func (h *Controller) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	l, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return h.writeErr(c, err, "loan get error")
	}
	return c.JSON(http.StatusOK, l)
}

// PUT /emprestimos/:id/devolver
func (h *Controller) Return(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	l, err := h.Svc.Return(c.Request().Context(), id)
	if err != nil {
		return h.writeErr(c, err, "loan return error")
	}
	return c.JSON(http.StatusOK, l)
}

// DELETE /emprestimos/:id
func (h *Controller) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.writeErr(c, err, "loan delete error")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Controller) writeErr(c echo.Context, err error, logMsg string) error {
	switch loansvc.Code(err) {
	case loansvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "emprestimo not found"})
	case loansvc.ErrBookUnavailable:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "no copy available"})
	case loansvc.ErrBorrowerInvalid:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "usuario missing or inactive"})
	case loansvc.ErrStaffInvalid:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "funcionario_id is not a funcionario"})
	case loansvc.ErrNotActive:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "emprestimo is not ativo"})
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
