package fine

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/FelipeGehren/projeto-api/app/echoServer/validation"
	"github.com/FelipeGehren/projeto-api/model"
	finerepo "github.com/FelipeGehren/projeto-api/repository/fine"
	finesvc "github.com/FelipeGehren/projeto-api/service/fine"
)

type Controller struct {
	Svc finesvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /multas
func (h *Controller) Create(c echo.Context) error {
	var req CreateFineReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": validation.FieldErrors(err)})
	}
	f, err := h.Svc.Create(c.Request().Context(), finesvc.CreateInput{
		LoanID:     req.EmprestimoID,
		Amount:     req.Valor,
		Reason:     req.Motivo,
		DaysLate:   req.DiasAtraso,
		RatePerDay: req.ValorPorDia,
	})
	if err != nil {
		return h.writeErr(c, err, "fine create error")
	}
	return c.JSON(http.StatusCreated, f)
}

// GET /multas?status=&emprestimo_id=&skip=&limit=
func (h *Controller) List(c echo.Context) error {
	f := finerepo.Filter{Skip: queryUint(c, "skip", 0), Limit: queryUint(c, "limit", 100)}
	if raw := c.QueryParam("status"); raw != "" {
		st := model.FineStatus(raw)
		f.Status = &st
	}
	if raw := c.QueryParam("emprestimo_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid emprestimo_id"})
		}
		f.LoanID = &id
	}
	rows, err := h.Svc.List(c.Request().Context(), f)
	if err != nil {
		h.Log.Error("fine list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /multas/:id
func (h *Controller) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	f, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return h.writeErr(c, err, "fine get error")
	}
	return c.JSON(http.StatusOK, f)
}

// PUT /multas/:id/pagar
func (h *Controller) Pay(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	f, err := h.Svc.Pay(c.Request().Context(), id)
	if err != nil {
		return h.writeErr(c, err, "fine pay error")
	}
	return c.JSON(http.StatusOK, f)
}

// PUT /multas/:id/cancelar
func (h *Controller) Cancel(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	f, err := h.Svc.Cancel(c.Request().Context(), id)
	if err != nil {
		return h.writeErr(c, err, "fine cancel error")
	}
	return c.JSON(http.StatusOK, f)
}

// DELETE /multas/:id
func (h *Controller) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.writeErr(c, err, "fine delete error")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Controller) writeErr(c echo.Context, err error, logMsg string) error {
	switch finesvc.Code(err) {
	case finesvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "multa not found"})
	case finesvc.ErrLoanNotFound:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "emprestimo not found"})
	case finesvc.ErrLoanNotOverdue:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "emprestimo is not atrasado"})
	case finesvc.ErrDuplicate:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "emprestimo already has a pending multa"})
	case finesvc.ErrNotPending:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "multa is not pendente"})
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
