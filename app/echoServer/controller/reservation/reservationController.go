package reservation

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/FelipeGehren/projeto-api/app/echoServer/validation"
	"github.com/FelipeGehren/projeto-api/model"
	reservationrepo "github.com/FelipeGehren/projeto-api/repository/reservation"
	reservationsvc "github.com/FelipeGehren/projeto-api/service/reservation"
)

type Controller struct {
	Svc reservationsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /reservas
func (h *Controller) Create(c echo.Context) error {
	var req CreateReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": validation.FieldErrors(err)})
	}
	r, err := h.Svc.Create(c.Request().Context(), reservationsvc.CreateInput{
		UserID:   req.UsuarioID,
		BookID:   req.LivroID,
		Deadline: req.DataLimite,
		Priority: req.Prioridade,
	})
	if err != nil {
		return h.writeErr(c, err, "reservation create error")
	}
	return c.JSON(http.StatusCreated, r)
}

// GET /reservas?status=&usuario_id=&skip=&limit=
func (h *Controller) List(c echo.Context) error {
	f := reservationrepo.Filter{Skip: queryUint(c, "skip", 0), Limit: queryUint(c, "limit", 100)}
	if raw := c.QueryParam("status"); raw != "" {
		st := model.ReservationStatus(raw)
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
		h.Log.Error("reservation list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /reservas/:id
func (h *Controller) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	r, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return h.writeErr(c, err, "reservation get error")
	}
	return c.JSON(http.StatusOK, r)
}

// PUT /reservas/:id/cancelar
func (h *Controller) Cancel(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	r, err := h.Svc.Cancel(c.Request().Context(), id)
	if err != nil {
		return h.writeErr(c, err, "reservation cancel error")
	}
	return c.JSON(http.StatusOK, r)
}

// DELETE /reservas/:id
func (h *Controller) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.writeErr(c, err, "reservation delete error")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Controller) writeErr(c echo.Context, err error, logMsg string) error {
	switch reservationsvc.Code(err) {
	case reservationsvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "reserva not found"})
	case reservationsvc.ErrBookNotFound:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "livro not found"})
	case reservationsvc.ErrUserInvalid:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "usuario missing or inactive"})
	case reservationsvc.ErrDuplicate:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "usuario already has a pending reserva for this livro"})
	case reservationsvc.ErrNotPending:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "reserva is not pendente"})
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
