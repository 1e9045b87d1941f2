package book

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/FelipeGehren/projeto-api/app/echoServer/validation"
	bookrepo "github.com/FelipeGehren/projeto-api/repository/book"
	booksvc "github.com/FelipeGehren/projeto-api/service/book"
)

type Controller struct {
	Svc booksvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Create a book
// @Summary      Register book
// @Description  Register a title in the catalog with its copy counters
// @Tags         livros
// @Accept       json
// @Produce      json
// @Param        payload  body  book.CreateBookReq  true  "Book payload"
// @Success      201  {object}  model.Book
// @Failure      400  {object}  map[string]any "validation error / isbn taken / unknown categoria"
// @Failure      500  {object}  map[string]any
// @Router       /livros [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": validation.FieldErrors(err)})
	}
	b, err := h.Svc.Create(c.Request().Context(), toInput(req))
	if err != nil {
		return h.writeErr(c, err, "book create error")
	}
	return c.JSON(http.StatusCreated, b)
}

// GET /livros?categoria_id=&skip=&limit=
func (h *Controller) List(c echo.Context) error {
	f := bookrepo.Filter{Skip: queryUint(c, "skip", 0), Limit: queryUint(c, "limit", 100)}
	if raw := c.QueryParam("categoria_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid categoria_id"})
		}
		f.CategoryID = &id
	}
	rows, err := h.Svc.List(c.Request().Context(), f)
	if err != nil {
		h.Log.Error("book list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /livros/:id
func (h *Controller) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	b, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return h.writeErr(c, err, "book get error")
	}
	return c.JSON(http.StatusOK, b)
}

// PUT /livros/:id
func (h *Controller) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req CreateBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": validation.FieldErrors(err)})
	}
	b, err := h.Svc.Update(c.Request().Context(), id, toInput(req))
	if err != nil {
		return h.writeErr(c, err, "book update error")
	}
	return c.JSON(http.StatusOK, b)
}

// DELETE /livros/:id
func (h *Controller) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.writeErr(c, err, "book delete error")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Controller) writeErr(c echo.Context, err error, logMsg string) error {
	switch {
	case errors.Is(err, booksvc.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "livro not found"})
	case errors.Is(err, booksvc.ErrISBNTaken),
		errors.Is(err, booksvc.ErrCategoryNotFound),
		errors.Is(err, booksvc.ErrBadCounts):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	h.Log.Error(logMsg, "err", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
}

func toInput(req CreateBookReq) booksvc.CreateInput {
	return booksvc.CreateInput{
		Title:           req.Titulo,
		Author:          req.Autor,
		ISBN:            req.ISBN,
		Publisher:       req.Editora,
		PublicationYear: req.AnoPublicacao,
		Edition:         req.Edicao,
		TotalCopies:     req.QuantidadeTotal,
		AvailableCopies: req.QuantidadeDisponivel,
		CategoryID:      req.CategoriaID,
		Location:        req.Localizacao,
		Synopsis:        req.Sinopse,
		CoverURL:        req.CapaURL,
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
