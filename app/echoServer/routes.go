package echoServer

import (
	"github.com/labstack/echo/v4"

	"github.com/FelipeGehren/projeto-api/app/echoServer/controller/book"
	"github.com/FelipeGehren/projeto-api/app/echoServer/controller/category"
	"github.com/FelipeGehren/projeto-api/app/echoServer/controller/fine"
	"github.com/FelipeGehren/projeto-api/app/echoServer/controller/loan"
	"github.com/FelipeGehren/projeto-api/app/echoServer/controller/reservation"
	"github.com/FelipeGehren/projeto-api/app/echoServer/controller/user"
)

type C struct {
	User        *user.Controller
	Category    *category.Controller
	Book        *book.Controller
	Loan        *loan.Controller
	Reservation *reservation.Controller
	Fine        *fine.Controller
}

func Register(e *echo.Echo, c C) {
	// Usuarios
	e.POST("/usuarios", c.User.Create)
	e.GET("/usuarios", c.User.List)
	e.GET("/usuarios/:id", c.User.Get)
	e.PUT("/usuarios/:id", c.User.Update)
	e.PATCH("/usuarios/:id/status", c.User.SetStatus)
	e.DELETE("/usuarios/:id", c.User.Delete)

	// Categorias
	e.POST("/categorias", c.Category.Create)
	e.GET("/categorias", c.Category.List)
	e.GET("/categorias/:id", c.Category.Get)
	e.PUT("/categorias/:id", c.Category.Update)
	e.DELETE("/categorias/:id", c.Category.Delete)

	// Livros
	e.POST("/livros", c.Book.Create)
	e.GET("/livros", c.Book.List)
	e.GET("/livros/:id", c.Book.Get)
	e.PUT("/livros/:id", c.Book.Update)
	e.DELETE("/livros/:id", c.Book.Delete)

	// Emprestimos
	e.POST("/emprestimos", c.Loan.Create)
	e.GET("/emprestimos", c.Loan.List)
	e.GET("/emprestimos/:id", c.Loan.Get)
	e.PUT("/emprestimos/:id/devolver", c.Loan.Return)
	e.DELETE("/emprestimos/:id", c.Loan.Delete)

	// Reservas
	e.POST("/reservas", c.Reservation.Create)
	e.GET("/reservas", c.Reservation.List)
	e.GET("/reservas/:id", c.Reservation.Get)
	e.PUT("/reservas/:id/cancelar", c.Reservation.Cancel)
	e.DELETE("/reservas/:id", c.Reservation.Delete)

	// Multas
	e.POST("/multas", c.Fine.Create)
	e.GET("/multas", c.Fine.List)
	e.GET("/multas/:id", c.Fine.Get)
	e.PUT("/multas/:id/pagar", c.Fine.Pay)
	e.PUT("/multas/:id/cancelar", c.Fine.Cancel)
	e.DELETE("/multas/:id", c.Fine.Delete)
}
