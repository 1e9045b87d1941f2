// Package main library records API.
//
// @title           Library Records API
// @version         1.0
// @description     Record keeping for a small library: usuarios, categorias, livros, emprestimos, reservas and multas.
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/FelipeGehren/projeto-api/app/echoServer"
	bookctrl "github.com/FelipeGehren/projeto-api/app/echoServer/controller/book"
	categoryctrl "github.com/FelipeGehren/projeto-api/app/echoServer/controller/category"
	finectrl "github.com/FelipeGehren/projeto-api/app/echoServer/controller/fine"
	loanctrl "github.com/FelipeGehren/projeto-api/app/echoServer/controller/loan"
	reservationctrl "github.com/FelipeGehren/projeto-api/app/echoServer/controller/reservation"
	userctrl "github.com/FelipeGehren/projeto-api/app/echoServer/controller/user"
	"github.com/FelipeGehren/projeto-api/app/echoServer/validation"
	"github.com/FelipeGehren/projeto-api/config"
	bookrepo "github.com/FelipeGehren/projeto-api/repository/book"
	categoryrepo "github.com/FelipeGehren/projeto-api/repository/category"
	finerepo "github.com/FelipeGehren/projeto-api/repository/fine"
	loanrepo "github.com/FelipeGehren/projeto-api/repository/loan"
	reservationrepo "github.com/FelipeGehren/projeto-api/repository/reservation"
	userrepo "github.com/FelipeGehren/projeto-api/repository/user"
	booksvc "github.com/FelipeGehren/projeto-api/service/book"
	categorysvc "github.com/FelipeGehren/projeto-api/service/category"
	finesvc "github.com/FelipeGehren/projeto-api/service/fine"
	loansvc "github.com/FelipeGehren/projeto-api/service/loan"
	reservationsvc "github.com/FelipeGehren/projeto-api/service/reservation"
	usersvc "github.com/FelipeGehren/projeto-api/service/user"
	"github.com/FelipeGehren/projeto-api/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Bootstrap(ctx, db); err != nil {
		log.Error("db bootstrap failed", "err", err)
		os.Exit(1)
	}

	// repos
	ur := userrepo.New(db)
	cr := categoryrepo.New(db)
	br := bookrepo.New(db)
	lr := loanrepo.New(db)
	rr := reservationrepo.New(db)
	fr := finerepo.New(db)

	// services
	us := usersvc.New(ur)
	cs := categorysvc.New(cr)
	bs := booksvc.New(br)
	ls := loansvc.New(lr)
	rs := reservationsvc.New(rr)
	fs := finesvc.New(fr)

	// controllers
	val := validation.New()
	v := val.Struct()
	userC := &userctrl.Controller{Svc: us, V: v, Log: log}
	categoryC := &categoryctrl.Controller{Svc: cs, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	loanC := &loanctrl.Controller{Svc: ls, V: v, Log: log}
	reservationC := &reservationctrl.Controller{Svc: rs, V: v, Log: log}
	fineC := &finectrl.Controller{Svc: fs, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.JSONSerializer = echoServer.JSONSerializer{}
	e.Validator = val

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		User:        userC,
		Category:    categoryC,
		Book:        bookC,
		Loan:        loanC,
		Reservation: reservationC,
		Fine:        fineC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "PORT_env", os.Getenv("PORT"), "chosen_port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
