// Package main equipment rental API.
//
// @title           Equipment Rental API
// @version         1.0
// @description     equipment rental service (catalog, bookings, favorites, reviews, back-office).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/yar64/diplom-equipment-rental-sub000/app/echoServer"
	authctrl "github.com/yar64/diplom-equipment-rental-sub000/app/echoServer/controller/auth"
	bookingctrl "github.com/yar64/diplom-equipment-rental-sub000/app/echoServer/controller/booking"
	equipmentctrl "github.com/yar64/diplom-equipment-rental-sub000/app/echoServer/controller/equipment"
	reviewctrl "github.com/yar64/diplom-equipment-rental-sub000/app/echoServer/controller/review"
	userctrl "github.com/yar64/diplom-equipment-rental-sub000/app/echoServer/controller/user"
	"github.com/yar64/diplom-equipment-rental-sub000/config"
	authrepo "github.com/yar64/diplom-equipment-rental-sub000/repository/auth"
	bookingrepo "github.com/yar64/diplom-equipment-rental-sub000/repository/booking"
	equipmentrepo "github.com/yar64/diplom-equipment-rental-sub000/repository/equipment"
	reviewrepo "github.com/yar64/diplom-equipment-rental-sub000/repository/review"
	userrepo "github.com/yar64/diplom-equipment-rental-sub000/repository/user"
	authsvc "github.com/yar64/diplom-equipment-rental-sub000/service/auth"
	bookingsvc "github.com/yar64/diplom-equipment-rental-sub000/service/booking"
	equipmentsvc "github.com/yar64/diplom-equipment-rental-sub000/service/equipment"
	reviewsvc "github.com/yar64/diplom-equipment-rental-sub000/service/review"
	usersvc "github.com/yar64/diplom-equipment-rental-sub000/service/user"
	"github.com/yar64/diplom-equipment-rental-sub000/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: one pool for the process
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ar := authrepo.New(db)
	er := equipmentrepo.New(db)
	br := bookingrepo.New(db)
	rr := reviewrepo.New(db)
	ur := userrepo.New(db)

	// services
	as := authsvc.New(ar, cfg.JWTSecret)
	es := equipmentsvc.New(er)
	bs := bookingsvc.New(br)
	rs := reviewsvc.New(rr)
	us := usersvc.New(ur)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	equipmentC := &equipmentctrl.Controller{Svc: es, V: v, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, V: v, Log: log}
	reviewC := &reviewctrl.Controller{Svc: rs, V: v, Log: log}
	userC := &userctrl.Controller{Svc: us, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:      authC,
		Equipment: equipmentC,
		Booking:   bookingC,
		Review:    reviewC,
		User:      userC,

		JWTSecret: cfg.JWTSecret,
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
