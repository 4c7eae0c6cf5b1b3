package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/yar64/diplom-equipment-rental-sub000/app/echoServer/controller/auth"
	"github.com/yar64/diplom-equipment-rental-sub000/app/echoServer/controller/booking"
	"github.com/yar64/diplom-equipment-rental-sub000/app/echoServer/controller/equipment"
	"github.com/yar64/diplom-equipment-rental-sub000/app/echoServer/controller/review"
	"github.com/yar64/diplom-equipment-rental-sub000/app/echoServer/controller/user"
	"github.com/yar64/diplom-equipment-rental-sub000/app/echoServer/jwtx"
)

type C struct {
	Auth      *auth.Controller
	Equipment *equipment.Controller
	Booking   *booking.Controller
	Review    *review.Controller
	User      *user.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// Auth
	authed := e.Group("/v1")
	authed.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	// user_id + role extraction from verified claims
	authed.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			uid, err := jwtx.UserIDFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			ctx.Set("user_id", uid)

			if role, err := jwtx.RoleFromContext(ctx); err == nil {
				ctx.Set("role", role)
			}
			return next(ctx)
		}
	})

	// Catalog
	authed.GET("/equipment", c.Equipment.List)
	authed.GET("/equipment/:id", c.Equipment.Detail)
	authed.GET("/equipment/:id/availability", c.Booking.Availability)

	// Reviews
	authed.GET("/equipment/:id/reviews", c.Review.ListByEquipment)
	authed.POST("/equipment/:id/reviews", c.Review.Create)

	// Bookings
	authed.POST("/bookings", c.Booking.Create)
	authed.POST("/bookings/:id/cancel", c.Booking.Cancel)
	authed.GET("/bookings/my", c.Booking.MyBookings)

	// Profile & favorites
	authed.GET("/users/me", c.User.Me)
	authed.GET("/favorites", c.User.Favorites)
	authed.POST("/favorites/:equipmentID", c.User.AddFavorite)
	authed.DELETE("/favorites/:equipmentID", c.User.RemoveFavorite)

	// Back-office
	admin := authed.Group("/admin", RequireAdmin())
	admin.POST("/equipment", c.Equipment.Create)
	admin.PUT("/equipment/:id", c.Equipment.Update)
	admin.POST("/equipment/:id/availability", c.Equipment.SetAvailability)

	admin.GET("/bookings", c.Booking.ListAll)
	admin.POST("/bookings/:id/confirm", c.Booking.Confirm)
	admin.POST("/bookings/:id/activate", c.Booking.Activate)
	admin.POST("/bookings/:id/complete", c.Booking.Complete)
	admin.POST("/bookings/:id/paid", c.Booking.MarkPaid)

	admin.GET("/users", c.User.List)
	admin.DELETE("/reviews/:id", c.Review.Delete)
}
