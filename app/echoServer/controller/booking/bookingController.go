package booking

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/yar64/diplom-equipment-rental-sub000/model"
	bs "github.com/yar64/diplom-equipment-rental-sub000/service/booking"
)

type Controller struct {
	Svc bs.Service
	V   *validator.Validate
	Log *slog.Logger
}

const dateLayout = "2006-01-02"

// POST /v1/bookings
// @Summary      Create booking
// @Description  Book equipment for a date range; shared boundary days conflict
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateBookingReq  true  "Booking payload"
// @Success      201  {object}  model.Booking
// @Failure      400  {object}  map[string]any "invalid dates"
// @Failure      404  {object}  map[string]any "equipment not found"
// @Failure      409  {object}  map[string]any "dates conflict or out of stock"
// @Router       /v1/bookings [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	start, _ := time.Parse(dateLayout, req.StartDate)
	end, _ := time.Parse(dateLayout, req.EndDate)
	uid, _ := c.Get("user_id").(int64)

	b, err := h.Svc.Create(c.Request().Context(), uid, req.EquipmentID, start, end)
	if err != nil {
		h.Log.Error("booking create", "err", err)
		switch bs.Code(err) {
		case bs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "equipment not found"})
		case bs.ErrUnavailable:
			return c.JSON(http.StatusConflict, echo.Map{"message": "equipment unavailable"})
		case bs.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"message": "dates already booked"})
		case bs.ErrInvalidRange:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid date range"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, b)
}

// GET /v1/equipment/:id/availability?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Controller) Availability(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	from, err := time.Parse(dateLayout, c.QueryParam("from"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid from date"})
	}
	to, err := time.Parse(dateLayout, c.QueryParam("to"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid to date"})
	}

	free, err := h.Svc.Available(c.Request().Context(), id, from, to)
	if err != nil {
		if bs.Code(err) == bs.ErrInvalidRange {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid date range"})
		}
		h.Log.Error("availability", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"available": free})
}

// POST /v1/bookings/:id/cancel
func (h *Controller) Cancel(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	if err := h.Svc.Cancel(c.Request().Context(), uid, id); err != nil {
		h.Log.Error("booking cancel", "err", err)
		switch bs.Code(err) {
		case bs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "booking not found"})
		case bs.ErrNotOwner:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		case bs.ErrBadTransition:
			return c.JSON(http.StatusConflict, echo.Map{"message": "booking can no longer be cancelled"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "cancelled"})
}

// GET /v1/bookings/my
func (h *Controller) MyBookings(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rows, err := h.Svc.MyBookings(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("my bookings", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/admin/bookings
func (h *Controller) ListAll(c echo.Context) error {
	rows, err := h.Svc.AllBookings(c.Request().Context())
	if err != nil {
		h.Log.Error("bookings list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/admin/bookings/:id/confirm|activate|complete
func (h *Controller) transition(c echo.Context, to model.BookingStatus) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Transition(c.Request().Context(), id, to); err != nil {
		h.Log.Error("booking transition", "to", string(to), "err", err)
		switch bs.Code(err) {
		case bs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "booking not found"})
		case bs.ErrBadTransition:
			return c.JSON(http.StatusConflict, echo.Map{"message": "transition not allowed"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"status": string(to)})
}

func (h *Controller) Confirm(c echo.Context) error {
	return h.transition(c, model.BookingConfirmed)
}

func (h *Controller) Activate(c echo.Context) error {
	return h.transition(c, model.BookingActive)
}

func (h *Controller) Complete(c echo.Context) error {
	return h.transition(c, model.BookingCompleted)
}

// POST /v1/admin/bookings/:id/paid
func (h *Controller) MarkPaid(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.MarkPaid(c.Request().Context(), id); err != nil {
		h.Log.Error("booking mark paid", "err", err)
		switch bs.Code(err) {
		case bs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "booking not found"})
		case bs.ErrBadTransition:
			return c.JSON(http.StatusConflict, echo.Map{"message": "booking not payable"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"payment_status": string(model.PaymentPaid)})
}
