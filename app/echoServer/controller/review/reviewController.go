package review

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	reviewsvc "github.com/yar64/diplom-equipment-rental-sub000/service/review"
)

type Controller struct {
	Svc reviewsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type CreateReviewReq struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// POST /v1/equipment/:id/reviews
func (h *Controller) Create(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req CreateReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	rv, err := h.Svc.Create(c.Request().Context(), uid, id, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, reviewsvc.ErrEquipmentGone):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "equipment not found"})
		case errors.Is(err, reviewsvc.ErrAlreadyReviewed):
			return c.JSON(http.StatusConflict, echo.Map{"message": "already reviewed"})
		case errors.Is(err, reviewsvc.ErrBadInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid payload"})
		default:
			h.Log.Error("review create error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, rv)
}

// GET /v1/equipment/:id/reviews
func (h *Controller) ListByEquipment(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rows, err := h.Svc.ListByEquipment(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("review list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// DELETE /v1/admin/reviews/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, reviewsvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
		}
		h.Log.Error("review delete error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}
