package equipment

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/yar64/diplom-equipment-rental-sub000/model"
	equipmentsvc "github.com/yar64/diplom-equipment-rental-sub000/service/equipment"
)

type Controller struct {
	Svc equipmentsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /v1/equipment
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		h.Log.Error("equipment list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/equipment/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	row, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, equipmentsvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
		}
		h.Log.Error("equipment detail error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, row)
}

// POST /v1/admin/equipment
func (h *Controller) Create(c echo.Context) error {
	var req CreateEquipmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	id, err := h.Svc.Create(c.Request().Context(), &model.Equipment{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		PricePerDay: req.PricePerDay,
		Quantity:    req.Quantity,
		Available:   req.Available,
	})
	if err != nil {
		if errors.Is(err, equipmentsvc.ErrBadInput) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid payload"})
		}
		h.Log.Error("equipment create error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// PUT /v1/admin/equipment/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req CreateEquipmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	err = h.Svc.Update(c.Request().Context(), &model.Equipment{
		ID:          id,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		PricePerDay: req.PricePerDay,
		Quantity:    req.Quantity,
		Available:   req.Available,
	})
	if err != nil {
		switch {
		case errors.Is(err, equipmentsvc.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
		case errors.Is(err, equipmentsvc.ErrBadInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid payload"})
		default:
			h.Log.Error("equipment update error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "updated"})
}

// POST /v1/admin/equipment/:id/availability
func (h *Controller) SetAvailability(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req SetAvailabilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	if err := h.Svc.SetAvailability(c.Request().Context(), id, *req.Available); err != nil {
		if errors.Is(err, equipmentsvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
		}
		h.Log.Error("equipment availability error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"available": *req.Available})
}
