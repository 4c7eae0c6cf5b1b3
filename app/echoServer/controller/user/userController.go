package user

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	usersvc "github.com/yar64/diplom-equipment-rental-sub000/service/user"
)

type Controller struct {
	Svc usersvc.Service
	Log *slog.Logger
}

// GET /v1/users/me
func (h *Controller) Me(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	u, err := h.Svc.Profile(c.Request().Context(), uid)
	if err != nil {
		if errors.Is(err, usersvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
		}
		h.Log.Error("profile error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, u)
}

// GET /v1/favorites
func (h *Controller) Favorites(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rows, err := h.Svc.Favorites(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("favorites list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/favorites/:equipmentID
func (h *Controller) AddFavorite(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("equipmentID"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	if err := h.Svc.AddFavorite(c.Request().Context(), uid, id); err != nil {
		if errors.Is(err, usersvc.ErrEquipmentGone) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "equipment not found"})
		}
		h.Log.Error("favorite add error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "added"})
}

// DELETE /v1/favorites/:equipmentID
func (h *Controller) RemoveFavorite(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("equipmentID"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	if err := h.Svc.RemoveFavorite(c.Request().Context(), uid, id); err != nil {
		if errors.Is(err, usersvc.ErrNotFavorite) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not a favorite"})
		}
		h.Log.Error("favorite remove error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "removed"})
}

// GET /v1/admin/users
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("users list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
