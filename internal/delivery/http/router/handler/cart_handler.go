package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler holds dependencies for cart-related handlers.
type CartHandler struct {
	uc     usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: logger,
	}
}

// View handles the cart view request: lines, totals and badge count.
func (h *CartHandler) View(c echo.Context) error {
	view, err := h.uc.View(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Cart retrieved successfully")
}

// Totals handles the cart totals request.
func (h *CartHandler) Totals(c echo.Context) error {
	totals, err := h.uc.Totals(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, totals, "Totals computed successfully")
}

// AddItem handles the add-to-cart request.
func (h *CartHandler) AddItem(c echo.Context) error {
	var input usecase.AddItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid add-to-cart input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.AddItem(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	view, err := h.uc.View(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Item added to cart")
}

// ChangeQuantity handles the quantity delta request for one line.
func (h *CartHandler) ChangeQuantity(c echo.Context) error {
	var input usecase.ChangeQuantityInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quantity change input")
	}

	if err := h.uc.ChangeQuantity(c.Request().Context(), c.Param("id"), input.Delta); err != nil {
		return errors.WithStack(err)
	}

	view, err := h.uc.View(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Quantity changed")
}

// SetQuantity handles the quantity replacement request for one line.
func (h *CartHandler) SetQuantity(c echo.Context) error {
	var input usecase.SetQuantityInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quantity input")
	}

	if err := h.uc.SetQuantity(c.Request().Context(), c.Param("id"), input.Quantity); err != nil {
		return errors.WithStack(err)
	}

	view, err := h.uc.View(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Quantity set")
}

// RemoveItem handles the remove-from-cart request.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	if err := h.uc.RemoveItem(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	view, err := h.uc.View(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Item removed from cart")
}
