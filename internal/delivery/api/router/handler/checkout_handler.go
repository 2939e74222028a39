package handler

import (
	"log/slog"
	"net/http"

	"coursemart/internal/delivery/api/middleware"
	"coursemart/internal/delivery/api/response"
	"coursemart/internal/domain/entity"
	domainerrors "coursemart/internal/domain/errors"
	"coursemart/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CheckoutHandlerParams holds dependencies for CheckoutHandler, injected by Fx.
type CheckoutHandlerParams struct {
	fx.In

	Checkout usecase.CheckoutUsecase
	Logger   *slog.Logger
}

// CheckoutHandler serves checkout and order lookups.
type CheckoutHandler struct {
	checkout usecase.CheckoutUsecase
	logger   *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler.
func NewCheckoutHandler(params CheckoutHandlerParams) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: params.Checkout,
		logger:   params.Logger,
	}
}

type CartItemRequest struct {
	CourseOfferedID string  `json:"courseOfferedId" validate:"required"`
	Name            string  `json:"name"`
	Quantity        int     `json:"quantity" validate:"gte=1"`
	Price           float64 `json:"price" validate:"gte=0"`
}

// CheckoutRequest is the body of a checkout. Item prices are taken as given;
// the bill is always recomputed server side.
type CheckoutRequest struct {
	CartItems     []CartItemRequest `json:"cartItems" validate:"required,min=1,dive"`
	PaymentMethod string            `json:"paymentMethod" validate:"omitempty,oneof=credit_card paypal flutterwave bank_transfer"`
}

type CheckoutResponse struct {
	Cart  *CartView  `json:"cart"`
	Order *OrderView `json:"order"`
}

// Checkout creates a cart and its order in one step.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrMissingToken)
	}

	var req CheckoutRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	items := make([]entity.LineItem, 0, len(req.CartItems))
	for _, item := range req.CartItems {
		items = append(items, entity.LineItem{
			CourseOfferedID: item.CourseOfferedID,
			Name:            item.Name,
			Quantity:        item.Quantity,
			Price:           item.Price,
		})
	}

	output, err := h.checkout.Checkout(c.Request().Context(), &usecase.CheckoutInput{
		OwnerID:       ownerID,
		Items:         items,
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, &CheckoutResponse{
		Cart:  newCartView(output.Cart),
		Order: newOrderView(output.Order),
	})
}

// GetOrder returns an order of the current account.
func (h *CheckoutHandler) GetOrder(c echo.Context) error {
	ownerID, orderID, err := h.orderParams(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.checkout.GetOrder(c.Request().Context(), ownerID, orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newOrderView(order))
}

// OrderReceipt renders the QR receipt of an order as PNG.
func (h *CheckoutHandler) OrderReceipt(c echo.Context) error {
	ownerID, orderID, err := h.orderParams(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	png, err := h.checkout.OrderReceiptQR(c.Request().Context(), ownerID, orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	c.Response().Header().Set("Cache-Control", "private, max-age=300")

	return c.Blob(http.StatusOK, "image/png", png)
}

func (h *CheckoutHandler) orderParams(c echo.Context) (ownerID, orderID uuid.UUID, err error) {
	ownerID, ok := middleware.GetAccountID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, domainerrors.ErrMissingToken
	}

	orderID, err = uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid order id")
	}

	return ownerID, orderID, nil
}
