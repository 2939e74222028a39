package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	deliverycontext "coursemart/internal/delivery/context"
	"coursemart/internal/domain/entity"
	domainerrors "coursemart/internal/domain/errors"
	"coursemart/internal/domain/repository"
	"coursemart/internal/domain/service"
	"coursemart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// checkoutService implements the CheckoutUsecase interface. The cart and order
// ledgers run on the repositories of whichever transaction calls them.
type checkoutService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	qrService service.QRCodeService
	publisher service.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	QRService service.QRCodeService
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		qrService: params.QRService,
		publisher: params.Publisher,
		logger:    params.Logger,
		now:       time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateCart opens a cart for ownerID; the owner must not have an open one.
func (srv *checkoutService) CreateCart(ctx context.Context, ownerID uuid.UUID, items []entity.LineItem) (*entity.Cart, error) {
	var cart *entity.Cart
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var createErr error
		cart, createErr = srv.createCart(ctx, repoFactory, ownerID, items)

		return createErr
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

// CreateOrder places the order of an open cart owned by ownerID and closes the cart.
func (srv *checkoutService) CreateOrder(ctx context.Context, ownerID, cartID uuid.UUID, method entity.PaymentMethod) (*entity.Order, error) {
	method, err := paymentMethodOrDefault(method)
	if err != nil {
		return nil, err
	}

	var order *entity.Order
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var createErr error
		order, createErr = srv.createOrder(ctx, repoFactory, ownerID, cartID, method)

		return createErr
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// Checkout runs createCart and createOrder in one transaction, so a failed
// order leaves no cart behind.
func (srv *checkoutService) Checkout(ctx context.Context, input *usecase.CheckoutInput) (*usecase.CheckoutOutput, error) {
	method, err := paymentMethodOrDefault(input.PaymentMethod)
	if err != nil {
		return nil, domainerrors.NewCheckoutError(domainerrors.StageCreateOrder, err)
	}

	srv.log(ctx).Info("Starting checkout", slog.Any("owner_id", input.OwnerID), slog.Int("items", len(input.Items)))

	var output usecase.CheckoutOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cart, err := srv.createCart(ctx, repoFactory, input.OwnerID, input.Items)
		if err != nil {
			return domainerrors.NewCheckoutError(domainerrors.StageCreateCart, err)
		}

		order, err := srv.createOrder(ctx, repoFactory, input.OwnerID, cart.ID, method)
		if err != nil {
			return domainerrors.NewCheckoutError(domainerrors.StageCreateOrder, err)
		}
		cart.Status = entity.CartStatusCheckedOut

		output.Cart = cart
		output.Order = order

		return nil
	})
	if err != nil {
		var checkoutErr *domainerrors.CheckoutError
		if !errors.As(err, &checkoutErr) {
			checkoutErr = domainerrors.NewCheckoutError(domainerrors.StageCommit, err)
		}
		srv.log(ctx).Error("Checkout failed",
			slog.Any("owner_id", input.OwnerID),
			slog.String("stage", string(checkoutErr.Stage)),
			slog.Any("error", err),
		)

		return nil, checkoutErr
	}

	srv.log(ctx).Info("Checkout completed",
		slog.Any("owner_id", input.OwnerID),
		slog.Any("order_id", output.Order.ID),
		slog.Float64("total_amount", output.Order.TotalAmount),
	)

	publishEvent(ctx, srv.publisher, srv.log(ctx), service.EventOrderPlaced, map[string]string{
		"order_id":     output.Order.ID.String(),
		"cart_id":      output.Cart.ID.String(),
		"owner_id":     output.Order.OwnerID.String(),
		"total_amount": strconv.FormatFloat(output.Order.TotalAmount, 'f', 2, 64),
	})

	return &output, nil
}

// GetOrder returns an order of ownerID.
func (srv *checkoutService) GetOrder(ctx context.Context, ownerID, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}
	if order.OwnerID != ownerID {
		return nil, domainerrors.ErrOrderOwnershipMismatch
	}

	return order, nil
}

// OrderReceiptQR renders the receipt QR code of an order of ownerID.
func (srv *checkoutService) OrderReceiptQR(ctx context.Context, ownerID, orderID uuid.UUID) ([]byte, error) {
	order, err := srv.GetOrder(ctx, ownerID, orderID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateOrderReceiptQR(order.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render receipt")
	}

	return png, nil
}

// createCart is the cart ledger: one open cart per owner, bill recomputed from the items.
func (srv *checkoutService) createCart(ctx context.Context, repoFactory repository.RepositoryFactory, ownerID uuid.UUID, items []entity.LineItem) (*entity.Cart, error) {
	if err := validateLineItems(items); err != nil {
		return nil, err
	}

	if _, err := repoFactory.AccountRepo().FindByID(ctx, ownerID); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WithDetails("cart owner no longer exists")
		}

		return nil, errors.Wrap(err, "failed to find cart owner")
	}

	cartRepo := repoFactory.CartRepo()
	_, err := cartRepo.FindOpenByOwner(ctx, ownerID)
	if err == nil {
		return nil, domainerrors.ErrCartAlreadyExists
	}
	if !errors.Is(err, repository.ErrCartNotFound) {
		return nil, errors.Wrap(err, "failed to find open cart")
	}

	now := srv.now()
	cart := &entity.Cart{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Items:     append([]entity.LineItem(nil), items...),
		Bill:      entity.ComputeBill(items),
		Status:    entity.CartStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := cartRepo.Create(ctx, cart); err != nil {
		if errors.Is(err, repository.ErrCartAlreadyExists) {
			return nil, domainerrors.ErrCartAlreadyExists
		}

		return nil, errors.Wrap(err, "failed to create cart")
	}

	return cart, nil
}

// createOrder is the order ledger: one order per cart, owned by the cart's owner.
// The cart is closed in the same transaction.
func (srv *checkoutService) createOrder(ctx context.Context, repoFactory repository.RepositoryFactory, ownerID, cartID uuid.UUID, method entity.PaymentMethod) (*entity.Order, error) {
	cartRepo := repoFactory.CartRepo()
	orderRepo := repoFactory.OrderRepo()

	cart, err := cartRepo.FindByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, domainerrors.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}
	if cart.OwnerID != ownerID {
		return nil, domainerrors.ErrCartOwnershipMismatch
	}

	_, err = orderRepo.FindByCartID(ctx, cartID)
	if err == nil {
		return nil, domainerrors.ErrOrderAlreadyExists
	}
	if !errors.Is(err, repository.ErrOrderNotFound) {
		return nil, errors.Wrap(err, "failed to find order")
	}

	// the stored bill was computed by the cart ledger
	order := entity.NewOrder(cart, method, srv.now())
	if err := orderRepo.Create(ctx, order); err != nil {
		if errors.Is(err, repository.ErrOrderAlreadyExists) {
			return nil, domainerrors.ErrOrderAlreadyExists
		}

		return nil, errors.Wrap(err, "failed to create order")
	}

	if err := cartRepo.MarkCheckedOut(ctx, cart.ID); err != nil {
		return nil, errors.Wrap(err, "failed to close cart")
	}

	return order, nil
}

func validateLineItems(items []entity.LineItem) error {
	if len(items) == 0 {
		return domainerrors.ErrValidationFailed.WithDetails("cart must contain at least one item")
	}

	for i, item := range items {
		switch {
		case item.CourseOfferedID == "":
			return domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("item %d: courseOfferedId is required", i))
		case item.Quantity < 1:
			return domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("item %d: quantity must be at least 1", i))
		case item.Price < 0:
			return domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("item %d: price must not be negative", i))
		}
	}

	return nil
}

func paymentMethodOrDefault(method entity.PaymentMethod) (entity.PaymentMethod, error) {
	if method == "" {
		return entity.PaymentMethodCreditCard, nil
	}
	if !method.IsValid() {
		return "", domainerrors.ErrValidationFailed.WithDetails("unsupported payment method " + string(method))
	}

	return method, nil
}
