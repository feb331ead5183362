package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/pixelgrove/storefront/internal/domain/entity"
	repo "github.com/pixelgrove/storefront/internal/domain/repository"
	"github.com/pixelgrove/storefront/pkg/helpers"
	"github.com/pixelgrove/storefront/pkg/mailer"
)

var (
	ErrEmptyOrder       = errors.New("order has no items")
	ErrNegativeTotal    = errors.New("total price must not be negative")
	ErrBadPaymentMethod = errors.New("unsupported payment method")
	ErrOrderNotFound    = errors.New("order not found")
	ErrNotOrderOwner    = errors.New("order belongs to another user")
)

// OrderService validates and persists immutable order snapshots. The line
// items and total are frozen at placement; later catalog changes never touch
// a stored order.
type OrderService struct {
	Orders   repo.OrderRepository
	Products repo.ProductRepository
	Users    repo.UserRepository
	Pub      *helpers.RabbitPublisher
	Logger   *logrus.Logger
}

func NewOrderService(orders repo.OrderRepository, products repo.ProductRepository, users repo.UserRepository, pub *helpers.RabbitPublisher, logger *logrus.Logger) *OrderService {
	return &OrderService{Orders: orders, Products: products, Users: users, Pub: pub, Logger: logger}
}

func (s *OrderService) validate(ctx context.Context, o *entity.Order) error {
	if len(o.Items) == 0 {
		return ErrEmptyOrder
	}
	if o.TotalPrice < 0 {
		return ErrNegativeTotal
	}
	switch o.PaymentInfo.PaymentMethod {
	case entity.PaymentCreditCard, entity.PaymentDebitCard, entity.PaymentPaypal:
	default:
		return ErrBadPaymentMethod
	}

	ids := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		if item.Quantity < 1 {
			return ErrBadQuantity
		}
		ids = append(ids, item.ProductID)
	}
	known, err := s.Products.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if known[id] == nil {
			return ErrProductNotFound
		}
	}
	return nil
}

// Place persists a new order snapshot. It deliberately does not touch the
// cart or the library; callers either orchestrate those steps themselves or
// use Checkout for the all-or-nothing path.
func (s *OrderService) Place(ctx context.Context, o *entity.Order) error {
	if err := s.validate(ctx, o); err != nil {
		return err
	}
	if err := s.Orders.Create(ctx, o); err != nil {
		return err
	}
	s.publishReceipt(ctx, o)
	return nil
}

// Checkout runs order creation, library grants and cart cleanup as a single
// transaction, keyed by the client's attempt ID so a retry after a lost
// response replays the stored order instead of double-charging.
func (s *OrderService) Checkout(ctx context.Context, o *entity.Order, attemptKey string) (replayed bool, err error) {
	if err := s.validate(ctx, o); err != nil {
		return false, err
	}
	replayed, err = s.Orders.CreateCheckout(ctx, o, attemptKey)
	if err != nil {
		return false, err
	}
	if !replayed {
		s.publishReceipt(ctx, o)
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"order_id": o.ID, "user_id": o.UserID, "items": len(o.Items), "replayed": replayed,
		}).Info("checkout completed")
	}
	return replayed, nil
}

// Get returns the order only to its owner.
func (s *OrderService) Get(ctx context.Context, userID, orderID string) (*entity.Order, error) {
	o, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrNotOrderOwner
	}
	return o, nil
}

// publishReceipt enqueues a receipt email job. Delivery is best effort: a
// broker outage must never fail a committed order.
func (s *OrderService) publishReceipt(ctx context.Context, o *entity.Order) {
	if s.Pub == nil {
		return
	}
	u, err := s.Users.GetByID(ctx, o.UserID)
	if err != nil || u == nil {
		return
	}
	job := mailer.ReceiptJob{
		To:         u.Email,
		Name:       u.Name,
		OrderID:    o.ID,
		TotalPrice: o.TotalPrice,
		Items:      len(o.Items),
		PlacedAt:   o.CreatedAt,
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("order_id", o.ID).Warn("receipt enqueue failed")
	}
}
