package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookshop/models"
)

type OrderService struct {
	books  BookStore
	orders OrderStore
}

func NewOrderService(books BookStore, orders OrderStore) *OrderService {
	return &OrderService{books: books, orders: orders}
}

type OrderLine struct {
	BookID   string `json:"bookId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type PlaceOrderInput struct {
	Customer      models.Customer `json:"customer" binding:"required"`
	Books         []OrderLine     `json:"books" binding:"required,min=1,dive"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes"`
}

// Place validates the requested lines, snapshots unit prices, decrements
// stock per line and persists the order. Each decrement is conditional on
// the stock covering the quantity; when a later line fails, the earlier
// decrements are compensated so a rejected order never touches the catalog.
func (s *OrderService) Place(ctx context.Context, input PlaceOrderInput) (*models.Order, error) {
	type decremented struct {
		bookID primitive.ObjectID
		qty    int
	}

	var items []models.OrderItem
	var taken []decremented
	var total float64

	compensate := func() {
		for _, d := range taken {
			_ = s.books.IncrementStock(ctx, d.bookID, d.qty)
		}
	}

	for _, line := range input.Books {
		bookID, err := primitive.ObjectIDFromHex(line.BookID)
		if err != nil {
			compensate()
			return nil, ErrNotFound
		}

		book, err := s.books.FindByID(ctx, bookID)
		if err != nil {
			compensate()
			return nil, err
		}

		if err := s.books.DecrementStock(ctx, bookID, line.Quantity); err != nil {
			compensate()
			return nil, err
		}
		taken = append(taken, decremented{bookID: bookID, qty: line.Quantity})

		unitPrice := book.UnitPrice()
		items = append(items, models.OrderItem{
			BookID:   bookID,
			Quantity: line.Quantity,
			Price:    unitPrice,
		})
		total += unitPrice * float64(line.Quantity)
	}

	now := time.Now()
	order := &models.Order{
		ID:            primitive.NewObjectID(),
		OrderID:       NewOrderID(now),
		Customer:      input.Customer,
		Books:         items,
		TotalAmount:   total,
		OrderStatus:   models.OrderStatusPending,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: models.PaymentStatusPending,
		Notes:         input.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		compensate()
		return nil, err
	}
	return order, nil
}

func (s *OrderService) Track(ctx context.Context, orderID string) (*models.Order, error) {
	return s.orders.FindByOrderID(ctx, orderID)
}

func (s *OrderService) Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	return s.orders.List(ctx, filter)
}

// statusTransitions is the enforced lifecycle. The terminal states map to
// nothing; every update must follow an edge listed here.
var statusTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
	models.OrderStatusDelivered:  {},
	models.OrderStatusCancelled:  {},
}

func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *OrderService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(order.OrderStatus, status) {
		return nil, ErrInvalidTransition
	}

	return s.orders.UpdateStatus(ctx, id, status)
}

// UpdatePayment sets paymentStatus on its own; it is never derived from the
// order status.
func (s *OrderService) UpdatePayment(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) (*models.Order, error) {
	if !models.ValidPaymentStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.orders.UpdatePaymentStatus(ctx, id, status)
}
