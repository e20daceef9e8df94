package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookshop/models"
)

// Store interfaces are defined here, next to their consumers. The mongo
// implementations live in the repository package; tests use in-memory fakes.

type BookStore interface {
	List(ctx context.Context) ([]models.Book, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error)
	Insert(ctx context.Context, book *models.Book) error
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Book, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// DecrementStock subtracts qty only when the current stock covers it;
	// otherwise it returns ErrInsufficientStock and changes nothing.
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
	Count(ctx context.Context) (int64, error)
}

// OrderFilter narrows admin order listings. Zero values mean "no filter".
type OrderFilter struct {
	Status    models.OrderStatus
	StartDate time.Time
	EndDate   time.Time
	Limit     int64
}

type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByOrderID(ctx context.Context, orderID string) (*models.Order, error)
	// List returns orders newest first.
	List(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error)
	UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) (*models.Order, error)
}

type AdminStore interface {
	List(ctx context.Context) ([]models.Admin, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	Insert(ctx context.Context, admin *models.Admin) error
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Admin, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}
