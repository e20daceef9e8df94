package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookshop/models"
)

// In-memory stores mirroring the mongo repositories' behavior, including the
// conditional stock decrement.

type fakeBookStore struct {
	mu    sync.Mutex
	books map[primitive.ObjectID]*models.Book
}

func newFakeBookStore() *fakeBookStore {
	return &fakeBookStore{books: map[primitive.ObjectID]*models.Book{}}
}

func (f *fakeBookStore) add(book models.Book) primitive.ObjectID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if book.ID.IsZero() {
		book.ID = primitive.NewObjectID()
	}
	f.books[book.ID] = &book
	return book.ID
}

func (f *fakeBookStore) List(ctx context.Context) ([]models.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	books := []models.Book{}
	for _, b := range f.books {
		books = append(books, *b)
	}
	return books, nil
}

func (f *fakeBookStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.books[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookStore) Insert(ctx context.Context, book *models.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *book
	f.books[book.ID] = &copied
	return nil
}

func (f *fakeBookStore) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.books[id]
	if !ok {
		return nil, ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "title":
			b.Title = value.(string)
		case "price":
			b.Price = value.(float64)
		case "discountPrice":
			b.DiscountPrice = value.(float64)
		case "stock":
			b.Stock = value.(int)
		case "isAvailable":
			b.IsAvailable = value.(bool)
		}
	}
	b.UpdatedAt = time.Now()
	copied := *b
	return &copied, nil
}

func (f *fakeBookStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.books[id]; !ok {
		return ErrNotFound
	}
	delete(f.books, id)
	return nil
}

func (f *fakeBookStore) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.books[id]
	if !ok || b.Stock < qty {
		return ErrInsufficientStock
	}
	b.Stock -= qty
	return nil
}

func (f *fakeBookStore) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.books[id]; ok {
		b.Stock += qty
	}
	return nil
}

func (f *fakeBookStore) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.books)), nil
}

func (f *fakeBookStore) stock(id primitive.ObjectID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.books[id].Stock
}

type fakeOrderStore struct {
	mu     sync.Mutex
	orders []models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{}
}

func (f *fakeOrderStore) Insert(ctx context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.orders {
		if f.orders[i].ID == id {
			copied := f.orders[i]
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeOrderStore) FindByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.orders {
		if f.orders[i].OrderID == orderID {
			copied := f.orders[i]
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeOrderStore) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := []models.Order{}
	for _, order := range f.orders {
		if filter.Status != "" && order.OrderStatus != filter.Status {
			continue
		}
		if !filter.StartDate.IsZero() && order.CreatedAt.Before(filter.StartDate) {
			continue
		}
		if !filter.EndDate.IsZero() && order.CreatedAt.After(filter.EndDate) {
			continue
		}
		matched = append(matched, order)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if filter.Limit > 0 && int64(len(matched)) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (f *fakeOrderStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].OrderStatus = status
			f.orders[i].UpdatedAt = time.Now()
			copied := f.orders[i]
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeOrderStore) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].PaymentStatus = status
			f.orders[i].UpdatedAt = time.Now()
			copied := f.orders[i]
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeOrderStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

type fakeAdminStore struct {
	mu     sync.Mutex
	admins map[primitive.ObjectID]*models.Admin
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{admins: map[primitive.ObjectID]*models.Admin{}}
}

func (f *fakeAdminStore) add(admin models.Admin) primitive.ObjectID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	f.admins[admin.ID] = &admin
	return admin.ID
}

func (f *fakeAdminStore) List(ctx context.Context) ([]models.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	admins := []models.Admin{}
	for _, a := range f.admins {
		admins = append(admins, *a)
	}
	return admins, nil
}

func (f *fakeAdminStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.admins[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAdminStore) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.admins {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeAdminStore) Insert(ctx context.Context, admin *models.Admin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *admin
	f.admins[admin.ID] = &copied
	return nil
}

func (f *fakeAdminStore) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.admins[id]
	if !ok {
		return nil, ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "username":
			a.Username = value.(string)
		case "email":
			a.Email = value.(string)
		case "role":
			a.Role = value.(string)
		case "isActive":
			a.IsActive = value.(bool)
		case "password":
			a.Password = value.(string)
		case "lastLogin":
			t := value.(time.Time)
			a.LastLogin = &t
		}
	}
	a.UpdatedAt = time.Now()
	copied := *a
	return &copied, nil
}

func (f *fakeAdminStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.admins[id]; !ok {
		return ErrNotFound
	}
	delete(f.admins, id)
	return nil
}

func (f *fakeAdminStore) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.admins)), nil
}
