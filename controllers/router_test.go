package controllers

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"bookshop/middleware"
	"bookshop/models"
	"bookshop/services"
)

// Minimal in-memory stores so these tests can exercise the full
// router/middleware/controller path without a database.

type memBooks struct {
	mu    sync.Mutex
	books map[primitive.ObjectID]*models.Book
}

func newMemBooks() *memBooks { return &memBooks{books: map[primitive.ObjectID]*models.Book{}} }

func (m *memBooks) add(book models.Book) primitive.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if book.ID.IsZero() {
		book.ID = primitive.NewObjectID()
	}
	m.books[book.ID] = &book
	return book.ID
}

func (m *memBooks) List(ctx context.Context) ([]models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Book{}
	for _, b := range m.books {
		out = append(out, *b)
	}
	return out, nil
}

func (m *memBooks) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *memBooks) Insert(ctx context.Context, book *models.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *book
	m.books[book.ID] = &copied
	return nil
}

func (m *memBooks) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	if v, ok := fields["price"]; ok {
		b.Price = v.(float64)
	}
	if v, ok := fields["stock"]; ok {
		b.Stock = v.(int)
	}
	copied := *b
	return &copied, nil
}

func (m *memBooks) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[id]; !ok {
		return services.ErrNotFound
	}
	delete(m.books, id)
	return nil
}

func (m *memBooks) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok || b.Stock < qty {
		return services.ErrInsufficientStock
	}
	b.Stock -= qty
	return nil
}

func (m *memBooks) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.books[id]; ok {
		b.Stock += qty
	}
	return nil
}

func (m *memBooks) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.books)), nil
}

func (m *memBooks) stock(id primitive.ObjectID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.books[id].Stock
}

type memOrders struct {
	mu     sync.Mutex
	orders []models.Order
}

func (m *memOrders) Insert(ctx context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, *order)
	return nil
}

func (m *memOrders) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id {
			copied := m.orders[i]
			return &copied, nil
		}
	}
	return nil, services.ErrNotFound
}

func (m *memOrders) FindByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].OrderID == orderID {
			copied := m.orders[i]
			return &copied, nil
		}
	}
	return nil, services.ErrNotFound
}

func (m *memOrders) List(ctx context.Context, filter services.OrderFilter) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Order{}
	for _, o := range m.orders {
		if filter.Status != "" && o.OrderStatus != filter.Status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (m *memOrders) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].OrderStatus = status
			copied := m.orders[i]
			return &copied, nil
		}
	}
	return nil, services.ErrNotFound
}

func (m *memOrders) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].PaymentStatus = status
			copied := m.orders[i]
			return &copied, nil
		}
	}
	return nil, services.ErrNotFound
}

type memAdmins struct {
	mu     sync.Mutex
	admins map[primitive.ObjectID]*models.Admin
}

func newMemAdmins() *memAdmins { return &memAdmins{admins: map[primitive.ObjectID]*models.Admin{}} }

func (m *memAdmins) add(admin models.Admin) primitive.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	m.admins[admin.ID] = &admin
	return admin.ID
}

func (m *memAdmins) List(ctx context.Context) ([]models.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Admin{}
	for _, a := range m.admins {
		out = append(out, *a)
	}
	return out, nil
}

func (m *memAdmins) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.admins[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *memAdmins) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, services.ErrNotFound
}

func (m *memAdmins) Insert(ctx context.Context, admin *models.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *admin
	m.admins[admin.ID] = &copied
	return nil
}

func (m *memAdmins) Update(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.admins[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	if v, ok := fields["lastLogin"]; ok {
		t := v.(time.Time)
		a.LastLogin = &t
	}
	if v, ok := fields["username"]; ok {
		a.Username = v.(string)
	}
	if v, ok := fields["email"]; ok {
		a.Email = v.(string)
	}
	if v, ok := fields["password"]; ok {
		a.Password = v.(string)
	}
	copied := *a
	return &copied, nil
}

func (m *memAdmins) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.admins[id]; !ok {
		return services.ErrNotFound
	}
	delete(m.admins, id)
	return nil
}

func (m *memAdmins) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.admins)), nil
}

type testEnv struct {
	router *gin.Engine
	books  *memBooks
	orders *memOrders
	admins *memAdmins
}

var testJWTSecret = []byte("handler-test-secret")

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	books := newMemBooks()
	orders := &memOrders{}
	admins := newMemAdmins()

	authService := services.NewAuthService(admins, testJWTSecret)
	orderService := services.NewOrderService(books, orders)
	bookService := services.NewBookService(books)
	adminService := services.NewAdminService(admins)
	dashboardService := services.NewDashboardService(orders, books)

	r := gin.New()
	registerTestRoutes(r, authService, Controllers{
		Auth:      NewAuthController(authService),
		Books:     NewBookController(bookService),
		Orders:    NewOrderController(orderService),
		Admins:    NewAdminController(adminService),
		Dashboard: NewDashboardController(dashboardService),
	})

	return &testEnv{router: r, books: books, orders: orders, admins: admins}
}

// Controllers mirrors routes.Controllers; redeclared here to avoid an import
// cycle between the routes and controllers test packages.
type Controllers struct {
	Auth      *AuthController
	Books     *BookController
	Orders    *OrderController
	Admins    *AdminController
	Dashboard *DashboardController
}

func registerTestRoutes(r *gin.Engine, auth *services.AuthService, ctl Controllers) {
	api := r.Group("/api")

	api.POST("/auth/login", ctl.Auth.Login)
	api.POST("/auth/verify", ctl.Auth.Verify)
	api.GET("/books", ctl.Books.List)
	api.GET("/books/:id", ctl.Books.Get)
	api.POST("/orders", ctl.Orders.Place)
	api.GET("/orders/track/:orderId", ctl.Orders.Track)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(auth))

	protected.POST("/books", ctl.Books.Create)
	protected.GET("/orders", ctl.Orders.List)
	protected.PATCH("/orders/:id/status", ctl.Orders.UpdateStatus)
	protected.PATCH("/orders/:id/payment", ctl.Orders.UpdatePayment)

	admin := protected.Group("/admin")
	admin.GET("/dashboard/stats", ctl.Dashboard.Stats)

	super := admin.Group("")
	super.Use(middleware.RequireRole(models.RoleSuperAdmin))
	super.GET("", ctl.Admins.List)
	super.DELETE("/:id", ctl.Admins.Delete)
}

func (env *testEnv) seedAdmin(email, password, role string) primitive.ObjectID {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return env.admins.add(models.Admin{
		Username: "tester",
		Email:    email,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	})
}
