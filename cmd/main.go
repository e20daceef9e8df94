package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"bookshop/config"
	"bookshop/controllers"
	"bookshop/database"
	"bookshop/repository"
	"bookshop/routes"
	"bookshop/services"
)

func main() {

	config.LoadEnv()

	database.ConnectMongo()
	database.InitCollections()
	database.EnsureIndexes()

	books := repository.NewBookRepo(database.BookCollection)
	orders := repository.NewOrderRepo(database.OrderCollection)
	admins := repository.NewAdminRepo(database.AdminCollection)

	jwtSecret := []byte(config.MustGetEnv("JWT_SECRET"))

	authService := services.NewAuthService(admins, jwtSecret)
	adminService := services.NewAdminService(admins)
	bookService := services.NewBookService(books)
	orderService := services.NewOrderService(books, orders)
	dashboardService := services.NewDashboardService(orders, books)

	seedSuperAdmin(adminService)

	r := gin.Default()
	r.SetTrustedProxies(nil)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Bookshop API is running"})
	})

	if _, err := os.Stat("./web"); err == nil {
		r.Static("/web", "./web")
	}

	routes.RegisterRoutes(r, authService, routes.Controllers{
		Auth:      controllers.NewAuthController(authService),
		Books:     controllers.NewBookController(bookService),
		Orders:    controllers.NewOrderController(orderService),
		Admins:    controllers.NewAdminController(adminService),
		Dashboard: controllers.NewDashboardController(dashboardService),
	})

	port := config.GetEnv("PORT", "8080")
	r.Run(":" + port)
}

// seedSuperAdmin creates the first account on an empty deployment so the
// admin panel is reachable.
func seedSuperAdmin(admins *services.AdminService) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	created, err := admins.Bootstrap(ctx, config.GetEnv("ADMIN_USERNAME", "admin"), email, password)
	if err != nil {
		log.Println("Failed to seed super admin:", err)
		return
	}
	if created {
		log.Println("Seeded bootstrap super admin:", email)
	}
}
