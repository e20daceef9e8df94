package routes

import (
	"github.com/gin-gonic/gin"

	"bookshop/controllers"
	"bookshop/middleware"
	"bookshop/models"
	"bookshop/services"
)

type Controllers struct {
	Auth      *controllers.AuthController
	Books     *controllers.BookController
	Orders    *controllers.OrderController
	Admins    *controllers.AdminController
	Dashboard *controllers.DashboardController
}

func RegisterRoutes(r *gin.Engine, auth *services.AuthService, ctl Controllers) {

	api := r.Group("/api")
	{
		api.POST("/auth/login", ctl.Auth.Login)
		api.POST("/auth/verify", ctl.Auth.Verify)

		api.GET("/books", ctl.Books.List)
		api.GET("/books/:id", ctl.Books.Get)

		api.POST("/orders", ctl.Orders.Place)
		api.GET("/orders/track/:orderId", ctl.Orders.Track)

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(auth))
		{
			protected.POST("/books", ctl.Books.Create)
			protected.PUT("/books/:id", ctl.Books.Update)
			protected.DELETE("/books/:id", ctl.Books.Delete)

			protected.GET("/orders", ctl.Orders.List)
			protected.GET("/orders/:id", ctl.Orders.Get)
			protected.PATCH("/orders/:id/status", ctl.Orders.UpdateStatus)
			protected.PATCH("/orders/:id/payment", ctl.Orders.UpdatePayment)

			admin := protected.Group("/admin")
			{
				admin.GET("/profile", ctl.Admins.Profile)
				admin.PUT("/profile", ctl.Admins.UpdateProfile)
				admin.PUT("/change-password", ctl.Admins.ChangePassword)

				admin.GET("/dashboard/stats", ctl.Dashboard.Stats)
				admin.GET("/dashboard/recent-orders", ctl.Dashboard.RecentOrders)
				admin.GET("/analytics/sales", ctl.Dashboard.Sales)
				admin.GET("/analytics/order-status", ctl.Dashboard.OrderStatus)

				super := admin.Group("")
				super.Use(middleware.RequireRole(models.RoleSuperAdmin))
				{
					super.GET("", ctl.Admins.List)
					super.POST("", ctl.Admins.Create)
					super.PUT("/:id", ctl.Admins.Update)
					super.DELETE("/:id", ctl.Admins.Delete)
				}
			}
		}
	}
}
