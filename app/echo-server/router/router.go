package router

import (
	"damaloy/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler) {
	users := api.Group("/users")

	users.POST("", handler.CreateUser)
	users.GET("", handler.GetAllUsers)
	users.GET("/email/:email", handler.GetUserByEmail)
	users.GET("/:id", handler.GetUserByID)
	users.PUT("/address/:id", handler.UpdateAddress)
	users.PUT("/:id", handler.UpdateUser)
	users.DELETE("/:id", handler.DeleteUser)
}

func SetupSellerRoutes(api *echo.Group, handler *rest.SellerHandler) {
	sellers := api.Group("/sellers")

	sellers.POST("", handler.CreateApplication)
	sellers.GET("", handler.GetApplications)
	sellers.GET("/email/:email", handler.GetSellerByEmail)
	sellers.GET("/stats/:id", handler.GetSellerStats)
	sellers.PATCH("/:id/status", handler.UpdateStatus)
	sellers.DELETE("/:id", handler.DeleteSeller)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler) {
	products := api.Group("/products")

	products.POST("", handler.CreateProduct)
	products.GET("", handler.GetAllProducts)
	products.GET("/top", handler.GetTopProducts)
	products.GET("/:id", handler.GetProduct)
	products.GET("/:id/price-history", handler.GetPriceHistory)
	products.PUT("/:id", handler.UpdateProduct)
	products.DELETE("/:id", handler.DeleteProduct)
}

func SetupCartRoutes(api *echo.Group, handler *rest.CartHandler) {
	cart := api.Group("/cart")

	cart.POST("/add", handler.AddItem)
	cart.GET("/:userId", handler.GetCart)
	cart.PUT("/:id", handler.UpdateItem)
	cart.DELETE("/clear/:userId", handler.ClearCart)
	cart.DELETE("/:id", handler.RemoveItem)
}

func SetupOrdersRoutes(api *echo.Group, handler *rest.OrdersHandler) {
	orders := api.Group("/orders")

	orders.POST("", handler.PlaceOrder)
	orders.GET("", handler.GetAllOrders)
	orders.GET("/:userId", handler.GetUserOrders)
	orders.PATCH("/:id/status", handler.UpdateStatus)
}

func SetupReviewRoutes(api *echo.Group, handler *rest.ReviewHandler) {
	reviews := api.Group("/reviews")

	reviews.POST("", handler.AddReview)
	reviews.GET("/:productId", handler.GetProductReviews)
	reviews.PUT("/:id", handler.UpdateReview)
	reviews.DELETE("/:id", handler.DeleteReview)
}

func SetupAdminRoutes(api *echo.Group, handler *rest.AdminHandler) {
	admin := api.Group("/admin")

	admin.GET("/stats", handler.GetStats)
}
