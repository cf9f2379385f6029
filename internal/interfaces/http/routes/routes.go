// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/tireshop-backend/internal/config"
	"github.com/your-org/tireshop-backend/internal/interfaces/http/handlers"
	"github.com/your-org/tireshop-backend/internal/interfaces/http/middleware"
)

// Handlers bundles the route handlers wired in the composition root
type Handlers struct {
	Auth     *handlers.AuthHandler
	Product  *handlers.ProductHandler
	Deal     *handlers.DealHandler
	Cart     *handlers.CartHandler
	Wishlist *handlers.WishlistHandler
	Order    *handlers.OrderHandler
	Vehicle  *handlers.VehicleHandler
	Fleet    *handlers.FleetHandler
}

// SetupRoutes registers every API route group on the given router group
func SetupRoutes(rg *gin.RouterGroup, h *Handlers, cfg *config.Config) {
	setupAuthRoutes(rg, h, cfg)
	setupCatalogRoutes(rg, h, cfg)
	setupCartRoutes(rg, h, cfg)
	setupWishlistRoutes(rg, h, cfg)
	setupOrderRoutes(rg, h, cfg)
	setupVehicleRoutes(rg, h, cfg)
	setupFleetRoutes(rg, h, cfg)
	setupAdminRoutes(rg, h, cfg)
}

func setupAuthRoutes(rg *gin.RouterGroup, h *Handlers, cfg *config.Config) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", h.Auth.GetProfile)
			protected.PUT("/profile", h.Auth.UpdateProfile)
		}
	}
}

func setupCatalogRoutes(rg *gin.RouterGroup, h *Handlers, cfg *config.Config) {
	products := rg.Group("/products")
	{
		products.GET("", h.Product.GetProducts)
		products.GET("/:id", h.Product.GetProduct)
		products.GET("/slug/:slug", h.Product.GetProductBySlug)
	}

	rg.GET("/brands", h.Product.GetBrands)

	deals := rg.Group("/deals")
	{
		deals.GET("", h.Deal.GetDeals)
		deals.GET("/:id", h.Deal.GetDeal)
	}
}

func setupCartRoutes(rg *gin.RouterGroup, h *Handlers, cfg *config.Config) {
	// Reads are open to guests; mutations require a session or login,
	// both handled in the service
	cart := rg.Group("/cart")
	cart.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		cart.GET("", h.Cart.GetCart)
		cart.GET("/count", h.Cart.GetCartCount)
		cart.POST("/items", h.Cart.AddToCart)
		cart.PUT("/items/:id", h.Cart.UpdateCartItem)
		cart.DELETE("/items/:id", h.Cart.RemoveFromCart)
		cart.DELETE("", h.Cart.ClearCart)
	}

	merge := rg.Group("/cart")
	merge.Use(middleware.AuthMiddleware(cfg))
	{
		merge.POST("/merge", h.Cart.MergeGuestCart)
	}
}

func setupWishlistRoutes(rg *gin.RouterGroup, h *Handlers, cfg *config.Config) {
	wishlist := rg.Group("/wishlist")
	wishlist.Use(middleware.AuthMiddleware(cfg))
	{
		wishlist.GET("", h.Wishlist.GetWishlist)
		wishlist.POST("/items", h.Wishlist.AddToWishlist)
		wishlist.DELETE("/items/:id", h.Wishlist.RemoveFromWishlist)
		wishlist.GET("/check/:id", h.Wishlist.CheckWishlistItem)
		wishlist.POST("/items/:id/move-to-cart", h.Wishlist.MoveToCart)
		wishlist.DELETE("", h.Wishlist.ClearWishlist)
	}
}

func setupOrderRoutes(rg *gin.RouterGroup, h *Handlers, cfg *config.Config) {
	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.POST("", h.Order.CreateOrder)
		orders.GET("", h.Order.GetOrders)
		orders.GET("/:id", h.Order.GetOrder)
		orders.GET("/number/:orderNumber", h.Order.GetOrderByNumber)
		orders.POST("/:id/cancel", h.Order.CancelOrder)
	}
}

func setupVehicleRoutes(rg *gin.RouterGroup, h *Handlers, cfg *config.Config) {
	vehicles := rg.Group("/vehicles")
	vehicles.Use(middleware.AuthMiddleware(cfg))
	{
		vehicles.GET("", h.Vehicle.GetVehicles)
		vehicles.POST("", h.Vehicle.AddVehicle)
		vehicles.DELETE("/:id", h.Vehicle.RemoveVehicle)
		vehicles.PUT("/:id/default", h.Vehicle.SetDefaultVehicle)
	}
}

func setupFleetRoutes(rg *gin.RouterGroup, h *Handlers, cfg *config.Config) {
	fleet := rg.Group("/fleet-appointments")
	fleet.Use(middleware.AuthMiddleware(cfg))
	{
		fleet.POST("", h.Fleet.CreateAppointment)
		fleet.GET("", h.Fleet.GetAppointments)
		fleet.GET("/:id", h.Fleet.GetAppointment)
		fleet.PATCH("/:id", h.Fleet.UpdateAppointment)
		fleet.POST("/:id/cancel", h.Fleet.CancelAppointment)
		fleet.DELETE("/:id/attachments/:attachmentId", h.Fleet.DeleteAttachment)
	}
}

func setupAdminRoutes(rg *gin.RouterGroup, h *Handlers, cfg *config.Config) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		admin.POST("/deals", h.Deal.CreateDeal)
		admin.PUT("/deals/:id", h.Deal.UpdateDeal)
		admin.DELETE("/deals/:id", h.Deal.DeleteDeal)

		admin.GET("/orders", h.Order.ListAllOrders)
		admin.PATCH("/orders/:id/status", h.Order.UpdateOrderStatus)

		admin.PATCH("/fleet-appointments/:id/status", h.Fleet.UpdateAppointmentStatus)
	}
}
