package routes

import (
	"github.com/Ludvin7x/lemon-api/configs"
	"github.com/Ludvin7x/lemon-api/controllers"
	"github.com/Ludvin7x/lemon-api/middlewares"
	"github.com/Ludvin7x/lemon-api/repository"
	"github.com/Ludvin7x/lemon-api/services"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, cfg *configs.Config) {
	r.Use(middlewares.CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	db := configs.DB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services
	authSvc := services.NewAuthService(db, userRepo, cfg.JWTSecret, cfg.JWTTTL)
	cartSvc := services.NewCartService(db, cartRepo, menuRepo)
	orderSvc := services.NewOrderService(db, orderRepo, cartRepo, userRepo)
	groupSvc := services.NewGroupService(db, userRepo)
	checkoutSvc := services.NewCheckoutService(userRepo, cartRepo, orderSvc)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	menuCtrl := controllers.NewMenuController(menuRepo)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	groupCtrl := controllers.NewGroupController(groupSvc)
	paymentCtrl := controllers.NewPaymentController(checkoutSvc, cfg.StripeWebhookSecret)

	auth := middlewares.AuthMiddleware(userRepo, cfg.JWTSecret)

	// Auth
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", auth, authCtrl.Me)
	}

	// Menu browsing is open to everyone; mutation is manager/admin only.
	r.GET("/categories", menuCtrl.ListCategories)
	r.GET("/menu-items", menuCtrl.ListMenuItems)
	r.GET("/menu-items/:id", menuCtrl.GetMenuItem)

	m := r.Group("/", auth, middlewares.RequireManager())
	{
		m.POST("/categories", menuCtrl.CreateCategory)
		m.PUT("/categories/:id", menuCtrl.UpdateCategory)
		m.DELETE("/categories/:id", menuCtrl.DeleteCategory)
		m.POST("/menu-items", menuCtrl.CreateMenuItem)
		m.PUT("/menu-items/:id", menuCtrl.UpdateMenuItem)
		m.DELETE("/menu-items/:id", menuCtrl.DeleteMenuItem)
	}

	// Cart (owner only)
	cart := r.Group("/cart", auth)
	{
		cart.GET("/menu-items", cartCtrl.List)
		cart.POST("/menu-items", cartCtrl.Add)
		cart.PUT("/menu-items/:id", cartCtrl.Update)
		cart.DELETE("/menu-items/:id", cartCtrl.Remove)
		cart.DELETE("/menu-items", cartCtrl.Clear)
	}

	// Orders — visibility and field rules enforced in the service per role.
	orders := r.Group("/orders", auth)
	{
		orders.POST("", orderCtrl.Create)
		orders.GET("", orderCtrl.List)
		orders.GET("/:id", orderCtrl.Detail)
		orders.PATCH("/:id", orderCtrl.Update)
		orders.DELETE("/:id", orderCtrl.Delete)
		orders.PUT("/:id/delivery-crew", orderCtrl.AssignDeliveryCrew)
	}

	// Group membership (manager/admin, enforced in the service)
	groups := r.Group("/groups", auth)
	{
		groups.GET("/:group/users", groupCtrl.Members)
		groups.POST("/:group/users", groupCtrl.Add)
		groups.DELETE("/:group/users/:id", groupCtrl.Remove)
	}

	// Payment provider webhook (unauthenticated; verified by signature)
	r.POST("/webhooks/stripe", paymentCtrl.StripeWebhook)
}
