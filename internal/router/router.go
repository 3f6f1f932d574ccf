package router

import (
	"time"

	"school-store/internal/handlers"
	"school-store/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Router(
	store *handlers.StoreHandler,
	admin *handlers.AdminHandler,
	sessions middleware.SessionStore,
	sessionTTL time.Duration,
	log *zap.Logger,
) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	r.Use(middleware.Session(sessions, sessionTTL, log))

	// Публичная витрина
	r.GET("/", store.Home)
	r.POST("/cart/add", store.CartAdd)
	r.GET("/cart", store.CartView)
	r.POST("/cart/update", store.CartUpdate)
	r.POST("/cart/clear", store.CartClear)
	r.GET("/checkout", store.CheckoutView)
	r.POST("/checkout", store.CheckoutSubmit)
	r.GET("/order/placed/:id", store.OrderPlaced)

	// Админка
	r.GET("/admin/login", admin.LoginView)
	r.POST("/admin/login", admin.Login)
	r.GET("/admin/logout", admin.Logout)

	authed := r.Group("/admin", middleware.AdminRequired())
	{
		authed.GET("", admin.Dashboard)
		authed.GET("/items", admin.Items)
		authed.POST("/items", admin.ItemCreate)
		authed.GET("/items/:id/edit", admin.ItemEdit)
		authed.POST("/items/:id/update", admin.ItemUpdate)
		authed.POST("/items/:id/toggle-active", admin.ItemToggleActive)
		authed.GET("/orders", admin.Orders)
		authed.GET("/orders/:id", admin.OrderDetail)
		authed.POST("/orders/:id/toggle-paid", admin.OrderTogglePaid)
		authed.POST("/orders/:id/mark-cancelled", admin.OrderMarkCancelled)
	}

	return r
}
