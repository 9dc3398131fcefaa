package routes

import (
	"github.com/bitespot/bitespot-api/controllers"
	"github.com/bitespot/bitespot-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine) {
	orders := server.Group("/orders", middlewares.RequireAuth())
	{
		orders.POST("", controllers.CreateOrder)
		orders.GET("", controllers.GetOrders)
		orders.GET("/:orderId", controllers.GetOrderById)
		orders.PUT("/:orderId", controllers.UpdateOrderStatus)
	}
}
