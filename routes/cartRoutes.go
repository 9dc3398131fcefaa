package routes

import (
	"github.com/bitespot/bitespot-api/controllers"
	"github.com/bitespot/bitespot-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine) {
	cart := server.Group("/cart", middlewares.RequireAuth())
	{
		cart.GET("", controllers.GetCart)
		cart.POST("", controllers.CreateCartItem)
		cart.PUT("/:id", controllers.UpdateCartItem)
		cart.DELETE("/clear", controllers.ClearCart)
		cart.DELETE("/:id", controllers.DeleteCartItem)
	}
}
