package routes

import (
	"github.com/bitespot/bitespot-api/controllers"
	"github.com/bitespot/bitespot-api/middlewares"
	"github.com/gin-gonic/gin"
)

func WishlistRoutes(server *gin.Engine) {
	wishlist := server.Group("/wishlist", middlewares.RequireAuth())
	{
		wishlist.GET("", controllers.GetWishlist)
		wishlist.POST("", controllers.CreateWishlistEntry)
		wishlist.DELETE("/:id", controllers.DeleteWishlistEntry)
		wishlist.DELETE("/product/:code", controllers.DeleteWishlistByProduct)
	}
}
