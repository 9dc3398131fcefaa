package routes

import (
	"github.com/bitespot/bitespot-api/controllers"
	"github.com/bitespot/bitespot-api/middlewares"
	"github.com/gin-gonic/gin"
)

func ReviewRoutes(server *gin.Engine) {
	server.POST("/reviews", middlewares.RequireAuth(), controllers.SubmitReview)
}
