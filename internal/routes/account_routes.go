package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Helton-Amalique/school-bus-app-api/internal/controllers"
	"github.com/Helton-Amalique/school-bus-app-api/internal/middleware"
)

func AccountRoutes(r *gin.Engine) {
	accounts := r.Group("/accounts")
	{
		accounts.POST("/create", controllers.SignupUser)
		accounts.POST("/token", controllers.LoginUser)
	}

	me := r.Group("/accounts/me")
	me.Use(middleware.RequireAuth())
	{
		me.GET("", controllers.Me)
		me.PATCH("", controllers.UpdateMe)
	}
}
