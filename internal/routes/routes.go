package routes

import (
	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(ginlogger.SetLogger())

	AccountRoutes(r)
	CoreRoutes(r)
	TransporteRoutes(r)

	return r
}
