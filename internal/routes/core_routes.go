package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Helton-Amalique/school-bus-app-api/internal/controllers"
	"github.com/Helton-Amalique/school-bus-app-api/internal/middleware"
)

// CoreRoutes mounts the profile collections. Reads are scoped per role
// inside the controllers; writes are admin-only.
func CoreRoutes(r *gin.Engine) {
	core := r.Group("/core")
	core.Use(middleware.RequireAuth())
	{
		core.GET("/alunos", controllers.ListAlunos)
		core.GET("/alunos/:id", controllers.GetAluno)
		core.POST("/alunos", controllers.CreateAluno)
		core.PATCH("/alunos/:id", controllers.UpdateAluno)
		core.DELETE("/alunos/:id", controllers.DeleteAluno)

		core.GET("/encarregados", controllers.ListEncarregados)
		core.GET("/encarregados/:id", controllers.GetEncarregado)
		core.POST("/encarregados", controllers.CreateEncarregado)
		core.PATCH("/encarregados/:id", controllers.UpdateEncarregado)
		core.DELETE("/encarregados/:id", controllers.DeleteEncarregado)

		core.GET("/motoristas", controllers.ListMotoristas)
		core.GET("/motoristas/:id", controllers.GetMotorista)
		core.POST("/motoristas", controllers.CreateMotorista)
		core.PATCH("/motoristas/:id", controllers.UpdateMotorista)
		core.DELETE("/motoristas/:id", controllers.DeleteMotorista)
	}
}
