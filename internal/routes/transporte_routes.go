package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Helton-Amalique/school-bus-app-api/internal/controllers"
	"github.com/Helton-Amalique/school-bus-app-api/internal/middleware"
)

func TransporteRoutes(r *gin.Engine) {
	transportes := r.Group("/transportes")
	transportes.Use(middleware.RequireAuth())
	{
		transportes.GET("/veiculos", controllers.ListVeiculos)
		transportes.GET("/veiculos/:id", controllers.GetVeiculo)
		transportes.POST("/veiculos", controllers.CreateVeiculo)
		transportes.PATCH("/veiculos/:id", controllers.UpdateVeiculo)
		transportes.DELETE("/veiculos/:id", controllers.DeleteVeiculo)

		transportes.GET("/rotas", controllers.ListRotas)
		transportes.GET("/rotas/:id", controllers.GetRota)
		transportes.POST("/rotas", controllers.CreateRota)
		transportes.PATCH("/rotas/:id", controllers.UpdateRota)
		transportes.DELETE("/rotas/:id", controllers.DeleteRota)

		transportes.GET("/check-in", controllers.ListCheckIns)
		transportes.GET("/check-in/:id", controllers.GetCheckIn)
		transportes.POST("/check-in", controllers.CreateCheckIn)
		transportes.PATCH("/check-in/:id", controllers.UpdateCheckInStatus)
		transportes.DELETE("/check-in/:id", controllers.DeleteCheckIn)

		transportes.GET("/manutencoes", controllers.ListManutencoes)
		transportes.GET("/manutencoes/:id", controllers.GetManutencao)
		transportes.POST("/manutencoes", controllers.CreateManutencao)
		transportes.PATCH("/manutencoes/:id", controllers.UpdateManutencao)
		transportes.POST("/manutencoes/:id/concluir", controllers.ConcluirManutencao)
		transportes.DELETE("/manutencoes/:id", controllers.DeleteManutencao)
	}
}
