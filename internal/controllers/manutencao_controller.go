package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Helton-Amalique/school-bus-app-api/internal/config"
	"github.com/Helton-Amalique/school-bus-app-api/internal/models"
)

// Default next-revision interval when the caller doesn't send one.
const proximaRevisaoPadraoKm = 10000

func ListManutencoes(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var manutencoes []models.Manutencao
	if err := config.DB.Preload("Veiculo").Find(&manutencoes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing manutencoes: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": manutencoes})
}

func GetManutencao(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var manutencao models.Manutencao
	if err := config.DB.Preload("Veiculo").First(&manutencao, c.Param("id")).Error; err != nil {
		respondNotFound(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": manutencao})
}

func CreateManutencao(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var input struct {
		VeiculoID      uint    `json:"veiculo_id" binding:"required"`
		Descricao      string  `json:"descricao"`
		DataInicio     string  `json:"data_inicio" binding:"required"`
		Custo          float64 `json:"custo"`
		KmNaManutencao uint    `json:"km_na_manutencao"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	inicio, err := parseDate(input.DataInicio)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": models.FieldErrors{"data_inicio": {"data inválida: use o formato AAAA-MM-DD"}}})
		return
	}

	var veiculo models.Veiculo
	if err := config.DB.First(&veiculo, input.VeiculoID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": models.FieldErrors{"veiculo": {"o veículo indicado não existe"}}})
		return
	}

	manutencao := models.Manutencao{
		VeiculoID:      input.VeiculoID,
		Descricao:      input.Descricao,
		DataInicio:     inicio,
		Custo:          input.Custo,
		KmNaManutencao: input.KmNaManutencao,
	}
	if err := config.DB.Create(&manutencao).Error; err != nil {
		respondSaveError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": manutencao})
}

func UpdateManutencao(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var manutencao models.Manutencao
	if err := config.DB.First(&manutencao, c.Param("id")).Error; err != nil {
		respondNotFound(c)
		return
	}

	var input struct {
		Descricao      *string  `json:"descricao"`
		DataInicio     *string  `json:"data_inicio"`
		Custo          *float64 `json:"custo"`
		KmNaManutencao *uint    `json:"km_na_manutencao"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Descricao != nil {
		manutencao.Descricao = *input.Descricao
	}
	if input.DataInicio != nil {
		inicio, err := parseDate(*input.DataInicio)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": models.FieldErrors{"data_inicio": {"data inválida: use o formato AAAA-MM-DD"}}})
			return
		}
		manutencao.DataInicio = inicio
	}
	if input.Custo != nil {
		manutencao.Custo = *input.Custo
	}
	if input.KmNaManutencao != nil {
		manutencao.KmNaManutencao = *input.KmNaManutencao
	}

	if err := config.DB.Save(&manutencao).Error; err != nil {
		respondSaveError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": manutencao})
}

// ConcluirManutencao closes a maintenance and rolls the vehicle's
// odometer bookkeeping forward. Completing twice is rejected.
func ConcluirManutencao(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var manutencao models.Manutencao
	if err := config.DB.Preload("Veiculo").First(&manutencao, c.Param("id")).Error; err != nil {
		respondNotFound(c)
		return
	}

	var input struct {
		ProximaRevisaoKm uint `json:"proxima_revisao_km"`
	}
	// Body is optional; the default interval applies when absent.
	_ = c.ShouldBindJSON(&input)
	if input.ProximaRevisaoKm == 0 {
		input.ProximaRevisaoKm = proximaRevisaoPadraoKm
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start transaction"})
		return
	}
	if err := manutencao.Concluir(tx, input.ProximaRevisaoKm); err != nil {
		tx.Rollback()
		if errors.Is(err, models.ErrManutencaoConcluida) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondSaveError(c, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not commit transaction: " + err.Error()})
		return
	}

	var veiculo models.Veiculo
	if err := config.DB.First(&veiculo, manutencao.VeiculoID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":          "manutenção concluída com sucesso",
		"veiculo":         veiculo.Matricula,
		"proxima_revisao": veiculo.KmProximaRevisao,
		"sucesso":         true,
	})
}

func DeleteManutencao(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var manutencao models.Manutencao
	if err := config.DB.First(&manutencao, c.Param("id")).Error; err != nil {
		respondNotFound(c)
		return
	}
	if err := config.DB.Delete(&manutencao).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "manutenção removida"})
}
