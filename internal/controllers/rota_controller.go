package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Helton-Amalique/school-bus-app-api/internal/config"
	"github.com/Helton-Amalique/school-bus-app-api/internal/models"
	"github.com/Helton-Amalique/school-bus-app-api/internal/policy"
)

func ListRotas(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var rotas []models.Rota
	query := policy.RotaScope(config.DB.Model(&models.Rota{}), p).
		Preload("Veiculo").
		Preload("Alunos")
	if err := query.Find(&rotas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing rotas: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rotas})
}

func GetRota(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var rota models.Rota
	query := policy.RotaScope(config.DB.Model(&models.Rota{}), p).
		Preload("Veiculo").
		Preload("Alunos").
		Where("rotas.id = ?", c.Param("id"))
	if err := query.First(&rota).Error; err != nil {
		respondNotFound(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rota})
}

// loadRoster resolves the requested student ids and re-checks the roster
// against the vehicle capacity before the model-level validation runs,
// so the payload path reports plate, capacity and attempted count.
func loadRoster(tx *gorm.DB, veiculoID uint, alunoIDs []uint) ([]models.Aluno, error) {
	var veiculo models.Veiculo
	if err := tx.First(&veiculo, veiculoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.FieldErrors{"veiculo": {"a rota precisa de um veículo"}}
		}
		return nil, err
	}
	if len(alunoIDs) > int(veiculo.Capacidade) {
		return nil, models.FieldErrors{"alunos": {fmt.Sprintf(
			"capacidade excedida: o veículo %s só suporta %d alunos, tentou inserir %d",
			veiculo.Matricula, veiculo.Capacidade, len(alunoIDs))}}
	}

	var alunos []models.Aluno
	if err := tx.Find(&alunos, alunoIDs).Error; err != nil {
		return nil, err
	}
	if len(alunos) != len(alunoIDs) {
		return nil, models.FieldErrors{"alunos": {"um ou mais alunos indicados não existem"}}
	}
	return alunos, nil
}

func CreateRota(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var input struct {
		Nome        string `json:"nome" binding:"required"`
		VeiculoID   uint   `json:"veiculo_id" binding:"required"`
		HoraPartida string `json:"hora_partida"`
		HoraChegada string `json:"hora_chegada"`
		Descricao   string `json:"descricao"`
		Alunos      []uint `json:"alunos"`
		Ativo       *bool  `json:"ativo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rota := models.Rota{
		Nome:        input.Nome,
		VeiculoID:   input.VeiculoID,
		HoraPartida: "05:20",
		HoraChegada: "07:00",
		Descricao:   input.Descricao,
		Ativo:       true,
	}
	if input.HoraPartida != "" {
		rota.HoraPartida = input.HoraPartida
	}
	if input.HoraChegada != "" {
		rota.HoraChegada = input.HoraChegada
	}
	if input.Ativo != nil {
		rota.Ativo = *input.Ativo
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start transaction"})
		return
	}

	alunos, err := loadRoster(tx, input.VeiculoID, input.Alunos)
	if err != nil {
		tx.Rollback()
		respondSaveError(c, err)
		return
	}
	rota.Alunos = alunos

	if err := tx.Create(&rota).Error; err != nil {
		tx.Rollback()
		respondSaveError(c, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not commit transaction: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": rota})
}

func UpdateRota(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var rota models.Rota
	if err := config.DB.First(&rota, c.Param("id")).Error; err != nil {
		respondNotFound(c)
		return
	}

	var input struct {
		Nome        *string `json:"nome"`
		VeiculoID   *uint   `json:"veiculo_id"`
		HoraPartida *string `json:"hora_partida"`
		HoraChegada *string `json:"hora_chegada"`
		Descricao   *string `json:"descricao"`
		Alunos      []uint  `json:"alunos"`
		Ativo       *bool   `json:"ativo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Nome != nil {
		rota.Nome = *input.Nome
	}
	if input.VeiculoID != nil {
		rota.VeiculoID = *input.VeiculoID
	}
	if input.HoraPartida != nil {
		rota.HoraPartida = *input.HoraPartida
	}
	if input.HoraChegada != nil {
		rota.HoraChegada = *input.HoraChegada
	}
	if input.Descricao != nil {
		rota.Descricao = *input.Descricao
	}
	if input.Ativo != nil {
		rota.Ativo = *input.Ativo
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start transaction"})
		return
	}

	if input.Alunos != nil {
		alunos, err := loadRoster(tx, rota.VeiculoID, input.Alunos)
		if err != nil {
			tx.Rollback()
			respondSaveError(c, err)
			return
		}
		rota.Alunos = alunos
	}

	if err := tx.Save(&rota).Error; err != nil {
		tx.Rollback()
		respondSaveError(c, err)
		return
	}
	if input.Alunos != nil {
		// Save only appends to the roster; Replace drops removed students.
		if err := tx.Model(&rota).Association("Alunos").Replace(rota.Alunos); err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not commit transaction: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rota})
}

func DeleteRota(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var rota models.Rota
	if err := config.DB.First(&rota, c.Param("id")).Error; err != nil {
		respondNotFound(c)
		return
	}
	if err := config.DB.Delete(&rota).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "rota removida"})
}
