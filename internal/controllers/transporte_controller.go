package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Helton-Amalique/school-bus-app-api/internal/config"
	"github.com/Helton-Amalique/school-bus-app-api/internal/models"
	"github.com/Helton-Amalique/school-bus-app-api/internal/policy"
)

func ListCheckIns(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var registros []models.TransporteAluno
	query := policy.TransporteScope(config.DB.Model(&models.TransporteAluno{}), p).
		Preload("Aluno").
		Preload("Aluno.User").
		Preload("Rota")
	if err := query.Find(&registros).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing check-ins: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": registros})
}

func GetCheckIn(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var registro models.TransporteAluno
	query := policy.TransporteScope(config.DB.Model(&models.TransporteAluno{}), p).
		Preload("Aluno").
		Preload("Aluno.User").
		Preload("Rota").
		Where("transporte_alunos.id = ?", c.Param("id"))
	if err := query.First(&registro).Error; err != nil {
		respondNotFound(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": registro})
}

// CreateCheckIn opens today's record for a student on a route. One record
// per (aluno, rota) per day.
func CreateCheckIn(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var input struct {
		AlunoID uint `json:"aluno_id" binding:"required"`
		RotaID  uint `json:"rota_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	registro := models.TransporteAluno{
		AlunoID: input.AlunoID,
		RotaID:  input.RotaID,
		Status:  models.StatusPendente,
	}
	if err := config.DB.Create(&registro).Error; err != nil {
		respondSaveError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": registro})
}

// UpdateCheckInStatus advances the check-in state machine. Allowed to
// admins and to the driver assigned to the route's vehicle.
func UpdateCheckInStatus(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var registro models.TransporteAluno
	query := policy.TransporteScope(config.DB.Model(&models.TransporteAluno{}), p).
		Where("transporte_alunos.id = ?", c.Param("id"))
	if err := query.First(&registro).Error; err != nil {
		respondNotFound(c)
		return
	}

	permitido, err := policy.PodeAtualizarCheckIn(config.DB, p, &registro)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !permitido {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := registro.AvancarStatus(models.StatusTransporte(input.Status)); err != nil {
		respondSaveError(c, err)
		return
	}
	if err := config.DB.Save(&registro).Error; err != nil {
		respondSaveError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": registro})
}

func DeleteCheckIn(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var registro models.TransporteAluno
	if err := config.DB.First(&registro, c.Param("id")).Error; err != nil {
		respondNotFound(c)
		return
	}
	if err := config.DB.Delete(&registro).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "check-in removido"})
}
