package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Helton-Amalique/school-bus-app-api/internal/config"
	"github.com/Helton-Amalique/school-bus-app-api/internal/models"
	"github.com/Helton-Amalique/school-bus-app-api/internal/policy"
)

func ListEncarregados(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var encarregados []models.Encarregado
	query := policy.EncarregadoScope(config.DB.Model(&models.Encarregado{}), p).
		Preload("User").
		Preload("Alunos")
	if err := query.Find(&encarregados).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing encarregados: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": encarregados})
}

func GetEncarregado(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var encarregado models.Encarregado
	query := policy.EncarregadoScope(config.DB.Model(&models.Encarregado{}), p).
		Preload("User").
		Preload("Alunos").
		Where("encarregados.id = ?", c.Param("id"))
	if err := query.First(&encarregado).Error; err != nil {
		respondNotFound(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": encarregado})
}

func CreateEncarregado(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var input struct {
		UserID   uint    `json:"user_id" binding:"required"`
		NrBI     string  `json:"nrBI" binding:"required"`
		Telefone *string `json:"telefone"`
		Endereco string  `json:"endereco"`
		Ativo    *bool   `json:"ativo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, input.UserID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": models.FieldErrors{"user": {"o utilizador indicado não existe"}}})
		return
	}
	if user.Role != models.RoleEncarregado {
		c.JSON(http.StatusBadRequest, gin.H{"errors": models.FieldErrors{"user": {"o utilizador não tem o role ENCARREGADO"}}})
		return
	}

	encarregado := models.Encarregado{
		UserID:   input.UserID,
		NrBI:     input.NrBI,
		Telefone: input.Telefone,
		Endereco: input.Endereco,
		Ativo:    true,
	}
	if input.Ativo != nil {
		encarregado.Ativo = *input.Ativo
	}
	if err := config.DB.Create(&encarregado).Error; err != nil {
		respondSaveError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": encarregado})
}

func UpdateEncarregado(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var encarregado models.Encarregado
	if err := config.DB.First(&encarregado, c.Param("id")).Error; err != nil {
		respondNotFound(c)
		return
	}

	var input struct {
		NrBI     *string `json:"nrBI"`
		Telefone *string `json:"telefone"`
		Endereco *string `json:"endereco"`
		Ativo    *bool   `json:"ativo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.NrBI != nil {
		encarregado.NrBI = *input.NrBI
	}
	if input.Telefone != nil {
		encarregado.Telefone = input.Telefone
	}
	if input.Endereco != nil {
		encarregado.Endereco = *input.Endereco
	}
	if input.Ativo != nil {
		encarregado.Ativo = *input.Ativo
	}

	if err := config.DB.Save(&encarregado).Error; err != nil {
		respondSaveError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": encarregado})
}

func DeleteEncarregado(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var encarregado models.Encarregado
	if err := config.DB.First(&encarregado, c.Param("id")).Error; err != nil {
		respondNotFound(c)
		return
	}
	if err := config.DB.Delete(&encarregado).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "encarregado removido"})
}
