package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Helton-Amalique/school-bus-app-api/internal/config"
	"github.com/Helton-Amalique/school-bus-app-api/internal/models"
	"github.com/Helton-Amalique/school-bus-app-api/internal/policy"
)

func ListMotoristas(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var motoristas []models.Motorista
	query := policy.MotoristaScope(config.DB.Model(&models.Motorista{}), p).
		Preload("User")
	if err := query.Find(&motoristas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing motoristas: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": motoristas})
}

func GetMotorista(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var motorista models.Motorista
	query := policy.MotoristaScope(config.DB.Model(&models.Motorista{}), p).
		Preload("User").
		Where("motoristas.id = ?", c.Param("id"))
	if err := query.First(&motorista).Error; err != nil {
		respondNotFound(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": motorista})
}

func CreateMotorista(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var input struct {
		UserID          uint    `json:"user_id" binding:"required"`
		DataNascimento  string  `json:"data_nascimento" binding:"required"`
		NrBI            string  `json:"nrBI" binding:"required"`
		Telefone        *string `json:"telefone"`
		Endereco        string  `json:"endereco"`
		CartaConducao   string  `json:"carta_conducao" binding:"required"`
		ValidadeDaCarta string  `json:"validade_da_carta" binding:"required"`
		Salario         float64 `json:"salario"`
		Ativo           *bool   `json:"ativo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	nascimento, err := parseDate(input.DataNascimento)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": models.FieldErrors{"data_nascimento": {"data inválida: use o formato AAAA-MM-DD"}}})
		return
	}
	validade, err := parseDate(input.ValidadeDaCarta)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": models.FieldErrors{"validade_da_carta": {"data inválida: use o formato AAAA-MM-DD"}}})
		return
	}

	var user models.User
	if err := config.DB.First(&user, input.UserID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": models.FieldErrors{"user": {"o utilizador indicado não existe"}}})
		return
	}
	if user.Role != models.RoleMotorista {
		c.JSON(http.StatusBadRequest, gin.H{"errors": models.FieldErrors{"user": {"o utilizador não tem o role MOTORISTA"}}})
		return
	}

	motorista := models.Motorista{
		UserID:          input.UserID,
		DataNascimento:  nascimento,
		NrBI:            input.NrBI,
		Telefone:        input.Telefone,
		Endereco:        input.Endereco,
		CartaConducao:   input.CartaConducao,
		ValidadeDaCarta: validade,
		Salario:         input.Salario,
		Ativo:           true,
	}
	if input.Ativo != nil {
		motorista.Ativo = *input.Ativo
	}
	if err := config.DB.Create(&motorista).Error; err != nil {
		respondSaveError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": motorista})
}

func UpdateMotorista(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var motorista models.Motorista
	if err := config.DB.First(&motorista, c.Param("id")).Error; err != nil {
		respondNotFound(c)
		return
	}

	var input struct {
		DataNascimento  *string  `json:"data_nascimento"`
		NrBI            *string  `json:"nrBI"`
		Telefone        *string  `json:"telefone"`
		Endereco        *string  `json:"endereco"`
		CartaConducao   *string  `json:"carta_conducao"`
		ValidadeDaCarta *string  `json:"validade_da_carta"`
		Salario         *float64 `json:"salario"`
		Ativo           *bool    `json:"ativo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.DataNascimento != nil {
		nascimento, err := parseDate(*input.DataNascimento)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": models.FieldErrors{"data_nascimento": {"data inválida: use o formato AAAA-MM-DD"}}})
			return
		}
		motorista.DataNascimento = nascimento
	}
	if input.ValidadeDaCarta != nil {
		validade, err := parseDate(*input.ValidadeDaCarta)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": models.FieldErrors{"validade_da_carta": {"data inválida: use o formato AAAA-MM-DD"}}})
			return
		}
		motorista.ValidadeDaCarta = validade
	}
	if input.NrBI != nil {
		motorista.NrBI = *input.NrBI
	}
	if input.Telefone != nil {
		motorista.Telefone = input.Telefone
	}
	if input.Endereco != nil {
		motorista.Endereco = *input.Endereco
	}
	if input.CartaConducao != nil {
		motorista.CartaConducao = *input.CartaConducao
	}
	if input.Salario != nil {
		motorista.Salario = *input.Salario
	}
	if input.Ativo != nil {
		motorista.Ativo = *input.Ativo
	}

	if err := config.DB.Save(&motorista).Error; err != nil {
		respondSaveError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": motorista})
}

func DeleteMotorista(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var motorista models.Motorista
	if err := config.DB.First(&motorista, c.Param("id")).Error; err != nil {
		respondNotFound(c)
		return
	}
	if err := config.DB.Delete(&motorista).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "motorista removido"})
}
