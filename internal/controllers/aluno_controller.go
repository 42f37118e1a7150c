package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Helton-Amalique/school-bus-app-api/internal/config"
	"github.com/Helton-Amalique/school-bus-app-api/internal/models"
	"github.com/Helton-Amalique/school-bus-app-api/internal/policy"
)

// ListAlunos returns the students visible to the principal: all of them
// for admins, own dependants for guardians, self for students.
func ListAlunos(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var alunos []models.Aluno
	query := policy.AlunoScope(config.DB.Model(&models.Aluno{}), p).
		Preload("User").
		Preload("Encarregado")
	if err := query.Find(&alunos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing alunos: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": alunos})
}

func GetAluno(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var aluno models.Aluno
	query := policy.AlunoScope(config.DB.Model(&models.Aluno{}), p).
		Preload("User").
		Preload("Encarregado").
		Where("alunos.id = ?", c.Param("id"))
	if err := query.First(&aluno).Error; err != nil {
		respondNotFound(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": aluno})
}

type alunoInput struct {
	UserID         uint    `json:"user_id" binding:"required"`
	EncarregadoID  uint    `json:"encarregado_id" binding:"required"`
	DataNascimento string  `json:"data_nascimento" binding:"required"`
	NrBI           string  `json:"nrBI" binding:"required"`
	EscolaDest     string  `json:"escola_dest"`
	Classe         string  `json:"classe"`
	Mensalidade    float64 `json:"mensalidade"`
	Ativo          *bool   `json:"ativo"`
}

func CreateAluno(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var input alunoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	nascimento, err := parseDate(input.DataNascimento)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": models.FieldErrors{"data_nascimento": {"data inválida: use o formato AAAA-MM-DD"}}})
		return
	}

	var user models.User
	if err := config.DB.First(&user, input.UserID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": models.FieldErrors{"user": {"o utilizador indicado não existe"}}})
		return
	}
	if user.Role != models.RoleAluno {
		c.JSON(http.StatusBadRequest, gin.H{"errors": models.FieldErrors{"user": {"o utilizador não tem o role ALUNO"}}})
		return
	}

	aluno := models.Aluno{
		UserID:         input.UserID,
		EncarregadoID:  input.EncarregadoID,
		DataNascimento: nascimento,
		NrBI:           input.NrBI,
		EscolaDest:     input.EscolaDest,
		Classe:         input.Classe,
		Mensalidade:    input.Mensalidade,
		Ativo:          true,
	}
	if input.Ativo != nil {
		aluno.Ativo = *input.Ativo
	}
	if err := config.DB.Create(&aluno).Error; err != nil {
		respondSaveError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": aluno})
}

func UpdateAluno(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var aluno models.Aluno
	if err := config.DB.First(&aluno, c.Param("id")).Error; err != nil {
		respondNotFound(c)
		return
	}

	var input struct {
		EncarregadoID  *uint    `json:"encarregado_id"`
		DataNascimento *string  `json:"data_nascimento"`
		NrBI           *string  `json:"nrBI"`
		EscolaDest     *string  `json:"escola_dest"`
		Classe         *string  `json:"classe"`
		Mensalidade    *float64 `json:"mensalidade"`
		Ativo          *bool    `json:"ativo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.EncarregadoID != nil {
		aluno.EncarregadoID = *input.EncarregadoID
	}
	if input.DataNascimento != nil {
		nascimento, err := parseDate(*input.DataNascimento)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": models.FieldErrors{"data_nascimento": {"data inválida: use o formato AAAA-MM-DD"}}})
			return
		}
		aluno.DataNascimento = nascimento
	}
	if input.NrBI != nil {
		aluno.NrBI = *input.NrBI
	}
	if input.EscolaDest != nil {
		aluno.EscolaDest = *input.EscolaDest
	}
	if input.Classe != nil {
		aluno.Classe = *input.Classe
	}
	if input.Mensalidade != nil {
		aluno.Mensalidade = *input.Mensalidade
	}
	if input.Ativo != nil {
		aluno.Ativo = *input.Ativo
	}

	if err := config.DB.Save(&aluno).Error; err != nil {
		respondSaveError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": aluno})
}

func DeleteAluno(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var aluno models.Aluno
	if err := config.DB.First(&aluno, c.Param("id")).Error; err != nil {
		respondNotFound(c)
		return
	}
	if err := config.DB.Delete(&aluno).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "aluno removido"})
}
