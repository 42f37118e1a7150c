package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Helton-Amalique/school-bus-app-api/internal/config"
	"github.com/Helton-Amalique/school-bus-app-api/internal/middleware"
	"github.com/Helton-Amalique/school-bus-app-api/internal/models"
)

type signupInput struct {
	Nome     string `json:"nome" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`

	// Profile fields, required depending on role.
	NrBI            string  `json:"nrBI"`
	Telefone        *string `json:"telefone"`
	Endereco        string  `json:"endereco"`
	DataNascimento  string  `json:"data_nascimento"`
	EncarregadoID   uint    `json:"encarregado_id"`
	EscolaDest      string  `json:"escola_dest"`
	Classe          string  `json:"classe"`
	Mensalidade     float64 `json:"mensalidade"`
	CartaConducao   string  `json:"carta_conducao"`
	ValidadeDaCarta string  `json:"validade_da_carta"`
	Salario         float64 `json:"salario"`
}

// SignupUser registers an identity and, in the same transaction, the
// profile matching its role. Replaces the implicit profile-on-save hook
// of the old admin system with an explicit step visible to callers.
func SignupUser(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := models.ParseRole(input.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": models.FieldErrors{"role": {"role inválido"}}})
		return
	}

	user := models.User{
		Nome:  input.Nome,
		Email: input.Email,
		Role:  role,
	}
	if err := user.SetPassword(input.Password); err != nil {
		respondSaveError(c, err)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start transaction"})
		return
	}

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
			return
		}
		respondSaveError(c, err)
		return
	}

	if err := createProfileRecord(tx, &user, input); err != nil {
		tx.Rollback()
		respondSaveError(c, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not commit transaction: " + err.Error()})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  prepareUserResponse(user),
	})
}

// createProfileRecord builds the role-appropriate profile inside the
// signup transaction. Admins carry no profile.
func createProfileRecord(tx *gorm.DB, user *models.User, input signupInput) error {
	switch user.Role {
	case models.RoleEncarregado:
		encarregado := models.Encarregado{
			UserID:   user.ID,
			NrBI:     input.NrBI,
			Telefone: input.Telefone,
			Endereco: input.Endereco,
			Ativo:    true,
		}
		if err := tx.Create(&encarregado).Error; err != nil {
			return err
		}
		user.Encarregado = &encarregado
	case models.RoleAluno:
		nascimento, err := parseDate(input.DataNascimento)
		if err != nil {
			return models.FieldErrors{"data_nascimento": {"data inválida: use o formato AAAA-MM-DD"}}
		}
		if input.EncarregadoID == 0 {
			return models.FieldErrors{"encarregado": {"o aluno precisa de um encarregado"}}
		}
		var encarregado models.Encarregado
		if err := tx.First(&encarregado, input.EncarregadoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.FieldErrors{"encarregado": {"o encarregado indicado não existe"}}
			}
			return err
		}
		aluno := models.Aluno{
			UserID:         user.ID,
			EncarregadoID:  encarregado.ID,
			DataNascimento: nascimento,
			NrBI:           input.NrBI,
			EscolaDest:     input.EscolaDest,
			Classe:         input.Classe,
			Mensalidade:    input.Mensalidade,
			Ativo:          true,
		}
		if err := tx.Create(&aluno).Error; err != nil {
			return err
		}
		user.Aluno = &aluno
	case models.RoleMotorista:
		nascimento, err := parseDate(input.DataNascimento)
		if err != nil {
			return models.FieldErrors{"data_nascimento": {"data inválida: use o formato AAAA-MM-DD"}}
		}
		validade, err := parseDate(input.ValidadeDaCarta)
		if err != nil {
			return models.FieldErrors{"validade_da_carta": {"data inválida: use o formato AAAA-MM-DD"}}
		}
		motorista := models.Motorista{
			UserID:          user.ID,
			DataNascimento:  nascimento,
			NrBI:            input.NrBI,
			Telefone:        input.Telefone,
			Endereco:        input.Endereco,
			CartaConducao:   input.CartaConducao,
			ValidadeDaCarta: validade,
			Salario:         input.Salario,
			Ativo:           true,
		}
		if err := tx.Create(&motorista).Error; err != nil {
			return err
		}
		user.Motorista = &motorista
	}
	return nil
}

// LoginUser issues a JWT for valid credentials.
func LoginUser(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Emails are stored lowercased.
	email := strings.ToLower(strings.TrimSpace(body.Email))

	var user models.User
	query := config.DB.Where("email = ?", email).
		Preload("Encarregado").
		Preload("Aluno").
		Preload("Motorista")

	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found or invalid credentials"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		}
		return
	}

	if !user.CheckPassword(body.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect password"})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  prepareUserResponse(user),
	})
}

// Me returns the authenticated user's own account and profile.
func Me(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var user models.User
	err := config.DB.
		Preload("Encarregado").
		Preload("Aluno").
		Preload("Motorista").
		First(&user, p.UserID).Error
	if err != nil {
		respondNotFound(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": prepareUserResponse(user)})
}

// UpdateMe lets the authenticated user change nome, email and password.
func UpdateMe(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var user models.User
	if err := config.DB.First(&user, p.UserID).Error; err != nil {
		respondNotFound(c)
		return
	}

	var input struct {
		Nome     *string `json:"nome"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Nome != nil {
		user.Nome = *input.Nome
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		if err := user.SetPassword(*input.Password); err != nil {
			respondSaveError(c, err)
			return
		}
	}

	if err := config.DB.Save(&user).Error; err != nil {
		respondSaveError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": prepareUserResponse(user)})
}

func prepareUserResponse(user models.User) gin.H {
	responseUser := gin.H{
		"ID":        user.ID,
		"CreatedAt": user.CreatedAt,
		"UpdatedAt": user.UpdatedAt,
		"nome":      user.Nome,
		"email":     user.Email,
		"role":      user.Role,
	}

	if user.Encarregado != nil {
		responseUser["encarregado"] = gin.H{
			"ID":       user.Encarregado.ID,
			"nrBI":     user.Encarregado.NrBI,
			"telefone": user.Encarregado.Telefone,
			"endereco": user.Encarregado.Endereco,
			"ativo":    user.Encarregado.Ativo,
		}
	}
	if user.Aluno != nil {
		responseUser["aluno"] = gin.H{
			"ID":              user.Aluno.ID,
			"encarregado_id":  user.Aluno.EncarregadoID,
			"data_nascimento": user.Aluno.DataNascimento.Format(dateLayout),
			"idade":           user.Aluno.Idade(),
			"nrBI":            user.Aluno.NrBI,
			"escola_dest":     user.Aluno.EscolaDest,
			"classe":          user.Aluno.Classe,
			"mensalidade":     user.Aluno.Mensalidade,
			"ativo":           user.Aluno.Ativo,
		}
	}
	if user.Motorista != nil {
		responseUser["motorista"] = gin.H{
			"ID":                user.Motorista.ID,
			"data_nascimento":   user.Motorista.DataNascimento.Format(dateLayout),
			"idade":             user.Motorista.Idade(),
			"nrBI":              user.Motorista.NrBI,
			"telefone":          user.Motorista.Telefone,
			"carta_conducao":    user.Motorista.CartaConducao,
			"validade_da_carta": user.Motorista.ValidadeDaCarta.Format(dateLayout),
			"salario":           user.Motorista.Salario,
			"ativo":             user.Motorista.Ativo,
		}
	}
	return responseUser
}
