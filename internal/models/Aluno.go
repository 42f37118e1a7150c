package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Aluno struct {
	gorm.Model
	UserID        uint        `json:"user_id" gorm:"uniqueIndex"`
	User          User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	EncarregadoID uint        `json:"encarregado_id" gorm:"index"`
	Encarregado   Encarregado `json:"encarregado,omitempty" gorm:"foreignKey:EncarregadoID"`

	DataNascimento time.Time `json:"data_nascimento" gorm:"type:date"`
	NrBI           string    `json:"nrBI" gorm:"uniqueIndex"`
	EscolaDest     string    `json:"escola_dest" gorm:"index"`
	Classe         string    `json:"classe"`
	Mensalidade    float64   `json:"mensalidade"`
	Ativo          bool      `json:"ativo" gorm:"default:true;index"`
}

// Idade calculates full years elapsed since the birth date.
func (a *Aluno) Idade() int {
	return idadeEm(dateOnly(a.DataNascimento), hoje())
}

// BeforeSave validates the student on every write: checks run in a fixed
// order and the first failure is reported.
func (a *Aluno) BeforeSave(tx *gorm.DB) error {
	a.NrBI = strings.TrimSpace(a.NrBI)

	if a.EncarregadoID == 0 {
		return fieldError("encarregado", "o aluno precisa de um encarregado")
	}
	if dateOnly(a.DataNascimento).After(hoje()) {
		return fieldError("data_nascimento", "a data de nascimento não pode ser no futuro")
	}
	if a.Idade() < 3 {
		return fieldError("data_nascimento", "o aluno deve ter pelo menos 3 anos de idade")
	}
	if !nrBIRegex.MatchString(a.NrBI) {
		return fieldError("nrBI", "formato inválido para BI: use 12 dígitos e uma letra maiúscula")
	}
	if a.Mensalidade < 0 {
		return fieldError("mensalidade", "a mensalidade não pode ser negativa")
	}
	return nil
}
