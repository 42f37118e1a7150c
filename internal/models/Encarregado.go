package models

import (
	"strings"

	"gorm.io/gorm"
)

// Encarregado de educação: responsável por zero ou mais alunos.
type Encarregado struct {
	gorm.Model
	UserID   uint    `json:"user_id" gorm:"uniqueIndex"`
	User     User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	NrBI     string  `json:"nrBI" gorm:"uniqueIndex"`
	Telefone *string `json:"telefone" gorm:"uniqueIndex"`
	Endereco string  `json:"endereco"`
	Ativo    bool    `json:"ativo" gorm:"default:true;index"`

	Alunos []Aluno `json:"alunos,omitempty" gorm:"foreignKey:EncarregadoID"`
}

func (e *Encarregado) BeforeSave(tx *gorm.DB) error {
	e.NrBI = strings.TrimSpace(e.NrBI)
	e.Endereco = strings.TrimSpace(e.Endereco)

	if !nrBIRegex.MatchString(e.NrBI) {
		return fieldError("nrBI", "formato inválido para BI: use 12 dígitos e uma letra maiúscula")
	}
	if e.Telefone != nil {
		tel := strings.TrimSpace(*e.Telefone)
		e.Telefone = &tel
		if !telefoneRegex.MatchString(tel) {
			return fieldError("telefone", "número de telefone inválido")
		}
	}
	return nil
}
