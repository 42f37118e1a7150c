package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Motorista struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"uniqueIndex"`
	User   User `json:"user,omitempty" gorm:"foreignKey:UserID"`

	DataNascimento  time.Time `json:"data_nascimento" gorm:"type:date"`
	NrBI            string    `json:"nrBI" gorm:"uniqueIndex"`
	Telefone        *string   `json:"telefone" gorm:"uniqueIndex"`
	Endereco        string    `json:"endereco"`
	CartaConducao   string    `json:"carta_conducao" gorm:"uniqueIndex"`
	ValidadeDaCarta time.Time `json:"validade_da_carta" gorm:"type:date"`
	Salario         float64   `json:"salario"`
	Ativo           bool      `json:"ativo" gorm:"default:true;index"`
}

func (m *Motorista) Idade() int {
	return idadeEm(dateOnly(m.DataNascimento), hoje())
}

// BeforeSave validates the driver on every write; checks run in a fixed
// order and the first failure is reported.
func (m *Motorista) BeforeSave(tx *gorm.DB) error {
	m.NrBI = strings.TrimSpace(m.NrBI)
	m.Endereco = strings.TrimSpace(m.Endereco)
	m.CartaConducao = strings.TrimSpace(m.CartaConducao)

	if dateOnly(m.DataNascimento).After(hoje()) {
		return fieldError("data_nascimento", "a data de nascimento não pode ser no futuro")
	}
	if m.Idade() < 18 {
		return fieldError("data_nascimento", "o motorista deve ter pelo menos 18 anos")
	}
	if !cartaRegex.MatchString(m.CartaConducao) {
		return fieldError("carta_conducao", "formato inválido para carta de condução: use 9 dígitos")
	}
	if dateOnly(m.ValidadeDaCarta).Before(hoje()) {
		return fieldError("validade_da_carta", "a carta de condução está expirada")
	}
	if m.Salario < 0 {
		return fieldError("salario", "o salário não pode ser negativo")
	}
	if m.Salario > 0 {
		var user User
		if err := tx.First(&user, m.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fieldError("user", "utilizador do motorista não encontrado")
			}
			return err
		}
		if user.Role != RoleMotorista {
			return fieldError("salario", "somente motoristas podem ter salário definido")
		}
	}
	if !nrBIRegex.MatchString(m.NrBI) {
		return fieldError("nrBI", "formato inválido para BI: use 12 dígitos e uma letra maiúscula")
	}
	if m.Telefone != nil {
		tel := strings.TrimSpace(*m.Telefone)
		m.Telefone = &tel
		if !telefoneRegex.MatchString(tel) {
			return fieldError("telefone", "número de telefone inválido")
		}
	}
	return nil
}
