package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Manutencao records a service on a vehicle. While Concluida is false the
// vehicle counts as "em manutenção" and cannot join a new active route.
type Manutencao struct {
	gorm.Model
	VeiculoID uint    `json:"veiculo_id" gorm:"index"`
	Veiculo   Veiculo `json:"veiculo,omitempty" gorm:"foreignKey:VeiculoID"`

	Descricao      string     `json:"descricao"`
	DataInicio     time.Time  `json:"data_inicio" gorm:"type:date"`
	DataFim        *time.Time `json:"data_fim" gorm:"type:date"`
	Custo          float64    `json:"custo"`
	Concluida      bool       `json:"concluida" gorm:"default:false;index"`
	KmNaManutencao uint       `json:"km_na_manutencao"`
}

var ErrManutencaoConcluida = errors.New("esta manutenção já foi concluída anteriormente")

func (m *Manutencao) BeforeSave(tx *gorm.DB) error {
	if m.VeiculoID == 0 {
		return fieldError("veiculo", "a manutenção precisa de um veículo")
	}
	if m.Custo < 0 {
		return fieldError("custo", "o custo não pode ser negativo")
	}
	if m.DataFim != nil && dateOnly(*m.DataFim).Before(dateOnly(m.DataInicio)) {
		return fieldError("data_fim", "a data de fim deve ser igual ou posterior à data de início")
	}
	return nil
}

// Concluir closes the maintenance: marks it concluded today, stamps the
// vehicle's last service date, raises its odometer to at least the service
// reading and schedules the next revision at proximaRevisaoKm further on.
// Both records are persisted on the given transaction. Calling it on an
// already concluded maintenance returns ErrManutencaoConcluida.
func (m *Manutencao) Concluir(tx *gorm.DB, proximaRevisaoKm uint) error {
	if m.Concluida {
		return ErrManutencaoConcluida
	}

	var veiculo Veiculo
	if err := tx.First(&veiculo, m.VeiculoID).Error; err != nil {
		return err
	}

	dia := hoje()
	m.Concluida = true
	m.DataFim = &dia

	veiculo.DataUltimaRevisao = &dia
	if m.KmNaManutencao > veiculo.Quilometragem {
		veiculo.Quilometragem = m.KmNaManutencao
	}
	veiculo.KmProximaRevisao = veiculo.Quilometragem + proximaRevisaoKm

	if err := tx.Save(m).Error; err != nil {
		return err
	}
	return tx.Save(&veiculo).Error
}
