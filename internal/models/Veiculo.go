package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

const CapacidadeMaxima = 50

type Veiculo struct {
	gorm.Model
	Marca      string `json:"marca"`
	Modelo     string `json:"modelo"`
	Matricula  string `json:"matricula" gorm:"uniqueIndex"`
	Capacidade uint   `json:"capacidade"`

	MotoristaID *uint      `json:"motorista_id" gorm:"index"`
	Motorista   *Motorista `json:"motorista,omitempty" gorm:"foreignKey:MotoristaID"`

	Quilometragem     uint       `json:"quilometragem"`
	KmProximaRevisao  uint       `json:"km_proxima_revisao"`
	DataUltimaRevisao *time.Time `json:"data_ultima_revisao" gorm:"type:date"`

	Ativo bool `json:"ativo" gorm:"default:true;index"`

	Rotas       []Rota       `json:"rotas,omitempty" gorm:"foreignKey:VeiculoID"`
	Manutencoes []Manutencao `json:"manutencoes,omitempty" gorm:"foreignKey:VeiculoID"`
}

// BeforeSave normalizes and validates the vehicle on every write, using
// the save transaction for the one-active-vehicle-per-driver check.
func (v *Veiculo) BeforeSave(tx *gorm.DB) error {
	v.Matricula = strings.ToUpper(strings.TrimSpace(v.Matricula))
	v.Marca = titleCase(v.Marca)
	v.Modelo = titleCase(v.Modelo)

	if !matriculaRegex.MatchString(v.Matricula) {
		return fieldError("matricula", "matrícula inválida. Ex: ABC-123-XY")
	}
	if v.Capacidade < 1 || v.Capacidade > CapacidadeMaxima {
		return fieldError("capacidade", "a capacidade deve estar entre 1 e 50 passageiros")
	}
	if v.Ativo {
		if v.MotoristaID == nil || *v.MotoristaID == 0 {
			return fieldError("motorista", "o veículo ativo precisa de um motorista atribuído")
		}
		var motorista Motorista
		if err := tx.First(&motorista, *v.MotoristaID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fieldError("motorista", "o motorista indicado não existe")
			}
			return err
		}
		query := tx.Model(&Veiculo{}).
			Where("motorista_id = ? AND ativo = ?", *v.MotoristaID, true)
		if v.ID != 0 {
			query = query.Where("id <> ?", v.ID)
		}
		var outros int64
		if err := query.Count(&outros).Error; err != nil {
			return err
		}
		if outros > 0 {
			return fieldError("motorista", "este motorista já possui um veículo ativo")
		}
	}
	return nil
}

// RotaAtiva returns the vehicle's active route, or nil when it has none.
func (v *Veiculo) RotaAtiva(db *gorm.DB) (*Rota, error) {
	var rota Rota
	err := db.Where("veiculo_id = ? AND ativo = ?", v.ID, true).First(&rota).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rota, nil
}

// VagasDisponiveis reports remaining seats on the active route, or the
// full capacity when no route is active. The result is floored at zero:
// over-enrollment is rejected at route save time, but transient
// overbooking during bulk edits must still render as zero, never negative.
func (v *Veiculo) VagasDisponiveis(db *gorm.DB) (int, error) {
	rota, err := v.RotaAtiva(db)
	if err != nil {
		return 0, err
	}
	if rota == nil {
		return int(v.Capacidade), nil
	}
	alunos, err := rota.TotalAlunos(db)
	if err != nil {
		return 0, err
	}
	vagas := int(v.Capacidade) - alunos
	if vagas < 0 {
		vagas = 0
	}
	return vagas, nil
}

// EmManutencao reports whether the vehicle has any open maintenance.
func (v *Veiculo) EmManutencao(db *gorm.DB) (bool, error) {
	var abertas int64
	err := db.Model(&Manutencao{}).
		Where("veiculo_id = ? AND concluida = ?", v.ID, false).
		Count(&abertas).Error
	return abertas > 0, err
}
