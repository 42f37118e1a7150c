package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Rota struct {
	gorm.Model
	Nome      string  `json:"nome" gorm:"index"`
	VeiculoID uint    `json:"veiculo_id" gorm:"index"`
	Veiculo   Veiculo `json:"veiculo,omitempty" gorm:"foreignKey:VeiculoID"`

	// Horários no formato HH:MM, comparados após parse.
	HoraPartida string `json:"hora_partida" gorm:"default:'05:20'"`
	HoraChegada string `json:"hora_chegada" gorm:"default:'07:00'"`
	Descricao   string `json:"descricao"`

	Alunos []Aluno `json:"alunos,omitempty" gorm:"many2many:rota_alunos"`
	Ativo  bool    `json:"ativo" gorm:"default:true;index"`
}

func parseHora(s string) (time.Time, error) {
	return time.Parse("15:04", s)
}

// TotalAlunos counts the roster. The in-memory roster wins when one is
// attached; otherwise the join table is counted, so bulk edits that never
// load the roster are still measured.
func (r *Rota) TotalAlunos(db *gorm.DB) (int, error) {
	if r.Alunos != nil {
		return len(r.Alunos), nil
	}
	if r.ID == 0 {
		return 0, nil
	}
	var total int64
	err := db.Table("rota_alunos").Where("rota_id = ?", r.ID).Count(&total).Error
	return int(total), err
}

// BeforeSave validates the route as an ordered conjunction: the first
// failing check is the reported error.
func (r *Rota) BeforeSave(tx *gorm.DB) error {
	if r.VeiculoID == 0 {
		return fieldError("veiculo", "a rota precisa de um veículo")
	}
	var veiculo Veiculo
	if err := tx.First(&veiculo, r.VeiculoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fieldError("veiculo", "a rota precisa de um veículo")
		}
		return err
	}
	if veiculo.MotoristaID == nil || *veiculo.MotoristaID == 0 {
		return fieldError("veiculo", "o veículo selecionado não tem motorista atribuído")
	}
	if !veiculo.Ativo {
		return fieldError("veiculo", "o veículo selecionado está inativo")
	}
	partida, err := parseHora(r.HoraPartida)
	if err != nil {
		return fieldError("hora_partida", "hora inválida: use o formato HH:MM")
	}
	chegada, err := parseHora(r.HoraChegada)
	if err != nil {
		return fieldError("hora_chegada", "hora inválida: use o formato HH:MM")
	}
	if !chegada.After(partida) {
		return fieldError("hora_chegada", "a hora de chegada deve ser posterior à hora de partida")
	}
	emManutencao, err := veiculo.EmManutencao(tx)
	if err != nil {
		return err
	}
	if emManutencao {
		return fieldError("veiculo", "o veículo selecionado está em manutenção")
	}
	if veiculo.Capacidade > CapacidadeMaxima {
		return fieldError("capacidade", "a capacidade do veículo excede o limite de 50 passageiros")
	}
	if r.Ativo {
		query := tx.Model(&Rota{}).
			Where("veiculo_id = ? AND ativo = ?", r.VeiculoID, true)
		if r.ID != 0 {
			query = query.Where("id <> ?", r.ID)
		}
		var conflitos int64
		if err := query.Count(&conflitos).Error; err != nil {
			return err
		}
		if conflitos > 0 {
			return fieldError("veiculo", "este veículo já possui uma rota ativa")
		}
	}
	total, err := r.TotalAlunos(tx)
	if err != nil {
		return err
	}
	if total > int(veiculo.Capacidade) {
		return fieldError("alunos", fmt.Sprintf(
			"capacidade excedida: o veículo %s só suporta %d alunos, tentou inserir %d",
			veiculo.Matricula, veiculo.Capacidade, total))
	}
	return nil
}
