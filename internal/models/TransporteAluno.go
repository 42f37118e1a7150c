package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// StatusTransporte is the daily check-in state of a student on a route.
// Transitions only move forward: PENDENTE -> EMBARCADO -> DESEMBARCADO.
type StatusTransporte string

const (
	StatusPendente     StatusTransporte = "PENDENTE"
	StatusEmbarcado    StatusTransporte = "EMBARCADO"
	StatusDesembarcado StatusTransporte = "DESEMBARCADO"
)

var statusOrdem = map[StatusTransporte]int{
	StatusPendente:     0,
	StatusEmbarcado:    1,
	StatusDesembarcado: 2,
}

// TransporteAluno is one check-in record per (aluno, rota) per day.
type TransporteAluno struct {
	gorm.Model
	AlunoID uint  `json:"aluno_id" gorm:"uniqueIndex:ux_transporte_dia"`
	Aluno   Aluno `json:"aluno,omitempty" gorm:"foreignKey:AlunoID"`
	RotaID  uint  `json:"rota_id" gorm:"uniqueIndex:ux_transporte_dia"`
	Rota    Rota  `json:"rota,omitempty" gorm:"foreignKey:RotaID"`

	Status StatusTransporte `json:"status" gorm:"type:varchar(20);default:'PENDENTE'"`
	Data   time.Time        `json:"data" gorm:"type:date;uniqueIndex:ux_transporte_dia"`
}

// BeforeCreate stamps the record with today's date and rejects check-ins
// on inactive routes, on vehicles under open maintenance, and duplicates
// for the same (aluno, rota) pair on the same day.
func (t *TransporteAluno) BeforeCreate(tx *gorm.DB) error {
	if t.Status == "" {
		t.Status = StatusPendente
	}
	if _, ok := statusOrdem[t.Status]; !ok {
		return fieldError("status", "status inválido")
	}
	t.Data = hoje()

	var rota Rota
	if err := tx.First(&rota, t.RotaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fieldError("rota", "a rota indicada não existe")
		}
		return err
	}
	if !rota.Ativo {
		return fieldError("rota", "a rota está inativa")
	}

	var veiculo Veiculo
	if err := tx.First(&veiculo, rota.VeiculoID).Error; err != nil {
		return err
	}
	emManutencao, err := veiculo.EmManutencao(tx)
	if err != nil {
		return err
	}
	if emManutencao {
		return fieldError("veiculo", "o veículo da rota está em manutenção")
	}

	var repetidos int64
	err = tx.Model(&TransporteAluno{}).
		Where("aluno_id = ? AND rota_id = ? AND data = ?", t.AlunoID, t.RotaID, t.Data).
		Count(&repetidos).Error
	if err != nil {
		return err
	}
	if repetidos > 0 {
		return fieldError("aluno", "já existe um check-in para este aluno nesta rota hoje")
	}
	return nil
}

// AvancarStatus moves the record forward in the check-in state machine.
// Re-asserting the current status is a no-op; any backward move, or any
// move off DESEMBARCADO, is rejected.
func (t *TransporteAluno) AvancarStatus(novo StatusTransporte) error {
	ordemNovo, ok := statusOrdem[novo]
	if !ok {
		return fieldError("status", "status inválido")
	}
	if novo == t.Status {
		return nil
	}
	if t.Status == StatusDesembarcado || ordemNovo < statusOrdem[t.Status] {
		return fieldError("status", "não é permitido retroceder o status do check-in")
	}
	t.Status = novo
	return nil
}
