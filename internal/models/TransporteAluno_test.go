package models

import (
	"testing"
	"time"
)

func TestCheckInCriacao(t *testing.T) {
	db := openTestDB(t)
	encarregado := criarEncarregado(t, db)
	motorista := criarMotorista(t, db)
	veiculo := criarVeiculo(t, db, motorista.ID, 10)
	aluno := criarAluno(t, db, encarregado.ID)
	rota := criarRota(t, db, veiculo.ID, []Aluno{aluno})

	registro := TransporteAluno{AlunoID: aluno.ID, RotaID: rota.ID}
	if err := db.Create(&registro).Error; err != nil {
		t.Fatalf("creating check-in: %v", err)
	}
	if registro.Status != StatusPendente {
		t.Errorf("status = %q, want PENDENTE", registro.Status)
	}
	if !registro.Data.Equal(dateOnly(time.Now())) {
		t.Errorf("data = %v, want today", registro.Data)
	}

	// Same student, same route, same day: rejected.
	duplicado := TransporteAluno{AlunoID: aluno.ID, RotaID: rota.ID}
	fieldOf(t, db.Create(&duplicado).Error, "aluno")

	// Another student on the same route today is fine.
	outro := criarAluno(t, db, encarregado.ID)
	segundo := TransporteAluno{AlunoID: outro.ID, RotaID: rota.ID}
	if err := db.Create(&segundo).Error; err != nil {
		t.Fatalf("second student check-in: %v", err)
	}
}

func TestCheckInRotaInativa(t *testing.T) {
	db := openTestDB(t)
	encarregado := criarEncarregado(t, db)
	motorista := criarMotorista(t, db)
	veiculo := criarVeiculo(t, db, motorista.ID, 10)
	aluno := criarAluno(t, db, encarregado.ID)
	rota := criarRota(t, db, veiculo.ID, nil)

	rota.Ativo = false
	if err := db.Save(&rota).Error; err != nil {
		t.Fatalf("deactivating route: %v", err)
	}

	registro := TransporteAluno{AlunoID: aluno.ID, RotaID: rota.ID}
	fieldOf(t, db.Create(&registro).Error, "rota")
}

func TestCheckInVeiculoEmManutencao(t *testing.T) {
	db := openTestDB(t)
	encarregado := criarEncarregado(t, db)
	motorista := criarMotorista(t, db)
	veiculo := criarVeiculo(t, db, motorista.ID, 10)
	aluno := criarAluno(t, db, encarregado.ID)
	rota := criarRota(t, db, veiculo.ID, nil)

	manutencao := Manutencao{VeiculoID: veiculo.ID, DataInicio: time.Now()}
	if err := db.Create(&manutencao).Error; err != nil {
		t.Fatalf("creating manutencao: %v", err)
	}

	registro := TransporteAluno{AlunoID: aluno.ID, RotaID: rota.ID}
	fieldOf(t, db.Create(&registro).Error, "veiculo")
}

func TestAvancarStatus(t *testing.T) {
	tests := []struct {
		name    string
		de      StatusTransporte
		para    StatusTransporte
		wantErr bool
	}{
		{"pendente para embarcado", StatusPendente, StatusEmbarcado, false},
		{"embarcado para desembarcado", StatusEmbarcado, StatusDesembarcado, false},
		{"pendente direto para desembarcado", StatusPendente, StatusDesembarcado, false},
		{"mesmo status e no-op", StatusEmbarcado, StatusEmbarcado, false},
		{"embarcado de volta a pendente", StatusEmbarcado, StatusPendente, true},
		{"desembarcado de volta a embarcado", StatusDesembarcado, StatusEmbarcado, true},
		{"desembarcado de volta a pendente", StatusDesembarcado, StatusPendente, true},
		{"status desconhecido", StatusPendente, StatusTransporte("VOANDO"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registro := TransporteAluno{Status: tt.de}
			err := registro.AvancarStatus(tt.para)
			if tt.wantErr {
				fieldOf(t, err, "status")
				if registro.Status != tt.de {
					t.Errorf("status mutated to %q on rejected transition", registro.Status)
				}
				return
			}
			if err != nil {
				t.Fatalf("AvancarStatus(%q -> %q): %v", tt.de, tt.para, err)
			}
			if registro.Status != tt.para {
				t.Errorf("status = %q, want %q", registro.Status, tt.para)
			}
		})
	}
}

func TestCheckInStatusPersistido(t *testing.T) {
	db := openTestDB(t)
	encarregado := criarEncarregado(t, db)
	motorista := criarMotorista(t, db)
	veiculo := criarVeiculo(t, db, motorista.ID, 10)
	aluno := criarAluno(t, db, encarregado.ID)
	rota := criarRota(t, db, veiculo.ID, nil)

	registro := TransporteAluno{AlunoID: aluno.ID, RotaID: rota.ID}
	if err := db.Create(&registro).Error; err != nil {
		t.Fatalf("creating check-in: %v", err)
	}

	if err := registro.AvancarStatus(StatusEmbarcado); err != nil {
		t.Fatalf("AvancarStatus: %v", err)
	}
	if err := db.Save(&registro).Error; err != nil {
		t.Fatalf("saving advanced check-in: %v", err)
	}

	var relido TransporteAluno
	if err := db.First(&relido, registro.ID).Error; err != nil {
		t.Fatalf("reloading check-in: %v", err)
	}
	if relido.Status != StatusEmbarcado {
		t.Errorf("stored status = %q, want EMBARCADO", relido.Status)
	}
}
