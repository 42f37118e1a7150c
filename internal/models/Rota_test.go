package models

import (
	"testing"
	"time"
)

func TestRotaValidacaoOrdenada(t *testing.T) {
	db := openTestDB(t)
	encarregado := criarEncarregado(t, db)

	novaRota := func(veiculoID uint) Rota {
		fixtureSeq++
		return Rota{
			Nome:        "Matola - Escola",
			VeiculoID:   veiculoID,
			HoraPartida: "05:20",
			HoraChegada: "07:00",
			Ativo:       true,
		}
	}

	t.Run("sem veiculo", func(t *testing.T) {
		rota := novaRota(0)
		fieldOf(t, db.Create(&rota).Error, "veiculo")
	})

	t.Run("veiculo inexistente", func(t *testing.T) {
		rota := novaRota(99999)
		fieldOf(t, db.Create(&rota).Error, "veiculo")
	})

	t.Run("veiculo sem motorista", func(t *testing.T) {
		veiculo := Veiculo{
			Marca: "Toyota", Modelo: "Hiace", Matricula: novaMatricula(),
			Capacidade: 10, Ativo: false,
		}
		if err := db.Create(&veiculo).Error; err != nil {
			t.Fatalf("creating veiculo: %v", err)
		}
		rota := novaRota(veiculo.ID)
		fieldOf(t, db.Create(&rota).Error, "veiculo")
	})

	t.Run("veiculo inativo", func(t *testing.T) {
		motorista := criarMotorista(t, db)
		veiculo := Veiculo{
			Marca: "Toyota", Modelo: "Hiace", Matricula: novaMatricula(),
			Capacidade: 10, MotoristaID: &motorista.ID, Ativo: false,
		}
		if err := db.Create(&veiculo).Error; err != nil {
			t.Fatalf("creating veiculo: %v", err)
		}
		rota := novaRota(veiculo.ID)
		fieldOf(t, db.Create(&rota).Error, "veiculo")
	})

	t.Run("hora de chegada antes da partida", func(t *testing.T) {
		motorista := criarMotorista(t, db)
		veiculo := criarVeiculo(t, db, motorista.ID, 10)
		rota := novaRota(veiculo.ID)
		rota.HoraChegada = "05:00"
		fieldOf(t, db.Create(&rota).Error, "hora_chegada")
	})

	t.Run("horas iguais", func(t *testing.T) {
		motorista := criarMotorista(t, db)
		veiculo := criarVeiculo(t, db, motorista.ID, 10)
		rota := novaRota(veiculo.ID)
		rota.HoraChegada = rota.HoraPartida
		fieldOf(t, db.Create(&rota).Error, "hora_chegada")
	})

	t.Run("hora mal formada", func(t *testing.T) {
		motorista := criarMotorista(t, db)
		veiculo := criarVeiculo(t, db, motorista.ID, 10)
		rota := novaRota(veiculo.ID)
		rota.HoraPartida = "5h20"
		fieldOf(t, db.Create(&rota).Error, "hora_partida")
	})

	t.Run("veiculo em manutencao", func(t *testing.T) {
		motorista := criarMotorista(t, db)
		veiculo := criarVeiculo(t, db, motorista.ID, 10)
		manutencao := Manutencao{VeiculoID: veiculo.ID, DataInicio: time.Now()}
		if err := db.Create(&manutencao).Error; err != nil {
			t.Fatalf("creating manutencao: %v", err)
		}
		rota := novaRota(veiculo.ID)
		fieldOf(t, db.Create(&rota).Error, "veiculo")

		// Concluded maintenance no longer blocks.
		if err := manutencao.Concluir(db, 5000); err != nil {
			t.Fatalf("Concluir: %v", err)
		}
		rota = novaRota(veiculo.ID)
		if err := db.Create(&rota).Error; err != nil {
			t.Fatalf("route after concluded maintenance: %v", err)
		}
	})

	t.Run("roster acima da capacidade", func(t *testing.T) {
		motorista := criarMotorista(t, db)
		veiculo := criarVeiculo(t, db, motorista.ID, 2)
		rota := novaRota(veiculo.ID)
		rota.Alunos = []Aluno{
			criarAluno(t, db, encarregado.ID),
			criarAluno(t, db, encarregado.ID),
			criarAluno(t, db, encarregado.ID),
		}
		fieldOf(t, db.Create(&rota).Error, "alunos")
	})
}

func TestUmaRotaAtivaPorVeiculo(t *testing.T) {
	db := openTestDB(t)
	motorista := criarMotorista(t, db)
	veiculo := criarVeiculo(t, db, motorista.ID, 10)
	primeira := criarRota(t, db, veiculo.ID, nil)

	segunda := Rota{
		Nome: "Segunda Rota", VeiculoID: veiculo.ID,
		HoraPartida: "12:00", HoraChegada: "13:30", Ativo: true,
	}
	fieldOf(t, db.Create(&segunda).Error, "veiculo")

	// Inactive second route on the same vehicle is fine.
	segunda.Ativo = false
	if err := db.Create(&segunda).Error; err != nil {
		t.Fatalf("inactive second route should save: %v", err)
	}

	// Editing the active route must not conflict with itself.
	primeira.Nome = "Rota Renomeada"
	if err := db.Save(&primeira).Error; err != nil {
		t.Fatalf("re-saving active route: %v", err)
	}

	// Deactivating the first frees the vehicle for the second.
	primeira.Ativo = false
	if err := db.Save(&primeira).Error; err != nil {
		t.Fatalf("deactivating route: %v", err)
	}
	segunda.Ativo = true
	if err := db.Save(&segunda).Error; err != nil {
		t.Fatalf("activating second route: %v", err)
	}
}
