package models

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var fixtureSeq int

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	err = db.AutoMigrate(
		&User{}, &Encarregado{}, &Aluno{}, &Motorista{},
		&Veiculo{}, &Rota{}, &Manutencao{}, &TransporteAluno{},
	)
	if err != nil {
		t.Fatalf("migrating test db: %v", err)
	}
	return db
}

func novoBI() string {
	fixtureSeq++
	return fmt.Sprintf("%012dA", fixtureSeq)
}

func novaMatricula() string {
	fixtureSeq++
	return fmt.Sprintf("ABC-%03d-XY", fixtureSeq%1000)
}

func criarUser(t *testing.T, db *gorm.DB, role Role) User {
	t.Helper()
	fixtureSeq++
	user := User{
		Nome:     "Utilizador Teste",
		Email:    fmt.Sprintf("user%d@teste.co.mz", fixtureSeq),
		Password: "hash-irrelevante",
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("creating user fixture: %v", err)
	}
	return user
}

func criarEncarregado(t *testing.T, db *gorm.DB) Encarregado {
	t.Helper()
	user := criarUser(t, db, RoleEncarregado)
	encarregado := Encarregado{UserID: user.ID, NrBI: novoBI(), Ativo: true}
	if err := db.Create(&encarregado).Error; err != nil {
		t.Fatalf("creating encarregado fixture: %v", err)
	}
	return encarregado
}

func criarAluno(t *testing.T, db *gorm.DB, encarregadoID uint) Aluno {
	t.Helper()
	user := criarUser(t, db, RoleAluno)
	aluno := Aluno{
		UserID:         user.ID,
		EncarregadoID:  encarregadoID,
		DataNascimento: time.Now().AddDate(-10, 0, 0),
		NrBI:           novoBI(),
		EscolaDest:     "Escola Primária",
		Classe:         "5a",
		Ativo:          true,
	}
	if err := db.Create(&aluno).Error; err != nil {
		t.Fatalf("creating aluno fixture: %v", err)
	}
	return aluno
}

func criarMotorista(t *testing.T, db *gorm.DB) Motorista {
	t.Helper()
	user := criarUser(t, db, RoleMotorista)
	motorista := Motorista{
		UserID:          user.ID,
		DataNascimento:  time.Now().AddDate(-30, 0, 0),
		NrBI:            novoBI(),
		CartaConducao:   fmt.Sprintf("%09d", fixtureSeq),
		ValidadeDaCarta: time.Now().AddDate(1, 0, 0),
		Salario:         15000,
		Ativo:           true,
	}
	if err := db.Create(&motorista).Error; err != nil {
		t.Fatalf("creating motorista fixture: %v", err)
	}
	return motorista
}

func criarVeiculo(t *testing.T, db *gorm.DB, motoristaID uint, capacidade uint) Veiculo {
	t.Helper()
	veiculo := Veiculo{
		Marca:       "Toyota",
		Modelo:      "Hiace",
		Matricula:   novaMatricula(),
		Capacidade:  capacidade,
		MotoristaID: &motoristaID,
		Ativo:       true,
	}
	if err := db.Create(&veiculo).Error; err != nil {
		t.Fatalf("creating veiculo fixture: %v", err)
	}
	return veiculo
}

func criarRota(t *testing.T, db *gorm.DB, veiculoID uint, alunos []Aluno) Rota {
	t.Helper()
	fixtureSeq++
	rota := Rota{
		Nome:        fmt.Sprintf("Rota %d", fixtureSeq),
		VeiculoID:   veiculoID,
		HoraPartida: "05:20",
		HoraChegada: "07:00",
		Alunos:      alunos,
		Ativo:       true,
	}
	if err := db.Create(&rota).Error; err != nil {
		t.Fatalf("creating rota fixture: %v", err)
	}
	return rota
}

// fieldOf asserts err is a FieldErrors mentioning the given field.
func fieldOf(t *testing.T, err error, field string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected validation error on %q, got nil", field)
	}
	fieldErrs, ok := err.(FieldErrors)
	if !ok {
		t.Fatalf("expected FieldErrors, got %T: %v", err, err)
	}
	if _, ok := fieldErrs[field]; !ok {
		t.Fatalf("expected error on field %q, got %v", field, fieldErrs)
	}
}
