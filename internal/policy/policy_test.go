package policy

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Helton-Amalique/school-bus-app-api/internal/models"
)

var seq int

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
		&models.User{}, &models.Encarregado{}, &models.Aluno{}, &models.Motorista{},
		&models.Veiculo{}, &models.Rota{}, &models.Manutencao{}, &models.TransporteAluno{},
	)
	if err != nil {
		t.Fatalf("migrating test db: %v", err)
	}
	return db
}

func novoUser(t *testing.T, db *gorm.DB, role models.Role) models.User {
	t.Helper()
	seq++
	user := models.User{
		Nome:     "Utilizador Teste",
		Email:    fmt.Sprintf("policy%d@teste.co.mz", seq),
		Password: "hash-irrelevante",
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("creating user: %v", err)
	}
	return user
}

func novoEncarregado(t *testing.T, db *gorm.DB) models.Encarregado {
	t.Helper()
	user := novoUser(t, db, models.RoleEncarregado)
	seq++
	encarregado := models.Encarregado{UserID: user.ID, NrBI: fmt.Sprintf("%012dB", seq), Ativo: true}
	if err := db.Create(&encarregado).Error; err != nil {
		t.Fatalf("creating encarregado: %v", err)
	}
	return encarregado
}

func novoAluno(t *testing.T, db *gorm.DB, encarregadoID uint) models.Aluno {
	t.Helper()
	user := novoUser(t, db, models.RoleAluno)
	seq++
	aluno := models.Aluno{
		UserID:         user.ID,
		EncarregadoID:  encarregadoID,
		DataNascimento: time.Now().AddDate(-9, 0, 0),
		NrBI:           fmt.Sprintf("%012dB", seq),
		EscolaDest:     "Escola Primária",
		Classe:         "4a",
		Ativo:          true,
	}
	if err := db.Create(&aluno).Error; err != nil {
		t.Fatalf("creating aluno: %v", err)
	}
	return aluno
}

func novoMotorista(t *testing.T, db *gorm.DB) models.Motorista {
	t.Helper()
	user := novoUser(t, db, models.RoleMotorista)
	seq++
	motorista := models.Motorista{
		UserID:          user.ID,
		DataNascimento:  time.Now().AddDate(-35, 0, 0),
		NrBI:            fmt.Sprintf("%012dB", seq),
		CartaConducao:   fmt.Sprintf("%09d", seq),
		ValidadeDaCarta: time.Now().AddDate(2, 0, 0),
		Salario:         18000,
		Ativo:           true,
	}
	if err := db.Create(&motorista).Error; err != nil {
		t.Fatalf("creating motorista: %v", err)
	}
	return motorista
}

func novaRotaCom(t *testing.T, db *gorm.DB, motoristaID uint, alunos []models.Aluno) models.Rota {
	t.Helper()
	seq++
	veiculo := models.Veiculo{
		Marca:       "Toyota",
		Modelo:      "Coaster",
		Matricula:   fmt.Sprintf("ABD-%03d-MC", seq%1000),
		Capacidade:  20,
		MotoristaID: &motoristaID,
		Ativo:       true,
	}
	if err := db.Create(&veiculo).Error; err != nil {
		t.Fatalf("creating veiculo: %v", err)
	}
	rota := models.Rota{
		Nome:        fmt.Sprintf("Rota Bairro %d", seq),
		VeiculoID:   veiculo.ID,
		HoraPartida: "05:30",
		HoraChegada: "07:10",
		Alunos:      alunos,
		Ativo:       true,
	}
	if err := db.Create(&rota).Error; err != nil {
		t.Fatalf("creating rota: %v", err)
	}
	return rota
}

func TestFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("claims completos", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set("user_id", float64(7))
		c.Set("role", "ENCARREGADO")
		p, ok := FromContext(c)
		if !ok {
			t.Fatal("expected principal")
		}
		if p.UserID != 7 || p.Role != models.RoleEncarregado {
			t.Errorf("got %+v", p)
		}
	})

	t.Run("role desconhecido", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set("user_id", float64(7))
		c.Set("role", "SUPERVISOR")
		if _, ok := FromContext(c); ok {
			t.Fatal("unknown role must not authenticate")
		}
	})

	t.Run("sem claims", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		if _, ok := FromContext(c); ok {
			t.Fatal("empty context must not authenticate")
		}
	})
}

func TestAlunoScope(t *testing.T) {
	db := openTestDB(t)

	encA := novoEncarregado(t, db)
	encB := novoEncarregado(t, db)
	alunoA1 := novoAluno(t, db, encA.ID)
	alunoA2 := novoAluno(t, db, encA.ID)
	alunoB := novoAluno(t, db, encB.ID)

	listar := func(p Principal) []uint {
		t.Helper()
		var alunos []models.Aluno
		if err := AlunoScope(db, p).Find(&alunos).Error; err != nil {
			t.Fatalf("listing alunos: %v", err)
		}
		ids := make([]uint, 0, len(alunos))
		for _, a := range alunos {
			ids = append(ids, a.ID)
		}
		return ids
	}

	admin := Principal{UserID: 999, Role: models.RoleAdmin}
	if got := listar(admin); len(got) != 3 {
		t.Errorf("admin sees %d alunos, want 3", len(got))
	}

	guardiaoA := Principal{UserID: encA.UserID, Role: models.RoleEncarregado}
	got := listar(guardiaoA)
	if len(got) != 2 {
		t.Fatalf("guardian A sees %v, want exactly their 2 dependants", got)
	}
	for _, id := range got {
		if id == alunoB.ID {
			t.Errorf("guardian A must not see guardian B's dependant")
		}
	}

	proprio := Principal{UserID: alunoA1.UserID, Role: models.RoleAluno}
	if got := listar(proprio); len(got) != 1 || got[0] != alunoA1.ID {
		t.Errorf("student sees %v, want only themselves (%d)", got, alunoA1.ID)
	}
	_ = alunoA2

	motorista := Principal{UserID: 1, Role: models.RoleMotorista}
	if got := listar(motorista); len(got) != 0 {
		t.Errorf("driver sees %v alunos, want none", got)
	}
}

func TestVeiculoERotaScopes(t *testing.T) {
	db := openTestDB(t)

	motA := novoMotorista(t, db)
	motB := novoMotorista(t, db)
	rotaA := novaRotaCom(t, db, motA.ID, nil)
	novaRotaCom(t, db, motB.ID, nil)

	pA := Principal{UserID: motA.UserID, Role: models.RoleMotorista}

	var veiculos []models.Veiculo
	if err := VeiculoScope(db, pA).Find(&veiculos).Error; err != nil {
		t.Fatalf("listing veiculos: %v", err)
	}
	if len(veiculos) != 1 || veiculos[0].ID != rotaA.VeiculoID {
		t.Errorf("driver A sees veiculos %v, want only their own", veiculos)
	}

	var rotas []models.Rota
	if err := RotaScope(db, pA).Find(&rotas).Error; err != nil {
		t.Fatalf("listing rotas: %v", err)
	}
	if len(rotas) != 1 || rotas[0].ID != rotaA.ID {
		t.Errorf("driver A sees rotas %v, want only their own", rotas)
	}

	guardiao := Principal{UserID: 1, Role: models.RoleEncarregado}
	var nenhuma []models.Rota
	if err := RotaScope(db, guardiao).Find(&nenhuma).Error; err != nil {
		t.Fatalf("listing rotas as guardian: %v", err)
	}
	if len(nenhuma) != 0 {
		t.Errorf("guardian sees %d rotas, want none", len(nenhuma))
	}
}

func TestTransporteScope(t *testing.T) {
	db := openTestDB(t)

	encA := novoEncarregado(t, db)
	encB := novoEncarregado(t, db)
	alunoA := novoAluno(t, db, encA.ID)
	alunoB := novoAluno(t, db, encB.ID)

	motA := novoMotorista(t, db)
	motB := novoMotorista(t, db)
	rotaA := novaRotaCom(t, db, motA.ID, []models.Aluno{alunoA})
	rotaB := novaRotaCom(t, db, motB.ID, []models.Aluno{alunoB})

	registroA := models.TransporteAluno{AlunoID: alunoA.ID, RotaID: rotaA.ID}
	registroB := models.TransporteAluno{AlunoID: alunoB.ID, RotaID: rotaB.ID}
	if err := db.Create(&registroA).Error; err != nil {
		t.Fatalf("creating check-in A: %v", err)
	}
	if err := db.Create(&registroB).Error; err != nil {
		t.Fatalf("creating check-in B: %v", err)
	}

	listar := func(p Principal) []uint {
		t.Helper()
		var registros []models.TransporteAluno
		if err := TransporteScope(db, p).Find(&registros).Error; err != nil {
			t.Fatalf("listing check-ins: %v", err)
		}
		ids := make([]uint, 0, len(registros))
		for _, r := range registros {
			ids = append(ids, r.ID)
		}
		return ids
	}

	if got := listar(Principal{UserID: 999, Role: models.RoleAdmin}); len(got) != 2 {
		t.Errorf("admin sees %d check-ins, want 2", len(got))
	}
	if got := listar(Principal{UserID: motA.UserID, Role: models.RoleMotorista}); len(got) != 1 || got[0] != registroA.ID {
		t.Errorf("driver A sees %v, want only their route's check-in", got)
	}
	if got := listar(Principal{UserID: encB.UserID, Role: models.RoleEncarregado}); len(got) != 1 || got[0] != registroB.ID {
		t.Errorf("guardian B sees %v, want only their dependant's check-in", got)
	}
	if got := listar(Principal{UserID: alunoA.UserID, Role: models.RoleAluno}); len(got) != 1 || got[0] != registroA.ID {
		t.Errorf("student A sees %v, want only their own check-in", got)
	}
}

func TestPodeAtualizarCheckIn(t *testing.T) {
	db := openTestDB(t)

	enc := novoEncarregado(t, db)
	aluno := novoAluno(t, db, enc.ID)
	motA := novoMotorista(t, db)
	motB := novoMotorista(t, db)
	rota := novaRotaCom(t, db, motA.ID, []models.Aluno{aluno})
	novaRotaCom(t, db, motB.ID, nil)

	registro := models.TransporteAluno{AlunoID: aluno.ID, RotaID: rota.ID}
	if err := db.Create(&registro).Error; err != nil {
		t.Fatalf("creating check-in: %v", err)
	}

	tests := []struct {
		name string
		p    Principal
		want bool
	}{
		{"admin", Principal{UserID: 999, Role: models.RoleAdmin}, true},
		{"motorista da rota", Principal{UserID: motA.UserID, Role: models.RoleMotorista}, true},
		{"outro motorista", Principal{UserID: motB.UserID, Role: models.RoleMotorista}, false},
		{"encarregado", Principal{UserID: enc.UserID, Role: models.RoleEncarregado}, false},
		{"proprio aluno", Principal{UserID: aluno.UserID, Role: models.RoleAluno}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := PodeAtualizarCheckIn(db, tt.p, &registro)
			if err != nil {
				t.Fatalf("PodeAtualizarCheckIn: %v", err)
			}
			if ok != tt.want {
				t.Errorf("got %v, want %v", ok, tt.want)
			}
		})
	}
}
