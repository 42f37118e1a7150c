// Package policy holds the role-scoped predicates and query filters that
// decide what each authenticated principal may see and touch.
package policy

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Helton-Amalique/school-bus-app-api/internal/models"
)

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID uint
	Role   models.Role
}

// FromContext rebuilds the principal from the JWT claims stored by the
// auth middleware.
func FromContext(c *gin.Context) (Principal, bool) {
	idVal, ok := c.Get("user_id")
	if !ok {
		return Principal{}, false
	}
	id, ok := idVal.(float64)
	if !ok {
		return Principal{}, false
	}
	roleVal, ok := c.Get("role")
	if !ok {
		return Principal{}, false
	}
	roleStr, ok := roleVal.(string)
	if !ok {
		return Principal{}, false
	}
	role, err := models.ParseRole(roleStr)
	if err != nil {
		return Principal{}, false
	}
	return Principal{UserID: uint(id), Role: role}, true
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// nada is the empty scope: a query matching no rows.
func nada(db *gorm.DB) *gorm.DB {
	return db.Where("1 = 0")
}

// AlunoScope filters students: admins see all, guardians their own
// dependants, students only themselves.
func AlunoScope(db *gorm.DB, p Principal) *gorm.DB {
	switch p.Role {
	case models.RoleAdmin:
		return db
	case models.RoleEncarregado:
		return db.Joins("JOIN encarregados ON encarregados.id = alunos.encarregado_id").
			Where("encarregados.user_id = ?", p.UserID)
	case models.RoleAluno:
		return db.Where("alunos.user_id = ?", p.UserID)
	default:
		return nada(db)
	}
}

func EncarregadoScope(db *gorm.DB, p Principal) *gorm.DB {
	switch p.Role {
	case models.RoleAdmin:
		return db
	case models.RoleEncarregado:
		return db.Where("encarregados.user_id = ?", p.UserID)
	default:
		return nada(db)
	}
}

func MotoristaScope(db *gorm.DB, p Principal) *gorm.DB {
	switch p.Role {
	case models.RoleAdmin:
		return db
	case models.RoleMotorista:
		return db.Where("motoristas.user_id = ?", p.UserID)
	default:
		return nada(db)
	}
}

// VeiculoScope: admins see all, drivers the vehicles assigned to them.
func VeiculoScope(db *gorm.DB, p Principal) *gorm.DB {
	switch p.Role {
	case models.RoleAdmin:
		return db
	case models.RoleMotorista:
		return db.Joins("JOIN motoristas ON motoristas.id = veiculos.motorista_id").
			Where("motoristas.user_id = ?", p.UserID)
	default:
		return nada(db)
	}
}

// RotaScope: admins see all, drivers the routes of their own vehicles.
func RotaScope(db *gorm.DB, p Principal) *gorm.DB {
	switch p.Role {
	case models.RoleAdmin:
		return db
	case models.RoleMotorista:
		return db.Joins("JOIN veiculos ON veiculos.id = rotas.veiculo_id").
			Joins("JOIN motoristas ON motoristas.id = veiculos.motorista_id").
			Where("motoristas.user_id = ?", p.UserID)
	default:
		return nada(db)
	}
}

// TransporteScope: admins see all, drivers the check-ins on their own
// routes, guardians the check-ins of their dependants, students their own.
func TransporteScope(db *gorm.DB, p Principal) *gorm.DB {
	switch p.Role {
	case models.RoleAdmin:
		return db
	case models.RoleMotorista:
		return db.Joins("JOIN rotas ON rotas.id = transporte_alunos.rota_id").
			Joins("JOIN veiculos ON veiculos.id = rotas.veiculo_id").
			Joins("JOIN motoristas ON motoristas.id = veiculos.motorista_id").
			Where("motoristas.user_id = ?", p.UserID)
	case models.RoleEncarregado:
		return db.Joins("JOIN alunos ON alunos.id = transporte_alunos.aluno_id").
			Joins("JOIN encarregados ON encarregados.id = alunos.encarregado_id").
			Where("encarregados.user_id = ?", p.UserID)
	case models.RoleAluno:
		return db.Joins("JOIN alunos ON alunos.id = transporte_alunos.aluno_id").
			Where("alunos.user_id = ?", p.UserID)
	default:
		return nada(db)
	}
}

// PodeAtualizarCheckIn: check-in status updates are allowed to admins and
// to the driver assigned to the route's vehicle.
func PodeAtualizarCheckIn(db *gorm.DB, p Principal, registro *models.TransporteAluno) (bool, error) {
	if p.IsAdmin() {
		return true, nil
	}
	if p.Role != models.RoleMotorista {
		return false, nil
	}
	var total int64
	err := db.Model(&models.Rota{}).
		Joins("JOIN veiculos ON veiculos.id = rotas.veiculo_id").
		Joins("JOIN motoristas ON motoristas.id = veiculos.motorista_id").
		Where("rotas.id = ? AND motoristas.user_id = ?", registro.RotaID, p.UserID).
		Count(&total).Error
	return total > 0, err
}
