package models

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Role is the closed set of account roles. Policy code switches on it
// explicitly instead of comparing raw strings.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleAluno       Role = "ALUNO"
	RoleEncarregado Role = "ENCARREGADO"
	RoleMotorista   Role = "MOTORISTA"
)

// ParseRole normalizes and validates a role string coming off the wire.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleAluno:
		return RoleAluno, nil
	case RoleEncarregado:
		return RoleEncarregado, nil
	case RoleMotorista:
		return RoleMotorista, nil
	default:
		return "", errors.New("role invalido")
	}
}

type User struct {
	gorm.Model
	Nome     string `json:"nome"`
	Email    string `json:"email" gorm:"uniqueIndex"`
	Password string `json:"-"`
	Role     Role   `json:"role" gorm:"type:varchar(20);index"`

	IsStaff     bool `json:"is_staff" gorm:"default:false"`
	IsSuperuser bool `json:"is_superuser" gorm:"default:false"`

	// Role-specific profiles; at most one is set, matching Role.
	Encarregado *Encarregado `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"encarregado,omitempty"`
	Aluno       *Aluno       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"aluno,omitempty"`
	Motorista   *Motorista   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"motorista,omitempty"`
}

// BeforeSave normalizes identity fields: email lowercased and trimmed,
// nome title-cased. Runs on every write.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Nome = titleCase(u.Nome)

	errs := FieldErrors{}
	if u.Email == "" {
		errs.Add("email", "o campo de email é obrigatório")
	}
	if u.Nome == "" {
		errs.Add("nome", "o campo de nome é obrigatório")
	}
	if _, err := ParseRole(string(u.Role)); err != nil {
		errs.Add("role", "role inválido")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetPassword hashes and stores the credential. The plaintext is never
// persisted; a password shorter than 8 characters is rejected.
func (u *User) SetPassword(plain string) error {
	if len(plain) < 8 {
		return fieldError("password", "a senha deve conter pelo menos 8 caracteres")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}
