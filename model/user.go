// model/user.go
package model

import "time"

type Role string

const (
	RoleCustomer Role = "cliente"
	RoleStaff    Role = "funcionario"
	RoleAdmin    Role = "administrador"
)

// RequiresRegistration reports whether the role must carry a matricula.
func (r Role) RequiresRegistration() bool { return r == RoleStaff }

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int64      `json:"id" db:"id"`
	FullName     string     `json:"nome_completo" db:"nome_completo"`
	CPF          string     `json:"cpf" db:"cpf"`
	Phone        string     `json:"telefone" db:"telefone"`
	Address      string     `json:"endereco" db:"endereco"`
	Email        string     `json:"email" db:"email"`
	Role         Role       `json:"tipo" db:"tipo"`
	Registration *string    `json:"matricula,omitempty" db:"matricula"`
	LoanLimit    int        `json:"limite_emprestimos" db:"limite_emprestimos"`
	RegisteredAt time.Time  `json:"data_cadastro" db:"data_cadastro"`
	UpdatedAt    time.Time  `json:"data_atualizacao" db:"data_atualizacao"`
	Active       bool       `json:"ativo" db:"ativo"`
}

// Role is a tagged variant: matricula exists exactly when tipo=funcionario.
// The constructors below are the only way to build a consistent pairing;
// ValidateRegistration re-checks it for data coming off the wire.

func NewCustomer() (Role, *string)      { return RoleCustomer, nil }
func NewAdministrator() (Role, *string) { return RoleAdmin, nil }
func NewStaff(registration string) (Role, *string) {
	return RoleStaff, &registration
}

// ValidateRegistration enforces tipo=funcionario <=> matricula present.
func ValidateRegistration(role Role, registration *string) bool {
	if role.RequiresRegistration() {
		return registration != nil && *registration != ""
	}
	return registration == nil || *registration == ""
}
