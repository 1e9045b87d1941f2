// model/category.go
package model

import "time"

type Category struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"nome" db:"nome"`
	Description *string   `json:"descricao,omitempty" db:"descricao"`
	CreatedAt   time.Time `json:"data_cadastro" db:"data_cadastro"`
	UpdatedAt   time.Time `json:"data_atualizacao" db:"data_atualizacao"`
	Active      bool      `json:"ativo" db:"ativo"`
}
