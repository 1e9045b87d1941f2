// model/book.go
package model

import "time"

type Book struct {
	ID              int64     `json:"id" db:"id"`
	Title           string    `json:"titulo" db:"titulo"`
	Author          string    `json:"autor" db:"autor"`
	ISBN            string    `json:"isbn" db:"isbn"`
	Publisher       string    `json:"editora" db:"editora"`
	PublicationYear int       `json:"ano_publicacao" db:"ano_publicacao"`
	Edition         *string   `json:"edicao,omitempty" db:"edicao"`
	TotalCopies     int       `json:"quantidade_total" db:"quantidade_total"`
	AvailableCopies int       `json:"quantidade_disponivel" db:"quantidade_disponivel"`
	CategoryID      int64     `json:"categoria_id" db:"categoria_id"`
	Location        string    `json:"localizacao" db:"localizacao"`
	Synopsis        *string   `json:"sinopse,omitempty" db:"sinopse"`
	CoverURL        *string   `json:"capa_url,omitempty" db:"capa_url"`
	CreatedAt       time.Time `json:"data_cadastro" db:"data_cadastro"`
	UpdatedAt       time.Time `json:"data_atualizacao" db:"data_atualizacao"`
}
