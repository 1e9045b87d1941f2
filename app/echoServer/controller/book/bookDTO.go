package book

type CreateBookReq struct {
	Titulo               string  `json:"titulo" validate:"required,max=200"`
	Autor                string  `json:"autor" validate:"required,max=100"`
	ISBN                 string  `json:"isbn" validate:"required,max=13"`
	Editora              string  `json:"editora" validate:"required,max=100"`
	AnoPublicacao        int     `json:"ano_publicacao" validate:"required,gt=0"`
	Edicao               *string `json:"edicao" validate:"omitempty,max=20"`
	QuantidadeTotal      int     `json:"quantidade_total" validate:"required,gt=0"`
	QuantidadeDisponivel int     `json:"quantidade_disponivel" validate:"gte=0"`
	CategoriaID          int64   `json:"categoria_id" validate:"required,gt=0"`
	Localizacao          string  `json:"localizacao" validate:"required,max=50"`
	Sinopse              *string `json:"sinopse"`
	CapaURL              *string `json:"capa_url" validate:"omitempty,url,max=255"`
}
