package reservation

import "time"

type CreateReservationReq struct {
	UsuarioID  int64     `json:"usuario_id" validate:"required,gt=0"`
	LivroID    int64     `json:"livro_id" validate:"required,gt=0"`
	DataLimite time.Time `json:"data_limite" validate:"required"`
	Prioridade int       `json:"prioridade" validate:"omitempty,gt=0"`
}
