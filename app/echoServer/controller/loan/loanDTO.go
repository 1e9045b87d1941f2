package loan

import "time"

type CreateLoanReq struct {
	UsuarioID             int64     `json:"usuario_id" validate:"required,gt=0"`
	LivroID               int64     `json:"livro_id" validate:"required,gt=0"`
	FuncionarioID         int64     `json:"funcionario_id" validate:"required,gt=0"`
	DataDevolucaoPrevista time.Time `json:"data_devolucao_prevista" validate:"required"`
	DiasEmprestimo        int       `json:"dias_emprestimo" validate:"omitempty,gt=0"`
	Observacoes           *string   `json:"observacoes" validate:"omitempty,max=500"`
}
