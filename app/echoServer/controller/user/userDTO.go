package user

type CreateUserReq struct {
	NomeCompleto      string  `json:"nome_completo" validate:"required,max=100"`
	CPF               string  `json:"cpf" validate:"required,cpf"`
	Telefone          string  `json:"telefone" validate:"required,telefone"`
	Endereco          string  `json:"endereco" validate:"required,max=200"`
	Email             string  `json:"email" validate:"required,email,max=100"`
	Tipo              string  `json:"tipo" validate:"required,oneof=cliente funcionario administrador"`
	Matricula         *string `json:"matricula" validate:"omitempty,max=20"`
	LimiteEmprestimos int     `json:"limite_emprestimos" validate:"omitempty,gt=0"`
}

type SetStatusReq struct {
	Ativo *bool `json:"ativo" validate:"required"`
}
