package fine

type CreateFineReq struct {
	EmprestimoID int64   `json:"emprestimo_id" validate:"required,gt=0"`
	Valor        float64 `json:"valor" validate:"required,gt=0"`
	Motivo       string  `json:"motivo" validate:"required,max=200"`
	DiasAtraso   int     `json:"dias_atraso" validate:"gte=0"`
	ValorPorDia  float64 `json:"valor_por_dia" validate:"gte=0"`
}
