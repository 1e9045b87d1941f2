// model/fine.go
package model

import "time"

type FineStatus string

const (
	FinePending   FineStatus = "pendente"
	FinePaid      FineStatus = "pago"
	FineCancelled FineStatus = "cancelada"
)

type Fine struct {
	ID          int64      `json:"id" db:"id"`
	LoanID      int64      `json:"emprestimo_id" db:"emprestimo_id"`
	Amount      float64    `json:"valor" db:"valor"`
	GeneratedAt time.Time  `json:"data_geracao" db:"data_geracao"`
	PaidAt      *time.Time `json:"data_pagamento,omitempty" db:"data_pagamento"`
	Status      FineStatus `json:"status" db:"status"`
	Reason      string     `json:"motivo" db:"motivo"`
	DaysLate    int        `json:"dias_atraso" db:"dias_atraso"`
	RatePerDay  float64    `json:"valor_por_dia" db:"valor_por_dia"`
}
