// model/loan.go
package model

import "time"

type LoanStatus string

const (
	LoanActive   LoanStatus = "ativo"
	LoanReturned LoanStatus = "devolvido"
	LoanOverdue  LoanStatus = "atrasado"
	LoanLost     LoanStatus = "perdido"
)

// LoanOverdue and LoanLost exist in the schema but no code path sets them;
// they are reached only by external data fixes.

type Loan struct {
	ID         int64      `json:"id" db:"id"`
	UserID     int64      `json:"usuario_id" db:"usuario_id"`
	BookID     int64      `json:"livro_id" db:"livro_id"`
	StaffID    int64      `json:"funcionario_id" db:"funcionario_id"`
	LoanedAt   time.Time  `json:"data_emprestimo" db:"data_emprestimo"`
	DueAt      time.Time  `json:"data_devolucao_prevista" db:"data_devolucao_prevista"`
	ReturnedAt *time.Time `json:"data_devolucao_real,omitempty" db:"data_devolucao_real"`
	Status     LoanStatus `json:"status" db:"status"`
	Notes      *string    `json:"observacoes,omitempty" db:"observacoes"`
	PeriodDays int        `json:"dias_emprestimo" db:"dias_emprestimo"`
}
