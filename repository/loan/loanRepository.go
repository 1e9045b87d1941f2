package loanrepo

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/FelipeGehren/projeto-api/model"
)

var dialect = goqu.Dialect("postgres")

type Filter struct {
	Status *model.LoanStatus
	UserID *int64
	Skip   uint
	Limit  uint
}

// Tx is the view of the store inside one transaction. It covers loan rows plus
// the book availability counter and the user reads the lifecycle rules need,
// so a failed step rolls back every touched row.
type Tx interface {
	BookAvailability(ctx context.Context, bookID int64) (int, error)
	User(ctx context.Context, userID int64) (*model.User, error)
	Insert(ctx context.Context, l *model.Loan) error
	StatusAndBook(ctx context.Context, loanID int64) (model.LoanStatus, int64, error)
	MarkReturned(ctx context.Context, loanID int64) (*model.Loan, error)
	AdjustAvailability(ctx context.Context, bookID int64, delta int) error
	DeleteRow(ctx context.Context, loanID int64) error
}

type Repo interface {
	InTx(ctx context.Context, fn func(Tx) error) error
	List(ctx context.Context, f Filter) ([]model.Loan, error)
	ByID(ctx context.Context, id int64) (*model.Loan, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db} }

func (r *repo) InTx(ctx context.Context, fn func(Tx) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(&txRepo{tx}); err != nil {
		return err
	}
	err = errors.Wrap(tx.Commit(), "commit tx")
	return err
}

type txRepo struct{ tx *sqlx.Tx }

func (t *txRepo) BookAvailability(ctx context.Context, bookID int64) (int, error) {
	var available int
	const q = `SELECT quantidade_disponivel FROM livros WHERE id = $1`
	if err := t.tx.QueryRowContext(ctx, q, bookID).Scan(&available); err != nil {
		return 0, errors.Wrap(err, "get livro availability")
	}
	return available, nil
}

func (t *txRepo) User(ctx context.Context, userID int64) (*model.User, error) {
	var u model.User
	if err := t.tx.GetContext(ctx, &u, `SELECT * FROM usuarios WHERE id = $1`, userID); err != nil {
		return nil, errors.Wrap(err, "get usuario")
	}
	return &u, nil
}

func (t *txRepo) Insert(ctx context.Context, l *model.Loan) error {
	const q = `
INSERT INTO emprestimos (usuario_id, livro_id, funcionario_id, data_devolucao_prevista, observacoes, dias_emprestimo)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id, data_emprestimo, status`
	err := t.tx.QueryRowContext(ctx, q,
		l.UserID, l.BookID, l.StaffID, l.DueAt, l.Notes, l.PeriodDays,
	).Scan(&l.ID, &l.LoanedAt, &l.Status)
	return errors.Wrap(err, "insert emprestimo")
}

func (t *txRepo) StatusAndBook(ctx context.Context, loanID int64) (model.LoanStatus, int64, error) {
	var status model.LoanStatus
	var bookID int64
	const q = `SELECT status, livro_id FROM emprestimos WHERE id = $1`
	if err := t.tx.QueryRowContext(ctx, q, loanID).Scan(&status, &bookID); err != nil {
		return "", 0, errors.Wrap(err, "get emprestimo status")
	}
	return status, bookID, nil
}

func (t *txRepo) MarkReturned(ctx context.Context, loanID int64) (*model.Loan, error) {
	const q = `
UPDATE emprestimos
SET status = 'devolvido', data_devolucao_real = now()
WHERE id = $1
RETURNING *`
	var l model.Loan
	if err := t.tx.GetContext(ctx, &l, q, loanID); err != nil {
		return nil, errors.Wrap(err, "mark emprestimo returned")
	}
	return &l, nil
}

// AdjustAvailability moves the counter by delta. The check_quantidade_disponivel
// constraint rejects a decrement past zero, which is the real guard against two
// concurrent loans taking the last copy.
func (t *txRepo) AdjustAvailability(ctx context.Context, bookID int64, delta int) error {
	const q = `
UPDATE livros
SET quantidade_disponivel = quantidade_disponivel + $2, data_atualizacao = now()
WHERE id = $1`
	_, err := t.tx.ExecContext(ctx, q, bookID, delta)
	return errors.Wrap(err, "adjust livro availability")
}

func (t *txRepo) DeleteRow(ctx context.Context, loanID int64) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM emprestimos WHERE id = $1`, loanID)
	return errors.Wrap(err, "delete emprestimo")
}

func (r *repo) List(ctx context.Context, f Filter) ([]model.Loan, error) {
	ds := dialect.From("emprestimos").Select(goqu.Star())
	if f.Status != nil {
		ds = ds.Where(goqu.C("status").Eq(string(*f.Status)))
	}
	if f.UserID != nil {
		ds = ds.Where(goqu.C("usuario_id").Eq(*f.UserID))
	}
	if f.Limit == 0 {
		f.Limit = 100
	}
	ds = ds.Order(goqu.C("id").Asc()).Offset(f.Skip).Limit(f.Limit)

	q, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build emprestimo list query")
	}
	out := []model.Loan{}
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, errors.Wrap(err, "list emprestimos")
	}
	return out, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Loan, error) {
	var l model.Loan
	if err := r.db.GetContext(ctx, &l, `SELECT * FROM emprestimos WHERE id = $1`, id); err != nil {
		return nil, errors.Wrap(err, "get emprestimo")
	}
	return &l, nil
}
