package finerepo

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
	Status *model.FineStatus
	LoanID *int64
	Skip   uint
	Limit  uint
}

// Tx is the view of the store inside one transaction.
type Tx interface {
	LoanStatus(ctx context.Context, loanID int64) (model.LoanStatus, error)
	PendingExists(ctx context.Context, loanID int64) (bool, error)
	Insert(ctx context.Context, f *model.Fine) error
	Status(ctx context.Context, id int64) (model.FineStatus, error)
	MarkPaid(ctx context.Context, id int64) (*model.Fine, error)
	MarkCancelled(ctx context.Context, id int64) (*model.Fine, error)
}

type Repo interface {
	InTx(ctx context.Context, fn func(Tx) error) error
	List(ctx context.Context, f Filter) ([]model.Fine, error)
	ByID(ctx context.Context, id int64) (*model.Fine, error)
	DeleteRow(ctx context.Context, id int64) (bool, error)
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

func (t *txRepo) LoanStatus(ctx context.Context, loanID int64) (model.LoanStatus, error) {
	var status model.LoanStatus
	const q = `SELECT status FROM emprestimos WHERE id = $1`
	if err := t.tx.QueryRowContext(ctx, q, loanID).Scan(&status); err != nil {
		return "", errors.Wrap(err, "get emprestimo status")
	}
	return status, nil
}

func (t *txRepo) PendingExists(ctx context.Context, loanID int64) (bool, error) {
	var ok bool
	const q = `
SELECT EXISTS (
	SELECT 1 FROM multas WHERE emprestimo_id = $1 AND status = 'pendente'
)`
	if err := t.tx.QueryRowContext(ctx, q, loanID).Scan(&ok); err != nil {
		return false, errors.Wrap(err, "check pending multa")
	}
	return ok, nil
}

func (t *txRepo) Insert(ctx context.Context, f *model.Fine) error {
	const q = `
INSERT INTO multas (emprestimo_id, valor, motivo, dias_atraso, valor_por_dia)
VALUES ($1,$2,$3,$4,$5)
RETURNING id, data_geracao, status`
	err := t.tx.QueryRowContext(ctx, q, f.LoanID, f.Amount, f.Reason, f.DaysLate, f.RatePerDay).
		Scan(&f.ID, &f.GeneratedAt, &f.Status)
	return errors.Wrap(err, "insert multa")
}

func (t *txRepo) Status(ctx context.Context, id int64) (model.FineStatus, error) {
	var status model.FineStatus
	const q = `SELECT status FROM multas WHERE id = $1`
	if err := t.tx.QueryRowContext(ctx, q, id).Scan(&status); err != nil {
		return "", errors.Wrap(err, "get multa status")
	}
	return status, nil
}

func (t *txRepo) MarkPaid(ctx context.Context, id int64) (*model.Fine, error) {
	const q = `
UPDATE multas
SET status = 'pago', data_pagamento = now()
WHERE id = $1
RETURNING *`
	var f model.Fine
	if err := t.tx.GetContext(ctx, &f, q, id); err != nil {
		return nil, errors.Wrap(err, "mark multa paid")
	}
	return &f, nil
}

func (t *txRepo) MarkCancelled(ctx context.Context, id int64) (*model.Fine, error) {
	const q = `
UPDATE multas
SET status = 'cancelada'
WHERE id = $1
RETURNING *`
	var f model.Fine
	if err := t.tx.GetContext(ctx, &f, q, id); err != nil {
		return nil, errors.Wrap(err, "mark multa cancelled")
	}
	return &f, nil
}

func (r *repo) List(ctx context.Context, f Filter) ([]model.Fine, error) {
	ds := dialect.From("multas").Select(goqu.Star())
	if f.Status != nil {
		ds = ds.Where(goqu.C("status").Eq(string(*f.Status)))
	}
	if f.LoanID != nil {
		ds = ds.Where(goqu.C("emprestimo_id").Eq(*f.LoanID))
	}
	if f.Limit == 0 {
		f.Limit = 100
	}
	ds = ds.Order(goqu.C("id").Asc()).Offset(f.Skip).Limit(f.Limit)

	q, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build multa list query")
	}
	out := []model.Fine{}
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, errors.Wrap(err, "list multas")
	}
	return out, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Fine, error) {
	var f model.Fine
	if err := r.db.GetContext(ctx, &f, `SELECT * FROM multas WHERE id = $1`, id); err != nil {
		return nil, errors.Wrap(err, "get multa")
	}
	return &f, nil
}

func (r *repo) DeleteRow(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM multas WHERE id = $1`, id)
	if err != nil {
		return false, errors.Wrap(err, "delete multa")
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff > 0, nil
}
