package reservationrepo

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
	Status *model.ReservationStatus
	UserID *int64
	Skip   uint
	Limit  uint
}

// Tx is the view of the store inside one transaction.
type Tx interface {
	BookExists(ctx context.Context, bookID int64) (bool, error)
	User(ctx context.Context, userID int64) (*model.User, error)
	PendingExists(ctx context.Context, userID, bookID int64) (bool, error)
	Insert(ctx context.Context, res *model.Reservation) error
	Status(ctx context.Context, id int64) (model.ReservationStatus, error)
	MarkCancelled(ctx context.Context, id int64) (*model.Reservation, error)
}

type Repo interface {
	InTx(ctx context.Context, fn func(Tx) error) error
	List(ctx context.Context, f Filter) ([]model.Reservation, error)
	ByID(ctx context.Context, id int64) (*model.Reservation, error)
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

func (t *txRepo) BookExists(ctx context.Context, bookID int64) (bool, error) {
	var ok bool
	const q = `SELECT EXISTS (SELECT 1 FROM livros WHERE id = $1)`
	if err := t.tx.QueryRowContext(ctx, q, bookID).Scan(&ok); err != nil {
		return false, errors.Wrap(err, "check livro")
	}
	return ok, nil
}

func (t *txRepo) User(ctx context.Context, userID int64) (*model.User, error) {
	var u model.User
	if err := t.tx.GetContext(ctx, &u, `SELECT * FROM usuarios WHERE id = $1`, userID); err != nil {
		return nil, errors.Wrap(err, "get usuario")
	}
	return &u, nil
}

func (t *txRepo) PendingExists(ctx context.Context, userID, bookID int64) (bool, error) {
	var ok bool
	const q = `
SELECT EXISTS (
	SELECT 1 FROM reservas
	WHERE usuario_id = $1 AND livro_id = $2 AND status = 'pendente'
)`
	if err := t.tx.QueryRowContext(ctx, q, userID, bookID).Scan(&ok); err != nil {
		return false, errors.Wrap(err, "check pending reserva")
	}
	return ok, nil
}

func (t *txRepo) Insert(ctx context.Context, res *model.Reservation) error {
	const q = `
INSERT INTO reservas (usuario_id, livro_id, data_limite, prioridade)
VALUES ($1,$2,$3,$4)
RETURNING id, data_reserva, status`
	err := t.tx.QueryRowContext(ctx, q, res.UserID, res.BookID, res.Deadline, res.Priority).
		Scan(&res.ID, &res.ReservedAt, &res.Status)
	return errors.Wrap(err, "insert reserva")
}

func (t *txRepo) Status(ctx context.Context, id int64) (model.ReservationStatus, error) {
	var status model.ReservationStatus
	const q = `SELECT status FROM reservas WHERE id = $1`
	if err := t.tx.QueryRowContext(ctx, q, id).Scan(&status); err != nil {
		return "", errors.Wrap(err, "get reserva status")
	}
	return status, nil
}

func (t *txRepo) MarkCancelled(ctx context.Context, id int64) (*model.Reservation, error) {
	const q = `
UPDATE reservas
SET status = 'cancelada'
WHERE id = $1
RETURNING *`
	var res model.Reservation
	if err := t.tx.GetContext(ctx, &res, q, id); err != nil {
		return nil, errors.Wrap(err, "mark reserva cancelled")
	}
	return &res, nil
}

func (r *repo) List(ctx context.Context, f Filter) ([]model.Reservation, error) {
	ds := dialect.From("reservas").Select(goqu.Star())
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
		return nil, errors.Wrap(err, "build reserva list query")
	}
	out := []model.Reservation{}
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, errors.Wrap(err, "list reservas")
	}
	return out, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Reservation, error) {
	var res model.Reservation
	if err := r.db.GetContext(ctx, &res, `SELECT * FROM reservas WHERE id = $1`, id); err != nil {
		return nil, errors.Wrap(err, "get reserva")
	}
	return &res, nil
}

func (r *repo) DeleteRow(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reservas WHERE id = $1`, id)
	if err != nil {
		return false, errors.Wrap(err, "delete reserva")
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff > 0, nil
}
