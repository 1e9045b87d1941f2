package userrepo

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/FelipeGehren/projeto-api/model"
)

var dialect = goqu.Dialect("postgres")

// Filter narrows List; nil fields are ignored.
type Filter struct {
	Role   *model.Role
	Active *bool
	Skip   uint
	Limit  uint
}

// Patch enumerates every mutable field for a full update.
type Patch struct {
	FullName     string
	CPF          string
	Phone        string
	Address      string
	Email        string
	Role         model.Role
	Registration *string
	LoanLimit    int
}

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	List(ctx context.Context, f Filter) ([]model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
	Update(ctx context.Context, id int64, p Patch) (*model.User, error)
	SetActive(ctx context.Context, id int64, active bool) (*model.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
	HasLoanOrReservation(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO usuarios (nome_completo, cpf, telefone, endereco, email, tipo, matricula, limite_emprestimos)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING id, data_cadastro, data_atualizacao, ativo`
	err := r.db.QueryRowContext(ctx, q,
		u.FullName, u.CPF, u.Phone, u.Address, u.Email, u.Role, u.Registration, u.LoanLimit,
	).Scan(&u.ID, &u.RegisteredAt, &u.UpdatedAt, &u.Active)
	return errors.Wrap(err, "insert usuario")
}

func (r *repo) List(ctx context.Context, f Filter) ([]model.User, error) {
	ds := dialect.From("usuarios").Select(goqu.Star())
	if f.Role != nil {
		ds = ds.Where(goqu.C("tipo").Eq(string(*f.Role)))
	}
	if f.Active != nil {
		ds = ds.Where(goqu.C("ativo").Eq(*f.Active))
	}
	if f.Limit == 0 {
		f.Limit = 100
	}
	ds = ds.Order(goqu.C("id").Asc()).Offset(f.Skip).Limit(f.Limit)

	q, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build usuario list query")
	}
	out := []model.User{}
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, errors.Wrap(err, "list usuarios")
	}
	return out, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	const q = `SELECT * FROM usuarios WHERE id = $1`
	if err := r.db.GetContext(ctx, &u, q, id); err != nil {
		return nil, errors.Wrap(err, "get usuario")
	}
	return &u, nil
}

func (r *repo) Update(ctx context.Context, id int64, p Patch) (*model.User, error) {
	const q = `
UPDATE usuarios
SET nome_completo = $2, cpf = $3, telefone = $4, endereco = $5, email = $6,
    tipo = $7, matricula = $8, limite_emprestimos = $9, data_atualizacao = now()
WHERE id = $1
RETURNING *`
	var u model.User
	err := r.db.GetContext(ctx, &u, q, id,
		p.FullName, p.CPF, p.Phone, p.Address, p.Email, p.Role, p.Registration, p.LoanLimit)
	if err != nil {
		return nil, errors.Wrap(err, "update usuario")
	}
	return &u, nil
}

func (r *repo) SetActive(ctx context.Context, id int64, active bool) (*model.User, error) {
	const q = `
UPDATE usuarios
SET ativo = $2, data_atualizacao = now()
WHERE id = $1
RETURNING *`
	var u model.User
	if err := r.db.GetContext(ctx, &u, q, id, active); err != nil {
		return nil, errors.Wrap(err, "set usuario status")
	}
	return &u, nil
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return false, errors.Wrap(err, "delete usuario")
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff > 0, nil
}

// HasLoanOrReservation reports whether any loan or reservation row references
// the user, regardless of status.
func (r *repo) HasLoanOrReservation(ctx context.Context, id int64) (bool, error) {
	const q = `
SELECT EXISTS (SELECT 1 FROM emprestimos WHERE usuario_id = $1)
    OR EXISTS (SELECT 1 FROM reservas WHERE usuario_id = $1)`
	var has bool
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&has); err != nil {
		return false, errors.Wrap(err, "check usuario movements")
	}
	return has, nil
}
