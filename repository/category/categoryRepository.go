package categoryrepo

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/FelipeGehren/projeto-api/model"
)

type Patch struct {
	Name        string
	Description *string
	Active      bool
}

type Repo interface {
	Create(ctx context.Context, c *model.Category) error
	List(ctx context.Context, skip, limit uint) ([]model.Category, error)
	ByID(ctx context.Context, id int64) (*model.Category, error)
	Update(ctx context.Context, id int64, p Patch) (*model.Category, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, c *model.Category) error {
	const q = `
INSERT INTO categorias (nome, descricao)
VALUES ($1,$2)
RETURNING id, data_cadastro, data_atualizacao, ativo`
	err := r.db.QueryRowContext(ctx, q, c.Name, c.Description).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt, &c.Active)
	return errors.Wrap(err, "insert categoria")
}

func (r *repo) List(ctx context.Context, skip, limit uint) ([]model.Category, error) {
	if limit == 0 {
		limit = 100
	}
	const q = `SELECT * FROM categorias ORDER BY id OFFSET $1 LIMIT $2`
	out := []model.Category{}
	if err := r.db.SelectContext(ctx, &out, q, skip, limit); err != nil {
		return nil, errors.Wrap(err, "list categorias")
	}
	return out, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	if err := r.db.GetContext(ctx, &c, `SELECT * FROM categorias WHERE id = $1`, id); err != nil {
		return nil, errors.Wrap(err, "get categoria")
	}
	return &c, nil
}

func (r *repo) Update(ctx context.Context, id int64, p Patch) (*model.Category, error) {
	const q = `
UPDATE categorias
SET nome = $2, descricao = $3, ativo = $4, data_atualizacao = now()
WHERE id = $1
RETURNING *`
	var c model.Category
	if err := r.db.GetContext(ctx, &c, q, id, p.Name, p.Description, p.Active); err != nil {
		return nil, errors.Wrap(err, "update categoria")
	}
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categorias WHERE id = $1`, id)
	if err != nil {
		return false, errors.Wrap(err, "delete categoria")
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff > 0, nil
}
