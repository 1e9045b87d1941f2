package bookrepo

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
	CategoryID *int64
	Skip       uint
	Limit      uint
}

type Patch struct {
	Title           string
	Author          string
	ISBN            string
	Publisher       string
	PublicationYear int
	Edition         *string
	TotalCopies     int
	AvailableCopies int
	CategoryID      int64
	Location        string
	Synopsis        *string
	CoverURL        *string
}

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	List(ctx context.Context, f Filter) ([]model.Book, error)
	ByID(ctx context.Context, id int64) (*model.Book, error)
	Update(ctx context.Context, id int64, p Patch) (*model.Book, error)
	Delete(ctx context.Context, id int64) (bool, error)
	CategoryExists(ctx context.Context, categoryID int64) (bool, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, b *model.Book) error {
	const q = `
INSERT INTO livros (titulo, autor, isbn, editora, ano_publicacao, edicao,
                    quantidade_total, quantidade_disponivel, categoria_id,
                    localizacao, sinopse, capa_url)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
RETURNING id, data_cadastro, data_atualizacao`
	err := r.db.QueryRowContext(ctx, q,
		b.Title, b.Author, b.ISBN, b.Publisher, b.PublicationYear, b.Edition,
		b.TotalCopies, b.AvailableCopies, b.CategoryID,
		b.Location, b.Synopsis, b.CoverURL,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	return errors.Wrap(err, "insert livro")
}

func (r *repo) List(ctx context.Context, f Filter) ([]model.Book, error) {
	ds := dialect.From("livros").Select(goqu.Star())
	if f.CategoryID != nil {
		ds = ds.Where(goqu.C("categoria_id").Eq(*f.CategoryID))
	}
	if f.Limit == 0 {
		f.Limit = 100
	}
	ds = ds.Order(goqu.C("id").Asc()).Offset(f.Skip).Limit(f.Limit)

	q, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build livro list query")
	}
	out := []model.Book{}
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, errors.Wrap(err, "list livros")
	}
	return out, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Book, error) {
	var b model.Book
	if err := r.db.GetContext(ctx, &b, `SELECT * FROM livros WHERE id = $1`, id); err != nil {
		return nil, errors.Wrap(err, "get livro")
	}
	return &b, nil
}

func (r *repo) Update(ctx context.Context, id int64, p Patch) (*model.Book, error) {
	const q = `
UPDATE livros
SET titulo = $2, autor = $3, isbn = $4, editora = $5, ano_publicacao = $6,
    edicao = $7, quantidade_total = $8, quantidade_disponivel = $9,
    categoria_id = $10, localizacao = $11, sinopse = $12, capa_url = $13,
    data_atualizacao = now()
WHERE id = $1
RETURNING *`
	var b model.Book
	err := r.db.GetContext(ctx, &b, q, id,
		p.Title, p.Author, p.ISBN, p.Publisher, p.PublicationYear,
		p.Edition, p.TotalCopies, p.AvailableCopies,
		p.CategoryID, p.Location, p.Synopsis, p.CoverURL)
	if err != nil {
		return nil, errors.Wrap(err, "update livro")
	}
	return &b, nil
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM livros WHERE id = $1`, id)
	if err != nil {
		return false, errors.Wrap(err, "delete livro")
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff > 0, nil
}

func (r *repo) CategoryExists(ctx context.Context, categoryID int64) (bool, error) {
	var ok bool
	const q = `SELECT EXISTS (SELECT 1 FROM categorias WHERE id = $1)`
	if err := r.db.QueryRowContext(ctx, q, categoryID).Scan(&ok); err != nil {
		return false, errors.Wrap(err, "check categoria")
	}
	return ok, nil
}
