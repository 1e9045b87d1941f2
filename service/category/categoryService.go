package categorysvc

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/FelipeGehren/projeto-api/model"
	categoryrepo "github.com/FelipeGehren/projeto-api/repository/category"
)

var (
	ErrNameTaken = errors.New("categoria name already registered")
	ErrNotFound  = errors.New("categoria not found")
)

type CreateInput struct {
	Name        string
	Description *string
}

type Service interface {
	Create(ctx context.Context, in CreateInput) (*model.Category, error)
	List(ctx context.Context, skip, limit uint) ([]model.Category, error)
	Get(ctx context.Context, id int64) (*model.Category, error)
	Update(ctx context.Context, id int64, p categoryrepo.Patch) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r categoryrepo.Repo }

func New(r categoryrepo.Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, in CreateInput) (*model.Category, error) {
	c := &model.Category{Name: strings.TrimSpace(in.Name), Description: in.Description}
	if err := s.r.Create(ctx, c); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return c, nil
}

func (s *service) List(ctx context.Context, skip, limit uint) ([]model.Category, error) {
	return s.r.List(ctx, skip, limit)
}

func (s *service) Get(ctx context.Context, id int64) (*model.Category, error) {
	c, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, id int64, p categoryrepo.Patch) (*model.Category, error) {
	c, err := s.r.Update(ctx, id, p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	ok, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
