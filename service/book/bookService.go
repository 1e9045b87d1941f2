package booksvc

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/FelipeGehren/projeto-api/model"
	bookrepo "github.com/FelipeGehren/projeto-api/repository/book"
)

var (
	ErrISBNTaken        = errors.New("isbn already registered")
	ErrCategoryNotFound = errors.New("categoria not found")
	ErrBadCounts        = errors.New("quantidade_disponivel must be between 0 and quantidade_total")
	ErrNotFound         = errors.New("livro not found")
)

type CreateInput struct {
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

type Service interface {
	Create(ctx context.Context, in CreateInput) (*model.Book, error)
	List(ctx context.Context, f bookrepo.Filter) ([]model.Book, error)
	Get(ctx context.Context, id int64) (*model.Book, error)
	Update(ctx context.Context, id int64, in CreateInput) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r bookrepo.Repo }

func New(r bookrepo.Repo) Service { return &service{r: r} }

func (s *service) check(ctx context.Context, in CreateInput) error {
	if in.AvailableCopies < 0 || in.AvailableCopies > in.TotalCopies {
		return ErrBadCounts
	}
	ok, err := s.r.CategoryExists(ctx, in.CategoryID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *service) Create(ctx context.Context, in CreateInput) (*model.Book, error) {
	if err := s.check(ctx, in); err != nil {
		return nil, err
	}
	b := &model.Book{
		Title:           in.Title,
		Author:          in.Author,
		ISBN:            in.ISBN,
		Publisher:       in.Publisher,
		PublicationYear: in.PublicationYear,
		Edition:         in.Edition,
		TotalCopies:     in.TotalCopies,
		AvailableCopies: in.AvailableCopies,
		CategoryID:      in.CategoryID,
		Location:        in.Location,
		Synopsis:        in.Synopsis,
		CoverURL:        in.CoverURL,
	}
	if err := s.r.Create(ctx, b); err != nil {
		if derr := mapConstraintErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return b, nil
}

func (s *service) List(ctx context.Context, f bookrepo.Filter) ([]model.Book, error) {
	return s.r.List(ctx, f)
}

func (s *service) Get(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *service) Update(ctx context.Context, id int64, in CreateInput) (*model.Book, error) {
	if err := s.check(ctx, in); err != nil {
		return nil, err
	}
	b, err := s.r.Update(ctx, id, bookrepo.Patch{
		Title:           in.Title,
		Author:          in.Author,
		ISBN:            in.ISBN,
		Publisher:       in.Publisher,
		PublicationYear: in.PublicationYear,
		Edition:         in.Edition,
		TotalCopies:     in.TotalCopies,
		AvailableCopies: in.AvailableCopies,
		CategoryID:      in.CategoryID,
		Location:        in.Location,
		Synopsis:        in.Synopsis,
		CoverURL:        in.CoverURL,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if derr := mapConstraintErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return b, nil
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

func mapConstraintErr(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		if strings.Contains(strings.ToLower(pgErr.ConstraintName), "isbn") ||
			strings.Contains(strings.ToLower(pgErr.Message), "isbn") {
			return ErrISBNTaken
		}
	case pgerrcode.CheckViolation:
		return ErrBadCounts
	case pgerrcode.ForeignKeyViolation:
		return ErrCategoryNotFound
	}
	return nil
}
