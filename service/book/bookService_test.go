package booksvc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/FelipeGehren/projeto-api/model"
	bookrepo "github.com/FelipeGehren/projeto-api/repository/book"
	booksvc "github.com/FelipeGehren/projeto-api/service/book"
)

type repoMock struct {
	createFn   func(ctx context.Context, b *model.Book) error
	listFn     func(ctx context.Context, f bookrepo.Filter) ([]model.Book, error)
	byIDFn     func(ctx context.Context, id int64) (*model.Book, error)
	updateFn   func(ctx context.Context, id int64, p bookrepo.Patch) (*model.Book, error)
	deleteFn   func(ctx context.Context, id int64) (bool, error)
	categoryFn func(ctx context.Context, categoryID int64) (bool, error)
}

var _ bookrepo.Repo = (*repoMock)(nil)

func (m *repoMock) Create(ctx context.Context, b *model.Book) error { return m.createFn(ctx, b) }
func (m *repoMock) List(ctx context.Context, f bookrepo.Filter) ([]model.Book, error) {
	return m.listFn(ctx, f)
}
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Book, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) Update(ctx context.Context, id int64, p bookrepo.Patch) (*model.Book, error) {
	return m.updateFn(ctx, id, p)
}
func (m *repoMock) Delete(ctx context.Context, id int64) (bool, error) { return m.deleteFn(ctx, id) }
func (m *repoMock) CategoryExists(ctx context.Context, categoryID int64) (bool, error) {
	return m.categoryFn(ctx, categoryID)
}

func input() booksvc.CreateInput {
	return booksvc.CreateInput{
		Title:           "Dom Casmurro",
		Author:          "Machado de Assis",
		ISBN:            "9788535910663",
		Publisher:       "Companhia das Letras",
		PublicationYear: 1899,
		TotalCopies:     3,
		AvailableCopies: 3,
		CategoryID:      1,
		Location:        "Prateleira A-1",
	}
}

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		categoryFn: func(ctx context.Context, id int64) (bool, error) { return true, nil },
		createFn: func(ctx context.Context, b *model.Book) error {
			b.ID = 7
			return nil
		},
	}
	s := booksvc.New(m)

	b, err := s.Create(context.Background(), input())
	require.NoError(t, err)
	require.Equal(t, int64(7), b.ID)
	require.Equal(t, 3, b.AvailableCopies)
}

func TestCreate_CategoryNotFound(t *testing.T) {
	m := &repoMock{
		categoryFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
	}
	s := booksvc.New(m)

	_, err := s.Create(context.Background(), input())
	require.ErrorIs(t, err, booksvc.ErrCategoryNotFound)
}

func TestCreate_BadCounts(t *testing.T) {
	s := booksvc.New(&repoMock{
		categoryFn: func(ctx context.Context, id int64) (bool, error) { return true, nil },
	})

	in := input()
	in.AvailableCopies = 4 // above total
	_, err := s.Create(context.Background(), in)
	require.ErrorIs(t, err, booksvc.ErrBadCounts)

	in = input()
	in.AvailableCopies = -1
	_, err = s.Create(context.Background(), in)
	require.ErrorIs(t, err, booksvc.ErrBadCounts)
}

func TestDelete_NotFound(t *testing.T) {
	s := booksvc.New(&repoMock{
		deleteFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
	})
	require.ErrorIs(t, s.Delete(context.Background(), 99), booksvc.ErrNotFound)
}
