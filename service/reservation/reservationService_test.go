package reservationsvc_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/FelipeGehren/projeto-api/model"
	reservationrepo "github.com/FelipeGehren/projeto-api/repository/reservation"
	reservationsvc "github.com/FelipeGehren/projeto-api/service/reservation"
)

type fakeStore struct {
	books        map[int64]bool
	users        map[int64]*model.User
	reservations map[int64]*model.Reservation
	nextID       int64
}

var _ reservationrepo.Repo = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		books:        map[int64]bool{},
		users:        map[int64]*model.User{},
		reservations: map[int64]*model.Reservation{},
		nextID:       1,
	}
}

func (f *fakeStore) InTx(ctx context.Context, fn func(reservationrepo.Tx) error) error {
	return fn(f)
}

func (f *fakeStore) BookExists(ctx context.Context, bookID int64) (bool, error) {
	return f.books[bookID], nil
}

func (f *fakeStore) User(ctx context.Context, userID int64) (*model.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) PendingExists(ctx context.Context, userID, bookID int64) (bool, error) {
	for _, r := range f.reservations {
		if r.UserID == userID && r.BookID == bookID && r.Status == model.ReservationPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Insert(ctx context.Context, res *model.Reservation) error {
	res.ID = f.nextID
	f.nextID++
	res.ReservedAt = time.Now().UTC()
	res.Status = model.ReservationPending
	cp := *res
	f.reservations[res.ID] = &cp
	return nil
}

func (f *fakeStore) Status(ctx context.Context, id int64) (model.ReservationStatus, error) {
	r, ok := f.reservations[id]
	if !ok {
		return "", sql.ErrNoRows
	}
	return r.Status, nil
}

func (f *fakeStore) MarkCancelled(ctx context.Context, id int64) (*model.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	r.Status = model.ReservationCancelled
	cp := *r
	return &cp, nil
}

func (f *fakeStore) List(ctx context.Context, _ reservationrepo.Filter) ([]model.Reservation, error) {
	out := []model.Reservation{}
	for _, r := range f.reservations {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeStore) ByID(ctx context.Context, id int64) (*model.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) DeleteRow(ctx context.Context, id int64) (bool, error) {
	if _, ok := f.reservations[id]; !ok {
		return false, nil
	}
	delete(f.reservations, id)
	return true, nil
}

func seeded() *fakeStore {
	f := newFakeStore()
	f.books[10] = true
	role, reg := model.NewCustomer()
	f.users[1] = &model.User{ID: 1, Role: role, Registration: reg, Active: true}
	f.users[2] = &model.User{ID: 2, Role: role, Registration: reg, Active: false}
	return f
}

func createInput(userID, bookID int64) reservationsvc.CreateInput {
	return reservationsvc.CreateInput{
		UserID:   userID,
		BookID:   bookID,
		Deadline: time.Now().UTC().Add(48 * time.Hour),
		Priority: 1,
	}
}

func TestCreate_Pending(t *testing.T) {
	s := reservationsvc.New(seeded())

	res, err := s.Create(context.Background(), createInput(1, 10))
	require.NoError(t, err)
	require.Equal(t, model.ReservationPending, res.Status)
	require.NotZero(t, res.ID)
}

func TestCreate_BookNotFound(t *testing.T) {
	s := reservationsvc.New(seeded())

	_, err := s.Create(context.Background(), createInput(1, 999))
	require.Equal(t, reservationsvc.ErrBookNotFound, reservationsvc.Code(err))
}

func TestCreate_UserInvalid(t *testing.T) {
	s := reservationsvc.New(seeded())

	for _, uid := range []int64{2, 999} {
		_, err := s.Create(context.Background(), createInput(uid, 10))
		require.Equal(t, reservationsvc.ErrUserInvalid, reservationsvc.Code(err))
	}
}

func TestCreate_DuplicatePending(t *testing.T) {
	f := seeded()
	s := reservationsvc.New(f)
	ctx := context.Background()

	first, err := s.Create(ctx, createInput(1, 10))
	require.NoError(t, err)

	_, err = s.Create(ctx, createInput(1, 10))
	require.Equal(t, reservationsvc.ErrDuplicate, reservationsvc.Code(err))

	// once the first is cancelled the pair is free again
	_, err = s.Cancel(ctx, first.ID)
	require.NoError(t, err)
	_, err = s.Create(ctx, createInput(1, 10))
	require.NoError(t, err)
}

func TestCancel_OnlyPending(t *testing.T) {
	f := seeded()
	s := reservationsvc.New(f)
	ctx := context.Background()

	res, err := s.Create(ctx, createInput(1, 10))
	require.NoError(t, err)

	cancelled, err := s.Cancel(ctx, res.ID)
	require.NoError(t, err)
	require.Equal(t, model.ReservationCancelled, cancelled.Status)

	_, err = s.Cancel(ctx, res.ID)
	require.Equal(t, reservationsvc.ErrNotPending, reservationsvc.Code(err))
}

func TestCancel_NotFound(t *testing.T) {
	s := reservationsvc.New(seeded())
	_, err := s.Cancel(context.Background(), 42)
	require.Equal(t, reservationsvc.ErrNotFound, reservationsvc.Code(err))
}

func TestDelete(t *testing.T) {
	f := seeded()
	s := reservationsvc.New(f)
	ctx := context.Background()

	res, err := s.Create(ctx, createInput(1, 10))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, res.ID))
	require.Equal(t, reservationsvc.ErrNotFound, reservationsvc.Code(s.Delete(ctx, res.ID)))
}
