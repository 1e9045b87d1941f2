package loansvc_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/FelipeGehren/projeto-api/model"
	loanrepo "github.com/FelipeGehren/projeto-api/repository/loan"
	loansvc "github.com/FelipeGehren/projeto-api/service/loan"
)

// fakeStore keeps books, users and loans in memory and snapshots itself at
// the start of every transaction, so a failed operation leaves no partial
// mutation behind, matching the rollback behavior of the real store.

type bookRow struct {
	total     int
	available int
}

type fakeStore struct {
	books  map[int64]*bookRow
	users  map[int64]*model.User
	loans  map[int64]*model.Loan
	nextID int64
}

var _ loanrepo.Repo = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		books:  map[int64]*bookRow{},
		users:  map[int64]*model.User{},
		loans:  map[int64]*model.Loan{},
		nextID: 1,
	}
}

func (f *fakeStore) snapshot() *fakeStore {
	c := newFakeStore()
	c.nextID = f.nextID
	for id, b := range f.books {
		cp := *b
		c.books[id] = &cp
	}
	for id, u := range f.users {
		cp := *u
		c.users[id] = &cp
	}
	for id, l := range f.loans {
		cp := *l
		c.loans[id] = &cp
	}
	return c
}

func (f *fakeStore) restore(s *fakeStore) {
	f.books, f.users, f.loans, f.nextID = s.books, s.users, s.loans, s.nextID
}

func (f *fakeStore) InTx(ctx context.Context, fn func(loanrepo.Tx) error) error {
	before := f.snapshot()
	if err := fn(f); err != nil {
		f.restore(before)
		return err
	}
	return nil
}

func (f *fakeStore) BookAvailability(ctx context.Context, bookID int64) (int, error) {
	b, ok := f.books[bookID]
	if !ok {
		return 0, sql.ErrNoRows
	}
	return b.available, nil
}

func (f *fakeStore) User(ctx context.Context, userID int64) (*model.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) Insert(ctx context.Context, l *model.Loan) error {
	l.ID = f.nextID
	f.nextID++
	l.LoanedAt = time.Now().UTC()
	l.Status = model.LoanActive
	cp := *l
	f.loans[l.ID] = &cp
	return nil
}

func (f *fakeStore) StatusAndBook(ctx context.Context, loanID int64) (model.LoanStatus, int64, error) {
	l, ok := f.loans[loanID]
	if !ok {
		return "", 0, sql.ErrNoRows
	}
	return l.Status, l.BookID, nil
}

func (f *fakeStore) MarkReturned(ctx context.Context, loanID int64) (*model.Loan, error) {
	l, ok := f.loans[loanID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	now := time.Now().UTC()
	l.Status = model.LoanReturned
	l.ReturnedAt = &now
	cp := *l
	return &cp, nil
}

func (f *fakeStore) AdjustAvailability(ctx context.Context, bookID int64, delta int) error {
	b, ok := f.books[bookID]
	if !ok {
		return sql.ErrNoRows
	}
	b.available += delta
	return nil
}

func (f *fakeStore) DeleteRow(ctx context.Context, loanID int64) error {
	delete(f.loans, loanID)
	return nil
}

func (f *fakeStore) List(ctx context.Context, _ loanrepo.Filter) ([]model.Loan, error) {
	out := []model.Loan{}
	for _, l := range f.loans {
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeStore) ByID(ctx context.Context, id int64) (*model.Loan, error) {
	l, ok := f.loans[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *l
	return &cp, nil
}

// --- fixtures ---

const (
	borrowerID = int64(1)
	staffID    = int64(2)
	inactiveID = int64(3)
	bookID     = int64(10)
)

func seeded(available, total int) *fakeStore {
	f := newFakeStore()
	f.books[bookID] = &bookRow{total: total, available: available}
	role, reg := model.NewCustomer()
	f.users[borrowerID] = &model.User{ID: borrowerID, Role: role, Registration: reg, Active: true}
	role, reg = model.NewStaff("F-001")
	f.users[staffID] = &model.User{ID: staffID, Role: role, Registration: reg, Active: true}
	role, reg = model.NewCustomer()
	f.users[inactiveID] = &model.User{ID: inactiveID, Role: role, Registration: reg, Active: false}
	return f
}

func createInput(userID int64) loansvc.CreateInput {
	return loansvc.CreateInput{
		UserID:     userID,
		BookID:     bookID,
		StaffID:    staffID,
		DueAt:      time.Now().UTC().Add(15 * 24 * time.Hour),
		PeriodDays: 15,
	}
}

// --- tests ---

func TestCreate_DecrementsAvailability(t *testing.T) {
	f := seeded(2, 3)
	s := loansvc.New(f)

	l, err := s.Create(context.Background(), createInput(borrowerID))
	require.NoError(t, err)
	require.Equal(t, model.LoanActive, l.Status)
	require.NotZero(t, l.ID)
	require.Equal(t, 1, f.books[bookID].available)
}

func TestCreate_BookUnavailable(t *testing.T) {
	f := seeded(0, 3)
	s := loansvc.New(f)

	_, err := s.Create(context.Background(), createInput(borrowerID))
	require.Error(t, err)
	require.Equal(t, loansvc.ErrBookUnavailable, loansvc.Code(err))
	require.Equal(t, 0, f.books[bookID].available)
	require.Empty(t, f.loans)
}

func TestCreate_BookMissing(t *testing.T) {
	f := seeded(1, 1)
	s := loansvc.New(f)

	in := createInput(borrowerID)
	in.BookID = 999
	_, err := s.Create(context.Background(), in)
	require.Equal(t, loansvc.ErrBookUnavailable, loansvc.Code(err))
}

func TestCreate_BorrowerInvalid(t *testing.T) {
	f := seeded(1, 1)
	s := loansvc.New(f)

	for _, uid := range []int64{inactiveID, 999} {
		_, err := s.Create(context.Background(), createInput(uid))
		require.Equal(t, loansvc.ErrBorrowerInvalid, loansvc.Code(err))
	}
	require.Equal(t, 1, f.books[bookID].available)
	require.Empty(t, f.loans)
}

func TestCreate_StaffInvalid(t *testing.T) {
	f := seeded(1, 1)
	s := loansvc.New(f)

	in := createInput(borrowerID)
	in.StaffID = borrowerID // cliente, not funcionario
	_, err := s.Create(context.Background(), in)
	require.Equal(t, loansvc.ErrStaffInvalid, loansvc.Code(err))

	in.StaffID = 999
	_, err = s.Create(context.Background(), in)
	require.Equal(t, loansvc.ErrStaffInvalid, loansvc.Code(err))

	require.Equal(t, 1, f.books[bookID].available)
	require.Empty(t, f.loans)
}

func TestReturn_IncrementsOnce(t *testing.T) {
	f := seeded(1, 1)
	s := loansvc.New(f)

	l, err := s.Create(context.Background(), createInput(borrowerID))
	require.NoError(t, err)
	require.Equal(t, 0, f.books[bookID].available)

	returned, err := s.Return(context.Background(), l.ID)
	require.NoError(t, err)
	require.Equal(t, model.LoanReturned, returned.Status)
	require.NotNil(t, returned.ReturnedAt)
	require.Equal(t, 1, f.books[bookID].available)

	// second return must fail without touching the counter
	_, err = s.Return(context.Background(), l.ID)
	require.Equal(t, loansvc.ErrNotActive, loansvc.Code(err))
	require.Equal(t, 1, f.books[bookID].available)
}

func TestReturn_NotFound(t *testing.T) {
	s := loansvc.New(seeded(1, 1))
	_, err := s.Return(context.Background(), 42)
	require.Equal(t, loansvc.ErrNotFound, loansvc.Code(err))
}

func TestDelete_ActiveReleasesCopy(t *testing.T) {
	f := seeded(1, 1)
	s := loansvc.New(f)

	l, err := s.Create(context.Background(), createInput(borrowerID))
	require.NoError(t, err)
	require.Equal(t, 0, f.books[bookID].available)

	require.NoError(t, s.Delete(context.Background(), l.ID))
	require.Equal(t, 1, f.books[bookID].available)
	require.Empty(t, f.loans)
}

func TestDelete_ReturnedKeepsCounter(t *testing.T) {
	f := seeded(1, 1)
	s := loansvc.New(f)

	l, err := s.Create(context.Background(), createInput(borrowerID))
	require.NoError(t, err)
	_, err = s.Return(context.Background(), l.ID)
	require.NoError(t, err)
	require.Equal(t, 1, f.books[bookID].available)

	require.NoError(t, s.Delete(context.Background(), l.ID))
	require.Equal(t, 1, f.books[bookID].available)
}

func TestDelete_NotFound(t *testing.T) {
	s := loansvc.New(seeded(1, 1))
	err := s.Delete(context.Background(), 42)
	require.Equal(t, loansvc.ErrNotFound, loansvc.Code(err))
}

// Full walk of the last-copy scenario: borrow, competing borrow rejected,
// return frees the copy again.
func TestScenario_LastCopy(t *testing.T) {
	f := seeded(1, 1)
	s := loansvc.New(f)
	ctx := context.Background()

	other := int64(4)
	role, reg := model.NewCustomer()
	f.users[other] = &model.User{ID: other, Role: role, Registration: reg, Active: true}

	la, err := s.Create(ctx, createInput(borrowerID))
	require.NoError(t, err)
	require.Equal(t, 0, f.books[bookID].available)

	_, err = s.Create(ctx, createInput(other))
	require.Equal(t, loansvc.ErrBookUnavailable, loansvc.Code(err))
	require.Equal(t, 0, f.books[bookID].available)

	_, err = s.Return(ctx, la.ID)
	require.NoError(t, err)
	require.Equal(t, 1, f.books[bookID].available)
}

// Availability stays within [0, total] across an arbitrary mix of operations.
func TestAvailabilityBounds(t *testing.T) {
	f := seeded(2, 2)
	s := loansvc.New(f)
	ctx := context.Background()

	check := func() {
		b := f.books[bookID]
		require.GreaterOrEqual(t, b.available, 0)
		require.LessOrEqual(t, b.available, b.total)
	}

	l1, err := s.Create(ctx, createInput(borrowerID))
	require.NoError(t, err)
	check()
	l2, err := s.Create(ctx, createInput(borrowerID))
	require.NoError(t, err)
	check()
	_, err = s.Create(ctx, createInput(borrowerID))
	require.Error(t, err)
	check()

	_, err = s.Return(ctx, l1.ID)
	require.NoError(t, err)
	check()
	require.NoError(t, s.Delete(ctx, l2.ID))
	check()
	require.NoError(t, s.Delete(ctx, l1.ID))
	check()
	require.Equal(t, 2, f.books[bookID].available)
}
