package finesvc_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/FelipeGehren/projeto-api/model"
	finerepo "github.com/FelipeGehren/projeto-api/repository/fine"
	finesvc "github.com/FelipeGehren/projeto-api/service/fine"
)

type fakeStore struct {
	loanStatus map[int64]model.LoanStatus
	fines      map[int64]*model.Fine
	nextID     int64
}

var _ finerepo.Repo = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		loanStatus: map[int64]model.LoanStatus{},
		fines:      map[int64]*model.Fine{},
		nextID:     1,
	}
}

func (f *fakeStore) InTx(ctx context.Context, fn func(finerepo.Tx) error) error {
	return fn(f)
}

func (f *fakeStore) LoanStatus(ctx context.Context, loanID int64) (model.LoanStatus, error) {
	st, ok := f.loanStatus[loanID]
	if !ok {
		return "", sql.ErrNoRows
	}
	return st, nil
}

func (f *fakeStore) PendingExists(ctx context.Context, loanID int64) (bool, error) {
	for _, fine := range f.fines {
		if fine.LoanID == loanID && fine.Status == model.FinePending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Insert(ctx context.Context, fine *model.Fine) error {
	fine.ID = f.nextID
	f.nextID++
	fine.GeneratedAt = time.Now().UTC()
	fine.Status = model.FinePending
	cp := *fine
	f.fines[fine.ID] = &cp
	return nil
}

func (f *fakeStore) Status(ctx context.Context, id int64) (model.FineStatus, error) {
	fine, ok := f.fines[id]
	if !ok {
		return "", sql.ErrNoRows
	}
	return fine.Status, nil
}

func (f *fakeStore) MarkPaid(ctx context.Context, id int64) (*model.Fine, error) {
	fine, ok := f.fines[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	now := time.Now().UTC()
	fine.Status = model.FinePaid
	fine.PaidAt = &now
	cp := *fine
	return &cp, nil
}

func (f *fakeStore) MarkCancelled(ctx context.Context, id int64) (*model.Fine, error) {
	fine, ok := f.fines[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	fine.Status = model.FineCancelled
	cp := *fine
	return &cp, nil
}

func (f *fakeStore) List(ctx context.Context, _ finerepo.Filter) ([]model.Fine, error) {
	out := []model.Fine{}
	for _, fine := range f.fines {
		out = append(out, *fine)
	}
	return out, nil
}

func (f *fakeStore) ByID(ctx context.Context, id int64) (*model.Fine, error) {
	fine, ok := f.fines[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *fine
	return &cp, nil
}

func (f *fakeStore) DeleteRow(ctx context.Context, id int64) (bool, error) {
	if _, ok := f.fines[id]; !ok {
		return false, nil
	}
	delete(f.fines, id)
	return true, nil
}

const overdueLoan = int64(7)

func seeded() *fakeStore {
	f := newFakeStore()
	f.loanStatus[overdueLoan] = model.LoanOverdue
	f.loanStatus[8] = model.LoanActive
	f.loanStatus[9] = model.LoanReturned
	return f
}

func createInput(loanID int64) finesvc.CreateInput {
	return finesvc.CreateInput{
		LoanID:     loanID,
		Amount:     7.50,
		Reason:     "devolução atrasada",
		DaysLate:   3,
		RatePerDay: 2.50,
	}
}

func TestCreate_OverdueOnly(t *testing.T) {
	s := finesvc.New(seeded())
	ctx := context.Background()

	fine, err := s.Create(ctx, createInput(overdueLoan))
	require.NoError(t, err)
	require.Equal(t, model.FinePending, fine.Status)
	require.Nil(t, fine.PaidAt)

	for _, loanID := range []int64{8, 9} {
		_, err := s.Create(ctx, createInput(loanID))
		require.Equal(t, finesvc.ErrLoanNotOverdue, finesvc.Code(err))
	}
}

func TestCreate_LoanNotFound(t *testing.T) {
	s := finesvc.New(seeded())
	_, err := s.Create(context.Background(), createInput(999))
	require.Equal(t, finesvc.ErrLoanNotFound, finesvc.Code(err))
}

func TestCreate_DuplicatePending(t *testing.T) {
	f := seeded()
	s := finesvc.New(f)
	ctx := context.Background()

	first, err := s.Create(ctx, createInput(overdueLoan))
	require.NoError(t, err)

	_, err = s.Create(ctx, createInput(overdueLoan))
	require.Equal(t, finesvc.ErrDuplicate, finesvc.Code(err))

	// paying the pending fine frees the loan for a new one
	_, err = s.Pay(ctx, first.ID)
	require.NoError(t, err)
	_, err = s.Create(ctx, createInput(overdueLoan))
	require.NoError(t, err)
}

func TestPay_TerminalOnce(t *testing.T) {
	f := seeded()
	s := finesvc.New(f)
	ctx := context.Background()

	fine, err := s.Create(ctx, createInput(overdueLoan))
	require.NoError(t, err)

	paid, err := s.Pay(ctx, fine.ID)
	require.NoError(t, err)
	require.Equal(t, model.FinePaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	_, err = s.Pay(ctx, fine.ID)
	require.Equal(t, finesvc.ErrNotPending, finesvc.Code(err))
	_, err = s.Cancel(ctx, fine.ID)
	require.Equal(t, finesvc.ErrNotPending, finesvc.Code(err))
}

func TestCancel_TerminalOnce(t *testing.T) {
	f := seeded()
	s := finesvc.New(f)
	ctx := context.Background()

	fine, err := s.Create(ctx, createInput(overdueLoan))
	require.NoError(t, err)

	cancelled, err := s.Cancel(ctx, fine.ID)
	require.NoError(t, err)
	require.Equal(t, model.FineCancelled, cancelled.Status)
	require.Nil(t, cancelled.PaidAt)

	_, err = s.Cancel(ctx, fine.ID)
	require.Equal(t, finesvc.ErrNotPending, finesvc.Code(err))
	_, err = s.Pay(ctx, fine.ID)
	require.Equal(t, finesvc.ErrNotPending, finesvc.Code(err))
}

func TestTransition_NotFound(t *testing.T) {
	s := finesvc.New(seeded())
	ctx := context.Background()

	_, err := s.Pay(ctx, 42)
	require.Equal(t, finesvc.ErrNotFound, finesvc.Code(err))
	_, err = s.Cancel(ctx, 42)
	require.Equal(t, finesvc.ErrNotFound, finesvc.Code(err))
}
