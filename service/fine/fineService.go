package finesvc

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/FelipeGehren/projeto-api/model"
	finerepo "github.com/FelipeGehren/projeto-api/repository/fine"
)

type ErrCode string

const (
	ErrLoanNotFound   ErrCode = "LOAN_NOT_FOUND"
	ErrLoanNotOverdue ErrCode = "LOAN_NOT_OVERDUE"
	ErrDuplicate      ErrCode = "DUPLICATE_PENDING"
	ErrNotPending     ErrCode = "NOT_PENDING"
	ErrNotFound       ErrCode = "NOT_FOUND"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type CreateInput struct {
	LoanID     int64
	Amount     float64
	Reason     string
	DaysLate   int
	RatePerDay float64
}

type Service interface {
	// Create issues a fine for an overdue loan. One pending fine per loan.
	Create(ctx context.Context, in CreateInput) (*model.Fine, error)

	// Pay and Cancel are the two terminal transitions out of pendente;
	// both reject a fine that already left that state.
	Pay(ctx context.Context, id int64) (*model.Fine, error)
	Cancel(ctx context.Context, id int64) (*model.Fine, error)

	List(ctx context.Context, f finerepo.Filter) ([]model.Fine, error)
	Get(ctx context.Context, id int64) (*model.Fine, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r finerepo.Repo }

func New(r finerepo.Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, in CreateInput) (*model.Fine, error) {
	f := &model.Fine{
		LoanID:     in.LoanID,
		Amount:     in.Amount,
		Reason:     in.Reason,
		DaysLate:   in.DaysLate,
		RatePerDay: in.RatePerDay,
	}
	err := s.r.InTx(ctx, func(tx finerepo.Tx) error {
		status, err := tx.LoanStatus(ctx, in.LoanID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrLoanNotFound)
			}
			return err
		}
		if status != model.LoanOverdue {
			return makeErr(ErrLoanNotOverdue)
		}

		pending, err := tx.PendingExists(ctx, in.LoanID)
		if err != nil {
			return err
		}
		if pending {
			return makeErr(ErrDuplicate)
		}

		return tx.Insert(ctx, f)
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) Pay(ctx context.Context, id int64) (*model.Fine, error) {
	return s.transition(ctx, id, func(tx finerepo.Tx) (*model.Fine, error) {
		return tx.MarkPaid(ctx, id)
	})
}

func (s *service) Cancel(ctx context.Context, id int64) (*model.Fine, error) {
	return s.transition(ctx, id, func(tx finerepo.Tx) (*model.Fine, error) {
		return tx.MarkCancelled(ctx, id)
	})
}

func (s *service) transition(ctx context.Context, id int64, apply func(finerepo.Tx) (*model.Fine, error)) (*model.Fine, error) {
	var out *model.Fine
	err := s.r.InTx(ctx, func(tx finerepo.Tx) error {
		status, err := tx.Status(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrNotFound)
			}
			return err
		}
		if status != model.FinePending {
			return makeErr(ErrNotPending)
		}
		out, err = apply(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) List(ctx context.Context, f finerepo.Filter) ([]model.Fine, error) {
	return s.r.List(ctx, f)
}

func (s *service) Get(ctx context.Context, id int64) (*model.Fine, error) {
	f, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return f, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	ok, err := s.r.DeleteRow(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrNotFound)
	}
	return nil
}
