package loansvc

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/FelipeGehren/projeto-api/model"
	loanrepo "github.com/FelipeGehren/projeto-api/repository/loan"
)

// errors used by controllers

type ErrCode string

const (
	ErrBookUnavailable ErrCode = "BOOK_UNAVAILABLE"
	ErrBorrowerInvalid ErrCode = "BORROWER_INVALID"
	ErrStaffInvalid    ErrCode = "STAFF_INVALID"
	ErrNotActive       ErrCode = "NOT_ACTIVE"
	ErrNotFound        ErrCode = "NOT_FOUND"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts the error code, "" for uncoded errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type CreateInput struct {
	UserID     int64
	BookID     int64
	StaffID    int64
	DueAt      time.Time
	PeriodDays int
	Notes      *string
}

type Service interface {
	// Create registers a loan and takes one copy off the shelf.
	Create(ctx context.Context, in CreateInput) (*model.Loan, error)

	// Return closes an active loan and puts the copy back.
	Return(ctx context.Context, id int64) (*model.Loan, error)

	// Delete removes the record; an active loan releases its copy first.
	Delete(ctx context.Context, id int64) error

	List(ctx context.Context, f loanrepo.Filter) ([]model.Loan, error)
	Get(ctx context.Context, id int64) (*model.Loan, error)
}

type service struct{ r loanrepo.Repo }

func New(r loanrepo.Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, in CreateInput) (*model.Loan, error) {
	if in.PeriodDays <= 0 {
		in.PeriodDays = 15
	}
	l := &model.Loan{
		UserID:     in.UserID,
		BookID:     in.BookID,
		StaffID:    in.StaffID,
		DueAt:      in.DueAt,
		Notes:      in.Notes,
		PeriodDays: in.PeriodDays,
	}
	err := s.r.InTx(ctx, func(tx loanrepo.Tx) error {
		available, err := tx.BookAvailability(ctx, in.BookID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrBookUnavailable)
			}
			return err
		}
		if available <= 0 {
			return makeErr(ErrBookUnavailable)
		}

		borrower, err := tx.User(ctx, in.UserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrBorrowerInvalid)
			}
			return err
		}
		if !borrower.Active {
			return makeErr(ErrBorrowerInvalid)
		}

		staff, err := tx.User(ctx, in.StaffID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrStaffInvalid)
			}
			return err
		}
		if staff.Role != model.RoleStaff {
			return makeErr(ErrStaffInvalid)
		}

		if err := tx.Insert(ctx, l); err != nil {
			return err
		}
		if err := tx.AdjustAvailability(ctx, in.BookID, -1); err != nil {
			// the availability check constraint loses the race for the last copy
			if isCheckViolation(err) {
				return makeErr(ErrBookUnavailable)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) Return(ctx context.Context, id int64) (*model.Loan, error) {
	var returned *model.Loan
	err := s.r.InTx(ctx, func(tx loanrepo.Tx) error {
		status, bookID, err := tx.StatusAndBook(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrNotFound)
			}
			return err
		}
		if status != model.LoanActive {
			return makeErr(ErrNotActive)
		}
		if returned, err = tx.MarkReturned(ctx, id); err != nil {
			return err
		}
		return tx.AdjustAvailability(ctx, bookID, +1)
	})
	if err != nil {
		return nil, err
	}
	return returned, nil
}

// Delete releases the copy of a still-active loan instead of rejecting, so the
// availability counter does not leak when records are purged.
func (s *service) Delete(ctx context.Context, id int64) error {
	return s.r.InTx(ctx, func(tx loanrepo.Tx) error {
		status, bookID, err := tx.StatusAndBook(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrNotFound)
			}
			return err
		}
		if status == model.LoanActive {
			if err := tx.AdjustAvailability(ctx, bookID, +1); err != nil {
				return err
			}
		}
		return tx.DeleteRow(ctx, id)
	})
}

func (s *service) List(ctx context.Context, f loanrepo.Filter) ([]model.Loan, error) {
	return s.r.List(ctx, f)
}

func (s *service) Get(ctx context.Context, id int64) (*model.Loan, error) {
	l, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return l, nil
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation
}
