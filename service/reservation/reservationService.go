package reservationsvc

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/FelipeGehren/projeto-api/model"
	reservationrepo "github.com/FelipeGehren/projeto-api/repository/reservation"
)

type ErrCode string

const (
	ErrBookNotFound ErrCode = "BOOK_NOT_FOUND"
	ErrUserInvalid  ErrCode = "USER_INVALID"
	ErrDuplicate    ErrCode = "DUPLICATE_PENDING"
	ErrNotPending   ErrCode = "NOT_PENDING"
	ErrNotFound     ErrCode = "NOT_FOUND"
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
	UserID   int64
	BookID   int64
	Deadline time.Time
	Priority int
}

type Service interface {
	// Create claims a book for a user. It never touches the availability
	// counter; reservations and the loan counter are independent.
	Create(ctx context.Context, in CreateInput) (*model.Reservation, error)

	// Cancel moves a pending reservation to cancelada.
	Cancel(ctx context.Context, id int64) (*model.Reservation, error)

	List(ctx context.Context, f reservationrepo.Filter) ([]model.Reservation, error)
	Get(ctx context.Context, id int64) (*model.Reservation, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r reservationrepo.Repo }

func New(r reservationrepo.Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, in CreateInput) (*model.Reservation, error) {
	if in.Priority <= 0 {
		in.Priority = 1
	}
	res := &model.Reservation{
		UserID:   in.UserID,
		BookID:   in.BookID,
		Deadline: in.Deadline,
		Priority: in.Priority,
	}
	err := s.r.InTx(ctx, func(tx reservationrepo.Tx) error {
		exists, err := tx.BookExists(ctx, in.BookID)
		if err != nil {
			return err
		}
		if !exists {
			return makeErr(ErrBookNotFound)
		}

		user, err := tx.User(ctx, in.UserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrUserInvalid)
			}
			return err
		}
		if !user.Active {
			return makeErr(ErrUserInvalid)
		}

		pending, err := tx.PendingExists(ctx, in.UserID, in.BookID)
		if err != nil {
			return err
		}
		if pending {
			return makeErr(ErrDuplicate)
		}

		return tx.Insert(ctx, res)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) Cancel(ctx context.Context, id int64) (*model.Reservation, error) {
	var cancelled *model.Reservation
	err := s.r.InTx(ctx, func(tx reservationrepo.Tx) error {
		status, err := tx.Status(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrNotFound)
			}
			return err
		}
		if status != model.ReservationPending {
			return makeErr(ErrNotPending)
		}
		cancelled, err = tx.MarkCancelled(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func (s *service) List(ctx context.Context, f reservationrepo.Filter) ([]model.Reservation, error) {
	return s.r.List(ctx, f)
}

func (s *service) Get(ctx context.Context, id int64) (*model.Reservation, error) {
	res, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return res, nil
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
