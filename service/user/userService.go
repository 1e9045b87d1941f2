package usersvc

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/FelipeGehren/projeto-api/model"
	userrepo "github.com/FelipeGehren/projeto-api/repository/user"
)

var (
	ErrCPFTaken          = errors.New("cpf already registered")
	ErrEmailTaken        = errors.New("email already registered")
	ErrRegistrationTaken = errors.New("matricula already registered")
	ErrRegistrationRule  = errors.New("matricula required for funcionario and forbidden otherwise")
	ErrBadRole           = errors.New("invalid tipo")
	ErrNotFound          = errors.New("usuario not found")
	ErrHasMovements      = errors.New("usuario has loans or reservations")
)

type CreateInput struct {
	FullName     string
	CPF          string
	Phone        string
	Address      string
	Email        string
	Role         model.Role
	Registration *string
	LoanLimit    int
}

type Service interface {
	Create(ctx context.Context, in CreateInput) (*model.User, error)
	List(ctx context.Context, f userrepo.Filter) ([]model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	Update(ctx context.Context, id int64, in CreateInput) (*model.User, error)
	SetActive(ctx context.Context, id int64, active bool) (*model.User, error)

	// Delete is blocked while any loan or reservation row references the
	// user, even terminal ones.
	Delete(ctx context.Context, id int64) error
}

type service struct{ r userrepo.Repo }

func New(r userrepo.Repo) Service { return &service{r: r} }

func validate(in *CreateInput) error {
	if !in.Role.Valid() {
		return ErrBadRole
	}
	if in.Registration != nil && strings.TrimSpace(*in.Registration) == "" {
		in.Registration = nil
	}
	if !model.ValidateRegistration(in.Role, in.Registration) {
		return ErrRegistrationRule
	}
	if in.LoanLimit <= 0 {
		in.LoanLimit = 3
	}
	return nil
}

func (s *service) Create(ctx context.Context, in CreateInput) (*model.User, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}
	u := &model.User{
		FullName:     in.FullName,
		CPF:          in.CPF,
		Phone:        in.Phone,
		Address:      in.Address,
		Email:        strings.ToLower(in.Email),
		Role:         in.Role,
		Registration: in.Registration,
		LoanLimit:    in.LoanLimit,
	}
	if err := s.r.Create(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return u, nil
}

func (s *service) List(ctx context.Context, f userrepo.Filter) ([]model.User, error) {
	return s.r.List(ctx, f)
}

func (s *service) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Update(ctx context.Context, id int64, in CreateInput) (*model.User, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}
	u, err := s.r.Update(ctx, id, userrepo.Patch{
		FullName:     in.FullName,
		CPF:          in.CPF,
		Phone:        in.Phone,
		Address:      in.Address,
		Email:        strings.ToLower(in.Email),
		Role:         in.Role,
		Registration: in.Registration,
		LoanLimit:    in.LoanLimit,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return u, nil
}

func (s *service) SetActive(ctx context.Context, id int64, active bool) (*model.User, error) {
	u, err := s.r.SetActive(ctx, id, active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	has, err := s.r.HasLoanOrReservation(ctx, id)
	if err != nil {
		return err
	}
	if has {
		return ErrHasMovements
	}
	ok, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		msg := strings.ToLower(pgErr.Message)

		switch {
		case strings.Contains(cn, "cpf") || strings.Contains(msg, "cpf"):
			return ErrCPFTaken
		case strings.Contains(cn, "email") || strings.Contains(msg, "email"):
			return ErrEmailTaken
		case strings.Contains(cn, "matricula") || strings.Contains(msg, "matricula"):
			return ErrRegistrationTaken
		}
		return ErrCPFTaken
	}
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
		return ErrRegistrationRule
	}
	return nil
}
