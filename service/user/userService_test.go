package usersvc_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/FelipeGehren/projeto-api/model"
	userrepo "github.com/FelipeGehren/projeto-api/repository/user"
	usersvc "github.com/FelipeGehren/projeto-api/service/user"
)

type repoMock struct {
	createFn    func(ctx context.Context, u *model.User) error
	listFn      func(ctx context.Context, f userrepo.Filter) ([]model.User, error)
	byIDFn      func(ctx context.Context, id int64) (*model.User, error)
	updateFn    func(ctx context.Context, id int64, p userrepo.Patch) (*model.User, error)
	setActiveFn func(ctx context.Context, id int64, active bool) (*model.User, error)
	deleteFn    func(ctx context.Context, id int64) (bool, error)
	movementsFn func(ctx context.Context, id int64) (bool, error)
}

var _ userrepo.Repo = (*repoMock)(nil)

func (m *repoMock) Create(ctx context.Context, u *model.User) error { return m.createFn(ctx, u) }
func (m *repoMock) List(ctx context.Context, f userrepo.Filter) ([]model.User, error) {
	return m.listFn(ctx, f)
}
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.User, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) Update(ctx context.Context, id int64, p userrepo.Patch) (*model.User, error) {
	return m.updateFn(ctx, id, p)
}
func (m *repoMock) SetActive(ctx context.Context, id int64, active bool) (*model.User, error) {
	return m.setActiveFn(ctx, id, active)
}
func (m *repoMock) Delete(ctx context.Context, id int64) (bool, error) { return m.deleteFn(ctx, id) }
func (m *repoMock) HasLoanOrReservation(ctx context.Context, id int64) (bool, error) {
	return m.movementsFn(ctx, id)
}

func customerInput() usersvc.CreateInput {
	role, reg := model.NewCustomer()
	return usersvc.CreateInput{
		FullName:     "Maria da Silva",
		CPF:          "123.456.789-09",
		Phone:        "(11) 98765-4321",
		Address:      "Rua das Flores, 100",
		Email:        "Maria@Example.com",
		Role:         role,
		Registration: reg,
		LoanLimit:    3,
	}
}

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 42
			return nil
		},
	}
	s := usersvc.New(m)

	u, err := s.Create(context.Background(), customerInput())
	require.NoError(t, err)
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, "maria@example.com", u.Email)
	require.Equal(t, model.RoleCustomer, u.Role)
	require.Nil(t, u.Registration)
}

func TestCreate_StaffNeedsRegistration(t *testing.T) {
	s := usersvc.New(&repoMock{})

	in := customerInput()
	in.Role = model.RoleStaff
	in.Registration = nil
	_, err := s.Create(context.Background(), in)
	require.ErrorIs(t, err, usersvc.ErrRegistrationRule)

	role, reg := model.NewStaff("F-010")
	in.Role, in.Registration = role, reg
	created := false
	s = usersvc.New(&repoMock{
		createFn: func(ctx context.Context, u *model.User) error {
			created = true
			require.NotNil(t, u.Registration)
			require.Equal(t, "F-010", *u.Registration)
			return nil
		},
	})
	_, err = s.Create(context.Background(), in)
	require.NoError(t, err)
	require.True(t, created)
}

func TestCreate_NonStaffRejectsRegistration(t *testing.T) {
	s := usersvc.New(&repoMock{})

	in := customerInput()
	reg := "F-999"
	in.Registration = &reg
	_, err := s.Create(context.Background(), in)
	require.ErrorIs(t, err, usersvc.ErrRegistrationRule)

	in = customerInput()
	in.Role = model.RoleAdmin
	in.Registration = &reg
	_, err = s.Create(context.Background(), in)
	require.ErrorIs(t, err, usersvc.ErrRegistrationRule)
}

func TestCreate_BadRole(t *testing.T) {
	s := usersvc.New(&repoMock{})

	in := customerInput()
	in.Role = model.Role("gerente")
	_, err := s.Create(context.Background(), in)
	require.ErrorIs(t, err, usersvc.ErrBadRole)
}

func TestCreate_DuplicateMapping(t *testing.T) {
	cases := []struct {
		constraint string
		want       error
	}{
		{"usuarios_cpf_key", usersvc.ErrCPFTaken},
		{"usuarios_email_key", usersvc.ErrEmailTaken},
		{"usuarios_matricula_key", usersvc.ErrRegistrationTaken},
	}
	for _, tc := range cases {
		m := &repoMock{
			createFn: func(ctx context.Context, u *model.User) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: tc.constraint}
			},
		}
		s := usersvc.New(m)
		_, err := s.Create(context.Background(), customerInput())
		require.ErrorIs(t, err, tc.want, tc.constraint)
	}
}

func TestDelete_BlockedByMovements(t *testing.T) {
	deleted := false
	m := &repoMock{
		movementsFn: func(ctx context.Context, id int64) (bool, error) { return true, nil },
		deleteFn: func(ctx context.Context, id int64) (bool, error) {
			deleted = true
			return true, nil
		},
	}
	s := usersvc.New(m)

	err := s.Delete(context.Background(), 1)
	require.ErrorIs(t, err, usersvc.ErrHasMovements)
	require.False(t, deleted)
}

func TestDelete_Success(t *testing.T) {
	m := &repoMock{
		movementsFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
		deleteFn:    func(ctx context.Context, id int64) (bool, error) { return true, nil },
	}
	s := usersvc.New(m)
	require.NoError(t, s.Delete(context.Background(), 1))
}

func TestDelete_NotFound(t *testing.T) {
	m := &repoMock{
		movementsFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
		deleteFn:    func(ctx context.Context, id int64) (bool, error) { return false, nil },
	}
	s := usersvc.New(m)
	require.ErrorIs(t, s.Delete(context.Background(), 1), usersvc.ErrNotFound)
}
