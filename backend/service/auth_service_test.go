package service

import (
	"context"
	"errors"
	"testing"

	"qrdrop/backend/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	users := model.NewMemoryUserStore()
	svc := NewAuthService(users)

	user, err := svc.Signup(ctx, Credentials{Email: "a@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.NotEqual(t, "secret", user.Password, "password is stored hashed")

	stored, err := users.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)

	got, err := svc.Login(ctx, Credentials{Email: "a@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestSignup_EmailInUse(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(model.NewMemoryUserStore())

	_, err := svc.Signup(ctx, Credentials{Email: "a@example.com", Password: "secret"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, Credentials{Email: "a@example.com", Password: "other"})
	assert.ErrorIs(t, err, ErrEmailInUse)
}

// raceUserStore never finds a user but rejects inserts as duplicates, the
// shape of two concurrent signups for one email.
type raceUserStore struct{}

func (raceUserStore) Insert(context.Context, *model.User) error { return model.ErrDuplicateEmail }
func (raceUserStore) FindByEmail(context.Context, string) (*model.User, error) {
	return nil, model.ErrNotFound
}

func TestSignup_DuplicateKeyOnInsert(t *testing.T) {
	svc := NewAuthService(raceUserStore{})
	_, err := svc.Signup(context.Background(), Credentials{Email: "a@example.com", Password: "secret"})
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestSignup_Validation(t *testing.T) {
	svc := NewAuthService(model.NewMemoryUserStore())
	cases := []Credentials{
		{Email: "", Password: "secret"},
		{Email: "not-an-email", Password: "secret"},
		{Email: "a@example.com", Password: ""},
		{Email: "a@example.com", Password: string(make([]byte, 73))},
	}
	for _, cred := range cases {
		_, err := svc.Signup(context.Background(), cred)
		assert.ErrorIs(t, err, ErrValidation, cred.Email)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(model.NewMemoryUserStore())
	_, err := svc.Signup(ctx, Credentials{Email: "a@example.com", Password: "secret"})
	require.NoError(t, err)

	_, errWrong := svc.Login(ctx, Credentials{Email: "a@example.com", Password: "wrong"})
	_, errUnknown := svc.Login(ctx, Credentials{Email: "b@example.com", Password: "secret"})
	_, errEmpty := svc.Login(ctx, Credentials{})

	assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errEmpty, ErrInvalidCredentials)
	assert.Equal(t, errWrong.Error(), errUnknown.Error(), "unknown email and wrong password look the same")
}

type brokenUserStore struct{}

func (brokenUserStore) Insert(context.Context, *model.User) error { return errors.New("connection reset") }
func (brokenUserStore) FindByEmail(context.Context, string) (*model.User, error) {
	return nil, errors.New("connection reset")
}

func TestAuth_StoreErrorsAreInternal(t *testing.T) {
	svc := NewAuthService(brokenUserStore{})
	_, err := svc.Signup(context.Background(), Credentials{Email: "a@example.com", Password: "secret"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailInUse)
	assert.NotErrorIs(t, err, ErrValidation)

	_, err = svc.Login(context.Background(), Credentials{Email: "a@example.com", Password: "secret"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
