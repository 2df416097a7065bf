package service

import (
	"context"
	"errors"
	"fmt"

	"qrdrop/backend/common"
	"qrdrop/backend/model"
)

// Credentials is the signup and login payload. bcrypt only looks at the
// first 72 bytes of a password, so longer ones are refused at signup.
type Credentials struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,max=72"`
}

type AuthService struct {
	users model.UserStore
}

func NewAuthService(users model.UserStore) *AuthService {
	return &AuthService{users: users}
}

// Signup registers a new user with a bcrypt hash of the password.
func (s *AuthService) Signup(ctx context.Context, cred Credentials) (*model.User, error) {
	if err := common.Validate.Struct(cred); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	_, err := s.users.FindByEmail(ctx, cred.Email)
	if err == nil {
		return nil, ErrEmailInUse
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hashed, err := common.Password2Hash(cred.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{Email: cred.Email, Password: hashed}
	if err := s.users.Insert(ctx, user); err != nil {
		// a concurrent signup can pass the lookup and lose on the unique index
		if errors.Is(err, model.ErrDuplicateEmail) {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// Login returns the user whose email and password match. Unknown emails and
// wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, cred Credentials) (*model.User, error) {
	if cred.Email == "" || cred.Password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.users.FindByEmail(ctx, cred.Email)
	if errors.Is(err, model.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !common.ValidatePasswordAndHash(cred.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
