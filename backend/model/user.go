package model

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account. Password holds the bcrypt hash and is never
// serialised to clients.
type User struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email    string             `json:"email" bson:"email"`
	Password string             `json:"-" bson:"password"`
}

// UserStore persists users. Emails are unique.
type UserStore interface {
	// Insert assigns an ID when the user has none. It returns
	// ErrDuplicateEmail when the email is already registered.
	Insert(ctx context.Context, user *User) error
	// FindByEmail returns ErrNotFound when no user has that email.
	FindByEmail(ctx context.Context, email string) (*User, error)
}
