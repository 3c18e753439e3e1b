package auth

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrDuplicate is returned when trying to create a user with an email that already exists
var ErrDuplicate = errors.New("user with this email already exists")

// UsersRepo defines the interface for user repository operations
type UsersRepo interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*User, error)

	// FindByEmailAndCode matches a user whose pending verification code
	// equals code and has not expired as of now.
	FindByEmailAndCode(ctx context.Context, email, code string, now time.Time) (*User, error)

	Update(ctx context.Context, user *User) error
}

// Mailer delivers verification codes. Implementations live in clients/smtp.
type Mailer interface {
	SendVerificationCode(ctx context.Context, to, code string) error
}
