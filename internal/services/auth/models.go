package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a user in the system. The password hash and the pending
// verification code never leave the API.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty" example:"683cdb8aa96ad71e8e075bd1"`
	Name         string        `bson:"name" json:"name" example:"Jo Doe"`
	Email        string        `bson:"email" json:"email" example:"jo@example.com"`
	PasswordHash string        `bson:"password_hash" json:"-"`
	Phone        string        `bson:"phone,omitempty" json:"phone,omitempty"`
	Bio          string        `bson:"bio,omitempty" json:"bio,omitempty"`
	Location     string        `bson:"location,omitempty" json:"location,omitempty"`
	ProfileImage string        `bson:"profile_image,omitempty" json:"profileImage,omitempty"`

	Verified         bool       `bson:"verified" json:"verified"`
	VerificationCode string     `bson:"verification_code,omitempty" json:"-"`
	CodeExpiresAt    *time.Time `bson:"code_expires_at,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
