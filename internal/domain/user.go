package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// User is a record in the users collection. username and email are
// unique at the database level. The bcrypt hash is never serialized
// to JSON.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Username    string             `bson:"username" json:"username"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"`
	CreatedDate time.Time          `bson:"createdDate" json:"createdDate"`
}

// UserRegistration is the untrusted registration body.
type UserRegistration struct {
	Username   string `json:"username" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Invitation string `json:"invitation,omitempty"`
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

// Invitation is a record in the invitations collection, unique by email.
type Invitation struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Email       string             `bson:"email" json:"email"`
	InvitedBy   string             `bson:"invitedBy" json:"invitedBy"`
	CreatedDate time.Time          `bson:"createdDate" json:"createdDate"`
}

// InvitationRequest is the untrusted invitation body.
type InvitationRequest struct {
	Email string `json:"email" validate:"required,email"`
}
