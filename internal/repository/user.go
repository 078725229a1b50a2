package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mhaberler/rikitrakiws/internal/db"
	"github.com/mhaberler/rikitrakiws/internal/domain"
)

type UserRepo struct {
	collection *mongo.Collection
}

func NewUserRepo(database *mongo.Database) *UserRepo {
	return &UserRepo{
		collection: database.Collection(db.UsersCollection),
	}
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyCredentials backs the Basic strategy. Unknown usernames and
// wrong passwords are reported identically.
func (r *UserRepo) VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := r.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := user.CheckPassword(password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicate
	}
	return err
}

type InvitationRepo struct {
	collection *mongo.Collection
}

func NewInvitationRepo(database *mongo.Database) *InvitationRepo {
	return &InvitationRepo{
		collection: database.Collection(db.InvitationsCollection),
	}
}

func (r *InvitationRepo) Create(ctx context.Context, invitation *domain.Invitation) error {
	if invitation.CreatedDate.IsZero() {
		invitation.CreatedDate = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, invitation)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicate
	}
	return err
}
