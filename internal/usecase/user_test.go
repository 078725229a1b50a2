package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhaberler/rikitrakiws/internal/domain"
	"github.com/mhaberler/rikitrakiws/internal/infrastructure"
)

type fakeUserStore struct {
	users map[string]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*domain.User{}}
}

func (f *fakeUserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserStore) VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	user, ok := f.users[username]
	if !ok || user.CheckPassword(password) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (f *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	if _, ok := f.users[user.Username]; ok {
		return domain.ErrDuplicate
	}
	f.users[user.Username] = user
	return nil
}

type fakeInvitationStore struct {
	emails []string
}

func (f *fakeInvitationStore) Create(ctx context.Context, invitation *domain.Invitation) error {
	for _, e := range f.emails {
		if e == invitation.Email {
			return domain.ErrDuplicate
		}
	}
	f.emails = append(f.emails, invitation.Email)
	return nil
}

type fakeMailer struct {
	sent     []string
	failWith error
}

func (f *fakeMailer) SendInvitation(ctx context.Context, toEmail, invitedBy string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.sent = append(f.sent, toEmail)
	return nil
}

func newUserUsecaseForTest(store UserStore, invitations InvitationStore, mailer InvitationMailer) *UserUsecase {
	tokens := infrastructure.NewTokenService("test-secret", "rikitrakiws", time.Hour)
	return NewUserUsecase(store, invitations, mailer, tokens)
}

func TestRegisterHashesPassword(t *testing.T) {
	store := newFakeUserStore()
	uc := newUserUsecaseForTest(store, &fakeInvitationStore{}, &fakeMailer{})

	user, err := uc.Register(context.Background(), domain.UserRegistration{
		Username: "testuser",
		Email:    "foo@bar.com",
		Password: "s3cret!",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret!", user.Password)
	assert.NoError(t, user.CheckPassword("s3cret!"))
	assert.Error(t, user.CheckPassword("wrong"))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	store := newFakeUserStore()
	uc := newUserUsecaseForTest(store, &fakeInvitationStore{}, &fakeMailer{})

	reg := domain.UserRegistration{Username: "testuser", Email: "foo@bar.com", Password: "s3cret!"}
	_, err := uc.Register(context.Background(), reg)
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), reg)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestIssueTokenCarriesUsername(t *testing.T) {
	uc := newUserUsecaseForTest(newFakeUserStore(), &fakeInvitationStore{}, &fakeMailer{})

	token, err := uc.IssueToken("testuser")
	require.NoError(t, err)

	claims, err := infrastructure.NewTokenService("test-secret", "rikitrakiws", time.Hour).Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "testuser", claims.Subject)
}

func TestInviteSendsMail(t *testing.T) {
	invitations := &fakeInvitationStore{}
	mailer := &fakeMailer{}
	uc := newUserUsecaseForTest(newFakeUserStore(), invitations, mailer)

	require.NoError(t, uc.Invite(context.Background(), "new@user.com", "testuser"))
	assert.Equal(t, []string{"new@user.com"}, mailer.sent)
}

func TestInviteDuplicateEmail(t *testing.T) {
	invitations := &fakeInvitationStore{}
	uc := newUserUsecaseForTest(newFakeUserStore(), invitations, &fakeMailer{})

	require.NoError(t, uc.Invite(context.Background(), "new@user.com", "testuser"))
	assert.ErrorIs(t, uc.Invite(context.Background(), "new@user.com", "testuser"), domain.ErrDuplicate)
}

func TestInviteMailFailureIsNotFatal(t *testing.T) {
	invitations := &fakeInvitationStore{}
	mailer := &fakeMailer{failWith: errors.New("smtp down")}
	uc := newUserUsecaseForTest(newFakeUserStore(), invitations, mailer)

	assert.NoError(t, uc.Invite(context.Background(), "new@user.com", "testuser"))
	assert.Equal(t, []string{"new@user.com"}, invitations.emails, "invitation recorded despite mail failure")
}
