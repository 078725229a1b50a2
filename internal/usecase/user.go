package usecase

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mhaberler/rikitrakiws/internal/domain"
	"github.com/mhaberler/rikitrakiws/internal/infrastructure"
)

type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

type InvitationStore interface {
	Create(ctx context.Context, invitation *domain.Invitation) error
}

type InvitationMailer interface {
	SendInvitation(ctx context.Context, toEmail, invitedBy string) error
}

type UserUsecase struct {
	store       UserStore
	invitations InvitationStore
	mailer      InvitationMailer
	tokens      *infrastructure.TokenService
}

func NewUserUsecase(store UserStore, invitations InvitationStore, mailer InvitationMailer, tokens *infrastructure.TokenService) *UserUsecase {
	return &UserUsecase{
		store:       store,
		invitations: invitations,
		mailer:      mailer,
		tokens:      tokens,
	}
}

// Authenticate backs the Basic strategy.
func (uc *UserUsecase) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	return uc.store.VerifyCredentials(ctx, username, password)
}

// IssueToken mints a bearer token for an already verified principal.
func (uc *UserUsecase) IssueToken(username string) (string, error) {
	return uc.tokens.Generate(username)
}

func (uc *UserUsecase) Profile(ctx context.Context, username string) (*domain.User, error) {
	return uc.store.FindByUsername(ctx, username)
}

func (uc *UserUsecase) Register(ctx context.Context, reg domain.UserRegistration) (*domain.User, error) {
	user := &domain.User{
		Username:    reg.Username,
		Email:       reg.Email,
		Password:    reg.Password,
		CreatedDate: time.Now(),
	}
	if err := user.HashPassword(); err != nil {
		return nil, err
	}
	if err := uc.store.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Invite records the invitation and sends the invite mail. A mail
// delivery failure is logged but does not fail the request, the
// invitation record is what gates registration.
func (uc *UserUsecase) Invite(ctx context.Context, email, invitedBy string) error {
	invitation := &domain.Invitation{Email: email, InvitedBy: invitedBy}
	if err := uc.invitations.Create(ctx, invitation); err != nil {
		return err
	}
	if err := uc.mailer.SendInvitation(ctx, email, invitedBy); err != nil {
		log.WithError(err).WithField("email", email).Error("invitation mail failed")
	}
	return nil
}
