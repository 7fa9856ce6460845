package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"pilinks/models"
	"pilinks/repositories"
)

type stubVerifier struct {
	identity *PiIdentity
	err      error
}

func (s stubVerifier) Verify(ctx context.Context, accessToken string) (*PiIdentity, error) {
	return s.identity, s.err
}

func TestLoginCreatesUserAndToken(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	svc := NewAuthService(repo, stubVerifier{identity: &PiIdentity{UID: "uid-1", Username: "pioneer"}}, nil)

	resp, err := svc.Login(context.Background(), models.LoginRequest{AccessToken: "token"})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "pioneer", resp.User.PiUsername)
	assert.Equal(t, "uid-1", resp.User.PiUID)
	assert.Equal(t, models.RoleUser, resp.User.Role)
	assert.NotEmpty(t, resp.User.ID)
}

func TestLoginTwiceReturnsSameUser(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	svc := NewAuthService(repo, stubVerifier{identity: &PiIdentity{UID: "uid-1", Username: "pioneer"}}, nil)

	first, err := svc.Login(context.Background(), models.LoginRequest{AccessToken: "token"})
	assert.NoError(t, err)

	second, err := svc.Login(context.Background(), models.LoginRequest{AccessToken: "token"})
	assert.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestLoginRefreshesUsername(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()

	svc := NewAuthService(repo, stubVerifier{identity: &PiIdentity{UID: "uid-1", Username: "old_name"}}, nil)
	first, err := svc.Login(context.Background(), models.LoginRequest{AccessToken: "token"})
	assert.NoError(t, err)

	svc = NewAuthService(repo, stubVerifier{identity: &PiIdentity{UID: "uid-1", Username: "new_name"}}, nil)
	second, err := svc.Login(context.Background(), models.LoginRequest{AccessToken: "token"})
	assert.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, "new_name", second.User.PiUsername)
}

func TestLoginAssignsAdminRoleFromList(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	svc := NewAuthService(repo, stubVerifier{identity: &PiIdentity{UID: "uid-admin", Username: "mod"}}, []string{"uid-admin"})

	resp, err := svc.Login(context.Background(), models.LoginRequest{AccessToken: "token"})
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
}

func TestLoginVerifierFailureLeavesAnonymous(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	svc := NewAuthService(repo, stubVerifier{err: errors.New("provider down")}, nil)

	_, err := svc.Login(context.Background(), models.LoginRequest{AccessToken: "token"})
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	// nothing was persisted on the failure path
	_, err = repo.GetByPiUID("uid-1")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSandboxVerifierAcceptsAnyToken(t *testing.T) {
	identity, err := NewSandboxVerifier().Verify(context.Background(), "anything")
	assert.NoError(t, err)
	assert.Equal(t, "uid_admin_777", identity.UID)
	assert.Equal(t, "Pioneer_Admin", identity.Username)
}
