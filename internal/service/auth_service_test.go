package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/dispatch-service/internal/config"
	"github.com/spec-kit/dispatch-service/internal/domain"
)

type memUserRepo struct {
	byEmail map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.byEmail[user.Email] = user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func newTestAuthService() (*AuthService, *memUserRepo) {
	repo := newMemUserRepo()
	svc := NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 30,
		BcryptCost:            4, // minimum cost keeps the test fast
	}, repo)
	return svc, repo
}

func TestCreateUserAndLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "Clara Chief", "clara@example.org", "geheim123", domain.RoleChief)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, "geheim123", created.PasswordHash)

	user, token, expiresAt, err := svc.Login(ctx, "clara@example.org", "geheim123")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleChief, user.Role)
	assert.False(t, expiresAt.IsZero())

	identity, err := svc.TokenManager().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleChief, identity.Role)
	assert.Equal(t, "clara@example.org", identity.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "Clara Chief", "clara@example.org", "geheim123", domain.RoleChief)
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "clara@example.org", "falsch")
	assert.EqualError(t, err, "invalid credentials")
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _, _, err := svc.Login(context.Background(), "niemand@example.org", "egal")
	assert.EqualError(t, err, "invalid credentials")
}

func TestLoginSuspendedAccount(t *testing.T) {
	svc, repo := newTestAuthService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "Clara Chief", "clara@example.org", "geheim123", domain.RoleChief)
	require.NoError(t, err)
	repo.byEmail[created.Email].Status = domain.UserStatusSuspended

	_, _, _, err = svc.Login(ctx, "clara@example.org", "geheim123")
	assert.EqualError(t, err, "account suspended")
}

func TestBootstrapAdmin(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	admin, err := svc.BootstrapAdmin(ctx, "admin@example.org", "geheim123")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, domain.RoleAdmin, admin.Role)

	again, err := svc.BootstrapAdmin(ctx, "admin@example.org", "geheim123")
	require.NoError(t, err)
	assert.Nil(t, again, "existing account must not be touched")

	skipped, err := svc.BootstrapAdmin(ctx, "", "")
	require.NoError(t, err)
	assert.Nil(t, skipped, "empty credentials skip the bootstrap")
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "Clara Chief", "clara@example.org", "geheim123", domain.RoleChief)
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, "Other", "clara@example.org", "anders456", domain.RoleAnalyst)
	assert.EqualError(t, err, "email already registered")
}
